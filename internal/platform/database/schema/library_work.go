package schema

// LibraryWorkTable represents the 'library.work' table
type LibraryWorkTable struct {
	Table     string
	ID        string
	Title     string
	CreatedAt string
	UpdatedAt string
}

// LibraryWork is the schema definition for library.work
var LibraryWork = LibraryWorkTable{
	Table:     "library.work",
	ID:        "id",
	Title:     "title",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

func (t LibraryWorkTable) Columns() []string {
	return []string{t.ID, t.Title, t.CreatedAt, t.UpdatedAt}
}
