package schema

// LibraryBookmarkTable represents the 'library.bookmark' table
type LibraryBookmarkTable struct {
	Table            string
	ID               string
	WorkID           string
	ChapterReference string
	CreatedAt        string
	UpdatedAt        string
}

// LibraryBookmark is the schema definition for library.bookmark
var LibraryBookmark = LibraryBookmarkTable{
	Table:            "library.bookmark",
	ID:               "id",
	WorkID:           "workid",
	ChapterReference: "chapterreference",
	CreatedAt:        "createdat",
	UpdatedAt:        "updatedat",
}
