package schema

// LibraryChapterTable represents the 'library.chapter' table
type LibraryChapterTable struct {
	Table                string
	ID                   string
	WorkID               string
	ExternalChapterID    string
	OriginSequenceNumber string
	TitleRu              string
	TitleEn              string
	ContentRu            string
	ContentEn            string
	CreatedAt            string
	UpdatedAt            string
}

// LibraryChapter is the schema definition for library.chapter
var LibraryChapter = LibraryChapterTable{
	Table:                "library.chapter",
	ID:                   "id",
	WorkID:               "workid",
	ExternalChapterID:    "externalchapterid",
	OriginSequenceNumber: "originsequencenumber",
	TitleRu:              "titleru",
	TitleEn:              "titleen",
	ContentRu:            "contentru",
	ContentEn:            "contenten",
	CreatedAt:            "createdat",
	UpdatedAt:            "updatedat",
}

func (t LibraryChapterTable) Columns() []string {
	return []string{
		t.ID, t.WorkID, t.ExternalChapterID, t.OriginSequenceNumber,
		t.TitleRu, t.TitleEn, t.ContentRu, t.ContentEn, t.CreatedAt, t.UpdatedAt,
	}
}
