// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package bookmark

import "time"

// View is a bookmark joined with its work and the chapter it points at.
//
// ChapterReference holds the chapter's external id within the work. ChapterTitle
// is the English title, falling back to the Russian one.
type View struct {
	ID                   int64     `json:"id"`
	WorkID               int64     `json:"work_id"`
	ChapterReference     int       `json:"chapter_reference"`
	WorkTitle            string    `json:"work_title"`
	ChapterTitle         *string   `json:"chapter_title"`
	OriginSequenceNumber int       `json:"origin_sequence_number"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// SetInput is the payload of a bookmark write.
type SetInput struct {
	WorkID           int64 `json:"work_id"`
	ChapterReference *int  `json:"chapter_reference"`
}

// Global field names for validation
const (
	FieldWorkID           = "work_id"
	FieldChapterReference = "chapter_reference"
)
