// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package work

import (
	"time"

	"github.com/taibuivan/ranoberead/internal/core/chapter"
)

// Work is a serialized novel: the parent of chapters and of at most one bookmark.
type Work struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListItem is one row of the work listing.
type ListItem struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	ChapterCount int    `json:"chapter_count"`
}

// Detail is a work with its ordered chapter summaries.
//
// ChapterCount always equals len(Chapters).
type Detail struct {
	ID           int64             `json:"id"`
	Title        string            `json:"title"`
	ChapterCount int               `json:"chapter_count"`
	Chapters     []chapter.Summary `json:"chapters"`
}

// MaxTitleLength bounds work titles, in characters.
const MaxTitleLength = 255

// Global field names for validation
const (
	FieldTitle = "title"
)
