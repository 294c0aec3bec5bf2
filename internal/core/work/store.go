// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package work

import (
	"context"

	"github.com/taibuivan/ranoberead/internal/core/chapter"
)

// # Work Data Access

// WorkRepository defines the data access contract for works.
type WorkRepository interface {

	/*
		List returns every work with its chapter count, ordered by id.

		Returns:
		  - []ListItem: Works without chapters report 0
		  - error: Storage failures
	*/
	List(context context.Context) ([]ListItem, error)

	/*
		FindByID returns the work with the given ID.

		Returns:
		  - *Work: The stored work
		  - error: NotFound("Work") if missing
	*/
	FindByID(context context.Context, id int64) (*Work, error)

	/*
		Create persists a new work.

		Parameters:
		  - context: context.Context
		  - title: string (already validated)

		Returns:
		  - *Work: The stored row with generated id and timestamps
		  - error: Storage failures
	*/
	Create(context context.Context, title string) (*Work, error)

	// Update renames a work. Returns NotFound("Work") if missing.
	Update(context context.Context, id int64, title string) (*Work, error)

	// Delete removes a work; chapters and bookmark go with it via ON DELETE CASCADE.
	Delete(context context.Context, id int64) error
}

// ChapterSummaries lists the summaries shown in a work's detail projection.
type ChapterSummaries interface {
	ListSummaries(context context.Context, workID int64) ([]chapter.Summary, error)
}
