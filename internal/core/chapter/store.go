// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

import "context"

// # Chapter Data Access

// ChapterRepository defines the data access contract for chapters.
type ChapterRepository interface {

	/*
		Upsert inserts or updates the chapter identified by (WorkID, ExternalChapterID)
		in a single statement.

		Parameters:
		  - context: context.Context
		  - input: UpsertInput (nil fields keep stored values)

		Returns:
		  - *Chapter: The stored row after the write
		  - bool: true if the row was inserted, false if it was updated
		  - error: NotFound("Work") for an unknown work, ValidationError when a
		    new chapter lacks origin_sequence_number
	*/
	Upsert(context context.Context, input UpsertInput) (*Chapter, bool, error)

	/*
		FindView returns one chapter with only the requested language's body loaded.

		Parameters:
		  - context: context.Context
		  - workID: int64
		  - externalChapterID: int
		  - language: Language

		Returns:
		  - *View: Titles plus the selected content (possibly nil)
		  - error: NotFound("Chapter") if the key is unknown
	*/
	FindView(context context.Context, workID int64, externalChapterID int, language Language) (*View, error)

	/*
		UpdateTranslation overwrites the supplied Russian fields.

		Parameters:
		  - context: context.Context
		  - workID: int64
		  - externalChapterID: int
		  - patch: TranslationPatch

		Returns:
		  - *Chapter: The stored row after the write
		  - error: NotFound("Chapter") if the key is unknown
	*/
	UpdateTranslation(context context.Context, workID int64, externalChapterID int, patch TranslationPatch) (*Chapter, error)

	/*
		ListSummaries returns the chapters of a work with content previews,
		ordered by origin sequence number then id.

		Parameters:
		  - context: context.Context
		  - workID: int64

		Returns:
		  - []Summary: Possibly empty, never nil
		  - error: NotFound("Work") if the work does not exist
	*/
	ListSummaries(context context.Context, workID int64) ([]Summary, error)
}

// WorkCacheInvalidator drops cached work projections after chapter writes.
type WorkCacheInvalidator interface {
	InvalidateWork(context context.Context, workID int64)
}

type noopInvalidator struct{}

func (noopInvalidator) InvalidateWork(context.Context, int64) {}
