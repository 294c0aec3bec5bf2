// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package bookmark

import "context"

// # Bookmark Data Access

// BookmarkRepository defines the data access contract for bookmarks.
type BookmarkRepository interface {

	/*
		List returns every bookmark whose chapter reference resolves, most
		recently set first. Bookmarks pointing at a missing chapter are omitted.

		Returns:
		  - []View: Possibly empty, never nil
		  - error: Storage failures
	*/
	List(context context.Context) ([]View, error)

	/*
		FindByWork returns the bookmark of one work.

		Returns:
		  - *View: The resolved bookmark
		  - error: NotFound("Bookmark") if there is none or it does not resolve
	*/
	FindByWork(context context.Context, workID int64) (*View, error)

	/*
		Set creates or replaces the bookmark of a work in one transaction.

		Parameters:
		  - context: context.Context
		  - workID: int64
		  - chapterReference: int (external chapter id within the work)

		Returns:
		  - *View: The resolved bookmark
		  - error: NotFound("Work") for an unknown work, ValidationError when
		    the reference matches no chapter (nothing is written)
	*/
	Set(context context.Context, workID int64, chapterReference int) (*View, error)
}
