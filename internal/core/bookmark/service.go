// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package bookmark keeps one reading position per work.

A bookmark references a chapter by its external id and is presented joined
with the work title and chapter title.
*/
package bookmark

import (
	"context"
	"log/slog"

	"github.com/taibuivan/ranoberead/internal/platform/ctxutil"
	"github.com/taibuivan/ranoberead/internal/platform/metrics"
	"github.com/taibuivan/ranoberead/internal/platform/validate"
)

// # Service Layer

// Service orchestrates the business logic for bookmarks.
type Service struct {
	bookmarkRepo BookmarkRepository
	logger       *slog.Logger
}

// NewService constructs a new [Service].
func NewService(bookmarkRepo BookmarkRepository, logger *slog.Logger) *Service {
	return &Service{bookmarkRepo: bookmarkRepo, logger: logger}
}

// ListBookmarks returns every resolvable bookmark, most recently set first.
func (service *Service) ListBookmarks(context context.Context) ([]View, error) {
	return service.bookmarkRepo.List(context)
}

// GetBookmark returns the bookmark of one work.
func (service *Service) GetBookmark(context context.Context, workID int64) (*View, error) {
	return service.bookmarkRepo.FindByWork(context, workID)
}

/*
SetBookmark creates the work's bookmark or moves it to another chapter.

Parameters:
  - context: context.Context
  - input: SetInput

Returns:
  - *View: The resolved bookmark
  - error: ValidationError for missing fields or an unresolvable reference,
    NotFound("Work") for an unknown work
*/
func (service *Service) SetBookmark(context context.Context, input SetInput) (*View, error) {

	validator := &validate.Validator{}
	validator.Positive(FieldWorkID, input.WorkID)
	validator.Present(FieldChapterReference, input.ChapterReference != nil)
	validator.Int32(FieldChapterReference, input.ChapterReference)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	view, err := service.bookmarkRepo.Set(context, input.WorkID, *input.ChapterReference)
	if err != nil {
		return nil, err
	}

	metrics.BookmarkSetsTotal.Inc()

	ctxutil.LoggerOr(context, service.logger).Info("bookmark_set",
		slog.Int64("bookmark_id", view.ID),
		slog.Int64("work_id", view.WorkID),
		slog.Int("chapter_reference", view.ChapterReference),
	)

	return view, nil
}
