// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package work manages works and their aggregate projections.

The listing carries chapter counts and the detail view carries ordered chapter
summaries with previews. Both projections are served through an optional
read-through [Cache]; every write to a work, or to one of its chapters,
invalidates that work's entries.
*/
package work

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"golang.org/x/sync/singleflight"
	"golang.org/x/text/unicode/norm"

	"github.com/taibuivan/ranoberead/internal/platform/constants"
	"github.com/taibuivan/ranoberead/internal/platform/ctxutil"
	"github.com/taibuivan/ranoberead/internal/platform/validate"
)

// # Service Layer

// Service orchestrates the business logic for works.
type Service struct {
	workRepo  WorkRepository
	summaries ChapterSummaries
	cache     Cache
	logger    *slog.Logger

	// detailLoads collapses concurrent cache misses for the same work.
	detailLoads singleflight.Group
}

// NewService constructs a new [Service]. A nil cache disables caching.
func NewService(workRepo WorkRepository, summaries ChapterSummaries, cache Cache, logger *slog.Logger) *Service {
	if cache == nil {
		cache = NopCache{}
	}
	return &Service{
		workRepo:  workRepo,
		summaries: summaries,
		cache:     cache,
		logger:    logger,
	}
}

// # Projections

// ListWorks returns every work with its chapter count, ordered by id.
func (service *Service) ListWorks(context context.Context) ([]ListItem, error) {
	if items, ok := service.cache.GetList(context); ok {
		return items, nil
	}

	generation := service.cache.ListGeneration(context)
	items, err := service.workRepo.List(context)
	if err != nil {
		return nil, err
	}

	service.cache.SetList(context, items, generation)
	return items, nil
}

/*
GetWorkDetail returns a work with its ordered chapter summaries.

Concurrent misses for the same work share one load. The load runs detached
from the caller's cancellation, so a caller that goes away only abandons its
own wait.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - *Detail: ChapterCount is the number of summaries returned
  - error: NotFound("Work") if missing
*/
func (service *Service) GetWorkDetail(context context.Context, id int64) (*Detail, error) {
	if detail, ok := service.cache.GetDetail(context, id); ok {
		return detail, nil
	}

	results := service.detailLoads.DoChan(strconv.FormatInt(id, 10), func() (any, error) {
		loadContext, cancel := detachLoad(context)
		defer cancel()
		return service.loadDetail(loadContext, id)
	})

	select {
	case <-context.Done():
		return nil, context.Err()
	case result := <-results:
		if result.Err != nil {
			return nil, result.Err
		}
		return result.Val.(*Detail), nil
	}
}

// loadDetail builds the detail projection from the database and caches it
// unless the work was invalidated while loading.
func (service *Service) loadDetail(context context.Context, id int64) (*Detail, error) {
	generation := service.cache.DetailGeneration(context, id)

	work, err := service.workRepo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	// A work deleted in between surfaces as NotFound from the listing
	summaries, err := service.summaries.ListSummaries(context, id)
	if err != nil {
		return nil, err
	}

	detail := &Detail{
		ID:           work.ID,
		Title:        work.Title,
		ChapterCount: len(summaries),
		Chapters:     summaries,
	}
	service.cache.SetDetail(context, detail, generation)
	return detail, nil
}

// detachLoad keeps the values of parent but not its cancellation.
func detachLoad(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(parent), constants.GlobalRequestTimeout)
}

// # Mutations

// CreateWork validates and stores a new work.
func (service *Service) CreateWork(context context.Context, title string) (*Work, error) {
	title, err := validateTitle(title)
	if err != nil {
		return nil, err
	}

	work, err := service.workRepo.Create(context, title)
	if err != nil {
		return nil, err
	}

	service.cache.InvalidateWork(context, work.ID)

	ctxutil.LoggerOr(context, service.logger).Info("work_created",
		slog.Int64("work_id", work.ID),
		slog.String("title", work.Title),
	)

	return work, nil
}

// UpdateWork renames an existing work.
func (service *Service) UpdateWork(context context.Context, id int64, title string) (*Work, error) {
	title, err := validateTitle(title)
	if err != nil {
		return nil, err
	}

	work, err := service.workRepo.Update(context, id, title)
	if err != nil {
		return nil, err
	}

	service.cache.InvalidateWork(context, id)

	ctxutil.LoggerOr(context, service.logger).Info("work_updated",
		slog.Int64("work_id", id),
		slog.String("title", work.Title),
	)

	return work, nil
}

// DeleteWork removes a work together with its chapters and bookmark.
func (service *Service) DeleteWork(context context.Context, id int64) error {
	if err := service.workRepo.Delete(context, id); err != nil {
		return err
	}

	service.cache.InvalidateWork(context, id)

	ctxutil.LoggerOr(context, service.logger).Info("work_deleted", slog.Int64("work_id", id))
	return nil
}

// validateTitle trims and NFC-normalizes the title, then enforces presence and length.
//
// Scraped titles often arrive decomposed (и + U+0306 instead of й); composing
// them keeps the same title from being stored in two byte forms.
func validateTitle(title string) (string, error) {
	title = norm.NFC.String(strings.TrimSpace(title))

	validator := &validate.Validator{}
	validator.Required(FieldTitle, title)
	validator.MaxLen(FieldTitle, title, MaxTitleLength)

	return title, validator.Err()
}
