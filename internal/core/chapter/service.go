// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

import (
	"context"
	"log/slog"

	"github.com/taibuivan/ranoberead/internal/platform/apperr"
	"github.com/taibuivan/ranoberead/internal/platform/ctxutil"
	"github.com/taibuivan/ranoberead/internal/platform/metrics"
	"github.com/taibuivan/ranoberead/internal/platform/validate"
)

// # Service Layer

// Service orchestrates the business logic for chapters.
type Service struct {
	chapterRepo ChapterRepository
	workCache   WorkCacheInvalidator
	logger      *slog.Logger
}

// NewService constructs a new [Service]. A nil workCache disables invalidation.
func NewService(chapterRepo ChapterRepository, workCache WorkCacheInvalidator, logger *slog.Logger) *Service {
	if workCache == nil {
		workCache = noopInvalidator{}
	}
	return &Service{
		chapterRepo: chapterRepo,
		workCache:   workCache,
		logger:      logger,
	}
}

// # Ingestion

/*
UpsertChapter creates or updates a chapter by (work, external chapter id).

Description: Repeating the same call leaves exactly one row. Supplied fields
overwrite, omitted fields are kept. A new chapter needs an origin sequence
number; titles and bodies may arrive later.

Parameters:
  - context: context.Context
  - input: UpsertInput

Returns:
  - *Chapter: Stored row
  - bool: true when the chapter was created
  - error: ValidationError, NotFound("Work"), or storage errors
*/
func (service *Service) UpsertChapter(context context.Context, input UpsertInput) (*Chapter, bool, error) {

	validator := &validate.Validator{}
	validator.Positive(FieldWorkID, input.WorkID)
	validator.Present(FieldExternalChapterID, input.ExternalChapterID != nil)
	validator.Int32(FieldExternalChapterID, input.ExternalChapterID)
	validator.Int32(FieldOriginSequenceNumber, input.OriginSequenceNumber)
	if err := validator.Err(); err != nil {
		return nil, false, err
	}

	chapter, created, err := service.chapterRepo.Upsert(context, input)
	if err != nil {
		return nil, false, err
	}

	metrics.RecordChapterUpsert(created)
	service.workCache.InvalidateWork(context, chapter.WorkID)

	ctxutil.LoggerOr(context, service.logger).Info("chapter_upserted",
		slog.Int64("chapter_id", chapter.ID),
		slog.Int64("work_id", chapter.WorkID),
		slog.Int("external_chapter_id", chapter.ExternalChapterID),
		slog.Bool("created", created),
	)

	return chapter, created, nil
}

// # Reading

/*
GetChapter returns a chapter in the requested language.

Parameters:
  - context: context.Context
  - workID: int64
  - externalChapterID: int
  - rawLanguage: string ("ru", "en", or empty for the default)

Returns:
  - *View: Titles plus the requested body
  - error: ValidationError for an unknown language, NotFound("Chapter"),
    or ContentUnavailable when the body in that language is empty
*/
func (service *Service) GetChapter(context context.Context, workID int64, externalChapterID int, rawLanguage string) (*View, error) {
	language, err := ParseLanguage(rawLanguage)
	if err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	if err := validator.Int32(FieldExternalChapterID, &externalChapterID).Err(); err != nil {
		return nil, err
	}

	view, err := service.chapterRepo.FindView(context, workID, externalChapterID, language)
	if err != nil {
		return nil, err
	}

	if content := view.Content(); content == nil || *content == "" {
		return nil, apperr.ContentUnavailable(string(language))
	}

	return view, nil
}

// ListChapters returns the ordered summaries of a work's chapters.
func (service *Service) ListChapters(context context.Context, workID int64) ([]Summary, error) {
	return service.chapterRepo.ListSummaries(context, workID)
}

// # Translation

/*
UpdateTranslation stores the Russian title and/or body of a chapter.

Parameters:
  - context: context.Context
  - workID: int64
  - externalChapterID: int
  - patch: TranslationPatch (at least one field)

Returns:
  - *Chapter: Stored row
  - error: ValidationError for an empty patch, NotFound("Chapter")
*/
func (service *Service) UpdateTranslation(context context.Context, workID int64, externalChapterID int, patch TranslationPatch) (*Chapter, error) {

	validator := &validate.Validator{}
	validator.Int32(FieldExternalChapterID, &externalChapterID)
	validator.Custom(FieldContentRu, patch.Empty(), "Provide content_ru or title_ru")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	chapter, err := service.chapterRepo.UpdateTranslation(context, workID, externalChapterID, patch)
	if err != nil {
		return nil, err
	}

	service.workCache.InvalidateWork(context, chapter.WorkID)

	ctxutil.LoggerOr(context, service.logger).Info("chapter_translation_updated",
		slog.Int64("chapter_id", chapter.ID),
		slog.Int64("work_id", chapter.WorkID),
		slog.Bool("content_ru", patch.ContentRu != nil),
		slog.Bool("title_ru", patch.TitleRu != nil),
	)

	return chapter, nil
}
