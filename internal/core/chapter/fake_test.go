// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter_test

import (
	"context"
	"sort"
	"sync"

	"github.com/taibuivan/ranoberead/internal/core/chapter"
	"github.com/taibuivan/ranoberead/internal/platform/apperr"
	"github.com/taibuivan/ranoberead/internal/platform/validate"
)

type chapterKey struct {
	workID            int64
	externalChapterID int
}

// memoryRepository mirrors the PostgreSQL semantics in memory.
type memoryRepository struct {
	mu       sync.Mutex
	works    map[int64]bool
	chapters map[chapterKey]*chapter.Chapter
	nextID   int64
}

func newMemoryRepository(workIDs ...int64) *memoryRepository {
	repository := &memoryRepository{
		works:    map[int64]bool{},
		chapters: map[chapterKey]*chapter.Chapter{},
	}
	for _, id := range workIDs {
		repository.works[id] = true
	}
	return repository
}

func (repository *memoryRepository) Upsert(_ context.Context, input chapter.UpsertInput) (*chapter.Chapter, bool, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	key := chapterKey{input.WorkID, *input.ExternalChapterID}
	existing, found := repository.chapters[key]

	if !found {
		if input.OriginSequenceNumber == nil {
			return nil, false, validate.RequiredError(chapter.FieldOriginSequenceNumber, "Required when creating a chapter")
		}
		if !repository.works[input.WorkID] {
			return nil, false, apperr.NotFound("Work")
		}
		repository.nextID++
		existing = &chapter.Chapter{
			ID:                repository.nextID,
			WorkID:            input.WorkID,
			ExternalChapterID: *input.ExternalChapterID,
		}
		repository.chapters[key] = existing
	}

	if input.OriginSequenceNumber != nil {
		existing.OriginSequenceNumber = *input.OriginSequenceNumber
	}
	overwrite(&existing.TitleRu, input.TitleRu)
	overwrite(&existing.TitleEn, input.TitleEn)
	overwrite(&existing.ContentRu, input.ContentRu)
	overwrite(&existing.ContentEn, input.ContentEn)

	copied := *existing
	return &copied, !found, nil
}

func (repository *memoryRepository) FindView(_ context.Context, workID int64, externalChapterID int, language chapter.Language) (*chapter.View, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored, found := repository.chapters[chapterKey{workID, externalChapterID}]
	if !found {
		return nil, apperr.NotFound("Chapter")
	}

	view := &chapter.View{
		ID:                   stored.ID,
		WorkID:               stored.WorkID,
		ExternalChapterID:    stored.ExternalChapterID,
		OriginSequenceNumber: stored.OriginSequenceNumber,
		TitleRu:              stored.TitleRu,
		TitleEn:              stored.TitleEn,
		Language:             language,
	}
	if language == chapter.LanguageRu {
		view.ContentRu = stored.ContentRu
	} else {
		view.ContentEn = stored.ContentEn
	}
	return view, nil
}

func (repository *memoryRepository) UpdateTranslation(_ context.Context, workID int64, externalChapterID int, patch chapter.TranslationPatch) (*chapter.Chapter, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored, found := repository.chapters[chapterKey{workID, externalChapterID}]
	if !found {
		return nil, apperr.NotFound("Chapter")
	}
	overwrite(&stored.ContentRu, patch.ContentRu)
	overwrite(&stored.TitleRu, patch.TitleRu)

	copied := *stored
	return &copied, nil
}

func (repository *memoryRepository) ListSummaries(_ context.Context, workID int64) ([]chapter.Summary, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if !repository.works[workID] {
		return nil, apperr.NotFound("Work")
	}

	summaries := []chapter.Summary{}
	for key, stored := range repository.chapters {
		if key.workID != workID {
			continue
		}
		summaries = append(summaries, chapter.Summary{
			ID:                   stored.ID,
			ExternalChapterID:    stored.ExternalChapterID,
			OriginSequenceNumber: stored.OriginSequenceNumber,
			TitleRu:              stored.TitleRu,
			TitleEn:              stored.TitleEn,
			ContentPreviewRu:     chapter.Preview(stored.ContentRu),
			ContentPreviewEn:     chapter.Preview(stored.ContentEn),
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].OriginSequenceNumber != summaries[j].OriginSequenceNumber {
			return summaries[i].OriginSequenceNumber < summaries[j].OriginSequenceNumber
		}
		return summaries[i].ID < summaries[j].ID
	})
	return summaries, nil
}

func overwrite(target **string, value *string) {
	if value != nil {
		copied := *value
		*target = &copied
	}
}

// recordingInvalidator remembers which works were invalidated.
type recordingInvalidator struct {
	mu      sync.Mutex
	workIDs []int64
}

func (invalidator *recordingInvalidator) InvalidateWork(_ context.Context, workID int64) {
	invalidator.mu.Lock()
	defer invalidator.mu.Unlock()
	invalidator.workIDs = append(invalidator.workIDs, workID)
}
