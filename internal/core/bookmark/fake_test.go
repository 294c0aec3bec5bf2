// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package bookmark_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/taibuivan/ranoberead/internal/core/bookmark"
	"github.com/taibuivan/ranoberead/internal/platform/apperr"
)

type storedBookmark struct {
	id               int64
	chapterReference int
	updatedAt        time.Time
}

// memoryRepository resolves bookmarks against an in-memory catalogue.
type memoryRepository struct {
	mu        sync.Mutex
	works     map[int64]string
	chapters  map[int64]map[int]string // work -> external id -> title
	bookmarks map[int64]*storedBookmark
	nextID    int64
	clock     time.Time
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		works:     map[int64]string{},
		chapters:  map[int64]map[int]string{},
		bookmarks: map[int64]*storedBookmark{},
		clock:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (repository *memoryRepository) addChapter(workID int64, workTitle string, externalID int, chapterTitle string) {
	repository.works[workID] = workTitle
	if repository.chapters[workID] == nil {
		repository.chapters[workID] = map[int]string{}
	}
	repository.chapters[workID][externalID] = chapterTitle
}

// resolve mirrors the INNER JOIN of the PostgreSQL store.
func (repository *memoryRepository) resolve(workID int64, stored *storedBookmark) (*bookmark.View, bool) {
	title, found := repository.chapters[workID][stored.chapterReference]
	if !found {
		return nil, false
	}
	return &bookmark.View{
		ID:               stored.id,
		WorkID:           workID,
		ChapterReference: stored.chapterReference,
		WorkTitle:        repository.works[workID],
		ChapterTitle:     &title,
		UpdatedAt:        stored.updatedAt,
	}, true
}

func (repository *memoryRepository) List(context.Context) ([]bookmark.View, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	views := []bookmark.View{}
	for workID, stored := range repository.bookmarks {
		if view, ok := repository.resolve(workID, stored); ok {
			views = append(views, *view)
		}
	}
	sort.Slice(views, func(i, j int) bool { return views[i].UpdatedAt.After(views[j].UpdatedAt) })
	return views, nil
}

func (repository *memoryRepository) FindByWork(_ context.Context, workID int64) (*bookmark.View, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored, found := repository.bookmarks[workID]
	if !found {
		return nil, apperr.NotFound("Bookmark")
	}
	view, ok := repository.resolve(workID, stored)
	if !ok {
		return nil, apperr.NotFound("Bookmark")
	}
	return view, nil
}

func (repository *memoryRepository) Set(_ context.Context, workID int64, chapterReference int) (*bookmark.View, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, found := repository.works[workID]; !found {
		return nil, apperr.NotFound("Work")
	}

	repository.clock = repository.clock.Add(time.Second)
	candidate := &storedBookmark{chapterReference: chapterReference, updatedAt: repository.clock}
	if existing, found := repository.bookmarks[workID]; found {
		candidate.id = existing.id
	} else {
		candidate.id = repository.nextID + 1
	}

	view, ok := repository.resolve(workID, candidate)
	if !ok {
		return nil, apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   bookmark.FieldChapterReference,
			Message: "No chapter with this external id in the work",
		})
	}

	if candidate.id > repository.nextID {
		repository.nextID = candidate.id
	}
	repository.bookmarks[workID] = candidate
	return view, nil
}
