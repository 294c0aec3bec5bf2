// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package work_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/taibuivan/ranoberead/internal/core/chapter"
	"github.com/taibuivan/ranoberead/internal/core/work"
	"github.com/taibuivan/ranoberead/internal/platform/apperr"
)

// memoryStore backs both the work repository and the chapter summaries.
type memoryStore struct {
	mu        sync.Mutex
	works     map[int64]*work.Work
	summaries map[int64][]chapter.Summary
	nextID    int64

	listCalls   int
	detailCalls int

	// afterSummaries runs once the summaries are read, outside the lock.
	afterSummaries func()
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		works:     map[int64]*work.Work{},
		summaries: map[int64][]chapter.Summary{},
	}
}

func (store *memoryStore) addChapter(workID int64, summary chapter.Summary) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.summaries[workID] = append(store.summaries[workID], summary)
}

func (store *memoryStore) List(context.Context) ([]work.ListItem, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.listCalls++

	items := []work.ListItem{}
	for _, stored := range store.works {
		items = append(items, work.ListItem{ID: stored.ID, Title: stored.Title, ChapterCount: len(store.summaries[stored.ID])})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (store *memoryStore) FindByID(_ context.Context, id int64) (*work.Work, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.detailCalls++

	stored, found := store.works[id]
	if !found {
		return nil, apperr.NotFound("Work")
	}
	copied := *stored
	return &copied, nil
}

func (store *memoryStore) Create(_ context.Context, title string) (*work.Work, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.nextID++
	now := time.Now()
	stored := &work.Work{ID: store.nextID, Title: title, CreatedAt: now, UpdatedAt: now}
	store.works[stored.ID] = stored
	copied := *stored
	return &copied, nil
}

func (store *memoryStore) Update(_ context.Context, id int64, title string) (*work.Work, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	stored, found := store.works[id]
	if !found {
		return nil, apperr.NotFound("Work")
	}
	stored.Title = title
	stored.UpdatedAt = time.Now()
	copied := *stored
	return &copied, nil
}

func (store *memoryStore) Delete(_ context.Context, id int64) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, found := store.works[id]; !found {
		return apperr.NotFound("Work")
	}
	delete(store.works, id)
	delete(store.summaries, id)
	return nil
}

func (store *memoryStore) ListSummaries(ctx context.Context, workID int64) ([]chapter.Summary, error) {
	store.mu.Lock()
	if _, found := store.works[workID]; !found {
		store.mu.Unlock()
		return nil, apperr.NotFound("Work")
	}
	summaries := append([]chapter.Summary{}, store.summaries[workID]...)
	hook := store.afterSummaries
	store.mu.Unlock()

	if hook != nil {
		hook()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return summaries, nil
}

// memoryCache is a map-backed [work.Cache] with per-projection generations.
type memoryCache struct {
	mu                sync.Mutex
	list              []work.ListItem
	hasList           bool
	details           map[int64]*work.Detail
	listGeneration    int64
	detailGenerations map[int64]int64
	invalidated       []int64
}

func newMemoryCache() *memoryCache {
	return &memoryCache{details: map[int64]*work.Detail{}, detailGenerations: map[int64]int64{}}
}

func (cache *memoryCache) GetList(context.Context) ([]work.ListItem, bool) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	return cache.list, cache.hasList
}

func (cache *memoryCache) ListGeneration(context.Context) int64 {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	return cache.listGeneration
}

func (cache *memoryCache) SetList(_ context.Context, items []work.ListItem, generation int64) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	if generation != cache.listGeneration {
		return
	}
	cache.list, cache.hasList = items, true
}

func (cache *memoryCache) GetDetail(_ context.Context, id int64) (*work.Detail, bool) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	detail, found := cache.details[id]
	return detail, found
}

func (cache *memoryCache) DetailGeneration(_ context.Context, id int64) int64 {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	return cache.detailGenerations[id]
}

func (cache *memoryCache) SetDetail(_ context.Context, detail *work.Detail, generation int64) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	if generation != cache.detailGenerations[detail.ID] {
		return
	}
	cache.details[detail.ID] = detail
}

func (cache *memoryCache) InvalidateWork(_ context.Context, id int64) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	cache.list, cache.hasList = nil, false
	delete(cache.details, id)
	cache.listGeneration++
	cache.detailGenerations[id]++
	cache.invalidated = append(cache.invalidated, id)
}
