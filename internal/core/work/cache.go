// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package work

import "context"

// Cache holds the read projections of works.
//
// Implementations never return errors: a failing cache behaves as a miss and
// the database stays the source of truth.
//
// # Generations
//
// Every projection has a generation counter that [Cache.InvalidateWork] bumps.
// A loader reads the generation before it queries the database and passes it
// back to SetList or SetDetail, which store nothing when the counter moved in
// between. A negative generation means it could not be read and the write is
// skipped.
type Cache interface {
	GetList(context context.Context) ([]ListItem, bool)
	ListGeneration(context context.Context) int64
	SetList(context context.Context, items []ListItem, generation int64)

	GetDetail(context context.Context, id int64) (*Detail, bool)
	DetailGeneration(context context.Context, id int64) int64
	SetDetail(context context.Context, detail *Detail, generation int64)

	// InvalidateWork drops the listing and the detail of one work and bumps
	// both generations.
	InvalidateWork(context context.Context, id int64)
}

// NopCache is the [Cache] used when no Redis is configured.
type NopCache struct{}

func (NopCache) GetList(context.Context) ([]ListItem, bool)       { return nil, false }
func (NopCache) ListGeneration(context.Context) int64             { return 0 }
func (NopCache) SetList(context.Context, []ListItem, int64)       {}
func (NopCache) GetDetail(context.Context, int64) (*Detail, bool) { return nil, false }
func (NopCache) DetailGeneration(context.Context, int64) int64    { return 0 }
func (NopCache) SetDetail(context.Context, *Detail, int64)        {}
func (NopCache) InvalidateWork(context.Context, int64)            {}
