// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ranoberead/internal/core/chapter"
	"github.com/taibuivan/ranoberead/internal/platform/postgres/pgtest"
)

func insertWork(t *testing.T, pool *pgxpool.Pool, title string) int64 {
	t.Helper()
	var id int64
	require.NoError(t, pool.QueryRow(context.Background(),
		"INSERT INTO library.work (title) VALUES ($1) RETURNING id", title).Scan(&id))
	return id
}

func TestChapterRepository_UpsertIsIdempotent(t *testing.T) {
	pool := pgtest.New(t)
	repository := chapter.NewChapterRepository(pool)
	ctx := context.Background()
	workID := insertWork(t, pool, "Title A")

	input := chapter.UpsertInput{WorkID: workID, ExternalChapterID: ptr(7), OriginSequenceNumber: ptr(1), ContentEn: ptr("A")}

	first, created, err := repository.Upsert(ctx, input)
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := repository.Upsert(ctx, input)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	summaries, err := repository.ListSummaries(ctx, workID)
	require.NoError(t, err)
	assert.Len(t, summaries, 1)
}

func TestChapterRepository_PartialUpsert(t *testing.T) {
	pool := pgtest.New(t)
	repository := chapter.NewChapterRepository(pool)
	ctx := context.Background()
	workID := insertWork(t, pool, "Title A")

	_, _, err := repository.Upsert(ctx, chapter.UpsertInput{WorkID: workID, ExternalChapterID: ptr(7), OriginSequenceNumber: ptr(1), ContentEn: ptr("A")})
	require.NoError(t, err)

	t.Run("with sequence number", func(t *testing.T) {
		updated, created, err := repository.Upsert(ctx, chapter.UpsertInput{WorkID: workID, ExternalChapterID: ptr(7), OriginSequenceNumber: ptr(2), TitleEn: ptr("T")})
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, "A", *updated.ContentEn)
		assert.Equal(t, "T", *updated.TitleEn)
		assert.Equal(t, 2, updated.OriginSequenceNumber)
	})

	t.Run("without sequence number", func(t *testing.T) {
		updated, created, err := repository.Upsert(ctx, chapter.UpsertInput{WorkID: workID, ExternalChapterID: ptr(7), ContentRu: ptr("Б")})
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, "A", *updated.ContentEn)
		assert.Equal(t, "Б", *updated.ContentRu)
		assert.Equal(t, 2, updated.OriginSequenceNumber)
	})

	t.Run("create without sequence number", func(t *testing.T) {
		_, _, err := repository.Upsert(ctx, chapter.UpsertInput{WorkID: workID, ExternalChapterID: ptr(8)})
		assert.Equal(t, "VALIDATION_ERROR", errorCode(t, err))
	})

	t.Run("unknown work", func(t *testing.T) {
		_, _, err := repository.Upsert(ctx, chapter.UpsertInput{WorkID: workID + 100, ExternalChapterID: ptr(1), OriginSequenceNumber: ptr(1)})
		assert.Equal(t, "NOT_FOUND", errorCode(t, err))
	})
}

func TestChapterRepository_ConcurrentUpsertKeepsOneRow(t *testing.T) {
	pool := pgtest.New(t)
	repository := chapter.NewChapterRepository(pool)
	ctx := context.Background()
	workID := insertWork(t, pool, "Title A")

	const writers = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
		errs    []error
	)

	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, wasCreated, err := repository.Upsert(ctx, chapter.UpsertInput{
				WorkID: workID, ExternalChapterID: ptr(42), OriginSequenceNumber: ptr(1), ContentEn: ptr("same"),
			})
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
			}
			if wasCreated {
				created++
			}
		}()
	}
	wg.Wait()

	require.Empty(t, errs)
	assert.Equal(t, 1, created)

	var count int
	require.NoError(t, pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM library.chapter WHERE workid = $1 AND externalchapterid = 42", workID).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestChapterRepository_FindViewLoadsOneLanguage(t *testing.T) {
	pool := pgtest.New(t)
	repository := chapter.NewChapterRepository(pool)
	ctx := context.Background()
	workID := insertWork(t, pool, "Title A")

	_, _, err := repository.Upsert(ctx, chapter.UpsertInput{
		WorkID: workID, ExternalChapterID: ptr(100), OriginSequenceNumber: ptr(1),
		ContentEn: ptr("Hello world"), ContentRu: ptr("Привет"),
	})
	require.NoError(t, err)

	view, err := repository.FindView(ctx, workID, 100, chapter.LanguageRu)
	require.NoError(t, err)
	assert.Equal(t, "Привет", *view.ContentRu)
	assert.Nil(t, view.ContentEn)

	_, err = repository.FindView(ctx, workID, 101, chapter.LanguageEn)
	assert.Equal(t, "NOT_FOUND", errorCode(t, err))
}

func TestChapterRepository_ListSummariesPreviewsAndOrder(t *testing.T) {
	pool := pgtest.New(t)
	repository := chapter.NewChapterRepository(pool)
	ctx := context.Background()
	workID := insertWork(t, pool, "Title A")
	emptyWorkID := insertWork(t, pool, "Empty")

	for _, input := range []chapter.UpsertInput{
		{WorkID: workID, ExternalChapterID: ptr(2), OriginSequenceNumber: ptr(2), ContentEn: ptr(strings.Repeat("x", 250))},
		{WorkID: workID, ExternalChapterID: ptr(1), OriginSequenceNumber: ptr(1), ContentEn: ptr(strings.Repeat("y", 50))},
		{WorkID: workID, ExternalChapterID: ptr(3), OriginSequenceNumber: ptr(2)},
	} {
		_, _, err := repository.Upsert(ctx, input)
		require.NoError(t, err)
	}

	summaries, err := repository.ListSummaries(ctx, workID)
	require.NoError(t, err)
	require.Len(t, summaries, 3)

	assert.Equal(t, 1, summaries[0].ExternalChapterID)
	assert.Equal(t, strings.Repeat("y", 50), *summaries[0].ContentPreviewEn)
	assert.Equal(t, 2, summaries[1].ExternalChapterID)
	assert.Equal(t, strings.Repeat("x", 100)+"...", *summaries[1].ContentPreviewEn)
	assert.Equal(t, 3, summaries[2].ExternalChapterID)
	assert.Nil(t, summaries[2].ContentPreviewEn)
	assert.Nil(t, summaries[2].ContentPreviewRu)

	empty, err := repository.ListSummaries(ctx, emptyWorkID)
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = repository.ListSummaries(ctx, emptyWorkID+100)
	assert.Equal(t, "NOT_FOUND", errorCode(t, err))
}

func TestChapterRepository_UpdateTranslation(t *testing.T) {
	pool := pgtest.New(t)
	repository := chapter.NewChapterRepository(pool)
	ctx := context.Background()
	workID := insertWork(t, pool, "Title A")

	_, _, err := repository.Upsert(ctx, chapter.UpsertInput{WorkID: workID, ExternalChapterID: ptr(1), OriginSequenceNumber: ptr(1), TitleRu: ptr("Старое")})
	require.NoError(t, err)

	updated, err := repository.UpdateTranslation(ctx, workID, 1, chapter.TranslationPatch{ContentRu: ptr("Текст")})
	require.NoError(t, err)
	assert.Equal(t, "Текст", *updated.ContentRu)
	assert.Equal(t, "Старое", *updated.TitleRu)

	_, err = repository.UpdateTranslation(ctx, workID, 2, chapter.TranslationPatch{ContentRu: ptr("x")})
	assert.Equal(t, "NOT_FOUND", errorCode(t, err))
}
