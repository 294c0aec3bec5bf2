// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ranoberead/internal/core/chapter"
	"github.com/taibuivan/ranoberead/internal/platform/apperr"
)

func newTestService(workIDs ...int64) (*chapter.Service, *recordingInvalidator) {
	invalidator := &recordingInvalidator{}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return chapter.NewService(newMemoryRepository(workIDs...), invalidator, logger), invalidator
}

func errorCode(t *testing.T, err error) string {
	t.Helper()
	appErr := apperr.As(err)
	require.NotNil(t, appErr, "expected *apperr.AppError, got %v", err)
	return appErr.Code
}

func TestService_UpsertChapter_Idempotent(t *testing.T) {
	service, invalidator := newTestService(1)
	ctx := context.Background()
	input := chapter.UpsertInput{
		WorkID:               1,
		ExternalChapterID:    ptr(7),
		OriginSequenceNumber: ptr(1),
		ContentEn:            ptr("hello"),
	}

	first, created, err := service.UpsertChapter(ctx, input)
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := service.UpsertChapter(ctx, input)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	summaries, err := service.ListChapters(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, summaries, 1)
	assert.Equal(t, []int64{1, 1}, invalidator.workIDs)
}

func TestService_UpsertChapter_PartialUpdateKeepsFields(t *testing.T) {
	service, _ := newTestService(1)
	ctx := context.Background()

	_, _, err := service.UpsertChapter(ctx, chapter.UpsertInput{
		WorkID:               1,
		ExternalChapterID:    ptr(7),
		OriginSequenceNumber: ptr(1),
		ContentEn:            ptr("A"),
	})
	require.NoError(t, err)

	updated, created, err := service.UpsertChapter(ctx, chapter.UpsertInput{
		WorkID:            1,
		ExternalChapterID: ptr(7),
		TitleEn:           ptr("T"),
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "A", *updated.ContentEn)
	assert.Equal(t, "T", *updated.TitleEn)
	assert.Equal(t, 1, updated.OriginSequenceNumber)
}

func TestService_UpsertChapter_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    chapter.UpsertInput
		wantCode string
	}{
		{
			name:     "missing work id",
			input:    chapter.UpsertInput{ExternalChapterID: ptr(1), OriginSequenceNumber: ptr(1)},
			wantCode: "VALIDATION_ERROR",
		},
		{
			name:     "missing external chapter id",
			input:    chapter.UpsertInput{WorkID: 1, OriginSequenceNumber: ptr(1)},
			wantCode: "VALIDATION_ERROR",
		},
		{
			name:     "new chapter without sequence number",
			input:    chapter.UpsertInput{WorkID: 1, ExternalChapterID: ptr(9)},
			wantCode: "VALIDATION_ERROR",
		},
		{
			name:     "external chapter id beyond int32",
			input:    chapter.UpsertInput{WorkID: 1, ExternalChapterID: ptr(3000000000), OriginSequenceNumber: ptr(1)},
			wantCode: "VALIDATION_ERROR",
		},
		{
			name:     "sequence number below int32",
			input:    chapter.UpsertInput{WorkID: 1, ExternalChapterID: ptr(1), OriginSequenceNumber: ptr(-3000000000)},
			wantCode: "VALIDATION_ERROR",
		},
		{
			name:     "unknown work",
			input:    chapter.UpsertInput{WorkID: 404, ExternalChapterID: ptr(1), OriginSequenceNumber: ptr(1)},
			wantCode: "NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, invalidator := newTestService(1)

			_, _, err := service.UpsertChapter(context.Background(), tt.input)

			assert.Equal(t, tt.wantCode, errorCode(t, err))
			assert.Empty(t, invalidator.workIDs)
		})
	}
}

func TestService_GetChapter(t *testing.T) {
	service, _ := newTestService(1)
	ctx := context.Background()

	_, _, err := service.UpsertChapter(ctx, chapter.UpsertInput{
		WorkID:               1,
		ExternalChapterID:    ptr(100),
		OriginSequenceNumber: ptr(1),
		TitleEn:              ptr("Ch 1"),
		ContentEn:            ptr("Hello world"),
	})
	require.NoError(t, err)

	t.Run("default language is english", func(t *testing.T) {
		view, err := service.GetChapter(ctx, 1, 100, "")
		require.NoError(t, err)
		assert.Equal(t, chapter.LanguageEn, view.Language)
		assert.Equal(t, "Hello world", *view.ContentEn)
		assert.Nil(t, view.ContentRu)
	})

	t.Run("missing russian content", func(t *testing.T) {
		_, err := service.GetChapter(ctx, 1, 100, "ru")
		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, "CONTENT_UNAVAILABLE", appErr.Code)
		assert.Contains(t, appErr.Message, "ru")
	})

	t.Run("unsupported language", func(t *testing.T) {
		_, err := service.GetChapter(ctx, 1, 100, "fr")
		assert.Equal(t, "VALIDATION_ERROR", errorCode(t, err))
	})

	t.Run("unknown chapter", func(t *testing.T) {
		_, err := service.GetChapter(ctx, 1, 999, "en")
		assert.Equal(t, "NOT_FOUND", errorCode(t, err))
	})

	t.Run("external chapter id beyond int32", func(t *testing.T) {
		_, err := service.GetChapter(ctx, 1, 3000000000, "en")
		assert.Equal(t, "VALIDATION_ERROR", errorCode(t, err))
	})
}

func TestService_UpdateTranslation(t *testing.T) {
	service, invalidator := newTestService(1)
	ctx := context.Background()

	_, _, err := service.UpsertChapter(ctx, chapter.UpsertInput{
		WorkID:               1,
		ExternalChapterID:    ptr(5),
		OriginSequenceNumber: ptr(1),
		ContentEn:            ptr("english"),
	})
	require.NoError(t, err)

	t.Run("stores russian fields", func(t *testing.T) {
		updated, err := service.UpdateTranslation(ctx, 1, 5, chapter.TranslationPatch{
			ContentRu: ptr("русский"),
			TitleRu:   ptr("Глава"),
		})
		require.NoError(t, err)
		assert.Equal(t, "русский", *updated.ContentRu)
		assert.Equal(t, "english", *updated.ContentEn)

		view, err := service.GetChapter(ctx, 1, 5, "ru")
		require.NoError(t, err)
		assert.Equal(t, "русский", *view.ContentRu)
		assert.Contains(t, invalidator.workIDs, int64(1))
	})

	t.Run("title only keeps content", func(t *testing.T) {
		updated, err := service.UpdateTranslation(ctx, 1, 5, chapter.TranslationPatch{TitleRu: ptr("Новая")})
		require.NoError(t, err)
		assert.Equal(t, "русский", *updated.ContentRu)
		assert.Equal(t, "Новая", *updated.TitleRu)
	})

	t.Run("empty patch", func(t *testing.T) {
		_, err := service.UpdateTranslation(ctx, 1, 5, chapter.TranslationPatch{})
		assert.Equal(t, "VALIDATION_ERROR", errorCode(t, err))
	})

	t.Run("unknown chapter", func(t *testing.T) {
		_, err := service.UpdateTranslation(ctx, 1, 6, chapter.TranslationPatch{TitleRu: ptr("x")})
		assert.Equal(t, "NOT_FOUND", errorCode(t, err))
	})

	t.Run("external chapter id beyond int32", func(t *testing.T) {
		_, err := service.UpdateTranslation(ctx, 1, 3000000000, chapter.TranslationPatch{TitleRu: ptr("x")})
		assert.Equal(t, "VALIDATION_ERROR", errorCode(t, err))
	})
}

func TestService_ListChapters(t *testing.T) {
	service, _ := newTestService(1, 2)
	ctx := context.Background()

	for _, input := range []chapter.UpsertInput{
		{WorkID: 1, ExternalChapterID: ptr(30), OriginSequenceNumber: ptr(3), ContentEn: ptr(strings.Repeat("x", 250))},
		{WorkID: 1, ExternalChapterID: ptr(10), OriginSequenceNumber: ptr(1), ContentEn: ptr("short")},
		{WorkID: 1, ExternalChapterID: ptr(20), OriginSequenceNumber: ptr(2)},
	} {
		_, _, err := service.UpsertChapter(ctx, input)
		require.NoError(t, err)
	}

	summaries, err := service.ListChapters(ctx, 1)
	require.NoError(t, err)
	require.Len(t, summaries, 3)

	assert.Equal(t, []int{10, 20, 30}, []int{
		summaries[0].ExternalChapterID, summaries[1].ExternalChapterID, summaries[2].ExternalChapterID,
	})
	assert.Equal(t, "short", *summaries[0].ContentPreviewEn)
	assert.Nil(t, summaries[1].ContentPreviewEn)
	assert.Equal(t, strings.Repeat("x", 100)+"...", *summaries[2].ContentPreviewEn)

	empty, err := service.ListChapters(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = service.ListChapters(ctx, 3)
	assert.Equal(t, "NOT_FOUND", errorCode(t, err))
}
