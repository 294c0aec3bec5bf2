// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package chapter provides chapter ingestion, reading and listing.

Storage relies on PostgreSQL to keep the write path safe under concurrency:
  - Natural Key: UNIQUE (workid, externalchapterid) makes ingestion idempotent.
  - Atomic Upsert: INSERT ... ON CONFLICT DO UPDATE with COALESCE keeps omitted
    fields, so no read-modify-write happens in Go.
  - Bounded Reads: listings fetch left(content, 101) instead of whole bodies.
*/
package chapter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/ranoberead/internal/platform/apperr"
	"github.com/taibuivan/ranoberead/internal/platform/database/schema"
	"github.com/taibuivan/ranoberead/internal/platform/dberr"
	"github.com/taibuivan/ranoberead/internal/platform/validate"
)

// # PostgreSQL Repository

// chapterRepository implements the [ChapterRepository] interface using pgx.
type chapterRepository struct {
	pool *pgxpool.Pool
}

// NewChapterRepository constructs a PostgreSQL backed chapter store.
func NewChapterRepository(pool *pgxpool.Pool) ChapterRepository {
	return &chapterRepository{pool: pool}
}

// returningColumns lists the full row in [Chapter] scan order.
var returningColumns = strings.Join(schema.LibraryChapter.Columns(), ", ")

func scanTargets(chapter *Chapter) []any {
	return []any{
		&chapter.ID,
		&chapter.WorkID,
		&chapter.ExternalChapterID,
		&chapter.OriginSequenceNumber,
		&chapter.TitleRu,
		&chapter.TitleEn,
		&chapter.ContentRu,
		&chapter.ContentEn,
		&chapter.CreatedAt,
		&chapter.UpdatedAt,
	}
}

// # Ingestion

/*
Upsert writes a chapter by natural key.

Description: With an origin sequence number the write is one
INSERT ... ON CONFLICT DO UPDATE; concurrent callers with the same key are
serialised by the unique index. Without one, only an existing row can be
patched, so a plain UPDATE is used and a miss becomes a validation error.

Parameters:
  - context: context.Context
  - input: UpsertInput

Returns:
  - *Chapter: Stored row
  - bool: Whether the row was created
  - error: Mapped storage error
*/
func (repository *chapterRepository) Upsert(context context.Context, input UpsertInput) (*Chapter, bool, error) {
	if input.ExternalChapterID == nil {
		return nil, false, validate.RequiredError(FieldExternalChapterID, "This field is required")
	}

	if input.OriginSequenceNumber == nil {
		chapter, err := repository.patchExisting(context, input)
		return chapter, false, err
	}

	table := schema.LibraryChapter
	query := fmt.Sprintf(`
		INSERT INTO %s AS c (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (%s, %s) DO UPDATE SET
			%s = EXCLUDED.%s,
			%s = COALESCE(EXCLUDED.%s, c.%s),
			%s = COALESCE(EXCLUDED.%s, c.%s),
			%s = COALESCE(EXCLUDED.%s, c.%s),
			%s = COALESCE(EXCLUDED.%s, c.%s),
			%s = NOW()
		RETURNING %s, (xmax = 0) AS inserted
	`,
		table.Table,
		table.WorkID, table.ExternalChapterID, table.OriginSequenceNumber,
		table.TitleRu, table.TitleEn, table.ContentRu, table.ContentEn,
		table.WorkID, table.ExternalChapterID,
		table.OriginSequenceNumber, table.OriginSequenceNumber,
		table.TitleRu, table.TitleRu, table.TitleRu,
		table.TitleEn, table.TitleEn, table.TitleEn,
		table.ContentRu, table.ContentRu, table.ContentRu,
		table.ContentEn, table.ContentEn, table.ContentEn,
		table.UpdatedAt,
		returningColumns,
	)

	var chapter Chapter
	var inserted bool
	err := repository.pool.QueryRow(context, query,
		input.WorkID,
		*input.ExternalChapterID,
		*input.OriginSequenceNumber,
		input.TitleRu,
		input.TitleEn,
		input.ContentRu,
		input.ContentEn,
	).Scan(append(scanTargets(&chapter), &inserted)...)
	if err != nil {
		return nil, false, wrapWriteError(err, "upsert chapter")
	}

	return &chapter, inserted, nil
}

// patchExisting applies an upsert that omits the origin sequence number.
func (repository *chapterRepository) patchExisting(context context.Context, input UpsertInput) (*Chapter, error) {
	table := schema.LibraryChapter
	query := fmt.Sprintf(`
		UPDATE %s SET
			%s = COALESCE($3, %s),
			%s = COALESCE($4, %s),
			%s = COALESCE($5, %s),
			%s = COALESCE($6, %s),
			%s = NOW()
		WHERE %s = $1 AND %s = $2
		RETURNING %s
	`,
		table.Table,
		table.TitleRu, table.TitleRu,
		table.TitleEn, table.TitleEn,
		table.ContentRu, table.ContentRu,
		table.ContentEn, table.ContentEn,
		table.UpdatedAt,
		table.WorkID, table.ExternalChapterID,
		returningColumns,
	)

	var chapter Chapter
	err := repository.pool.QueryRow(context, query,
		input.WorkID,
		*input.ExternalChapterID,
		input.TitleRu,
		input.TitleEn,
		input.ContentRu,
		input.ContentEn,
	).Scan(scanTargets(&chapter)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, validate.RequiredError(FieldOriginSequenceNumber, "Required when creating a chapter")
	}
	if err != nil {
		return nil, wrapWriteError(err, "patch chapter")
	}

	return &chapter, nil
}

// # Reading

// FindView loads one chapter, reading only the requested language's body.
func (repository *chapterRepository) FindView(context context.Context, workID int64, externalChapterID int, language Language) (*View, error) {
	table := schema.LibraryChapter
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = $2
	`,
		table.ID, table.WorkID, table.ExternalChapterID, table.OriginSequenceNumber,
		table.TitleRu, table.TitleEn, language.contentColumn(),
		table.Table,
		table.WorkID, table.ExternalChapterID,
	)

	view := View{Language: language}
	var content *string
	err := repository.pool.QueryRow(context, query, workID, externalChapterID).Scan(
		&view.ID,
		&view.WorkID,
		&view.ExternalChapterID,
		&view.OriginSequenceNumber,
		&view.TitleRu,
		&view.TitleEn,
		&content,
	)
	if err != nil {
		return nil, dberr.WrapResource(err, "find chapter", "Chapter")
	}

	view.setContent(content)
	return &view, nil
}

// # Translation

// UpdateTranslation patches the Russian title and/or body of an existing chapter.
func (repository *chapterRepository) UpdateTranslation(context context.Context, workID int64, externalChapterID int, patch TranslationPatch) (*Chapter, error) {
	table := schema.LibraryChapter
	query := fmt.Sprintf(`
		UPDATE %s SET
			%s = COALESCE($3, %s),
			%s = COALESCE($4, %s),
			%s = NOW()
		WHERE %s = $1 AND %s = $2
		RETURNING %s
	`,
		table.Table,
		table.ContentRu, table.ContentRu,
		table.TitleRu, table.TitleRu,
		table.UpdatedAt,
		table.WorkID, table.ExternalChapterID,
		returningColumns,
	)

	var chapter Chapter
	err := repository.pool.QueryRow(context, query, workID, externalChapterID, patch.ContentRu, patch.TitleRu).
		Scan(scanTargets(&chapter)...)
	if err != nil {
		return nil, dberr.WrapResource(err, "update translation", "Chapter")
	}

	return &chapter, nil
}

// # Listing

/*
ListSummaries returns ordered chapter summaries for a work.

Description: The work is the driving table of a LEFT JOIN, so one statement
distinguishes an unknown work (no rows) from a work without chapters (one row
of NULL chapter columns).

Parameters:
  - context: context.Context
  - workID: int64

Returns:
  - []Summary: Ordered summaries with previews
  - error: NotFound("Work") if missing
*/
func (repository *chapterRepository) ListSummaries(context context.Context, workID int64) ([]Summary, error) {
	work, chapter := schema.LibraryWork, schema.LibraryChapter
	query := fmt.Sprintf(`
		SELECT c.%s, c.%s, c.%s, c.%s, c.%s, left(c.%s, %d), left(c.%s, %d)
		FROM %s w
		LEFT JOIN %s c ON c.%s = w.%s
		WHERE w.%s = $1
		ORDER BY c.%s ASC, c.%s ASC
	`,
		chapter.ID, chapter.ExternalChapterID, chapter.OriginSequenceNumber,
		chapter.TitleRu, chapter.TitleEn,
		chapter.ContentRu, previewFetchLength, chapter.ContentEn, previewFetchLength,
		work.Table,
		chapter.Table, chapter.WorkID, work.ID,
		work.ID,
		chapter.OriginSequenceNumber, chapter.ID,
	)

	rows, err := repository.pool.Query(context, query, workID)
	if err != nil {
		return nil, dberr.Wrap(err, "list chapter summaries")
	}
	defer rows.Close()

	summaries := []Summary{}
	workFound := false

	for rows.Next() {
		workFound = true

		var (
			id                   *int64
			externalChapterID    *int
			originSequenceNumber *int
			summary              Summary
			headRu, headEn       *string
		)
		if err := rows.Scan(&id, &externalChapterID, &originSequenceNumber, &summary.TitleRu, &summary.TitleEn, &headRu, &headEn); err != nil {
			return nil, dberr.Wrap(err, "scan chapter summary")
		}

		// The single NULL row of a work without chapters
		if id == nil {
			continue
		}

		summary.ID = *id
		summary.ExternalChapterID = *externalChapterID
		summary.OriginSequenceNumber = *originSequenceNumber
		summary.ContentPreviewRu = Preview(headRu)
		summary.ContentPreviewEn = Preview(headEn)
		summaries = append(summaries, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate chapter summaries")
	}

	if !workFound {
		return nil, apperr.NotFound("Work")
	}

	return summaries, nil
}

// # Helpers

// wrapWriteError reports a missing parent work as NOT_FOUND instead of the
// generic referenced-resource message.
func wrapWriteError(err error, action string) error {
	if dberr.IsForeignKeyViolation(err) {
		missing := apperr.NotFound("Work")
		missing.Cause = err
		return missing
	}
	return dberr.WrapResource(err, action, "Chapter")
}
