// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package bookmark

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/ranoberead/internal/platform/apperr"
	"github.com/taibuivan/ranoberead/internal/platform/database/schema"
	"github.com/taibuivan/ranoberead/internal/platform/dberr"
)

// # PostgreSQL Repository

// bookmarkRepository implements the [BookmarkRepository] interface using pgx.
type bookmarkRepository struct {
	pool *pgxpool.Pool
}

// NewBookmarkRepository constructs a PostgreSQL backed bookmark store.
func NewBookmarkRepository(pool *pgxpool.Pool) BookmarkRepository {
	return &bookmarkRepository{pool: pool}
}

// viewQuery resolves bookmarks through INNER JOINs; a reference without a
// matching chapter yields no row.
var viewQuery = fmt.Sprintf(`
	SELECT b.%s, b.%s, b.%s, w.%s, COALESCE(c.%s, c.%s), c.%s, b.%s, b.%s
	FROM %s b
	JOIN %s w ON w.%s = b.%s
	JOIN %s c ON c.%s = b.%s AND c.%s = b.%s
`,
	schema.LibraryBookmark.ID, schema.LibraryBookmark.WorkID, schema.LibraryBookmark.ChapterReference,
	schema.LibraryWork.Title,
	schema.LibraryChapter.TitleEn, schema.LibraryChapter.TitleRu,
	schema.LibraryChapter.OriginSequenceNumber,
	schema.LibraryBookmark.CreatedAt, schema.LibraryBookmark.UpdatedAt,
	schema.LibraryBookmark.Table,
	schema.LibraryWork.Table, schema.LibraryWork.ID, schema.LibraryBookmark.WorkID,
	schema.LibraryChapter.Table,
	schema.LibraryChapter.WorkID, schema.LibraryBookmark.WorkID,
	schema.LibraryChapter.ExternalChapterID, schema.LibraryBookmark.ChapterReference,
)

func scanView(row pgx.Row) (*View, error) {
	var view View
	err := row.Scan(
		&view.ID,
		&view.WorkID,
		&view.ChapterReference,
		&view.WorkTitle,
		&view.ChapterTitle,
		&view.OriginSequenceNumber,
		&view.CreatedAt,
		&view.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

// List returns resolvable bookmarks ordered by last update, newest first.
func (repository *bookmarkRepository) List(context context.Context) ([]View, error) {
	query := viewQuery + fmt.Sprintf(" ORDER BY b.%s DESC, b.%s DESC",
		schema.LibraryBookmark.UpdatedAt, schema.LibraryBookmark.ID)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list bookmarks")
	}
	defer rows.Close()

	views := []View{}
	for rows.Next() {
		view, err := scanView(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan bookmark")
		}
		views = append(views, *view)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate bookmarks")
	}

	return views, nil
}

// FindByWork returns the resolved bookmark of a work.
func (repository *bookmarkRepository) FindByWork(context context.Context, workID int64) (*View, error) {
	query := viewQuery + fmt.Sprintf(" WHERE b.%s = $1", schema.LibraryBookmark.WorkID)

	view, err := scanView(repository.pool.QueryRow(context, query, workID))
	if err != nil {
		return nil, dberr.WrapResource(err, "find bookmark", "Bookmark")
	}

	return view, nil
}

/*
Set upserts the single bookmark of a work.

Description: The write and the resolving re-read share one transaction. If the
re-read finds no chapter for the reference the transaction is rolled back, so a
dangling reference is never stored by this path.

Parameters:
  - context: context.Context
  - workID: int64
  - chapterReference: int

Returns:
  - *View: The resolved bookmark
  - error: NotFound("Work") or ValidationError
*/
func (repository *bookmarkRepository) Set(context context.Context, workID int64, chapterReference int) (*View, error) {

	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return nil, dberr.Wrap(err, "begin bookmark transaction")
	}

	// No-op once committed
	defer transaction.Rollback(context)

	table := schema.LibraryBookmark
	upsert := fmt.Sprintf(`
		INSERT INTO %s (%s, %s) VALUES ($1, $2)
		ON CONFLICT (%s) DO UPDATE SET
			%s = EXCLUDED.%s,
			%s = NOW()
		RETURNING %s
	`,
		table.Table, table.WorkID, table.ChapterReference,
		table.WorkID,
		table.ChapterReference, table.ChapterReference,
		table.UpdatedAt,
		table.ID,
	)

	var bookmarkID int64
	if err := transaction.QueryRow(context, upsert, workID, chapterReference).Scan(&bookmarkID); err != nil {
		if dberr.IsForeignKeyViolation(err) {
			missing := apperr.NotFound("Work")
			missing.Cause = err
			return nil, missing
		}
		return nil, dberr.Wrap(err, "upsert bookmark")
	}

	query := viewQuery + fmt.Sprintf(" WHERE b.%s = $1", table.ID)
	view, err := scanView(transaction.QueryRow(context, query, bookmarkID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   FieldChapterReference,
			Message: "No chapter with this external id in the work",
		})
	}
	if err != nil {
		return nil, dberr.Wrap(err, "resolve bookmark")
	}

	if err := transaction.Commit(context); err != nil {
		return nil, dberr.Wrap(err, "commit bookmark")
	}

	return view, nil
}
