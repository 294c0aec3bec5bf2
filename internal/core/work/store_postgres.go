// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package work

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/ranoberead/internal/platform/apperr"
	"github.com/taibuivan/ranoberead/internal/platform/database/schema"
	"github.com/taibuivan/ranoberead/internal/platform/dberr"
)

// # PostgreSQL Repository

// workRepository implements the [WorkRepository] interface using pgx.
type workRepository struct {
	pool *pgxpool.Pool
}

// NewWorkRepository constructs a PostgreSQL backed work store.
func NewWorkRepository(pool *pgxpool.Pool) WorkRepository {
	return &workRepository{pool: pool}
}

// workColumns lists the full row in [Work] scan order.
var workColumns = strings.Join(schema.LibraryWork.Columns(), ", ")

/*
List aggregates chapter counts in one round-trip.

Description: LEFT JOIN keeps works without chapters; COUNT(c.id) ignores the
NULL row they produce, so such works report 0.
*/
func (repository *workRepository) List(context context.Context) ([]ListItem, error) {
	work, chapter := schema.LibraryWork, schema.LibraryChapter
	query := fmt.Sprintf(`
		SELECT w.%s, w.%s, COUNT(c.%s) AS chapter_count
		FROM %s w
		LEFT JOIN %s c ON c.%s = w.%s
		GROUP BY w.%s
		ORDER BY w.%s ASC
	`,
		work.ID, work.Title, chapter.ID,
		work.Table,
		chapter.Table, chapter.WorkID, work.ID,
		work.ID,
		work.ID,
	)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list works")
	}
	defer rows.Close()

	items := []ListItem{}
	for rows.Next() {
		var item ListItem
		if err := rows.Scan(&item.ID, &item.Title, &item.ChapterCount); err != nil {
			return nil, dberr.Wrap(err, "scan work")
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate works")
	}

	return items, nil
}

// FindByID returns one work or NotFound("Work").
func (repository *workRepository) FindByID(context context.Context, id int64) (*Work, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1",
		workColumns, schema.LibraryWork.Table, schema.LibraryWork.ID)

	var work Work
	err := repository.pool.QueryRow(context, query, id).Scan(&work.ID, &work.Title, &work.CreatedAt, &work.UpdatedAt)
	if err != nil {
		return nil, dberr.WrapResource(err, "find work", "Work")
	}

	return &work, nil
}

// Create inserts a work and returns the stored row.
func (repository *workRepository) Create(context context.Context, title string) (*Work, error) {
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES ($1) RETURNING %s",
		schema.LibraryWork.Table, schema.LibraryWork.Title, workColumns)

	var work Work
	err := repository.pool.QueryRow(context, query, title).Scan(&work.ID, &work.Title, &work.CreatedAt, &work.UpdatedAt)
	if err != nil {
		return nil, dberr.WrapResource(err, "create work", "Work")
	}

	return &work, nil
}

// Update renames a work and refreshes its updated timestamp.
func (repository *workRepository) Update(context context.Context, id int64, title string) (*Work, error) {
	query := fmt.Sprintf("UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1 RETURNING %s",
		schema.LibraryWork.Table,
		schema.LibraryWork.Title, schema.LibraryWork.UpdatedAt,
		schema.LibraryWork.ID,
		workColumns,
	)

	var work Work
	err := repository.pool.QueryRow(context, query, id, title).Scan(&work.ID, &work.Title, &work.CreatedAt, &work.UpdatedAt)
	if err != nil {
		return nil, dberr.WrapResource(err, "update work", "Work")
	}

	return &work, nil
}

// Delete removes a work and, by cascade, its chapters and bookmark.
func (repository *workRepository) Delete(context context.Context, id int64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.LibraryWork.Table, schema.LibraryWork.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete work")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Work")
	}

	return nil
}
