// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
//
// # SQLSTATE Mapping
//
//   - no rows              -> NOT_FOUND
//   - 23505 unique         -> CONFLICT
//   - 23503 foreign key    -> NOT_FOUND (the referenced row is missing)
//   - 23502, 23514         -> VALIDATION_ERROR
//   - anything else        -> INTERNAL_ERROR (cause kept for logs only)
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/ranoberead/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
func Wrap(err error, action string) error {
	return WrapResource(err, action, "Resource")
}

// WrapResource behaves like [Wrap] but names the resource in NOT_FOUND responses.
func WrapResource(err error, action, resource string) error {
	if err == nil {
		return nil
	}

	// Already classified further down the stack
	if apperr.IsAppError(err) {
		return err
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			conflict := apperr.Conflict(resource + " already exists")
			conflict.Cause = err
			return conflict
		case pgerrcode.ForeignKeyViolation:
			missing := apperr.NotFound("Referenced resource")
			missing.Cause = err
			return missing
		case pgerrcode.NotNullViolation, pgerrcode.CheckViolation:
			invalid := apperr.ValidationError("Validation failed", apperr.FieldError{
				Field:   pgErr.ColumnName,
				Message: "Value violates a storage constraint",
			})
			invalid.Cause = err
			return invalid
		}
	}

	return apperr.Internal(fmt.Errorf("postgres: %s: %w", action, err))
}

// IsUniqueViolation reports whether err carries SQLSTATE 23505.
func IsUniqueViolation(err error) bool {
	return hasCode(err, pgerrcode.UniqueViolation)
}

// IsForeignKeyViolation reports whether err carries SQLSTATE 23503.
func IsForeignKeyViolation(err error) bool {
	return hasCode(err, pgerrcode.ForeignKeyViolation)
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
