// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package apperr is the error vocabulary shared by the stores, services and
// HTTP handlers of ranoberead.
//
// Every failure a caller can act on is an [AppError] with a stable Code:
//
//   - NOT_FOUND: a work, chapter or bookmark does not exist
//   - CONTENT_UNAVAILABLE: the chapter exists but not in the requested language
//   - VALIDATION_ERROR: missing or malformed input, with per-field details
//   - CONFLICT: a unique index rejected a write
//   - RATE_LIMITED, INTERNAL_ERROR
//
// Handlers never inspect error strings; respond.Error maps the code and status.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a classified, client-safe failure.
//
// Cause is never serialised; it only reaches the server log for 5xx responses.
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "NOT_FOUND", "CONTENT_UNAVAILABLE").
	Code string `json:"code"`
	// Message is a human-readable description safe to return to the client.
	Message string `json:"error"`
	// HTTPStatus is the HTTP response status code.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
	// Details holds per-field validation errors for VALIDATION_ERROR responses.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the JSON field name that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap exposes Cause to [errors.Is] and [errors.As].
func (e *AppError) Unwrap() error { return e.Cause }

// # Client Errors (4xx)

// NotFound creates a 404 [AppError] for a named resource.
//
// Example:
//
//	apperr.NotFound("Work") // Returns "Work not found"
func NotFound(resource string) *AppError {
	return &AppError{
		Code:       "NOT_FOUND",
		Message:    resource + " not found",
		HTTPStatus: http.StatusNotFound,
	}
}

// ContentUnavailable creates a 404 [AppError] for an entity that exists but has
// no content in the requested language.
//
// The language is reported as a field detail so clients can tell it apart from
// a plain NOT_FOUND.
func ContentUnavailable(language string) *AppError {
	return &AppError{
		Code:       "CONTENT_UNAVAILABLE",
		Message:    "Content not available in " + language,
		HTTPStatus: http.StatusNotFound,
		Details:    []FieldError{{Field: "language", Message: language}},
	}
}

// Conflict creates a 409 [AppError] for duplicate or unique-constraint violations.
func Conflict(msg string) *AppError {
	return &AppError{
		Code:       "CONFLICT",
		Message:    msg,
		HTTPStatus: http.StatusConflict,
	}
}

// ValidationError creates a 400 [AppError] with optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:       "VALIDATION_ERROR",
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// RateLimited creates a 429 [AppError].
func RateLimited(retryAfterSeconds int) *AppError {
	return &AppError{
		Code:       "RATE_LIMITED",
		Message:    fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds),
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// # Server Errors (5xx)

// Internal creates a 500 [AppError] around an unclassified failure.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "An unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}
