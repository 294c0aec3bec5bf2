// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ctxutil_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/ranoberead/internal/platform/ctxutil"
)

/*
TestContext_RequestID verifies that Request IDs can be injected and retrieved.
*/
func TestContext_RequestID(t *testing.T) {
	ctx := context.Background()
	requestID := "test-request-id"

	// 1. Initially should be empty
	assert.Empty(t, ctxutil.GetRequestID(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithRequestID(ctx, requestID)
	assert.Equal(t, requestID, ctxutil.GetRequestID(ctx))
}

/*
TestContext_Logger verifies that a custom logger can be stored in context.
*/
func TestContext_Logger(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// 1. Initially should return the default logger
	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithLogger(ctx, logger)
	assert.Equal(t, logger, ctxutil.GetLogger(ctx))
}

/*
TestContext_LoggerOr verifies the fallback is used only outside a request scope.
*/
func TestContext_LoggerOr(t *testing.T) {
	fallback := slog.New(slog.NewTextHandler(os.Stderr, nil))
	scoped := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// 1. No request logger: fallback wins
	assert.Same(t, fallback, ctxutil.LoggerOr(context.Background(), fallback))

	// 2. Request logger present: it wins
	ctx := ctxutil.WithLogger(context.Background(), scoped)
	assert.Same(t, scoped, ctxutil.LoggerOr(ctx, fallback))

	// 3. Explicit nil logger in context is ignored
	ctx = ctxutil.WithLogger(context.Background(), nil)
	assert.Same(t, fallback, ctxutil.LoggerOr(ctx, fallback))
}
