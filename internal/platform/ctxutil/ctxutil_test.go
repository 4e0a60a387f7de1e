// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ctxutil_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/syncbridge/internal/platform/ctxutil"
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
TestContext_LoggerOr falls back only when no logger was injected.
*/
func TestContext_LoggerOr(t *testing.T) {
	fallback := slog.New(slog.DiscardHandler)
	assert.Same(t, fallback, ctxutil.LoggerOr(context.Background(), fallback))

	scoped := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	ctx := ctxutil.WithLogger(context.Background(), scoped)
	assert.Same(t, scoped, ctxutil.LoggerOr(ctx, fallback))
}

/*
TestContext_Admin verifies the per-request admin mark.
*/
func TestContext_Admin(t *testing.T) {
	ctx := context.Background()

	// 1. Anonymous by default
	assert.Empty(t, ctxutil.GetAdmin(ctx))

	// 2. Marked after the gate
	ctx = ctxutil.WithAdmin(ctx, "admin")
	assert.Equal(t, "admin", ctxutil.GetAdmin(ctx))
}
