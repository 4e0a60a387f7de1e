// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/syncbridge/internal/platform/constants"
	"github.com/taibuivan/syncbridge/internal/platform/database"
)

func TestWithTimeout(t *testing.T) {
	ctx, cancel := database.WithTimeout(context.Background())
	defer cancel()

	deadline, ok := ctx.Deadline()
	assert.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(constants.StorageTimeout), deadline, time.Second)
}

func TestWithTimeout_KeepsShorterDeadline(t *testing.T) {
	parent, cancelParent := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancelParent()

	ctx, cancel := database.WithTimeout(parent)
	defer cancel()

	<-ctx.Done()
	assert.ErrorIs(t, ctx.Err(), context.DeadlineExceeded)
}
