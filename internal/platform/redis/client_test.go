// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package redis_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/syncbridge/internal/platform/redis"
)

func TestNewClient_InvalidURL(t *testing.T) {
	client, err := redis.NewClient(context.Background(), "://not-a-url", slog.New(slog.DiscardHandler))
	assert.Nil(t, client)
	assert.ErrorContains(t, err, "redis: invalid URL")
}
