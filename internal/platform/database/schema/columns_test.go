// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/syncbridge/internal/platform/database/schema"
)

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "$1, $2, $3", schema.Placeholders(3, true))
	assert.Equal(t, "?, ?, ?", schema.Placeholders(3, false))
	assert.Equal(t, "", schema.Placeholders(0, true))
}

func TestList(t *testing.T) {
	assert.Equal(t, "id, day_number, title, description, video_url, created_at, updated_at", schema.List(schema.Transmission.Columns()))
}
