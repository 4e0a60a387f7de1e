// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/syncbridge/pkg/query"
)

func TestStringSlice(t *testing.T) {
	assert.Nil(t, query.StringSlice(""))
	assert.Nil(t, query.StringSlice(" , ,"))
	assert.Equal(t, []string{"*"}, query.StringSlice("*"))
	assert.Equal(t,
		[]string{"https://a.example", "https://b.example"},
		query.StringSlice(" https://a.example,,https://b.example "),
	)
}
