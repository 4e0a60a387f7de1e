// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package money_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/taibuivan/syncbridge/pkg/money"
)

func TestAmount_Arithmetic(t *testing.T) {
	hoodie := money.MustParse("65.00")
	scrollCap := money.MustParse("30")

	total := hoodie.Times(2).Add(scrollCap.Times(1)).Round()

	assert.Equal(t, "160.00", total.String())
	assert.Equal(t, int64(16000), total.Cents())
}

func TestAmount_RoundHalfUp(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0.005", "0.01"},
		{"1.004", "1.00"},
		{"1.015", "1.02"},
		{"2.675", "2.68"},
		{"10", "10.00"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, money.MustParse(tt.in).Round().String())
		})
	}
}

func TestAmount_RoundOnce(t *testing.T) {
	// Three lines of 0.333 sum to 0.999, which rounds to 1.00.
	// Rounding every line first would give 0.99.
	unit := money.MustParse("0.333")
	total := unit.Times(1).Add(unit.Times(1)).Add(unit.Times(1)).Round()
	assert.Equal(t, "1.00", total.String())
}

func TestAmount_Cents(t *testing.T) {
	assert.Equal(t, "65.00", money.FromCents(6500).String())
	assert.Equal(t, int64(1999), money.MustParse("19.99").Cents())
	assert.True(t, money.FromCents(100).Equal(money.MustParse("1")))
}

func TestAmount_JSON(t *testing.T) {
	raw, err := json.Marshal(struct {
		Price money.Amount `json:"price"`
	}{Price: money.MustParse("65")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"price": 65.00}`, string(raw))
	assert.Contains(t, string(raw), "65.00")

	var decoded struct {
		Price money.Amount `json:"price"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"price":"12.50"}`), &decoded))
	assert.Equal(t, "12.50", decoded.Price.String())
}

func TestAmount_YAML(t *testing.T) {
	var decoded struct {
		Price money.Amount `yaml:"price"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("price: 30.5\n"), &decoded))
	assert.Equal(t, "30.50", decoded.Price.String())

	err := yaml.Unmarshal([]byte("price: cheap\n"), &decoded)
	assert.Error(t, err)
}

func TestAmount_HasSubCents(t *testing.T) {
	assert.False(t, money.MustParse("1.20").HasSubCents())
	assert.True(t, money.MustParse("1.205").HasSubCents())
	assert.True(t, money.MustParse("-1").IsNegative())
}
