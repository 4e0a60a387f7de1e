// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/syncbridge/internal/catalog"
	"github.com/taibuivan/syncbridge/internal/platform/apperr"
	"github.com/taibuivan/syncbridge/pkg/money"
)

func TestDefault(t *testing.T) {
	store := catalog.Default()

	assert.Equal(t, []string{"cap", "hoodie", "poster", "tshirt"}, store.Types())

	hoodie, err := store.Product("Hoodie")
	require.NoError(t, err)
	assert.Equal(t, "Guardian Hoodie", hoodie.Name)
	assert.Equal(t, "65.00", hoodie.Price.String())
	assert.True(t, hoodie.AcceptsSize("XL"))
	assert.False(t, hoodie.AcceptsSize(""))

	scrollCap, err := store.Product("cap")
	require.NoError(t, err)
	assert.False(t, scrollCap.HasSizes())
	assert.True(t, scrollCap.AcceptsSize(""))
	assert.False(t, scrollCap.AcceptsSize("M"))

	_, err = store.Product("mug")
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

func TestCatalog_ReturnsCopies(t *testing.T) {
	products := catalog.Default()

	all := products.All()
	all["hoodie"].Sizes[0] = "XS"
	delete(all, "cap")

	hoodie, err := products.Product("hoodie")
	require.NoError(t, err)
	assert.Equal(t, []string{"S", "M", "L", "XL", "XXL"}, hoodie.Sizes)

	hoodie.Sizes[1] = "XS"
	again, err := products.Product("hoodie")
	require.NoError(t, err)
	assert.Equal(t, "M", again.Sizes[1])

	_, err = products.Product("cap")
	assert.NoError(t, err)
	assert.Nil(t, products.All()["cap"].Sizes)
}

func TestParse(t *testing.T) {
	doc := `
products:
  Sticker Pack:
    name: Sticker Pack
    price: 4.5
  hoodie:
    name: Winter Hoodie
    price: "70.00"
    sizes: [M, L]
`
	store, err := catalog.Parse([]byte(doc))
	require.NoError(t, err)

	sticker, err := store.Product("sticker-pack")
	require.NoError(t, err)
	assert.Equal(t, "4.50", sticker.Price.String())

	hoodie, err := store.Product("hoodie")
	require.NoError(t, err)
	assert.Equal(t, []string{"M", "L"}, hoodie.Sizes)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty", "products: {}\n"},
		{"negative_price", "products:\n  cap:\n    name: Cap\n    price: -1\n"},
		{"sub_cent_price", "products:\n  cap:\n    name: Cap\n    price: 1.005\n"},
		{"missing_name", "products:\n  cap:\n    price: 1\n"},
		{"duplicate_size", "products:\n  cap:\n    name: Cap\n    price: 1\n    sizes: [M, M]\n"},
		{"unknown_field", "products:\n  cap:\n    name: Cap\n    price: 1\n    colour: red\n"},
		{"bad_price", "products:\n  cap:\n    name: Cap\n    price: free\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalog.Parse([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestNew_DuplicateTypeAfterNormalization(t *testing.T) {
	_, err := catalog.New([]catalog.Product{
		{Type: "Cap", Name: "Cap", Price: money.MustParse("1")},
		{Type: "cap", Name: "Other Cap", Price: money.MustParse("2")},
	})
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

func TestLoad(t *testing.T) {
	store, err := catalog.Load("")
	require.NoError(t, err)
	assert.Len(t, store.Types(), 4)

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("products:\n  poster:\n    name: Poster\n    price: 20\n"), 0o600))

	store, err = catalog.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"poster"}, store.Types())

	_, err = catalog.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestHandler(t *testing.T) {
	router := chi.NewRouter()
	router.Route("/api/merchandise", catalog.NewHandler(catalog.Default()).RegisterRoutes)

	t.Run("list", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/merchandise", nil))

		require.Equal(t, http.StatusOK, recorder.Code)

		var body map[string]map[string]any
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.Len(t, body, 4)
		assert.Equal(t, "Guardian Hoodie", body["hoodie"]["name"])
		assert.Equal(t, 65.0, body["hoodie"]["price"])
		assert.NotContains(t, body["cap"], "sizes")
	})

	t.Run("get_missing", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/merchandise/mug", nil))
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}
