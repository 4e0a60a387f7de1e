// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"slices"

	"github.com/taibuivan/syncbridge/pkg/money"
)

// Product is a merchandise item offered in the store.
type Product struct {
	Type  string       `json:"type"  yaml:"-"`
	Name  string       `json:"name"  yaml:"name"`
	Price money.Amount `json:"price" yaml:"price"`
	// Sizes is empty for single-size items.
	Sizes []string `json:"sizes,omitempty" yaml:"sizes"`
}

// HasSizes reports whether the buyer must pick a size.
func (product Product) HasSizes() bool {
	return len(product.Sizes) > 0
}

// AcceptsSize reports whether size is valid for the product. Single-size
// items accept only the empty size.
func (product Product) AcceptsSize(size string) bool {
	if !product.HasSizes() {
		return size == ""
	}
	return slices.Contains(product.Sizes, size)
}

// clone copies Sizes so callers cannot edit the catalog's backing array.
func (product Product) clone() Product {
	product.Sizes = slices.Clone(product.Sizes)
	return product
}

// Global field names for validation
const (
	FieldType  = "type"
	FieldName  = "name"
	FieldPrice = "price"
	FieldSizes = "sizes"
)

var standardSizes = []string{"S", "M", "L", "XL", "XXL"}

// Defaults is the built-in catalog used when no override file is configured.
func Defaults() []Product {
	return []Product{
		{Type: "hoodie", Name: "Guardian Hoodie", Price: money.MustParse("65.00"), Sizes: slices.Clone(standardSizes)},
		{Type: "tshirt", Name: "Guardian Tee", Price: money.MustParse("35.00"), Sizes: slices.Clone(standardSizes)},
		{Type: "cap", Name: "Scroll Cap", Price: money.MustParse("30.00")},
		{Type: "poster", Name: "Mission Poster", Price: money.MustParse("20.00")},
	}
}
