// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package catalog holds the merchandise definitions referenced by carts and orders.

The catalog is configuration: it is built once at startup, either from the
built-in [Defaults] table or from a YAML override file, and is read-only
afterwards. A [Catalog] is therefore safe for concurrent use without locking.

File format:

	products:
	  hoodie:
	    name: Guardian Hoodie
	    price: 65.00
	    sizes: [S, M, L, XL, XXL]
	  cap:
	    name: Scroll Cap
	    price: 30.00
*/
package catalog

import (
	"bytes"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/taibuivan/syncbridge/internal/platform/apperr"
	"github.com/taibuivan/syncbridge/internal/platform/validate"
	"github.com/taibuivan/syncbridge/pkg/slug"
)

// Catalog is an immutable set of products keyed by type.
type Catalog struct {
	products map[string]Product
	order    []string
}

// ErrProductNotFound is returned for an unknown product type.
var ErrProductNotFound = apperr.NotFound("Product")

// New validates products and builds a catalog. Types are normalized to slugs.
func New(products []Product) (*Catalog, error) {
	catalog := &Catalog{products: make(map[string]Product, len(products))}

	validator := &validate.Validator{}
	validator.Custom(FieldType, len(products) == 0, "Catalog must define at least one product")

	for _, product := range products {
		product.Type = slug.From(product.Type)
		product.Name = strings.TrimSpace(product.Name)

		field := func(name string) string { return product.Type + "." + name }

		validator.Slug(field(FieldType), product.Type)
		validator.Required(field(FieldName), product.Name).MaxLen(field(FieldName), product.Name, 120)
		validator.Custom(field(FieldPrice), product.Price.IsNegative(), "Price must not be negative")
		validator.Custom(field(FieldPrice), product.Price.HasSubCents(), "Price must have at most 2 decimals")

		seen := make(map[string]bool, len(product.Sizes))
		for _, size := range product.Sizes {
			validator.Custom(field(FieldSizes), strings.TrimSpace(size) == "", "Size labels must not be empty")
			validator.Custom(field(FieldSizes), seen[size], fmt.Sprintf("Duplicate size %q", size))
			seen[size] = true
		}

		_, duplicate := catalog.products[product.Type]
		validator.Custom(field(FieldType), duplicate, "Duplicate product type")

		catalog.products[product.Type] = product
		if !duplicate {
			catalog.order = append(catalog.order, product.Type)
		}
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	slices.Sort(catalog.order)
	return catalog, nil
}

// Default builds the catalog from the built-in table.
func Default() *Catalog {
	catalog, err := New(Defaults())
	if err != nil {
		panic("catalog: built-in table is invalid: " + err.Error())
	}
	return catalog
}

// fileFormat mirrors the YAML override file.
type fileFormat struct {
	Products map[string]Product `yaml:"products"`
}

/*
Load reads a YAML catalog file. An empty path yields the built-in catalog.

Parameters:
  - path: string (Filesystem path, may be empty)

Returns:
  - *Catalog: The validated catalog
  - error: File, parse or validation failures
*/
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: failed to read %s: %w", path, err)
	}

	return Parse(raw)
}

// Parse decodes a YAML catalog document.
func Parse(raw []byte) (*Catalog, error) {
	var file fileFormat

	decoder := yaml.NewDecoder(bytes.NewReader(raw))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("catalog: invalid YAML: %w", err)
	}

	products := make([]Product, 0, len(file.Products))
	for key, product := range file.Products {
		product.Type = key
		products = append(products, product)
	}

	catalog, err := New(products)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return catalog, nil
}

// # Queries

// Product returns the product for a type key (case-insensitive).
func (catalog *Catalog) Product(productType string) (Product, error) {
	product, ok := catalog.products[strings.ToLower(strings.TrimSpace(productType))]
	if !ok {
		return Product{}, ErrProductNotFound
	}
	return product.clone(), nil
}

// All returns a copy of the products keyed by type.
func (catalog *Catalog) All() map[string]Product {
	out := make(map[string]Product, len(catalog.products))
	for key, product := range catalog.products {
		out[key] = product.clone()
	}
	return out
}

// Types lists the product types in sorted order.
func (catalog *Catalog) Types() []string {
	return slices.Clone(catalog.order)
}
