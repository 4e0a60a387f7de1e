// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package order

import (
	"time"

	"github.com/taibuivan/syncbridge/pkg/money"
)

// Shipping is the delivery address. It is flattened into order JSON as
// shipping_* fields.
type Shipping struct {
	Name    string `json:"shipping_name"`
	Address string `json:"shipping_address"`
	City    string `json:"shipping_city"`
	State   string `json:"shipping_state"`
	Zip     string `json:"shipping_zip"`
	Country string `json:"shipping_country"`
}

// Item is an order line with the product name and price frozen at submission.
type Item struct {
	ProductType string       `json:"product_type"`
	ProductName string       `json:"product_name"`
	Size        *string      `json:"size"`
	Quantity    int          `json:"quantity"`
	UnitPrice   money.Amount `json:"unit_price"`
	LineTotal   money.Amount `json:"line_total"`
}

// StatusChange is one entry of an order's audit trail. From is nil for the
// submission itself.
type StatusChange struct {
	From      *Status   `json:"from"`
	To        Status    `json:"to"`
	ChangedBy string    `json:"changed_by"`
	ChangedAt time.Time `json:"changed_at"`
}

// Order is a submitted purchase request.
type Order struct {
	ID       string `json:"id"`
	ScrollID string `json:"scroll_id"`
	Email    string `json:"email"`
	Items    []Item `json:"items"`
	Shipping
	TotalAmount money.Amount   `json:"total_amount"`
	Status      Status         `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	History     []StatusChange `json:"history"`
}

// LineInput is a cart line as sent by the client. Prices always come from
// the catalog, never from the client.
type LineInput struct {
	ProductType string `json:"product_type"`
	Size        string `json:"size"`
	Quantity    int    `json:"quantity"`
}

// SubmitInput is the order submission payload.
type SubmitInput struct {
	ScrollID string      `json:"scroll_id"`
	Email    string      `json:"email"`
	Items    []LineInput `json:"items"`
	Shipping
}

// Quote is an advisory cart total.
type Quote struct {
	Items []Item       `json:"items"`
	Total money.Amount `json:"total"`
}

// StatusUpdate is a compare-and-set status write.
type StatusUpdate struct {
	OrderID   string
	From      Status
	To        Status
	ChangedBy string
	ChangedAt time.Time
}

// Global field names for validation
const (
	FieldScrollID        = "scroll_id"
	FieldEmail           = "email"
	FieldItems           = "items"
	FieldProductType     = "product_type"
	FieldSize            = "size"
	FieldQuantity        = "quantity"
	FieldStatus          = "status"
	FieldShippingName    = "shipping_name"
	FieldShippingAddress = "shipping_address"
	FieldShippingCity    = "shipping_city"
	FieldShippingState   = "shipping_state"
	FieldShippingZip     = "shipping_zip"
	FieldShippingCountry = "shipping_country"
)

const (
	maxLineQuantity     = 1000
	maxShippingFieldLen = 200
	maxEmailLength      = 254
)
