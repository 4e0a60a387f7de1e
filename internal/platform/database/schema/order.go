// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// OrderTable represents the 'merch_order' table
type OrderTable struct {
	Table            string
	ID               string
	ScrollID         string
	Email            string
	ShippingName     string
	ShippingAddress  string
	ShippingCity     string
	ShippingState    string
	ShippingZip      string
	ShippingCountry  string
	TotalAmountCents string
	Status           string
	CreatedAt        string
	UpdatedAt        string
}

// Order is the schema definition for merch_order
var Order = OrderTable{
	Table:            "merch_order",
	ID:               "id",
	ScrollID:         "scroll_id",
	Email:            "email",
	ShippingName:     "shipping_name",
	ShippingAddress:  "shipping_address",
	ShippingCity:     "shipping_city",
	ShippingState:    "shipping_state",
	ShippingZip:      "shipping_zip",
	ShippingCountry:  "shipping_country",
	TotalAmountCents: "total_amount_cents",
	Status:           "status",
	CreatedAt:        "created_at",
	UpdatedAt:        "updated_at",
}

func (t OrderTable) Columns() []string {
	return []string{
		t.ID, t.ScrollID, t.Email,
		t.ShippingName, t.ShippingAddress, t.ShippingCity, t.ShippingState, t.ShippingZip, t.ShippingCountry,
		t.TotalAmountCents, t.Status, t.CreatedAt, t.UpdatedAt,
	}
}

// OrderItemTable represents the 'merch_order_item' table
type OrderItemTable struct {
	Table          string
	OrderID        string
	Position       string
	ProductType    string
	ProductName    string
	Size           string
	Quantity       string
	UnitPriceCents string
	LineTotalCents string
}

var OrderItem = OrderItemTable{
	Table:          "merch_order_item",
	OrderID:        "order_id",
	Position:       "position",
	ProductType:    "product_type",
	ProductName:    "product_name",
	Size:           "size",
	Quantity:       "quantity",
	UnitPriceCents: "unit_price_cents",
	LineTotalCents: "line_total_cents",
}

func (t OrderItemTable) Columns() []string {
	return []string{t.OrderID, t.Position, t.ProductType, t.ProductName, t.Size, t.Quantity, t.UnitPriceCents, t.LineTotalCents}
}

// OrderStatusHistoryTable represents the 'merch_order_status_history' table
type OrderStatusHistoryTable struct {
	Table      string
	ID         string
	OrderID    string
	FromStatus string
	ToStatus   string
	ChangedBy  string
	ChangedAt  string
}

var OrderStatusHistory = OrderStatusHistoryTable{
	Table:      "merch_order_status_history",
	ID:         "id",
	OrderID:    "order_id",
	FromStatus: "from_status",
	ToStatus:   "to_status",
	ChangedBy:  "changed_by",
	ChangedAt:  "changed_at",
}
