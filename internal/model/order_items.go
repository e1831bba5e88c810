package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"crunchy-cruise/internal/money"
)

// OrderItemsVersion is the schema version written to the orders.items column.
const OrderItemsVersion = 2

// OrderItemsDocument is the stored form of an order's items.
//
// Older rows hold either a bare array of {name, quantity, price} or an object
// {items, total, delivery}; NormalizeOrderItems upgrades both to this shape.
type OrderItemsDocument struct {
	Version        int           `json:"version"`
	Items          []LineItem    `json:"items"`
	Subtotal       int64         `json:"subtotal"`
	DeliveryCharge int64         `json:"deliveryCharge"`
	Total          int64         `json:"total"`
	Delivery       *DeliveryInfo `json:"delivery,omitempty"`
}

// NewOrderItemsDocument builds the current document version from an order.
func NewOrderItemsDocument(o *Order) OrderItemsDocument {
	delivery := o.Delivery.Clone()
	return OrderItemsDocument{
		Version:        OrderItemsVersion,
		Items:          o.Items,
		Subtotal:       o.Subtotal,
		DeliveryCharge: o.DeliveryCharge,
		Total:          o.Total,
		Delivery:       &delivery,
	}
}

// legacyItem is the line shape written by the first storefront release.
// Price is either a display string ("₦4,500") or a bare number.
type legacyItem struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    json.RawMessage `json:"price"`
	Image    string          `json:"image"`
}

type legacyObject struct {
	Version  *int            `json:"version"`
	Items    json.RawMessage `json:"items"`
	Total    *int64          `json:"total"`
	Delivery *DeliveryInfo   `json:"delivery"`
}

var errEmptyItems = errors.New("order items document is empty")

// NormalizeOrderItems decodes any stored items shape into the current document.
func NormalizeOrderItems(raw []byte) (OrderItemsDocument, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return OrderItemsDocument{}, errEmptyItems
	}

	switch raw[0] {
	case '"':
		// Seeded rows stored the JSON text as a string value.
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return OrderItemsDocument{}, fmt.Errorf("failed to decode items string: %w", err)
		}
		return NormalizeOrderItems([]byte(inner))

	case '[':
		items, err := decodeLegacyItems(raw)
		if err != nil {
			return OrderItemsDocument{}, err
		}
		subtotal := sumItems(items)
		return OrderItemsDocument{
			Version:  OrderItemsVersion,
			Items:    items,
			Subtotal: subtotal,
			Total:    subtotal,
		}, nil

	case '{':
		var obj legacyObject
		if err := json.Unmarshal(raw, &obj); err != nil {
			return OrderItemsDocument{}, fmt.Errorf("failed to decode items object: %w", err)
		}
		if obj.Version != nil && *obj.Version == OrderItemsVersion {
			var doc OrderItemsDocument
			if err := json.Unmarshal(raw, &doc); err != nil {
				return OrderItemsDocument{}, fmt.Errorf("failed to decode items document: %w", err)
			}
			return doc, nil
		}
		if obj.Version != nil {
			return OrderItemsDocument{}, fmt.Errorf("unsupported items document version %d", *obj.Version)
		}

		var items []LineItem
		if len(obj.Items) > 0 {
			var err error
			items, err = decodeLegacyItems(obj.Items)
			if err != nil {
				return OrderItemsDocument{}, err
			}
		}
		doc := OrderItemsDocument{
			Version:  OrderItemsVersion,
			Items:    items,
			Subtotal: sumItems(items),
			Delivery: obj.Delivery,
		}
		if obj.Delivery != nil {
			doc.DeliveryCharge = obj.Delivery.DeliveryChargeMinor
		}
		doc.Total = money.SaturatingAdd(doc.Subtotal, doc.DeliveryCharge)
		if obj.Total != nil {
			doc.Total = *obj.Total
		}
		return doc, nil
	}

	return OrderItemsDocument{}, fmt.Errorf("unrecognised items document starting with %q", raw[0])
}

func decodeLegacyItems(raw []byte) ([]LineItem, error) {
	var legacy []legacyItem
	if err := json.Unmarshal(raw, &legacy); err != nil {
		return nil, fmt.Errorf("failed to decode legacy items: %w", err)
	}

	items := make([]LineItem, 0, len(legacy))
	for _, li := range legacy {
		unit, display, err := legacyPrice(li.Price)
		if err != nil {
			return nil, fmt.Errorf("item %q: %w", li.Name, err)
		}
		items = append(items, LineItem{
			ProductName:    li.Name,
			UnitPriceMinor: unit,
			PriceDisplay:   display,
			Quantity:       money.ClampQuantity(li.Quantity),
			Image:          li.Image,
		})
	}
	return items, nil
}

func legacyPrice(raw json.RawMessage) (int64, string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, "", nil
	}
	if raw[0] == '"' {
		var display string
		if err := json.Unmarshal(raw, &display); err != nil {
			return 0, "", fmt.Errorf("invalid price: %w", err)
		}
		return money.ParsePrice(display), display, nil
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, "", fmt.Errorf("invalid price: %w", err)
	}
	return int64(math.Round(n)), "", nil
}

func sumItems(items []LineItem) int64 {
	var total int64
	for _, li := range items {
		total = money.SaturatingAdd(total, li.LineTotal())
	}
	return total
}
