// Package cart holds the shopping cart aggregate and the per-session record
// that pairs it with a delivery selection.
package cart

import (
	"crunchy-cruise/internal/model"
	"crunchy-cruise/internal/money"
)

// Cart is an ordered list of line items keyed by product name.
// There is at most one line per product name and every quantity is >= 1.
type Cart struct {
	items []model.LineItem
}

// New builds a cart from stored items. Duplicate names are merged and
// quantities are clamped so a corrupted record cannot break the invariants.
func New(items []model.LineItem) *Cart {
	c := &Cart{items: make([]model.LineItem, 0, len(items))}
	for _, item := range items {
		c.add(item, item.Quantity)
	}
	return c
}

// Items returns a copy of the line items in insertion order.
func (c *Cart) Items() []model.LineItem {
	out := make([]model.LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// Len is the number of distinct lines.
func (c *Cart) Len() int {
	return len(c.items)
}

// ItemCount is the total quantity across all lines.
func (c *Cart) ItemCount() int {
	n := 0
	for _, item := range c.items {
		n += item.Quantity
	}
	return n
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Find returns the line for productName.
func (c *Cart) Find(productName string) (model.LineItem, bool) {
	if i := c.index(productName); i >= 0 {
		return c.items[i], true
	}
	return model.LineItem{}, false
}

// AddItem appends a line or, when the product is already in the cart,
// increases its quantity. The delta is clamped to at least 1 and the line
// never exceeds money.MaxQuantity.
func (c *Cart) AddItem(productName string, unitPriceMinor int64, quantityDelta int, displayImage string) {
	c.add(model.LineItem{
		ProductName:    productName,
		UnitPriceMinor: unitPriceMinor,
		Image:          displayImage,
	}, quantityDelta)
}

// AddProduct adds a catalogue product, keeping its display price on the line.
func (c *Cart) AddProduct(p model.Product, quantity int) {
	c.add(model.LineItem{
		ProductName:    p.Name,
		UnitPriceMinor: p.UnitPrice(),
		PriceDisplay:   p.PriceDisplay,
		Image:          p.Image,
	}, quantity)
}

// RemoveItem deletes the line for productName. Unknown names are ignored.
func (c *Cart) RemoveItem(productName string) {
	i := c.index(productName)
	if i < 0 {
		return
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
}

// SetQuantity sets an absolute quantity, clamped to [1, money.MaxQuantity].
// Unknown names are ignored.
func (c *Cart) SetQuantity(productName string, quantity int) {
	if i := c.index(productName); i >= 0 {
		c.items[i].Quantity = money.ClampQuantity(quantity)
	}
}

// Clear removes every line.
func (c *Cart) Clear() {
	c.items = c.items[:0]
}

// Subtotal is the sum of unit price times quantity over all lines.
func (c *Cart) Subtotal() int64 {
	var total int64
	for _, item := range c.items {
		total = money.SaturatingAdd(total, item.LineTotal())
	}
	return total
}

func (c *Cart) add(item model.LineItem, delta int) {
	if i := c.index(item.ProductName); i >= 0 {
		c.items[i].Quantity = money.AddQuantity(c.items[i].Quantity, delta)
		return
	}
	item.Quantity = money.ClampQuantity(delta)
	c.items = append(c.items, item)
}

func (c *Cart) index(productName string) int {
	for i := range c.items {
		if c.items[i].ProductName == productName {
			return i
		}
	}
	return -1
}
