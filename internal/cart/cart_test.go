package cart

import (
	"math"
	"testing"

	"crunchy-cruise/internal/model"
	"crunchy-cruise/internal/money"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCart_AddItemMergesByName(t *testing.T) {
	c := New(nil)
	price := money.ParsePrice("₦4,500")

	c.AddItem("Ripe Plantain Chips", price, 2, "/uploads/plantain.jpg")
	c.AddItem("Ripe Plantain Chips", price, 1, "/uploads/plantain.jpg")

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Ripe Plantain Chips", items[0].ProductName)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, int64(13500), c.Subtotal())
}

func TestCart_AddItemClampsDelta(t *testing.T) {
	c := New(nil)

	c.AddItem("Chin Chin", 1500, 0, "")
	item, ok := c.Find("Chin Chin")
	require.True(t, ok)
	assert.Equal(t, 1, item.Quantity)

	c.AddItem("Chin Chin", 1500, -4, "")
	item, _ = c.Find("Chin Chin")
	assert.Equal(t, 2, item.Quantity)
}

func TestCart_QuantityIsCapped(t *testing.T) {
	c := New(nil)

	c.AddItem("Chin Chin", 1500, math.MaxInt, "")
	c.AddItem("Chin Chin", 1500, 1, "")

	item, ok := c.Find("Chin Chin")
	require.True(t, ok)
	assert.Equal(t, money.MaxQuantity, item.Quantity)
	assert.Positive(t, c.Subtotal())
	assert.Equal(t, int64(1500*money.MaxQuantity), c.Subtotal())

	c.AddItem("Chin Chin", 1500, math.MaxInt, "")
	item, _ = c.Find("Chin Chin")
	assert.Equal(t, money.MaxQuantity, item.Quantity)
}

func TestCart_SubtotalSaturates(t *testing.T) {
	c := New(nil)

	c.AddItem("Gold Chin Chin", 1<<62, 1<<62, "")
	c.AddItem("Gold Puff Puff", math.MaxInt64, 2, "")

	assert.Equal(t, int64(math.MaxInt64), c.Subtotal())
	assert.Equal(t, money.MaxQuantity+2, c.ItemCount())
}

func TestCart_MergeSumsQuantities(t *testing.T) {
	for _, tc := range []struct{ q1, q2 int }{{1, 1}, {2, 5}, {10, 3}, {1, 99}} {
		c := New(nil)
		c.AddItem("Coconut Candy", 800, tc.q1, "")
		c.AddItem("Coconut Candy", 800, tc.q2, "")

		item, ok := c.Find("Coconut Candy")
		require.True(t, ok)
		assert.Equal(t, tc.q1+tc.q2, item.Quantity)
		assert.Equal(t, 1, c.Len())
	}
}

func TestCart_KeepsInsertionOrder(t *testing.T) {
	c := New(nil)
	c.AddItem("A", 100, 1, "")
	c.AddItem("B", 200, 1, "")
	c.AddItem("A", 100, 1, "")

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "A", items[0].ProductName)
	assert.Equal(t, "B", items[1].ProductName)
	assert.Equal(t, 3, c.ItemCount())
}

func TestCart_RemoveItem(t *testing.T) {
	c := New(nil)
	c.AddItem("Chin Chin", 1500, 1, "")
	before := c.Items()

	c.AddItem("Peanut Burger", 1200, 3, "")
	c.RemoveItem("Peanut Burger")
	assert.Equal(t, before, c.Items())

	c.RemoveItem("Unknown")
	assert.Equal(t, before, c.Items())

	c.RemoveItem("Chin Chin")
	assert.True(t, c.IsEmpty())
}

func TestCart_RemoveThenReAdd(t *testing.T) {
	c := New(nil)
	c.AddItem("Chin Chin", 1500, 1, "")
	c.AddItem("Peanut Burger", 1200, 2, "")
	c.AddItem("Zobo", 1000, 1, "")

	c.RemoveItem("Peanut Burger")
	c.AddItem("Peanut Burger", 1200, 3, "")

	item, ok := c.Find("Peanut Burger")
	require.True(t, ok)
	assert.Equal(t, 3, item.Quantity)
	assert.Equal(t, 3, c.Len())

	fresh := New(nil)
	fresh.AddItem("Chin Chin", 1500, 1, "")
	fresh.AddItem("Zobo", 1000, 1, "")
	fresh.AddItem("Peanut Burger", 1200, 3, "")
	assert.Equal(t, fresh.Items(), c.Items())
	assert.Equal(t, int64(1500+1000+3600), c.Subtotal())
}

func TestCart_SetQuantity(t *testing.T) {
	c := New(nil)
	c.AddItem("Chin Chin", 1500, 4, "")

	c.SetQuantity("Chin Chin", 2)
	item, _ := c.Find("Chin Chin")
	assert.Equal(t, 2, item.Quantity)

	c.SetQuantity("Chin Chin", 0)
	item, _ = c.Find("Chin Chin")
	assert.Equal(t, 1, item.Quantity)

	c.SetQuantity("Chin Chin", math.MaxInt)
	item, _ = c.Find("Chin Chin")
	assert.Equal(t, money.MaxQuantity, item.Quantity)

	c.SetQuantity("Unknown", 5)
	_, ok := c.Find("Unknown")
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())
}

func TestCart_Subtotal(t *testing.T) {
	c := New(nil)
	assert.Zero(t, c.Subtotal())

	c.AddItem("A", 4500, 2, "")
	c.AddItem("B", 1200, 3, "")
	assert.Equal(t, int64(9000+3600), c.Subtotal())

	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.Zero(t, c.Subtotal())
}

func TestCart_AddProduct(t *testing.T) {
	c := New(nil)
	c.AddProduct(model.Product{Name: "Ripe Plantain Chips", PriceDisplay: "₦4,500", Image: "/uploads/p.jpg"}, 2)

	item, ok := c.Find("Ripe Plantain Chips")
	require.True(t, ok)
	assert.Equal(t, int64(4500), item.UnitPriceMinor)
	assert.Equal(t, "₦4,500", item.PriceDisplay)
	assert.Equal(t, "/uploads/p.jpg", item.Image)
	assert.Equal(t, 2, item.Quantity)
}

func TestNew_RepairsStoredItems(t *testing.T) {
	c := New([]model.LineItem{
		{ProductName: "A", UnitPriceMinor: 100, Quantity: 2},
		{ProductName: "A", UnitPriceMinor: 100, Quantity: 1},
		{ProductName: "B", UnitPriceMinor: 200, Quantity: 0},
		{ProductName: "C", UnitPriceMinor: 300, Quantity: math.MaxInt},
		{ProductName: "C", UnitPriceMinor: 300, Quantity: math.MaxInt},
	})

	items := c.Items()
	require.Len(t, items, 3)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, 1, items[1].Quantity)
	assert.Equal(t, money.MaxQuantity, items[2].Quantity)
}

func TestCart_ItemsIsACopy(t *testing.T) {
	c := New(nil)
	c.AddItem("A", 100, 1, "")

	items := c.Items()
	items[0].Quantity = 50

	item, _ := c.Find("A")
	assert.Equal(t, 1, item.Quantity)
}
