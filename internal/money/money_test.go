package money

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name     string
		display  string
		expected int64
	}{
		{name: "Naira with thousands separator", display: "₦4,500", expected: 4500},
		{name: "Plain digits", display: "2000", expected: 2000},
		{name: "Surrounding decoration", display: "NGN 12 000 only", expected: 12000},
		{name: "Decimal point is discarded", display: "4,500.50", expected: 450050},
		{name: "Dot as thousands separator", display: "4.500", expected: 4500},
		{name: "No digits", display: "free", expected: 0},
		{name: "Empty", display: "", expected: 0},
		{name: "Non-ASCII digits ignored", display: "٤٥٠٠", expected: 0},
		{name: "Overflow saturates", display: "99999999999999999999999", expected: math.MaxInt64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParsePrice(tt.display))
		})
	}
}

func TestClampQuantity(t *testing.T) {
	assert.Equal(t, 1, ClampQuantity(-5))
	assert.Equal(t, 1, ClampQuantity(0))
	assert.Equal(t, 1, ClampQuantity(1))
	assert.Equal(t, 42, ClampQuantity(42))
	assert.Equal(t, MaxQuantity, ClampQuantity(MaxQuantity+1))
	assert.Equal(t, MaxQuantity, ClampQuantity(math.MaxInt))
}

func TestAddQuantity(t *testing.T) {
	assert.Equal(t, 5, AddQuantity(2, 3))
	assert.Equal(t, 3, AddQuantity(2, -4))
	assert.Equal(t, MaxQuantity, AddQuantity(MaxQuantity, 1))
	assert.Equal(t, MaxQuantity, AddQuantity(math.MaxInt, math.MaxInt))
}

func TestSaturatingArithmetic(t *testing.T) {
	tests := []struct {
		name     string
		got      int64
		expected int64
	}{
		{name: "Add", got: SaturatingAdd(4500, 3000), expected: 7500},
		{name: "Add overflows high", got: SaturatingAdd(math.MaxInt64, 1), expected: math.MaxInt64},
		{name: "Add overflows low", got: SaturatingAdd(math.MinInt64, -1), expected: math.MinInt64},
		{name: "Add mixed signs", got: SaturatingAdd(math.MaxInt64, math.MinInt64), expected: -1},
		{name: "Mul", got: SaturatingMul(2500, 4), expected: 10000},
		{name: "Mul by zero", got: SaturatingMul(math.MaxInt64, 0), expected: 0},
		{name: "Mul overflows high", got: SaturatingMul(1<<62, 4), expected: math.MaxInt64},
		{name: "Mul overflows low", got: SaturatingMul(-(1 << 62), 4), expected: math.MinInt64},
		{name: "Mul negatives overflow high", got: SaturatingMul(math.MinInt64, -1), expected: math.MaxInt64},
		{name: "Mul max price by max quantity", got: SaturatingMul(math.MaxInt64, MaxQuantity), expected: math.MaxInt64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.got)
		})
	}
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		raw      string
		expected int
	}{
		{"3", 3},
		{" 7 ", 7},
		{"", 1},
		{"abc", 1},
		{"0", 1},
		{"-2", 1},
		{"2.5", 1},
		{"99999999", MaxQuantity},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseQuantity(tt.raw))
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		amount   int64
		expected string
	}{
		{0, "₦0"},
		{999, "₦999"},
		{4500, "₦4,500"},
		{13500, "₦13,500"},
		{1234567, "₦1,234,567"},
		{-2000, "-₦2,000"},
		{math.MinInt64, "-₦9,223,372,036,854,775,808"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.amount))
		})
	}
}

func TestFormatRoundTripsThroughParsePrice(t *testing.T) {
	for _, amount := range []int64{0, 5, 4500, 13500, 987654321} {
		assert.Equal(t, amount, ParsePrice(Format(amount)))
	}
}
