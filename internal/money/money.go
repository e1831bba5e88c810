// Package money parses and formats the storefront's display prices.
//
// Amounts are whole currency units with no fixed minor-unit subdivision:
// "₦4,500" parses to 4500.
package money

import (
	"math"
	"strconv"
	"strings"
)

// CurrencySymbol prefixes formatted amounts.
const CurrencySymbol = "₦"

// MaxQuantity is the largest quantity a single cart line may hold.
const MaxQuantity = 10000

// ParsePrice strips every character that is not an ASCII decimal digit and
// parses the rest as a base-10 integer. It returns 0 when no digits remain.
//
// The parse is lossy: "4,500", "4.500" and "45.00" all yield digits only, so
// "4,500.50" becomes 450050. Values too large for int64 saturate.
func ParsePrice(display string) int64 {
	var digits strings.Builder
	for _, r := range display {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0
	}
	// On overflow ParseInt returns the max value with ErrRange.
	n, _ := strconv.ParseInt(digits.String(), 10, 64)
	return n
}

// ClampQuantity limits n to the range [1, MaxQuantity].
func ClampQuantity(n int) int {
	if n < 1 {
		return 1
	}
	return min(n, MaxQuantity)
}

// AddQuantity adds delta to a line quantity, clamping the result.
func AddQuantity(quantity, delta int) int {
	quantity, delta = ClampQuantity(quantity), ClampQuantity(delta)
	return ClampQuantity(quantity + delta)
}

// SaturatingAdd returns a+b, pinned to the int64 range instead of wrapping.
func SaturatingAdd(a, b int64) int64 {
	sum := a + b
	switch {
	case a > 0 && b > 0 && sum < 0:
		return math.MaxInt64
	case a < 0 && b < 0 && sum >= 0:
		return math.MinInt64
	}
	return sum
}

// SaturatingMul returns a*b, pinned to the int64 range instead of wrapping.
func SaturatingMul(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	product := a * b
	if product/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		if (a < 0) == (b < 0) {
			return math.MaxInt64
		}
		return math.MinInt64
	}
	return product
}

// ParseQuantity reads a quantity from user input. Missing or non-numeric
// input defaults to 1.
func ParseQuantity(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 1
	}
	return ClampQuantity(n)
}

// Format renders an amount with the currency symbol and thousands separators,
// e.g. 13500 -> "₦13,500".
func Format(amount int64) string {
	sign := ""
	u := uint64(amount)
	if amount < 0 {
		sign = "-"
		u = uint64(-(amount + 1)) + 1
	}

	s := strconv.FormatUint(u, 10)
	var b strings.Builder
	b.WriteString(sign)
	b.WriteString(CurrencySymbol)
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > len(sign)+len(CurrencySymbol) {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
