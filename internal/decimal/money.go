package decimal

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Zero is decimal zero
var Zero = decimal.Zero

var hundred = decimal.NewFromInt(100)

// Null is the unknown amount
var Null = decimal.NullDecimal{}

// FromInt creates decimal from int
func FromInt(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

// Parse parses trimmed text, reporting false for empty or non-numeric input
func Parse(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero, false
	}
	return d, true
}

// OrZero parses text and falls back to zero
func OrZero(s string) decimal.Decimal {
	d, _ := Parse(s)
	return d
}

// Nullable parses text into a NullDecimal that is invalid on failure
func Nullable(s string) decimal.NullDecimal {
	d, ok := Parse(s)
	if !ok {
		return Null
	}
	return decimal.NewNullDecimal(d)
}

// Known wraps a value as a valid NullDecimal
func Known(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NewNullDecimal(d)
}

// MustFromString parses decimal from string, panics on error
func MustFromString(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Round2 rounds half away from zero to two decimal places
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// PercentOf computes base * percent / 100 rounded to two decimals
func PercentOf(base, percent decimal.Decimal) decimal.Decimal {
	return Round2(base.Mul(percent).Div(hundred))
}

// Sum sums a slice of decimals
func Sum(values []decimal.Decimal) decimal.Decimal {
	result := Zero
	for _, v := range values {
		result = result.Add(v)
	}
	return result
}

// SumAbs sums absolute values
func SumAbs(values []decimal.Decimal) decimal.Decimal {
	result := Zero
	for _, v := range values {
		result = result.Add(v.Abs())
	}
	return result
}

// NonZero returns an invalid NullDecimal for zero so "nothing" and
// "something summing to zero" stay distinguishable upstream
func NonZero(d decimal.Decimal) decimal.NullDecimal {
	if d.IsZero() {
		return Null
	}
	return Known(d)
}

// First returns the first valid candidate, evaluated in order
func First(candidates ...decimal.NullDecimal) decimal.NullDecimal {
	for _, c := range candidates {
		if c.Valid {
			return c
		}
	}
	return Null
}

// Equal reports whether a and b differ by at most tolerance
func Equal(a, b, tolerance decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(tolerance)
}
