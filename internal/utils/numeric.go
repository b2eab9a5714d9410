package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// LenientDecimal parses a user-supplied amount, coercing anything non-numeric
// (including the empty string) to zero. Coercion instead of rejection is the
// documented input policy for ledger amount fields.
func LenientDecimal(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
