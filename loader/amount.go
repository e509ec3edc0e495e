package loader

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mvdouden/ledgerreport/ledger"
)

// ParseAmount parses an amount as printed by the ledger binary's unrounded
// display format: either "123.45 USD" (commodity follows the number) or
// "$123.45" (single-character symbol precedes it), optionally followed by a
// lot price in braces, e.g. "10 GOOG {700.00 USD}".
func ParseAmount(s string) (ledger.Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ledger.Amount{}, fmt.Errorf("empty amount")
	}

	var priceStr string
	if idx := strings.Index(s, "{"); idx >= 0 {
		end := strings.Index(s, "}")
		if end < idx {
			return ledger.Amount{}, fmt.Errorf("invalid amount %q: unterminated lot price", s)
		}
		priceStr = strings.TrimSpace(s[idx+1 : end])
		s = strings.TrimSpace(s[:idx])
	}

	var number decimal.Decimal
	var commodity *ledger.Commodity

	if s[0] >= '0' && s[0] <= '9' || s[0] == '-' {
		// Commodity follows the number.
		fields := strings.Fields(s)
		if len(fields) != 2 {
			return ledger.Amount{}, fmt.Errorf("invalid amount %q", s)
		}
		n, err := decimal.NewFromString(strings.ReplaceAll(fields[0], ",", ""))
		if err != nil {
			return ledger.Amount{}, fmt.Errorf("invalid amount %q: %w", s, err)
		}
		number = n
		commodity = &ledger.Commodity{
			Name:  strings.Trim(fields[1], `"`),
			Space: true,
		}
	} else {
		// Single-character symbol precedes the number.
		symbol := s[:1]
		n, err := decimal.NewFromString(strings.ReplaceAll(s[1:], ",", ""))
		if err != nil {
			return ledger.Amount{}, fmt.Errorf("invalid amount %q: %w", s, err)
		}
		number = n
		commodity = &ledger.Commodity{Name: symbol, Prefix: true}
	}

	if priceStr != "" {
		price, err := ParseAmount(priceStr)
		if err != nil {
			return ledger.Amount{}, fmt.Errorf("invalid lot price in %q: %w", s, err)
		}
		commodity.Price = &price
	}

	return ledger.NewAmount(number, commodity), nil
}
