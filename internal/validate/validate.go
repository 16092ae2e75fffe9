// Package validate holds the pure validation and formatting rules the ledger
// applies at its boundaries. Nothing here touches shared state.
package validate

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	minHolderLen = 2
	maxHolderLen = 100
)

// HolderName accepts names between 2 and 100 characters that are not blank.
func HolderName(name string) bool {
	trimmed := strings.TrimSpace(name)
	return len(trimmed) >= minHolderLen && len(trimmed) <= maxHolderLen
}

// AccountNumber accepts ids of the form CODE-NNNNNNNN: an alphanumeric code
// of at least two characters, a dash, and at least eight digits.
func AccountNumber(number string) bool {
	code, seq, ok := strings.Cut(number, "-")
	if !ok || len(code) < 2 || len(seq) < 8 {
		return false
	}
	for _, c := range code {
		if !isAlnum(c) {
			return false
		}
	}
	for _, c := range seq {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// InitialBalance accepts balances in [0, max).
func InitialBalance(v, max decimal.Decimal) bool {
	return v.Sign() >= 0 && v.LessThan(max)
}

// Amount accepts strictly positive operation amounts.
func Amount(v decimal.Decimal) bool {
	return v.Sign() > 0
}

// FormatCurrency renders an amount as $X.XX for reports and audit lines.
func FormatCurrency(v decimal.Decimal) string {
	return "$" + v.StringFixed(2)
}

func isAlnum(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
