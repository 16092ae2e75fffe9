package validate

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestHolderName(t *testing.T) {
	tests := []struct {
		name   string
		holder string
		want   bool
	}{
		{"plain name", "John Doe", true},
		{"two characters", "Jo", true},
		{"hundred characters", strings.Repeat("a", 100), true},
		{"empty", "", false},
		{"blank", "   ", false},
		{"single character", "J", false},
		{"over a hundred characters", strings.Repeat("a", 101), false},
		{"padded valid name", "  Jane Smith  ", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HolderName(tt.holder); got != tt.want {
				t.Errorf("HolderName(%q) = %v, want %v", tt.holder, got, tt.want)
			}
		})
	}
}

func TestAccountNumber(t *testing.T) {
	tests := []struct {
		name   string
		number string
		want   bool
	}{
		{"standard number", "CBL-00000001", true},
		{"longer sequence", "CBL-123456789", true},
		{"two character code", "AB-00000001", true},
		{"no dash", "CBL00000001", false},
		{"short code", "C-00000001", false},
		{"short sequence", "CBL-0000001", false},
		{"letters in sequence", "CBL-0000000A", false},
		{"symbol in code", "C!L-00000001", false},
		{"empty", "", false},
		{"word", "NONEXISTENT", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AccountNumber(tt.number); got != tt.want {
				t.Errorf("AccountNumber(%q) = %v, want %v", tt.number, got, tt.want)
			}
		})
	}
}

func TestInitialBalance(t *testing.T) {
	max := decimal.NewFromInt(1_000_000)
	tests := []struct {
		name    string
		balance decimal.Decimal
		want    bool
	}{
		{"zero", decimal.Zero, true},
		{"positive", decimal.NewFromInt(500), true},
		{"just under max", decimal.NewFromFloat(999_999.99), true},
		{"at max", max, false},
		{"over max", decimal.NewFromInt(2_000_000), false},
		{"negative", decimal.NewFromInt(-1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InitialBalance(tt.balance, max); got != tt.want {
				t.Errorf("InitialBalance(%s) = %v, want %v", tt.balance, got, tt.want)
			}
		})
	}
}

func TestAmount(t *testing.T) {
	tests := []struct {
		name   string
		amount decimal.Decimal
		want   bool
	}{
		{"positive", decimal.NewFromInt(10), true},
		{"fractional cent", decimal.NewFromFloat(0.01), true},
		{"zero", decimal.Zero, false},
		{"negative", decimal.NewFromInt(-10), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Amount(tt.amount); got != tt.want {
				t.Errorf("Amount(%s) = %v, want %v", tt.amount, got, tt.want)
			}
		})
	}
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount decimal.Decimal
		want   string
	}{
		{decimal.NewFromInt(1000), "$1000.00"},
		{decimal.NewFromFloat(12.5), "$12.50"},
		{decimal.Zero, "$0.00"},
		{decimal.NewFromFloat(-3.25), "$-3.25"},
	}
	for _, tt := range tests {
		if got := FormatCurrency(tt.amount); got != tt.want {
			t.Errorf("FormatCurrency(%s) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}
