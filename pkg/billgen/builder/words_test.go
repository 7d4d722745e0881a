package builder

import "testing"

func TestAmountInWords(t *testing.T) {
	tests := []struct {
		amount   float64
		expected string
	}{
		{0, "Rupees Zero Only"},
		{1, "Rupees One Only"},
		{21, "Rupees Twenty One Only"},
		{105, "Rupees One Hundred Five Only"},
		{1000, "Rupees One Thousand Only"},
		{55000, "Rupees Fifty Five Thousand Only"},
		{100000, "Rupees One Lakh Only"},
		{536475, "Rupees Five Lakh Thirty Six Thousand Four Hundred Seventy Five Only"},
		{10000000, "Rupees One Crore Only"},
		{12345678.5, "Rupees One Crore Twenty Three Lakh Forty Five Thousand Six Hundred Seventy Eight and Fifty Paise Only"},
		{2500000000, "Rupees Two Hundred Fifty Crore Only"},
		{-150, "Rupees Minus One Hundred Fifty Only"},
		{1.25, "Rupees One and Twenty Five Paise Only"},
	}

	for _, tt := range tests {
		if got := AmountInWords(tt.amount); got != tt.expected {
			t.Errorf("AmountInWords(%v) = %q, expected %q", tt.amount, got, tt.expected)
		}
	}
}
