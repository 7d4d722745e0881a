package builder

import (
	"math"
	"strings"
)

var onesWords = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tensWords = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy",
	"Eighty", "Ninety",
}

// AmountInWords spells a rupee amount in the Indian numbering system
// (crore/lakh/thousand), e.g. 12345678.50 becomes
// "Rupees One Crore Twenty Three Lakh Forty Five Thousand Six Hundred
// Seventy Eight and Fifty Paise Only".
func AmountInWords(amount float64) string {
	negative := amount < 0
	amount = math.Abs(amount)

	rupees := int64(amount)
	paise := int64(math.Round((amount - float64(rupees)) * 100))
	if paise == 100 {
		rupees++
		paise = 0
	}

	var b strings.Builder
	b.WriteString("Rupees ")
	if negative {
		b.WriteString("Minus ")
	}
	if rupees == 0 {
		b.WriteString("Zero")
	} else {
		b.WriteString(indianWords(rupees))
	}
	if paise > 0 {
		b.WriteString(" and ")
		b.WriteString(indianWords(paise))
		b.WriteString(" Paise")
	}
	b.WriteString(" Only")
	return b.String()
}

// indianWords spells a positive integer using crore/lakh/thousand groups.
// Amounts of a hundred crore or more recurse on the crore count.
func indianWords(n int64) string {
	var parts []string

	if crore := n / 10000000; crore > 0 {
		parts = append(parts, indianWords(crore), "Crore")
		n %= 10000000
	}
	if lakh := n / 100000; lakh > 0 {
		parts = append(parts, belowThousand(int(lakh)), "Lakh")
		n %= 100000
	}
	if thousand := n / 1000; thousand > 0 {
		parts = append(parts, belowThousand(int(thousand)), "Thousand")
		n %= 1000
	}
	if n > 0 {
		parts = append(parts, belowThousand(int(n)))
	}

	return strings.Join(parts, " ")
}

func belowThousand(n int) string {
	var parts []string
	if n >= 100 {
		parts = append(parts, onesWords[n/100], "Hundred")
		n %= 100
	}
	if n >= 20 {
		parts = append(parts, tensWords[n/10])
		n %= 10
	}
	if n > 0 {
		parts = append(parts, onesWords[n])
	}
	return strings.Join(parts, " ")
}
