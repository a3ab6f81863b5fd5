package utils

import (
	"math"
	"strconv"
	"strings"
)

// FormatCurrency renders an amount as a dollar string with thousands
// separators, e.g. 4000 -> "$4,000", 1234.5 -> "$1,234.50". Whole
// amounts carry no decimal part; report snapshots store this string.
func FormatCurrency(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	cents := int64(math.Round(amount * 100))
	whole := cents / 100
	frac := cents % 100

	digits := strconv.FormatInt(whole, 10)
	var parts []string
	for len(digits) > 3 {
		parts = append([]string{digits[len(digits)-3:]}, parts...)
		digits = digits[:len(digits)-3]
	}
	parts = append([]string{digits}, parts...)

	result := "$" + strings.Join(parts, ",")
	if frac > 0 {
		result += "." + strconv.FormatInt(100+frac, 10)[1:]
	}
	if negative {
		result = "-" + result
	}
	return result
}

// CSVField quotes a value for the hand-built CSV export when it
// contains a comma, quote or newline.
func CSVField(value string) string {
	if strings.ContainsAny(value, ",\"\n") {
		return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
	}
	return value
}
