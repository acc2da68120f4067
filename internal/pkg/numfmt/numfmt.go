// Package numfmt formats monetary amounts with Indian digit grouping:
// the last three integer digits form one group, every group before that has
// two digits (12345678.90 -> 1,23,45,678.90).
package numfmt

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCurrency renders an amount as "₹1,23,456.78". Negative amounts keep
// the sign in front of the currency symbol.
func FormatCurrency(amount decimal.Decimal) string {
	formatted := FormatNumber(amount)
	if strings.HasPrefix(formatted, "-") {
		return "-₹" + strings.TrimPrefix(formatted, "-")
	}
	return "₹" + formatted
}

// FormatNumber renders an amount with two decimal places and Indian grouping,
// without a currency symbol.
func FormatNumber(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)
	negative := strings.HasPrefix(fixed, "-")
	if negative {
		fixed = strings.TrimPrefix(fixed, "-")
	}
	parts := strings.SplitN(fixed, ".", 2)
	grouped := groupIndian(parts[0])
	result := grouped + "." + parts[1]
	if negative {
		return "-" + result
	}
	return result
}

func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var sb strings.Builder
	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]
	// head is consumed in two-digit groups from the right
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	sb.WriteString(strings.Join(groups, ","))
	sb.WriteString(",")
	sb.WriteString(tail)
	return sb.String()
}
