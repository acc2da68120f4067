package numfmt

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestFormatCurrency(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "₹0.00"},
		{"5", "₹5.00"},
		{"123.4", "₹123.40"},
		{"1234", "₹1,234.00"},
		{"12345", "₹12,345.00"},
		{"123456", "₹1,23,456.00"},
		{"1234567.89", "₹12,34,567.89"},
		{"12345678", "₹1,23,45,678.00"},
		{"-123456.78", "-₹1,23,456.78"},
	}
	for _, tc := range cases {
		d, err := decimal.NewFromString(tc.in)
		require.NoError(t, err)
		require.Equal(t, tc.want, FormatCurrency(d), "input %s", tc.in)
	}
}

func TestFormatNumber(t *testing.T) {
	d := decimal.RequireFromString("9876543.21")
	require.Equal(t, "98,76,543.21", FormatNumber(d))
	require.Equal(t, "0.00", FormatNumber(decimal.Zero))
}
