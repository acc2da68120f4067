package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	appErr "github.com/netly-app/netly/internal/pkg/errors"
)

func TestCurrencyConvert(t *testing.T) {
	svc := NewCurrencyService(nil)
	rates := map[string]decimal.Decimal{
		"INR": decimal.NewFromInt(1),
		"USD": decimal.RequireFromString("83.5"),
	}

	got, err := svc.Convert(decimal.RequireFromString("100"), "USD", rates)
	require.NoError(t, err)
	require.True(t, decimal.RequireFromString("8350").Equal(got))
}

func TestCurrencyConvertPassthrough(t *testing.T) {
	svc := NewCurrencyService(nil)
	amount := decimal.RequireFromString("42.42")

	got, err := svc.Convert(amount, "INR", nil)
	require.NoError(t, err)
	require.True(t, amount.Equal(got))

	// Case-insensitive match on the reporting currency.
	got, err = svc.Convert(amount, "inr", nil)
	require.NoError(t, err)
	require.True(t, amount.Equal(got))

	got, err = svc.Convert(amount, "", nil)
	require.NoError(t, err)
	require.True(t, amount.Equal(got))
}

func TestCurrencyConvertMissingRate(t *testing.T) {
	svc := NewCurrencyService(nil)
	_, err := svc.Convert(decimal.NewFromInt(10), "JPY", map[string]decimal.Decimal{})
	require.ErrorIs(t, err, appErr.ErrInvalid)
	require.Contains(t, err.Error(), "JPY")
}

func TestRatio(t *testing.T) {
	require.True(t, decimal.RequireFromString("25").Equal(
		ratio(decimal.NewFromInt(1), decimal.NewFromInt(4))))
	require.True(t, ratio(decimal.NewFromInt(5), decimal.Zero).IsZero())
	require.True(t, ratio(decimal.NewFromInt(5), decimal.NewFromInt(-10)).IsZero())
	// Half-up at the fourth decimal place of the quotient.
	require.True(t, decimal.RequireFromString("66.67").Equal(
		ratio(decimal.NewFromInt(2), decimal.NewFromInt(3))),
		"got %s", ratio(decimal.NewFromInt(2), decimal.NewFromInt(3)))
}
