package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decp(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestAssetGainLossPercentage(t *testing.T) {
	asset := &Asset{
		CurrentValue:  dec("150"),
		PurchasePrice: decp("10"),
		Quantity:      decp("10"),
	}
	require.True(t, dec("50").Equal(asset.GainLoss()))
	require.True(t, dec("50").Equal(asset.GainLossPercentage()))
}

func TestAssetGainLossPercentageRoundsHalfUp(t *testing.T) {
	// 1/3 gain: 33.33...% rounds at the fourth decimal of the ratio.
	asset := &Asset{
		CurrentValue:  dec("400"),
		PurchasePrice: decp("300"),
		Quantity:      decp("1"),
	}
	require.True(t, dec("33.33").Equal(asset.GainLossPercentage()),
		"got %s", asset.GainLossPercentage())
}

func TestAssetGainLossWithoutPurchaseData(t *testing.T) {
	asset := &Asset{CurrentValue: dec("100")}
	require.Nil(t, asset.PurchaseValue())
	require.True(t, asset.GainLoss().IsZero())
	require.True(t, asset.GainLossPercentage().IsZero())

	// Quantity alone is not enough.
	asset.Quantity = decp("5")
	require.Nil(t, asset.PurchaseValue())
}

func TestAssetGainLossPercentageZeroPurchase(t *testing.T) {
	asset := &Asset{
		CurrentValue:  dec("100"),
		PurchasePrice: decp("0"),
		Quantity:      decp("10"),
	}
	require.True(t, asset.GainLossPercentage().IsZero())
}

func TestAssetNegativeGainLoss(t *testing.T) {
	asset := &Asset{
		CurrentValue:  dec("80"),
		PurchasePrice: decp("100"),
		Quantity:      decp("1"),
	}
	require.True(t, dec("-20").Equal(asset.GainLoss()))
	require.True(t, dec("-20").Equal(asset.GainLossPercentage()))
}
