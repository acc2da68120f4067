package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/netly-app/netly/internal/model"
)

func historySnapshots() []*model.PortfolioSnapshot {
	return []*model.PortfolioSnapshot{
		{
			ID:               "s1",
			SnapshotDate:     "2026-08-10",
			TotalAssets:      decimal.RequireFromString("100000"),
			TotalLiabilities: decimal.RequireFromString("40000"),
			NetWorth:         decimal.RequireFromString("60000"),
			TotalGains:       decimal.RequireFromString("5000"),
		},
		{
			ID:               "s2",
			SnapshotDate:     "2026-08-17",
			TotalAssets:      decimal.RequireFromString("110000"),
			TotalLiabilities: decimal.RequireFromString("38000"),
			NetWorth:         decimal.RequireFromString("72000"),
			TotalGains:       decimal.RequireFromString("8000"),
		},
	}
}

func TestPortfolioHistorySeries(t *testing.T) {
	history := buildPortfolioHistory(historySnapshots())

	require.Equal(t, []string{"2026-08-10", "2026-08-17"}, history.Dates)
	require.Len(t, history.TotalAssets, 2)
	require.True(t, history.TotalAssets[0].Equal(decimal.RequireFromString("100000")))
	require.True(t, history.TotalAssets[1].Equal(decimal.RequireFromString("110000")))
	require.True(t, history.NetWorth[1].Equal(decimal.RequireFromString("72000")))
	require.True(t, history.TotalGains[0].Equal(decimal.RequireFromString("5000")))
	require.True(t, history.TotalLiabilities[0].Equal(decimal.RequireFromString("40000")))
}

func TestPortfolioHistoryEmpty(t *testing.T) {
	history := buildPortfolioHistory(nil)

	require.NotNil(t, history.Dates)
	require.NotNil(t, history.TotalAssets)
	require.NotNil(t, history.TotalLiabilities)
	require.NotNil(t, history.NetWorth)
	require.NotNil(t, history.TotalGains)
	require.Empty(t, history.Dates)
}

func TestAssetHistorySeries(t *testing.T) {
	svc := &SnapshotService{currency: NewCurrencyService(nil)}
	rates := map[string]decimal.Decimal{"USD": decimal.RequireFromString("80")}
	// Rows exist for the first date only; the second date becomes a zero
	// point so the chart keeps an entry per snapshot.
	rows := []*model.AssetSnapshot{
		{
			SnapshotID: "s1",
			AssetID:    "a1",
			Currency:   "USD",
			ValueInINR: decimal.RequireFromString("80000"),
			GainLoss:   decimal.RequireFromString("100"),
		},
		{
			SnapshotID: "s1",
			AssetID:    "a2",
			Currency:   "INR",
			ValueInINR: decimal.RequireFromString("5000"),
			GainLoss:   decimal.RequireFromString("500"),
		},
	}

	history, err := svc.buildAssetHistory(historySnapshots(), rows, rates)
	require.NoError(t, err)

	require.Equal(t, []string{"2026-08-10", "2026-08-17"}, history.Dates)
	require.True(t, history.TotalAssets[0].Equal(decimal.RequireFromString("85000")))
	require.True(t, history.TotalAssets[1].IsZero())
	// 100 USD at rate 80 plus 500 INR.
	require.True(t, history.TotalGains[0].Equal(decimal.RequireFromString("8500")))
	require.Empty(t, history.TotalLiabilities)
	require.Empty(t, history.NetWorth)
}

func TestLiabilityHistorySeries(t *testing.T) {
	rows := []*model.LiabilitySnapshot{
		{SnapshotID: "s1", LiabilityID: "l1", BalanceInINR: decimal.RequireFromString("30000")},
		{SnapshotID: "s2", LiabilityID: "l1", BalanceInINR: decimal.RequireFromString("28000")},
		{SnapshotID: "s2", LiabilityID: "l2", BalanceInINR: decimal.RequireFromString("1000")},
	}

	history := buildLiabilityHistory(historySnapshots(), rows)

	require.Equal(t, []string{"2026-08-10", "2026-08-17"}, history.Dates)
	require.True(t, history.TotalLiabilities[0].Equal(decimal.RequireFromString("30000")))
	require.True(t, history.TotalLiabilities[1].Equal(decimal.RequireFromString("29000")))
	require.Empty(t, history.TotalAssets)
	require.Empty(t, history.NetWorth)
}
