package model

import "github.com/shopspring/decimal"

type PortfolioSnapshot struct {
	ID               string          `json:"id"`
	UserID           string          `json:"-"`
	SnapshotDate     string          `json:"snapshot_date"`
	TotalAssets      decimal.Decimal `json:"total_assets"`
	TotalLiabilities decimal.Decimal `json:"total_liabilities"`
	NetWorth         decimal.Decimal `json:"net_worth"`
	TotalGains       decimal.Decimal `json:"total_gains"`
	Ctime            int64           `json:"ctime"`
}

type AssetSnapshot struct {
	ID            string          `json:"id"`
	SnapshotID    string          `json:"-"`
	AssetID       string          `json:"asset_id"`
	AssetName     string          `json:"asset_name"`
	AssetTypeName string          `json:"asset_type_name"`
	CurrentValue  decimal.Decimal `json:"current_value"`
	GainLoss      decimal.Decimal `json:"gain_loss"`
	Currency      string          `json:"currency"`
	ValueInINR    decimal.Decimal `json:"value_in_inr"`
}

type LiabilitySnapshot struct {
	ID                string          `json:"id"`
	SnapshotID        string          `json:"-"`
	LiabilityID       string          `json:"liability_id"`
	LiabilityName     string          `json:"liability_name"`
	LiabilityTypeName string          `json:"liability_type_name"`
	CurrentBalance    decimal.Decimal `json:"current_balance"`
	Currency          string          `json:"currency"`
	BalanceInINR      decimal.Decimal `json:"balance_in_inr"`
}
