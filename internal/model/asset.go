package model

import "github.com/shopspring/decimal"

type Asset struct {
	ID            string           `json:"id"`
	UserID        string           `json:"-"`
	Name          string           `json:"name"`
	AssetTypeID   string           `json:"asset_type_id"`
	CurrentValue  decimal.Decimal  `json:"current_value"`
	PurchasePrice *decimal.Decimal `json:"purchase_price,omitempty"`
	PurchaseDate  string           `json:"purchase_date,omitempty"`
	Quantity      *decimal.Decimal `json:"quantity,omitempty"`
	Description   string           `json:"description,omitempty"`
	Location      string           `json:"location,omitempty"`
	Currency      string           `json:"currency"`
	Illiquid      bool             `json:"illiquid"`
	Ctime         int64            `json:"ctime"`
	Mtime         int64            `json:"mtime"`
}

// PurchaseValue is purchase price times quantity, or nil when either is unset.
func (a *Asset) PurchaseValue() *decimal.Decimal {
	if a.PurchasePrice == nil || a.Quantity == nil {
		return nil
	}
	v := a.PurchasePrice.Mul(*a.Quantity)
	return &v
}

func (a *Asset) GainLoss() decimal.Decimal {
	purchase := a.PurchaseValue()
	if purchase == nil {
		return decimal.Zero
	}
	return a.CurrentValue.Sub(*purchase)
}

// GainLossPercentage returns gain/loss over the purchase value, rounded
// half-up to four decimals before the x100 scaling. Zero when the purchase
// value is unknown or non-positive.
func (a *Asset) GainLossPercentage() decimal.Decimal {
	purchase := a.PurchaseValue()
	if purchase == nil || a.PurchasePrice.Sign() <= 0 || purchase.Sign() <= 0 {
		return decimal.Zero
	}
	return a.GainLoss().DivRound(*purchase, 4).Mul(decimal.NewFromInt(100))
}
