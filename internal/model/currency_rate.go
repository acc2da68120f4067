package model

import "github.com/shopspring/decimal"

// ReportingCurrency is the unit of account all amounts are converted into
// before aggregation. Its conversion rate is fixed at 1.
const ReportingCurrency = "INR"

type CurrencyRate struct {
	ID           string          `json:"id"`
	UserID       string          `json:"-"`
	CurrencyCode string          `json:"currency_code"`
	CurrencyName string          `json:"currency_name"`
	RateToINR    decimal.Decimal `json:"rate_to_inr"`
	IsActive     bool            `json:"is_active"`
	Ctime        int64           `json:"ctime"`
	Mtime        int64           `json:"mtime"`
}
