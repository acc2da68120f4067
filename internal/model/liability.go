package model

import "github.com/shopspring/decimal"

type Liability struct {
	ID              string           `json:"id"`
	UserID          string           `json:"-"`
	Name            string           `json:"name"`
	LiabilityTypeID string           `json:"liability_type_id"`
	CurrentBalance  decimal.Decimal  `json:"current_balance"`
	OriginalAmount  *decimal.Decimal `json:"original_amount,omitempty"`
	StartDate       string           `json:"start_date,omitempty"`
	EndDate         string           `json:"end_date,omitempty"`
	InterestRate    *decimal.Decimal `json:"interest_rate,omitempty"`
	MonthlyPayment  *decimal.Decimal `json:"monthly_payment,omitempty"`
	Lender          string           `json:"lender,omitempty"`
	Description     string           `json:"description,omitempty"`
	Currency        string           `json:"currency"`
	Ctime           int64            `json:"ctime"`
	Mtime           int64            `json:"mtime"`
}

func (l *Liability) PaidAmount() decimal.Decimal {
	if l.OriginalAmount == nil {
		return decimal.Zero
	}
	return l.OriginalAmount.Sub(l.CurrentBalance)
}

func (l *Liability) RepaymentPercentage() decimal.Decimal {
	if l.OriginalAmount == nil || l.OriginalAmount.Sign() <= 0 {
		return decimal.Zero
	}
	return l.PaidAmount().DivRound(*l.OriginalAmount, 4).Mul(decimal.NewFromInt(100))
}
