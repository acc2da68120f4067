package model

import "github.com/shopspring/decimal"

const (
	BudgetItemIncome  = "INCOME"
	BudgetItemExpense = "EXPENSE"
)

type BudgetItem struct {
	ID           string          `json:"id"`
	UserID       string          `json:"-"`
	ItemType     string          `json:"item_type"`
	ItemName     string          `json:"item_name"`
	Amount       decimal.Decimal `json:"amount"`
	IsInvestment bool            `json:"is_investment"`
	Description  string          `json:"description,omitempty"`
	DisplayOrder int             `json:"display_order"`
	Ctime        int64           `json:"ctime"`
	Mtime        int64           `json:"mtime"`
}

func ValidBudgetItemType(t string) bool {
	return t == BudgetItemIncome || t == BudgetItemExpense
}
