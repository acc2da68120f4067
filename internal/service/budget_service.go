package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/netly-app/netly/internal/model"
	appErr "github.com/netly-app/netly/internal/pkg/errors"
	"github.com/netly-app/netly/internal/pkg/timeutil"
	"github.com/netly-app/netly/internal/repo"
)

type BudgetService struct {
	items *repo.BudgetRepo
}

func NewBudgetService(items *repo.BudgetRepo) *BudgetService {
	return &BudgetService{items: items}
}

type BudgetItemInput struct {
	ItemType     string          `json:"item_type"`
	ItemName     string          `json:"item_name"`
	Amount       decimal.Decimal `json:"amount"`
	IsInvestment bool            `json:"is_investment"`
	Description  string          `json:"description"`
	DisplayOrder int             `json:"display_order"`
}

func (in *BudgetItemInput) validate() error {
	if !model.ValidBudgetItemType(in.ItemType) {
		return fmt.Errorf("%w: item_type must be %s or %s", appErr.ErrInvalid,
			model.BudgetItemIncome, model.BudgetItemExpense)
	}
	if in.ItemName == "" {
		return fmt.Errorf("%w: item_name is required", appErr.ErrInvalid)
	}
	if in.Amount.Sign() < 0 {
		return fmt.Errorf("%w: amount must not be negative", appErr.ErrInvalid)
	}
	return nil
}

func (s *BudgetService) Create(ctx context.Context, userID string, in *BudgetItemInput) (*model.BudgetItem, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	now := timeutil.NowUnix()
	item := &model.BudgetItem{
		ID:           newID(),
		UserID:       userID,
		ItemType:     in.ItemType,
		ItemName:     in.ItemName,
		Amount:       in.Amount,
		IsInvestment: in.IsInvestment,
		Description:  in.Description,
		DisplayOrder: in.DisplayOrder,
		Ctime:        now,
		Mtime:        now,
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *BudgetService) Update(ctx context.Context, userID, itemID string, in *BudgetItemInput) (*model.BudgetItem, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	item, err := s.items.GetByID(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	item.ItemType = in.ItemType
	item.ItemName = in.ItemName
	item.Amount = in.Amount
	item.IsInvestment = in.IsInvestment
	item.Description = in.Description
	item.DisplayOrder = in.DisplayOrder
	item.Mtime = timeutil.NowUnix()
	if err := s.items.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *BudgetService) Delete(ctx context.Context, userID, itemID string) error {
	return s.items.Delete(ctx, userID, itemID)
}

func (s *BudgetService) Get(ctx context.Context, userID, itemID string) (*model.BudgetItem, error) {
	return s.items.GetByID(ctx, userID, itemID)
}

func (s *BudgetService) List(ctx context.Context, userID string) ([]*model.BudgetItem, error) {
	return s.items.ListByUser(ctx, userID)
}

// ListByType returns the items of one side of the plan. The type is
// matched case-insensitively so the path segment can be lowercase.
func (s *BudgetService) ListByType(ctx context.Context, userID, itemType string) ([]*model.BudgetItem, error) {
	itemType = strings.ToUpper(itemType)
	if !model.ValidBudgetItemType(itemType) {
		return nil, fmt.Errorf("%w: item_type must be %s or %s", appErr.ErrInvalid,
			model.BudgetItemIncome, model.BudgetItemExpense)
	}
	return s.items.ListByUserAndType(ctx, userID, itemType)
}

type BudgetSummary struct {
	TotalIncome                    decimal.Decimal `json:"total_income"`
	TotalExpenses                  decimal.Decimal `json:"total_expenses"`
	TotalInvestments               decimal.Decimal `json:"total_investments"`
	TotalNonInvestmentExpenses     decimal.Decimal `json:"total_non_investment_expenses"`
	Surplus                        decimal.Decimal `json:"surplus"`
	InvestmentPercentage           decimal.Decimal `json:"investment_percentage"`
	NonInvestmentExpensePercentage decimal.Decimal `json:"non_investment_expense_percentage"`
	SurplusPercentage              decimal.Decimal `json:"surplus_percentage"`
	ExpensePercentage              decimal.Decimal `json:"expense_percentage"`
	IncomeCount                    int             `json:"income_count"`
	ExpenseCount                   int             `json:"expense_count"`
}

// Summary totals the monthly plan. Expenses split into investments (the
// items flagged as such) and the rest; all percentages are over total
// income and collapse to zero when income is zero.
func (s *BudgetService) Summary(ctx context.Context, userID string) (*BudgetSummary, error) {
	items, err := s.items.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return summarizeBudget(items), nil
}

func summarizeBudget(items []*model.BudgetItem) *BudgetSummary {
	summary := &BudgetSummary{}
	for _, item := range items {
		switch item.ItemType {
		case model.BudgetItemIncome:
			summary.TotalIncome = summary.TotalIncome.Add(item.Amount)
			summary.IncomeCount++
		case model.BudgetItemExpense:
			summary.TotalExpenses = summary.TotalExpenses.Add(item.Amount)
			summary.ExpenseCount++
			if item.IsInvestment {
				summary.TotalInvestments = summary.TotalInvestments.Add(item.Amount)
			} else {
				summary.TotalNonInvestmentExpenses = summary.TotalNonInvestmentExpenses.Add(item.Amount)
			}
		}
	}
	summary.Surplus = summary.TotalIncome.Sub(summary.TotalExpenses)
	summary.InvestmentPercentage = ratio(summary.TotalInvestments, summary.TotalIncome)
	summary.NonInvestmentExpensePercentage = ratio(summary.TotalNonInvestmentExpenses, summary.TotalIncome)
	summary.SurplusPercentage = ratio(summary.Surplus, summary.TotalIncome)
	summary.ExpensePercentage = ratio(summary.TotalExpenses, summary.TotalIncome)
	return summary
}
