package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/netly-app/netly/internal/model"
	appErr "github.com/netly-app/netly/internal/pkg/errors"
)

func budgetItem(itemType string, amount string, investment bool) *model.BudgetItem {
	return &model.BudgetItem{
		ItemType:     itemType,
		Amount:       decimal.RequireFromString(amount),
		IsInvestment: investment,
	}
}

func TestBudgetSummarySplitsInvestments(t *testing.T) {
	items := []*model.BudgetItem{
		budgetItem(model.BudgetItemIncome, "100000", false),
		budgetItem(model.BudgetItemExpense, "20000", true),
		budgetItem(model.BudgetItemExpense, "30000", false),
		budgetItem(model.BudgetItemExpense, "10000", false),
	}

	summary := summarizeBudget(items)

	require.True(t, summary.TotalIncome.Equal(decimal.RequireFromString("100000")))
	require.True(t, summary.TotalExpenses.Equal(decimal.RequireFromString("60000")))
	require.True(t, summary.TotalInvestments.Equal(decimal.RequireFromString("20000")))
	require.True(t, summary.TotalNonInvestmentExpenses.Equal(decimal.RequireFromString("40000")))
	require.True(t, summary.Surplus.Equal(decimal.RequireFromString("40000")))
	require.True(t, summary.InvestmentPercentage.Equal(decimal.RequireFromString("20")))
	require.True(t, summary.NonInvestmentExpensePercentage.Equal(decimal.RequireFromString("40")))
	require.True(t, summary.SurplusPercentage.Equal(decimal.RequireFromString("40")))
	require.Equal(t, 1, summary.IncomeCount)
	require.Equal(t, 3, summary.ExpenseCount)
}

func TestBudgetSummaryZeroIncome(t *testing.T) {
	items := []*model.BudgetItem{
		budgetItem(model.BudgetItemExpense, "5000", false),
	}

	summary := summarizeBudget(items)

	require.True(t, summary.TotalNonInvestmentExpenses.Equal(decimal.RequireFromString("5000")))
	require.True(t, summary.InvestmentPercentage.IsZero())
	require.True(t, summary.NonInvestmentExpensePercentage.IsZero())
	require.True(t, summary.SurplusPercentage.IsZero())
	require.True(t, summary.ExpensePercentage.IsZero())
}

func TestBudgetListByTypeRejectsUnknownType(t *testing.T) {
	svc := NewBudgetService(nil)

	_, err := svc.ListByType(context.Background(), "u1", "savings")
	require.ErrorIs(t, err, appErr.ErrInvalid)
}
