package mail

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestRenderOTPEmail(t *testing.T) {
	body, err := RenderOTPEmail(OTPEmailData{
		Name:              "Asha",
		Code:              "123456",
		Purpose:           "log in to your account",
		ExpirationMinutes: 5,
	})
	require.NoError(t, err)
	require.Contains(t, body, "123456")
	require.Contains(t, body, "Asha")
	require.Contains(t, body, "5")
}

func TestRenderPortfolioReport(t *testing.T) {
	body, err := RenderPortfolioReport(PortfolioReportData{
		Name:             "Asha",
		ReportDate:       "2026-08-30",
		NetWorth:         decimal.RequireFromString("1234567.89"),
		TotalAssets:      decimal.RequireFromString("1500000"),
		TotalLiabilities: decimal.RequireFromString("265432.11"),
		Assets: []ReportLine{
			{Name: "Index Fund", TypeName: "Mutual Funds", Amount: decimal.RequireFromString("1500000")},
		},
		Liabilities: []ReportLine{
			{Name: "Home Loan", TypeName: "Home Loan", Amount: decimal.RequireFromString("265432.11")},
		},
	})
	require.NoError(t, err)
	// Amounts render with Indian digit grouping.
	require.Contains(t, body, "₹12,34,567.89")
	require.Contains(t, body, "Index Fund")
	require.Contains(t, body, "Home Loan")
}

func TestRenderBudgetReport(t *testing.T) {
	body, err := RenderBudgetReport(BudgetReportData{
		Name:          "Asha",
		ReportDate:    "2026-08-30",
		TotalIncome:   decimal.RequireFromString("200000"),
		TotalExpenses: decimal.RequireFromString("120000"),
		TotalSurplus:  decimal.RequireFromString("80000"),
		IncomeItems: []ReportLine{
			{Name: "Salary", Amount: decimal.RequireFromString("200000")},
		},
		ExpenseItems: []ReportLine{
			{Name: "Rent", Amount: decimal.RequireFromString("40000")},
		},
	})
	require.NoError(t, err)
	require.Contains(t, body, "₹2,00,000.00")
	require.Contains(t, body, "Salary")
	require.Contains(t, body, "Rent")
}
