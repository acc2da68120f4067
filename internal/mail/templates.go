package mail

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/shopspring/decimal"

	"github.com/netly-app/netly/internal/pkg/numfmt"
)

//go:embed templates/*.html
var templatesFS embed.FS

var tmpl = template.Must(template.New("mail").Funcs(template.FuncMap{
	"currency": numfmt.FormatCurrency,
	"number":   numfmt.FormatNumber,
}).ParseFS(templatesFS, "templates/*.html"))

type OTPEmailData struct {
	Name              string
	Code              string
	Purpose           string
	ExpirationMinutes int
}

type ReportLine struct {
	Name     string
	TypeName string
	Amount   decimal.Decimal
	GainLoss decimal.Decimal
}

type PortfolioReportData struct {
	Name                  string
	ReportDate            string
	NetWorth              decimal.Decimal
	TotalAssets           decimal.Decimal
	TotalLiabilities      decimal.Decimal
	TotalGainLoss         decimal.Decimal
	GainLossPercentage    decimal.Decimal
	Assets                []ReportLine
	Liabilities           []ReportLine
}

type BudgetReportData struct {
	Name                           string
	ReportDate                     string
	TotalIncome                    decimal.Decimal
	TotalExpenses                  decimal.Decimal
	TotalInvestments               decimal.Decimal
	TotalNonInvestmentExpenses     decimal.Decimal
	TotalSurplus                   decimal.Decimal
	InvestmentPercentage           decimal.Decimal
	NonInvestmentExpensePercentage decimal.Decimal
	SurplusOrDeficitRate           decimal.Decimal
	IncomeItems                    []ReportLine
	ExpenseItems                   []ReportLine
}

func RenderOTPEmail(data OTPEmailData) (string, error) {
	return render("otp.html", data)
}

func RenderPortfolioReport(data PortfolioReportData) (string, error) {
	return render("portfolio_report.html", data)
}

func RenderBudgetReport(data BudgetReportData) (string, error) {
	return render("budget_report.html", data)
}

func render(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}
