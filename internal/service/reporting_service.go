package service

import (
	"context"
	"fmt"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/netly-app/netly/internal/filestore"
	"github.com/netly-app/netly/internal/mail"
	"github.com/netly-app/netly/internal/model"
	"github.com/netly-app/netly/internal/pkg/timeutil"
	"github.com/netly-app/netly/internal/repo"
)

// ReportingService renders the portfolio and budget reports, queues them
// for email delivery and archives the rendered HTML.
type ReportingService struct {
	users       *repo.UserRepo
	assets      *AssetService
	liabilities *LiabilityService
	budget      *BudgetService
	currency    *CurrencyService
	config      *ConfigurationService
	assetRepo   *repo.AssetRepo
	liabRepo    *repo.LiabilityRepo
	mailer      Mailer
	archive     filestore.Store
}

func NewReportingService(users *repo.UserRepo, assets *AssetService,
	liabilities *LiabilityService, budget *BudgetService, currency *CurrencyService,
	config *ConfigurationService, assetRepo *repo.AssetRepo, liabRepo *repo.LiabilityRepo,
	mailer Mailer, archive filestore.Store) *ReportingService {
	return &ReportingService{
		users:       users,
		assets:      assets,
		liabilities: liabilities,
		budget:      budget,
		currency:    currency,
		config:      config,
		assetRepo:   assetRepo,
		liabRepo:    liabRepo,
		mailer:      mailer,
		archive:     archive,
	}
}

// SendPortfolioReport renders the current portfolio and queues the report
// email to the user's primary and secondary addresses.
func (s *ReportingService) SendPortfolioReport(ctx context.Context, userID string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	data, err := s.buildPortfolioReport(ctx, user)
	if err != nil {
		return err
	}
	body, err := mail.RenderPortfolioReport(*data)
	if err != nil {
		return err
	}
	s.archiveReport(ctx, "portfolio", user.ID, data.ReportDate, body)
	return s.mailer.Enqueue(ctx, &mail.Message{
		To:      recipientList(user),
		Subject: fmt.Sprintf("Your portfolio report for %s", data.ReportDate),
		HTML:    body,
	})
}

// SendBudgetReport renders the monthly budget summary and queues the email.
func (s *ReportingService) SendBudgetReport(ctx context.Context, userID string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	data, err := s.buildBudgetReport(ctx, user)
	if err != nil {
		return err
	}
	body, err := mail.RenderBudgetReport(*data)
	if err != nil {
		return err
	}
	s.archiveReport(ctx, "budget", user.ID, data.ReportDate, body)
	return s.mailer.Enqueue(ctx, &mail.Message{
		To:      recipientList(user),
		Subject: fmt.Sprintf("Your budget report for %s", data.ReportDate),
		HTML:    body,
	})
}

func (s *ReportingService) buildPortfolioReport(ctx context.Context, user *model.User) (*mail.PortfolioReportData, error) {
	summary, err := s.assets.Summary(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	liabilitySummary, err := s.liabilities.Summary(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	rates, err := s.currency.RatesFor(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	assetTypes, err := s.config.ListAssetTypes(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	liabilityTypes, err := s.config.ListLiabilityTypes(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	assetTypeNames := make(map[string]string, len(assetTypes))
	for _, t := range assetTypes {
		assetTypeNames[t.ID] = t.DisplayName
	}
	liabilityTypeNames := make(map[string]string, len(liabilityTypes))
	for _, t := range liabilityTypes {
		liabilityTypeNames[t.ID] = t.DisplayName
	}

	data := &mail.PortfolioReportData{
		Name:               user.Name,
		ReportDate:         timeutil.Today(),
		NetWorth:           summary.TotalValue.Sub(liabilitySummary.TotalBalance),
		TotalAssets:        summary.TotalValue,
		TotalLiabilities:   liabilitySummary.TotalBalance,
		TotalGainLoss:      summary.TotalGainLoss,
		GainLossPercentage: summary.GainLossPercentage,
	}
	assets, err := s.assetRepo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	for _, asset := range assets {
		value, err := s.currency.Convert(asset.CurrentValue, asset.Currency, rates)
		if err != nil {
			return nil, err
		}
		gainLoss, err := s.currency.Convert(asset.GainLoss(), asset.Currency, rates)
		if err != nil {
			return nil, err
		}
		data.Assets = append(data.Assets, mail.ReportLine{
			Name:     asset.Name,
			TypeName: assetTypeNames[asset.AssetTypeID],
			Amount:   value,
			GainLoss: gainLoss,
		})
	}
	liabilities, err := s.liabRepo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	for _, liability := range liabilities {
		balance, err := s.currency.Convert(liability.CurrentBalance, liability.Currency, rates)
		if err != nil {
			return nil, err
		}
		data.Liabilities = append(data.Liabilities, mail.ReportLine{
			Name:     liability.Name,
			TypeName: liabilityTypeNames[liability.LiabilityTypeID],
			Amount:   balance,
		})
	}
	return data, nil
}

func (s *ReportingService) buildBudgetReport(ctx context.Context, user *model.User) (*mail.BudgetReportData, error) {
	summary, err := s.budget.Summary(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	items, err := s.budget.List(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	data := &mail.BudgetReportData{
		Name:                           user.Name,
		ReportDate:                     timeutil.Today(),
		TotalIncome:                    summary.TotalIncome,
		TotalExpenses:                  summary.TotalExpenses,
		TotalInvestments:               summary.TotalInvestments,
		TotalNonInvestmentExpenses:     summary.TotalNonInvestmentExpenses,
		TotalSurplus:                   summary.Surplus,
		InvestmentPercentage:           summary.InvestmentPercentage,
		NonInvestmentExpensePercentage: summary.NonInvestmentExpensePercentage,
		SurplusOrDeficitRate:           summary.SurplusPercentage,
	}
	for _, item := range items {
		line := mail.ReportLine{Name: item.ItemName, Amount: item.Amount}
		switch item.ItemType {
		case model.BudgetItemIncome:
			data.IncomeItems = append(data.IncomeItems, line)
		case model.BudgetItemExpense:
			data.ExpenseItems = append(data.ExpenseItems, line)
		}
	}
	return data, nil
}

// archiveReport keeps a copy of the rendered HTML. Archive failures are
// logged and do not block delivery.
func (s *ReportingService) archiveReport(ctx context.Context, kind, userID, date, body string) {
	if s.archive == nil {
		return
	}
	key := fmt.Sprintf("%s_%s_%s.html", kind, userID, date)
	if err := filestore.SaveBytes(ctx, s.archive, key, []byte(body)); err != nil {
		logutil.GetLogger(ctx).Error("archive report failed",
			zap.String("key", key), zap.Error(err))
	}
}

func recipientList(user *model.User) []string {
	return append([]string{user.Email}, splitEmails(user.SecondaryEmails)...)
}
