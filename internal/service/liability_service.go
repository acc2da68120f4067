package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/netly-app/netly/internal/model"
	appErr "github.com/netly-app/netly/internal/pkg/errors"
	"github.com/netly-app/netly/internal/pkg/timeutil"
	"github.com/netly-app/netly/internal/repo"
)

type LiabilityService struct {
	liabilities *repo.LiabilityRepo
	types       *repo.LiabilityTypeRepo
	currency    *CurrencyService
	config      *ConfigurationService
}

func NewLiabilityService(liabilities *repo.LiabilityRepo, types *repo.LiabilityTypeRepo,
	currency *CurrencyService, config *ConfigurationService) *LiabilityService {
	return &LiabilityService{liabilities: liabilities, types: types, currency: currency, config: config}
}

type LiabilityInput struct {
	Name            string           `json:"name"`
	LiabilityTypeID string           `json:"liability_type_id"`
	CurrentBalance  decimal.Decimal  `json:"current_balance"`
	OriginalAmount  *decimal.Decimal `json:"original_amount"`
	StartDate       string           `json:"start_date"`
	EndDate         string           `json:"end_date"`
	InterestRate    *decimal.Decimal `json:"interest_rate"`
	MonthlyPayment  *decimal.Decimal `json:"monthly_payment"`
	Lender          string           `json:"lender"`
	Description     string           `json:"description"`
	Currency        string           `json:"currency"`
}

func (in *LiabilityInput) validate() error {
	if in.Name == "" || in.LiabilityTypeID == "" {
		return fmt.Errorf("%w: name and liability_type_id are required", appErr.ErrInvalid)
	}
	if in.CurrentBalance.Sign() < 0 {
		return fmt.Errorf("%w: current_balance must not be negative", appErr.ErrInvalid)
	}
	for _, date := range []string{in.StartDate, in.EndDate} {
		if date == "" {
			continue
		}
		if _, err := timeutil.ParseDate(date); err != nil {
			return fmt.Errorf("%w: dates must be YYYY-MM-DD", appErr.ErrInvalid)
		}
	}
	return nil
}

func (s *LiabilityService) Create(ctx context.Context, userID string, in *LiabilityInput) (*model.Liability, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if err := s.config.EnsureLiabilityTypes(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := s.types.GetByID(ctx, userID, in.LiabilityTypeID); err != nil {
		return nil, err
	}
	now := timeutil.NowUnix()
	liability := &model.Liability{
		ID:              newID(),
		UserID:          userID,
		Name:            in.Name,
		LiabilityTypeID: in.LiabilityTypeID,
		CurrentBalance:  in.CurrentBalance,
		OriginalAmount:  in.OriginalAmount,
		StartDate:       in.StartDate,
		EndDate:         in.EndDate,
		InterestRate:    in.InterestRate,
		MonthlyPayment:  in.MonthlyPayment,
		Lender:          in.Lender,
		Description:     in.Description,
		Currency:        defaultCurrency(in.Currency),
		Ctime:           now,
		Mtime:           now,
	}
	if err := s.liabilities.Create(ctx, liability); err != nil {
		return nil, err
	}
	return liability, nil
}

func (s *LiabilityService) Update(ctx context.Context, userID, liabilityID string, in *LiabilityInput) (*model.Liability, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	liability, err := s.liabilities.GetByID(ctx, userID, liabilityID)
	if err != nil {
		return nil, err
	}
	if _, err := s.types.GetByID(ctx, userID, in.LiabilityTypeID); err != nil {
		return nil, err
	}
	liability.Name = in.Name
	liability.LiabilityTypeID = in.LiabilityTypeID
	liability.CurrentBalance = in.CurrentBalance
	liability.OriginalAmount = in.OriginalAmount
	liability.StartDate = in.StartDate
	liability.EndDate = in.EndDate
	liability.InterestRate = in.InterestRate
	liability.MonthlyPayment = in.MonthlyPayment
	liability.Lender = in.Lender
	liability.Description = in.Description
	liability.Currency = defaultCurrency(in.Currency)
	liability.Mtime = timeutil.NowUnix()
	if err := s.liabilities.Update(ctx, liability); err != nil {
		return nil, err
	}
	return liability, nil
}

func (s *LiabilityService) Delete(ctx context.Context, userID, liabilityID string) error {
	return s.liabilities.Delete(ctx, userID, liabilityID)
}

func (s *LiabilityService) Get(ctx context.Context, userID, liabilityID string) (*model.Liability, error) {
	return s.liabilities.GetByID(ctx, userID, liabilityID)
}

func (s *LiabilityService) List(ctx context.Context, userID string) ([]*model.Liability, error) {
	return s.liabilities.ListByUser(ctx, userID)
}

type LiabilityBreakdownLine struct {
	TypeName    string          `json:"type_name"`
	DisplayName string          `json:"display_name"`
	Balance     decimal.Decimal `json:"balance"`
	Percentage  decimal.Decimal `json:"percentage"`
	Count       int             `json:"count"`
}

type LiabilitySummary struct {
	TotalBalance        decimal.Decimal          `json:"total_balance"`
	TotalOriginal       decimal.Decimal          `json:"total_original"`
	TotalPaid           decimal.Decimal          `json:"total_paid"`
	RepaymentPercentage decimal.Decimal          `json:"repayment_percentage"`
	MonthlyOutflow      decimal.Decimal          `json:"monthly_outflow"`
	LiabilityCount      int                      `json:"liability_count"`
	Breakdown           []LiabilityBreakdownLine `json:"breakdown"`
}

// Summary aggregates outstanding balances in the reporting currency with a
// per-type breakdown.
func (s *LiabilityService) Summary(ctx context.Context, userID string) (*LiabilitySummary, error) {
	liabilities, err := s.liabilities.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	types, err := s.config.ListLiabilityTypes(ctx, userID)
	if err != nil {
		return nil, err
	}
	typesByID := make(map[string]*model.LiabilityType, len(types))
	for _, t := range types {
		typesByID[t.ID] = t
	}
	rates, err := s.currency.RatesFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := &LiabilitySummary{LiabilityCount: len(liabilities)}
	byType := make(map[string]*LiabilityBreakdownLine)
	var order []string
	for _, liability := range liabilities {
		balance, err := s.currency.Convert(liability.CurrentBalance, liability.Currency, rates)
		if err != nil {
			return nil, err
		}
		summary.TotalBalance = summary.TotalBalance.Add(balance)
		if liability.OriginalAmount != nil {
			original, err := s.currency.Convert(*liability.OriginalAmount, liability.Currency, rates)
			if err != nil {
				return nil, err
			}
			summary.TotalOriginal = summary.TotalOriginal.Add(original)
		}
		if liability.MonthlyPayment != nil {
			payment, err := s.currency.Convert(*liability.MonthlyPayment, liability.Currency, rates)
			if err != nil {
				return nil, err
			}
			summary.MonthlyOutflow = summary.MonthlyOutflow.Add(payment)
		}
		line, ok := byType[liability.LiabilityTypeID]
		if !ok {
			line = &LiabilityBreakdownLine{}
			if t, ok := typesByID[liability.LiabilityTypeID]; ok {
				line.TypeName = t.TypeName
				line.DisplayName = t.DisplayName
			}
			byType[liability.LiabilityTypeID] = line
			order = append(order, liability.LiabilityTypeID)
		}
		line.Balance = line.Balance.Add(balance)
		line.Count++
	}
	summary.TotalPaid = summary.TotalOriginal.Sub(summary.TotalBalance)
	summary.RepaymentPercentage = ratio(summary.TotalPaid, summary.TotalOriginal)
	for _, typeID := range order {
		line := byType[typeID]
		line.Percentage = ratio(line.Balance, summary.TotalBalance)
		summary.Breakdown = append(summary.Breakdown, *line)
	}
	return summary, nil
}
