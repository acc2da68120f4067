package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/netly-app/netly/internal/model"
	appErr "github.com/netly-app/netly/internal/pkg/errors"
	"github.com/netly-app/netly/internal/pkg/timeutil"
	"github.com/netly-app/netly/internal/repo"
)

type defaultType struct {
	name    string
	display string
}

var defaultAssetTypes = []defaultType{
	{"stocks", "Stocks"},
	{"mutual_funds", "Mutual Funds"},
	{"fixed_deposit", "Fixed Deposit"},
	{"epf_ppf", "EPF / PPF"},
	{"real_estate", "Real Estate"},
	{"gold", "Gold"},
	{"cash", "Cash & Bank"},
	{"crypto", "Crypto"},
	{"other", "Other"},
}

var defaultLiabilityTypes = []defaultType{
	{"home_loan", "Home Loan"},
	{"personal_loan", "Personal Loan"},
	{"car_loan", "Car Loan"},
	{"education_loan", "Education Loan"},
	{"credit_card", "Credit Card"},
	{"other", "Other"},
}

// ConfigurationService manages the per-user reference data: currency
// conversion rates and asset/liability categories. Each user starts from
// the default category sets, seeded lazily on first use.
type ConfigurationService struct {
	rates          *repo.CurrencyRateRepo
	assetTypes     *repo.AssetTypeRepo
	liabilityTypes *repo.LiabilityTypeRepo
	assets         *repo.AssetRepo
	liabilities    *repo.LiabilityRepo
	currency       *CurrencyService
}

func NewConfigurationService(rates *repo.CurrencyRateRepo, assetTypes *repo.AssetTypeRepo,
	liabilityTypes *repo.LiabilityTypeRepo, assets *repo.AssetRepo,
	liabilities *repo.LiabilityRepo, currency *CurrencyService) *ConfigurationService {
	return &ConfigurationService{
		rates:          rates,
		assetTypes:     assetTypes,
		liabilityTypes: liabilityTypes,
		assets:         assets,
		liabilities:    liabilities,
		currency:       currency,
	}
}

type CurrencyRateInput struct {
	CurrencyCode string          `json:"currency_code"`
	CurrencyName string          `json:"currency_name"`
	RateToINR    decimal.Decimal `json:"rate_to_inr"`
	IsActive     *bool           `json:"is_active"`
}

func (in *CurrencyRateInput) validate() error {
	code := strings.ToUpper(strings.TrimSpace(in.CurrencyCode))
	if code == "" || in.CurrencyName == "" {
		return fmt.Errorf("%w: currency_code and currency_name are required", appErr.ErrInvalid)
	}
	if code == model.ReportingCurrency {
		return fmt.Errorf("%w: %s is the reporting currency and its rate is fixed", appErr.ErrInvalid, model.ReportingCurrency)
	}
	if in.RateToINR.Sign() <= 0 {
		return fmt.Errorf("%w: rate_to_inr must be positive", appErr.ErrInvalid)
	}
	return nil
}

func (s *ConfigurationService) CreateCurrencyRate(ctx context.Context, userID string, in *CurrencyRateInput) (*model.CurrencyRate, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	now := timeutil.NowUnix()
	rate := &model.CurrencyRate{
		ID:           newID(),
		UserID:       userID,
		CurrencyCode: strings.ToUpper(strings.TrimSpace(in.CurrencyCode)),
		CurrencyName: in.CurrencyName,
		RateToINR:    in.RateToINR,
		IsActive:     true,
		Ctime:        now,
		Mtime:        now,
	}
	if in.IsActive != nil {
		rate.IsActive = *in.IsActive
	}
	if err := s.rates.Create(ctx, rate); err != nil {
		if appErr.IsConflict(err) {
			return nil, fmt.Errorf("%w: rate for %s already exists", appErr.ErrConflict, rate.CurrencyCode)
		}
		return nil, err
	}
	s.currency.Invalidate(userID)
	return rate, nil
}

func (s *ConfigurationService) UpdateCurrencyRate(ctx context.Context, userID, rateID string, in *CurrencyRateInput) (*model.CurrencyRate, error) {
	rate, err := s.rates.GetByID(ctx, userID, rateID)
	if err != nil {
		return nil, err
	}
	in.CurrencyCode = rate.CurrencyCode
	if err := in.validate(); err != nil {
		return nil, err
	}
	rate.CurrencyName = in.CurrencyName
	rate.RateToINR = in.RateToINR
	if in.IsActive != nil {
		rate.IsActive = *in.IsActive
	}
	rate.Mtime = timeutil.NowUnix()
	if err := s.rates.Update(ctx, rate); err != nil {
		return nil, err
	}
	s.currency.Invalidate(userID)
	return rate, nil
}

// DeleteCurrencyRate refuses to remove a rate that any asset or liability
// still prices in, and reports how many of each are in the way.
func (s *ConfigurationService) DeleteCurrencyRate(ctx context.Context, userID, rateID string) error {
	rate, err := s.rates.GetByID(ctx, userID, rateID)
	if err != nil {
		return err
	}
	assetCount, err := s.assets.CountByUserAndCurrency(ctx, userID, rate.CurrencyCode)
	if err != nil {
		return err
	}
	liabilityCount, err := s.liabilities.CountByUserAndCurrency(ctx, userID, rate.CurrencyCode)
	if err != nil {
		return err
	}
	if assetCount > 0 || liabilityCount > 0 {
		return fmt.Errorf("%w: %s is used by %d assets and %d liabilities",
			appErr.ErrConflict, rate.CurrencyCode, assetCount, liabilityCount)
	}
	if err := s.rates.Delete(ctx, userID, rateID); err != nil {
		return err
	}
	s.currency.Invalidate(userID)
	logutil.GetLogger(ctx).Info("currency rate deleted",
		zap.String("user_id", userID), zap.String("currency", rate.CurrencyCode))
	return nil
}

func (s *ConfigurationService) ListCurrencyRates(ctx context.Context, userID string) ([]*model.CurrencyRate, error) {
	return s.rates.ListByUser(ctx, userID)
}

// EnsureAssetTypes seeds the default categories for a user that has none.
// Racing seeds collide on the (user_id, type_name) unique key and the
// loser's conflict is ignored.
func (s *ConfigurationService) EnsureAssetTypes(ctx context.Context, userID string) error {
	existing, err := s.assetTypes.ListByUser(ctx, userID)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	now := timeutil.NowUnix()
	for _, dt := range defaultAssetTypes {
		err := s.assetTypes.Create(ctx, &model.AssetType{
			ID: newID(), UserID: userID, TypeName: dt.name, DisplayName: dt.display, Ctime: now,
		})
		if err != nil && !appErr.IsConflict(err) {
			return err
		}
	}
	return nil
}

func (s *ConfigurationService) EnsureLiabilityTypes(ctx context.Context, userID string) error {
	existing, err := s.liabilityTypes.ListByUser(ctx, userID)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	now := timeutil.NowUnix()
	for _, dt := range defaultLiabilityTypes {
		err := s.liabilityTypes.Create(ctx, &model.LiabilityType{
			ID: newID(), UserID: userID, TypeName: dt.name, DisplayName: dt.display, Ctime: now,
		})
		if err != nil && !appErr.IsConflict(err) {
			return err
		}
	}
	return nil
}

func (s *ConfigurationService) ListAssetTypes(ctx context.Context, userID string) ([]*model.AssetType, error) {
	if err := s.EnsureAssetTypes(ctx, userID); err != nil {
		return nil, err
	}
	return s.assetTypes.ListByUser(ctx, userID)
}

func (s *ConfigurationService) ListLiabilityTypes(ctx context.Context, userID string) ([]*model.LiabilityType, error) {
	if err := s.EnsureLiabilityTypes(ctx, userID); err != nil {
		return nil, err
	}
	return s.liabilityTypes.ListByUser(ctx, userID)
}

func (s *ConfigurationService) CreateAssetType(ctx context.Context, userID, typeName, displayName string) (*model.AssetType, error) {
	if err := validateTypeName(typeName, displayName); err != nil {
		return nil, err
	}
	t := &model.AssetType{
		ID:          newID(),
		UserID:      userID,
		TypeName:    strings.ToLower(strings.TrimSpace(typeName)),
		DisplayName: displayName,
		Ctime:       timeutil.NowUnix(),
	}
	if err := s.assetTypes.Create(ctx, t); err != nil {
		if appErr.IsConflict(err) {
			return nil, fmt.Errorf("%w: asset type %s already exists", appErr.ErrConflict, t.TypeName)
		}
		return nil, err
	}
	return t, nil
}

func (s *ConfigurationService) CreateLiabilityType(ctx context.Context, userID, typeName, displayName string) (*model.LiabilityType, error) {
	if err := validateTypeName(typeName, displayName); err != nil {
		return nil, err
	}
	t := &model.LiabilityType{
		ID:          newID(),
		UserID:      userID,
		TypeName:    strings.ToLower(strings.TrimSpace(typeName)),
		DisplayName: displayName,
		Ctime:       timeutil.NowUnix(),
	}
	if err := s.liabilityTypes.Create(ctx, t); err != nil {
		if appErr.IsConflict(err) {
			return nil, fmt.Errorf("%w: liability type %s already exists", appErr.ErrConflict, t.TypeName)
		}
		return nil, err
	}
	return t, nil
}

// DeleteAssetType refuses while any asset still references the category.
func (s *ConfigurationService) DeleteAssetType(ctx context.Context, userID, typeID string) error {
	t, err := s.assetTypes.GetByID(ctx, userID, typeID)
	if err != nil {
		return err
	}
	count, err := s.assets.CountByUserAndType(ctx, userID, typeID)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: %s is used by %d assets", appErr.ErrConflict, t.TypeName, count)
	}
	return s.assetTypes.Delete(ctx, userID, typeID)
}

func (s *ConfigurationService) DeleteLiabilityType(ctx context.Context, userID, typeID string) error {
	t, err := s.liabilityTypes.GetByID(ctx, userID, typeID)
	if err != nil {
		return err
	}
	count, err := s.liabilities.CountByUserAndType(ctx, userID, typeID)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: %s is used by %d liabilities", appErr.ErrConflict, t.TypeName, count)
	}
	return s.liabilityTypes.Delete(ctx, userID, typeID)
}

func validateTypeName(typeName, displayName string) error {
	if strings.TrimSpace(typeName) == "" || strings.TrimSpace(displayName) == "" {
		return fmt.Errorf("%w: type_name and display_name are required", appErr.ErrInvalid)
	}
	return nil
}
