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

type AssetService struct {
	assets   *repo.AssetRepo
	types    *repo.AssetTypeRepo
	currency *CurrencyService
	config   *ConfigurationService
}

func NewAssetService(assets *repo.AssetRepo, types *repo.AssetTypeRepo,
	currency *CurrencyService, config *ConfigurationService) *AssetService {
	return &AssetService{assets: assets, types: types, currency: currency, config: config}
}

type AssetInput struct {
	Name          string           `json:"name"`
	AssetTypeID   string           `json:"asset_type_id"`
	CurrentValue  decimal.Decimal  `json:"current_value"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	PurchaseDate  string           `json:"purchase_date"`
	Quantity      *decimal.Decimal `json:"quantity"`
	Description   string           `json:"description"`
	Location      string           `json:"location"`
	Currency      string           `json:"currency"`
	Illiquid      bool             `json:"illiquid"`
}

func (in *AssetInput) validate() error {
	if in.Name == "" || in.AssetTypeID == "" {
		return fmt.Errorf("%w: name and asset_type_id are required", appErr.ErrInvalid)
	}
	if in.CurrentValue.Sign() < 0 {
		return fmt.Errorf("%w: current_value must not be negative", appErr.ErrInvalid)
	}
	if in.PurchaseDate != "" {
		if _, err := timeutil.ParseDate(in.PurchaseDate); err != nil {
			return fmt.Errorf("%w: purchase_date must be YYYY-MM-DD", appErr.ErrInvalid)
		}
	}
	return nil
}

func (s *AssetService) Create(ctx context.Context, userID string, in *AssetInput) (*model.Asset, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	// The type lookup is scoped by user, so a type id belonging to another
	// user comes back not found.
	if err := s.config.EnsureAssetTypes(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := s.types.GetByID(ctx, userID, in.AssetTypeID); err != nil {
		return nil, err
	}
	now := timeutil.NowUnix()
	asset := &model.Asset{
		ID:            newID(),
		UserID:        userID,
		Name:          in.Name,
		AssetTypeID:   in.AssetTypeID,
		CurrentValue:  in.CurrentValue,
		PurchasePrice: in.PurchasePrice,
		PurchaseDate:  in.PurchaseDate,
		Quantity:      in.Quantity,
		Description:   in.Description,
		Location:      in.Location,
		Currency:      defaultCurrency(in.Currency),
		Illiquid:      in.Illiquid,
		Ctime:         now,
		Mtime:         now,
	}
	if err := s.assets.Create(ctx, asset); err != nil {
		return nil, err
	}
	return asset, nil
}

func (s *AssetService) Update(ctx context.Context, userID, assetID string, in *AssetInput) (*model.Asset, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	asset, err := s.assets.GetByID(ctx, userID, assetID)
	if err != nil {
		return nil, err
	}
	if _, err := s.types.GetByID(ctx, userID, in.AssetTypeID); err != nil {
		return nil, err
	}
	asset.Name = in.Name
	asset.AssetTypeID = in.AssetTypeID
	asset.CurrentValue = in.CurrentValue
	asset.PurchasePrice = in.PurchasePrice
	asset.PurchaseDate = in.PurchaseDate
	asset.Quantity = in.Quantity
	asset.Description = in.Description
	asset.Location = in.Location
	asset.Currency = defaultCurrency(in.Currency)
	asset.Illiquid = in.Illiquid
	asset.Mtime = timeutil.NowUnix()
	if err := s.assets.Update(ctx, asset); err != nil {
		return nil, err
	}
	return asset, nil
}

func (s *AssetService) Delete(ctx context.Context, userID, assetID string) error {
	return s.assets.Delete(ctx, userID, assetID)
}

func (s *AssetService) Get(ctx context.Context, userID, assetID string) (*model.Asset, error) {
	return s.assets.GetByID(ctx, userID, assetID)
}

func (s *AssetService) List(ctx context.Context, userID string) ([]*model.Asset, error) {
	return s.assets.ListByUser(ctx, userID)
}

type PortfolioBreakdownLine struct {
	TypeName    string          `json:"type_name"`
	DisplayName string          `json:"display_name"`
	Value       decimal.Decimal `json:"value"`
	Percentage  decimal.Decimal `json:"percentage"`
	Count       int             `json:"count"`
}

type PortfolioSummary struct {
	TotalValue         decimal.Decimal          `json:"total_value"`
	TotalPurchaseValue decimal.Decimal          `json:"total_purchase_value"`
	TotalGainLoss      decimal.Decimal          `json:"total_gain_loss"`
	GainLossPercentage decimal.Decimal          `json:"gain_loss_percentage"`
	LiquidValue        decimal.Decimal          `json:"liquid_value"`
	AssetCount         int                      `json:"asset_count"`
	Breakdown          []PortfolioBreakdownLine `json:"breakdown"`
}

// Summary aggregates the user's assets in the reporting currency, with a
// per-type breakdown ordered by value.
func (s *AssetService) Summary(ctx context.Context, userID string) (*PortfolioSummary, error) {
	assets, err := s.assets.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	types, err := s.config.ListAssetTypes(ctx, userID)
	if err != nil {
		return nil, err
	}
	typesByID := make(map[string]*model.AssetType, len(types))
	for _, t := range types {
		typesByID[t.ID] = t
	}
	rates, err := s.currency.RatesFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := &PortfolioSummary{AssetCount: len(assets)}
	byType := make(map[string]*PortfolioBreakdownLine)
	var order []string
	for _, asset := range assets {
		value, err := s.currency.Convert(asset.CurrentValue, asset.Currency, rates)
		if err != nil {
			return nil, err
		}
		summary.TotalValue = summary.TotalValue.Add(value)
		if !asset.Illiquid {
			summary.LiquidValue = summary.LiquidValue.Add(value)
		}
		if purchase := asset.PurchaseValue(); purchase != nil {
			purchaseINR, err := s.currency.Convert(*purchase, asset.Currency, rates)
			if err != nil {
				return nil, err
			}
			summary.TotalPurchaseValue = summary.TotalPurchaseValue.Add(purchaseINR)
			summary.TotalGainLoss = summary.TotalGainLoss.Add(value.Sub(purchaseINR))
		}
		line, ok := byType[asset.AssetTypeID]
		if !ok {
			line = &PortfolioBreakdownLine{}
			if t, ok := typesByID[asset.AssetTypeID]; ok {
				line.TypeName = t.TypeName
				line.DisplayName = t.DisplayName
			}
			byType[asset.AssetTypeID] = line
			order = append(order, asset.AssetTypeID)
		}
		line.Value = line.Value.Add(value)
		line.Count++
	}
	summary.GainLossPercentage = ratio(summary.TotalGainLoss, summary.TotalPurchaseValue)
	for _, typeID := range order {
		line := byType[typeID]
		line.Percentage = ratio(line.Value, summary.TotalValue)
		summary.Breakdown = append(summary.Breakdown, *line)
	}
	return summary, nil
}

// ratio is part over whole as a half-up percentage with two stable decimal
// places of precision, zero when the whole is not positive.
func ratio(part, whole decimal.Decimal) decimal.Decimal {
	if whole.Sign() <= 0 {
		return decimal.Zero
	}
	return part.DivRound(whole, 4).Mul(decimal.NewFromInt(100))
}

func defaultCurrency(currency string) string {
	if currency == "" {
		return model.ReportingCurrency
	}
	return currency
}
