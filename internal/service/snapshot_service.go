package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/netly-app/netly/internal/model"
	appErr "github.com/netly-app/netly/internal/pkg/errors"
	"github.com/netly-app/netly/internal/pkg/timeutil"
	"github.com/netly-app/netly/internal/repo"
)

const defaultHistoryWeeks = 12

// SnapshotService freezes the portfolio state for a user on a given date.
// One snapshot per user per date; the weekly job and the manual endpoint
// go through the same path.
type SnapshotService struct {
	snapshots   *repo.SnapshotRepo
	assets      *repo.AssetRepo
	liabilities *repo.LiabilityRepo
	config      *ConfigurationService
	currency    *CurrencyService
}

func NewSnapshotService(snapshots *repo.SnapshotRepo, assets *repo.AssetRepo,
	liabilities *repo.LiabilityRepo, config *ConfigurationService,
	currency *CurrencyService) *SnapshotService {
	return &SnapshotService{
		snapshots:   snapshots,
		assets:      assets,
		liabilities: liabilities,
		config:      config,
		currency:    currency,
	}
}

// Create materializes a snapshot of the user's current holdings for the
// date. Values are converted to the reporting currency at today's rates
// and frozen; later rate edits do not rewrite history.
func (s *SnapshotService) Create(ctx context.Context, userID, date string) (*model.PortfolioSnapshot, error) {
	if date == "" {
		date = timeutil.Today()
	} else if _, err := timeutil.ParseDate(date); err != nil {
		return nil, fmt.Errorf("%w: snapshot date must be YYYY-MM-DD", appErr.ErrInvalid)
	}
	assets, err := s.assets.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	liabilities, err := s.liabilities.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	assetTypes, err := s.config.ListAssetTypes(ctx, userID)
	if err != nil {
		return nil, err
	}
	liabilityTypes, err := s.config.ListLiabilityTypes(ctx, userID)
	if err != nil {
		return nil, err
	}
	rates, err := s.currency.RatesFor(ctx, userID)
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

	snapshot := &model.PortfolioSnapshot{
		ID:           newID(),
		UserID:       userID,
		SnapshotDate: date,
		Ctime:        timeutil.NowUnix(),
	}
	assetRows := make([]*model.AssetSnapshot, 0, len(assets))
	for _, asset := range assets {
		valueINR, err := s.currency.Convert(asset.CurrentValue, asset.Currency, rates)
		if err != nil {
			return nil, err
		}
		gainLoss := asset.GainLoss()
		assetRows = append(assetRows, &model.AssetSnapshot{
			ID:            newID(),
			SnapshotID:    snapshot.ID,
			AssetID:       asset.ID,
			AssetName:     asset.Name,
			AssetTypeName: assetTypeNames[asset.AssetTypeID],
			CurrentValue:  asset.CurrentValue,
			GainLoss:      gainLoss,
			Currency:      asset.Currency,
			ValueInINR:    valueINR,
		})
		snapshot.TotalAssets = snapshot.TotalAssets.Add(valueINR)
		gainLossINR, err := s.currency.Convert(gainLoss, asset.Currency, rates)
		if err != nil {
			return nil, err
		}
		snapshot.TotalGains = snapshot.TotalGains.Add(gainLossINR)
	}
	liabilityRows := make([]*model.LiabilitySnapshot, 0, len(liabilities))
	for _, liability := range liabilities {
		balanceINR, err := s.currency.Convert(liability.CurrentBalance, liability.Currency, rates)
		if err != nil {
			return nil, err
		}
		liabilityRows = append(liabilityRows, &model.LiabilitySnapshot{
			ID:                newID(),
			SnapshotID:        snapshot.ID,
			LiabilityID:       liability.ID,
			LiabilityName:     liability.Name,
			LiabilityTypeName: liabilityTypeNames[liability.LiabilityTypeID],
			CurrentBalance:    liability.CurrentBalance,
			Currency:          liability.Currency,
			BalanceInINR:      balanceINR,
		})
		snapshot.TotalLiabilities = snapshot.TotalLiabilities.Add(balanceINR)
	}
	snapshot.NetWorth = snapshot.TotalAssets.Sub(snapshot.TotalLiabilities)

	if err := s.snapshots.Create(ctx, snapshot, assetRows, liabilityRows); err != nil {
		if appErr.IsConflict(err) {
			return nil, fmt.Errorf("%w: snapshot for %s already exists", appErr.ErrConflict, date)
		}
		return nil, err
	}
	logutil.GetLogger(ctx).Info("snapshot created",
		zap.String("user_id", userID),
		zap.String("date", date),
		zap.String("net_worth", snapshot.NetWorth.String()),
	)
	return snapshot, nil
}

func (s *SnapshotService) List(ctx context.Context, userID string) ([]*model.PortfolioSnapshot, error) {
	return s.snapshots.ListByUser(ctx, userID)
}

// ListRange returns snapshots between from and to inclusive, oldest first.
// Either bound may be empty.
func (s *SnapshotService) ListRange(ctx context.Context, userID, from, to string) ([]*model.PortfolioSnapshot, error) {
	for _, date := range []string{from, to} {
		if date == "" {
			continue
		}
		if _, err := timeutil.ParseDate(date); err != nil {
			return nil, fmt.Errorf("%w: range dates must be YYYY-MM-DD", appErr.ErrInvalid)
		}
	}
	if from == "" && to == "" {
		return s.snapshots.ListByUser(ctx, userID)
	}
	if from == "" {
		from = "0000-00-00"
	}
	if to == "" {
		to = "9999-12-31"
	}
	return s.snapshots.ListByUserRange(ctx, userID, from, to)
}

type SnapshotDetail struct {
	Snapshot    *model.PortfolioSnapshot   `json:"snapshot"`
	Assets      []*model.AssetSnapshot     `json:"assets"`
	Liabilities []*model.LiabilitySnapshot `json:"liabilities"`
}

func (s *SnapshotService) GetDetail(ctx context.Context, userID, snapshotID string) (*SnapshotDetail, error) {
	snapshot, err := s.snapshots.GetByID(ctx, userID, snapshotID)
	if err != nil {
		return nil, err
	}
	assetRows, err := s.snapshots.ListAssetRows(ctx, snapshot.ID)
	if err != nil {
		return nil, err
	}
	liabilityRows, err := s.snapshots.ListLiabilityRows(ctx, snapshot.ID)
	if err != nil {
		return nil, err
	}
	return &SnapshotDetail{Snapshot: snapshot, Assets: assetRows, Liabilities: liabilityRows}, nil
}

func (s *SnapshotService) Delete(ctx context.Context, userID, snapshotID string) error {
	return s.snapshots.Delete(ctx, userID, snapshotID)
}

// PortfolioHistory holds parallel series for charting, one entry per
// snapshot date, oldest first. Series a variant does not produce stay
// empty rather than nil.
type PortfolioHistory struct {
	Dates            []string          `json:"dates"`
	TotalAssets      []decimal.Decimal `json:"total_assets"`
	TotalLiabilities []decimal.Decimal `json:"total_liabilities"`
	NetWorth         []decimal.Decimal `json:"net_worth"`
	TotalGains       []decimal.Decimal `json:"total_gains"`
}

func newPortfolioHistory(n int) *PortfolioHistory {
	return &PortfolioHistory{
		Dates:            make([]string, 0, n),
		TotalAssets:      make([]decimal.Decimal, 0, n),
		TotalLiabilities: make([]decimal.Decimal, 0, n),
		NetWorth:         make([]decimal.Decimal, 0, n),
		TotalGains:       make([]decimal.Decimal, 0, n),
	}
}

// History returns the portfolio totals over the last weeks (default 12),
// one point per snapshot.
func (s *SnapshotService) History(ctx context.Context, userID string, weeks int) (*PortfolioHistory, error) {
	snapshots, err := s.recentSnapshots(ctx, userID, weeks)
	if err != nil {
		return nil, err
	}
	return buildPortfolioHistory(snapshots), nil
}

// AssetHistory returns the frozen value series of one asset across recent
// snapshots. Dates where the asset had no row contribute a zero point.
func (s *SnapshotService) AssetHistory(ctx context.Context, userID, assetID string, weeks int) (*PortfolioHistory, error) {
	snapshots, err := s.recentSnapshots(ctx, userID, weeks)
	if err != nil {
		return nil, err
	}
	rows, err := s.assetRows(ctx, snapshots, func(row *model.AssetSnapshot) bool {
		return row.AssetID == assetID
	})
	if err != nil {
		return nil, err
	}
	rates, err := s.currency.RatesFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.buildAssetHistory(snapshots, rows, rates)
}

// AssetTypeHistory aggregates the frozen values of every asset of the named
// type across recent snapshots.
func (s *SnapshotService) AssetTypeHistory(ctx context.Context, userID, typeName string, weeks int) (*PortfolioHistory, error) {
	snapshots, err := s.recentSnapshots(ctx, userID, weeks)
	if err != nil {
		return nil, err
	}
	rows, err := s.assetRows(ctx, snapshots, func(row *model.AssetSnapshot) bool {
		return row.AssetTypeName == typeName
	})
	if err != nil {
		return nil, err
	}
	rates, err := s.currency.RatesFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.buildAssetHistory(snapshots, rows, rates)
}

// LiabilityHistory returns the frozen balance series of one liability
// across recent snapshots.
func (s *SnapshotService) LiabilityHistory(ctx context.Context, userID, liabilityID string, weeks int) (*PortfolioHistory, error) {
	snapshots, err := s.recentSnapshots(ctx, userID, weeks)
	if err != nil {
		return nil, err
	}
	rows, err := s.liabilityRows(ctx, snapshots, func(row *model.LiabilitySnapshot) bool {
		return row.LiabilityID == liabilityID
	})
	if err != nil {
		return nil, err
	}
	return buildLiabilityHistory(snapshots, rows), nil
}

// LiabilityTypeHistory aggregates the frozen balances of every liability of
// the named type across recent snapshots.
func (s *SnapshotService) LiabilityTypeHistory(ctx context.Context, userID, typeName string, weeks int) (*PortfolioHistory, error) {
	snapshots, err := s.recentSnapshots(ctx, userID, weeks)
	if err != nil {
		return nil, err
	}
	rows, err := s.liabilityRows(ctx, snapshots, func(row *model.LiabilitySnapshot) bool {
		return row.LiabilityTypeName == typeName
	})
	if err != nil {
		return nil, err
	}
	return buildLiabilityHistory(snapshots, rows), nil
}

func (s *SnapshotService) recentSnapshots(ctx context.Context, userID string, weeks int) ([]*model.PortfolioSnapshot, error) {
	if weeks <= 0 {
		weeks = defaultHistoryWeeks
	}
	return s.snapshots.ListByUserRange(ctx, userID, timeutil.WeeksAgo(weeks), "9999-12-31")
}

func (s *SnapshotService) assetRows(ctx context.Context, snapshots []*model.PortfolioSnapshot,
	keep func(*model.AssetSnapshot) bool) ([]*model.AssetSnapshot, error) {
	rows, err := s.snapshots.ListAssetRowsBySnapshotIDs(ctx, snapshotIDs(snapshots))
	if err != nil {
		return nil, err
	}
	kept := make([]*model.AssetSnapshot, 0, len(rows))
	for _, row := range rows {
		if keep(row) {
			kept = append(kept, row)
		}
	}
	return kept, nil
}

func (s *SnapshotService) liabilityRows(ctx context.Context, snapshots []*model.PortfolioSnapshot,
	keep func(*model.LiabilitySnapshot) bool) ([]*model.LiabilitySnapshot, error) {
	rows, err := s.snapshots.ListLiabilityRowsBySnapshotIDs(ctx, snapshotIDs(snapshots))
	if err != nil {
		return nil, err
	}
	kept := make([]*model.LiabilitySnapshot, 0, len(rows))
	for _, row := range rows {
		if keep(row) {
			kept = append(kept, row)
		}
	}
	return kept, nil
}

func snapshotIDs(snapshots []*model.PortfolioSnapshot) []string {
	ids := make([]string, 0, len(snapshots))
	for _, snap := range snapshots {
		ids = append(ids, snap.ID)
	}
	return ids
}

func buildPortfolioHistory(snapshots []*model.PortfolioSnapshot) *PortfolioHistory {
	history := newPortfolioHistory(len(snapshots))
	for _, snap := range snapshots {
		history.Dates = append(history.Dates, snap.SnapshotDate)
		history.TotalAssets = append(history.TotalAssets, snap.TotalAssets)
		history.TotalLiabilities = append(history.TotalLiabilities, snap.TotalLiabilities)
		history.NetWorth = append(history.NetWorth, snap.NetWorth)
		history.TotalGains = append(history.TotalGains, snap.TotalGains)
	}
	return history
}

// buildAssetHistory sums the frozen INR values per date. Gains were frozen
// in the asset's own currency, so they are converted at the current rates.
func (s *SnapshotService) buildAssetHistory(snapshots []*model.PortfolioSnapshot,
	rows []*model.AssetSnapshot, rates map[string]decimal.Decimal) (*PortfolioHistory, error) {
	bySnapshot := make(map[string][]*model.AssetSnapshot, len(snapshots))
	for _, row := range rows {
		bySnapshot[row.SnapshotID] = append(bySnapshot[row.SnapshotID], row)
	}
	history := newPortfolioHistory(len(snapshots))
	for _, snap := range snapshots {
		history.Dates = append(history.Dates, snap.SnapshotDate)
		value := decimal.Zero
		gain := decimal.Zero
		for _, row := range bySnapshot[snap.ID] {
			value = value.Add(row.ValueInINR)
			gainINR, err := s.currency.Convert(row.GainLoss, row.Currency, rates)
			if err != nil {
				return nil, err
			}
			gain = gain.Add(gainINR)
		}
		history.TotalAssets = append(history.TotalAssets, value)
		history.TotalGains = append(history.TotalGains, gain)
	}
	return history, nil
}

func buildLiabilityHistory(snapshots []*model.PortfolioSnapshot, rows []*model.LiabilitySnapshot) *PortfolioHistory {
	bySnapshot := make(map[string][]*model.LiabilitySnapshot, len(snapshots))
	for _, row := range rows {
		bySnapshot[row.SnapshotID] = append(bySnapshot[row.SnapshotID], row)
	}
	history := newPortfolioHistory(len(snapshots))
	for _, snap := range snapshots {
		history.Dates = append(history.Dates, snap.SnapshotDate)
		balance := decimal.Zero
		for _, row := range bySnapshot[snap.ID] {
			balance = balance.Add(row.BalanceInINR)
		}
		history.TotalLiabilities = append(history.TotalLiabilities, balance)
	}
	return history
}
