package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/netly-app/netly/internal/model"
	"github.com/netly-app/netly/internal/pkg/dbutil"
	appErr "github.com/netly-app/netly/internal/pkg/errors"
)

var (
	portfolioSnapshotFields = []string{
		"id", "user_id", "snapshot_date", "total_assets", "total_liabilities",
		"net_worth", "total_gains", "ctime",
	}
	assetSnapshotFields = []string{
		"id", "snapshot_id", "asset_id", "asset_name", "asset_type_name",
		"current_value", "gain_loss", "currency", "value_in_inr",
	}
	liabilitySnapshotFields = []string{
		"id", "snapshot_id", "liability_id", "liability_name", "liability_type_name",
		"current_balance", "currency", "balance_in_inr",
	}
)

type SnapshotRepo struct {
	db *sql.DB
}

func NewSnapshotRepo(db *sql.DB) *SnapshotRepo {
	return &SnapshotRepo{db: db}
}

// Create writes the snapshot header and its per-holding rows in one
// transaction. A duplicate (user_id, snapshot_date) maps to ErrConflict.
func (r *SnapshotRepo) Create(ctx context.Context, snapshot *model.PortfolioSnapshot,
	assets []*model.AssetSnapshot, liabilities []*model.LiabilitySnapshot) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	header := map[string]interface{}{
		"id":                snapshot.ID,
		"user_id":           snapshot.UserID,
		"snapshot_date":     snapshot.SnapshotDate,
		"total_assets":      snapshot.TotalAssets,
		"total_liabilities": snapshot.TotalLiabilities,
		"net_worth":         snapshot.NetWorth,
		"total_gains":       snapshot.TotalGains,
		"ctime":             snapshot.Ctime,
	}
	sqlStr, args, err := builder.BuildInsert("portfolio_snapshots", []map[string]interface{}{header})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	if _, err := tx.ExecContext(ctx, sqlStr, args...); err != nil {
		if dbutil.IsConflict(err) {
			return appErr.ErrConflict
		}
		return err
	}
	if len(assets) > 0 {
		data := make([]map[string]interface{}, 0, len(assets))
		for _, row := range assets {
			data = append(data, map[string]interface{}{
				"id":              row.ID,
				"snapshot_id":     row.SnapshotID,
				"asset_id":        row.AssetID,
				"asset_name":      row.AssetName,
				"asset_type_name": row.AssetTypeName,
				"current_value":   row.CurrentValue,
				"gain_loss":       row.GainLoss,
				"currency":        row.Currency,
				"value_in_inr":    row.ValueInINR,
			})
		}
		sqlStr, args, err = builder.BuildInsert("asset_snapshots", data)
		if err != nil {
			return err
		}
		sqlStr, args = dbutil.Finalize(sqlStr, args)
		if _, err := tx.ExecContext(ctx, sqlStr, args...); err != nil {
			return err
		}
	}
	if len(liabilities) > 0 {
		data := make([]map[string]interface{}, 0, len(liabilities))
		for _, row := range liabilities {
			data = append(data, map[string]interface{}{
				"id":                  row.ID,
				"snapshot_id":         row.SnapshotID,
				"liability_id":        row.LiabilityID,
				"liability_name":      row.LiabilityName,
				"liability_type_name": row.LiabilityTypeName,
				"current_balance":     row.CurrentBalance,
				"currency":            row.Currency,
				"balance_in_inr":      row.BalanceInINR,
			})
		}
		sqlStr, args, err = builder.BuildInsert("liability_snapshots", data)
		if err != nil {
			return err
		}
		sqlStr, args = dbutil.Finalize(sqlStr, args)
		if _, err := tx.ExecContext(ctx, sqlStr, args...); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *SnapshotRepo) GetByID(ctx context.Context, userID, snapshotID string) (*model.PortfolioSnapshot, error) {
	snapshots, err := r.query(ctx, map[string]interface{}{"id": snapshotID, "user_id": userID})
	if err != nil {
		return nil, err
	}
	if len(snapshots) == 0 {
		return nil, appErr.ErrNotFound
	}
	return snapshots[0], nil
}

func (r *SnapshotRepo) GetByDate(ctx context.Context, userID, date string) (*model.PortfolioSnapshot, error) {
	snapshots, err := r.query(ctx, map[string]interface{}{"user_id": userID, "snapshot_date": date})
	if err != nil {
		return nil, err
	}
	if len(snapshots) == 0 {
		return nil, appErr.ErrNotFound
	}
	return snapshots[0], nil
}

// ListByUser returns snapshots newest first.
func (r *SnapshotRepo) ListByUser(ctx context.Context, userID string) ([]*model.PortfolioSnapshot, error) {
	return r.query(ctx, map[string]interface{}{"user_id": userID, "_orderby": "snapshot_date desc"})
}

// ListByUserRange returns snapshots within [from, to] inclusive, oldest first.
func (r *SnapshotRepo) ListByUserRange(ctx context.Context, userID, from, to string) ([]*model.PortfolioSnapshot, error) {
	return r.query(ctx, map[string]interface{}{
		"user_id":          userID,
		"snapshot_date >=": from,
		"snapshot_date <=": to,
		"_orderby":         "snapshot_date asc",
	})
}

func (r *SnapshotRepo) Delete(ctx context.Context, userID, snapshotID string) error {
	if _, err := r.GetByID(ctx, userID, snapshotID); err != nil {
		return err
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	for _, table := range []string{"asset_snapshots", "liability_snapshots"} {
		sqlStr, args, err := builder.BuildDelete(table, map[string]interface{}{"snapshot_id": snapshotID})
		if err != nil {
			return err
		}
		sqlStr, args = dbutil.Finalize(sqlStr, args)
		if _, err := tx.ExecContext(ctx, sqlStr, args...); err != nil {
			return err
		}
	}
	sqlStr, args, err := builder.BuildDelete("portfolio_snapshots",
		map[string]interface{}{"id": snapshotID, "user_id": userID})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	if _, err := tx.ExecContext(ctx, sqlStr, args...); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *SnapshotRepo) ListAssetRows(ctx context.Context, snapshotID string) ([]*model.AssetSnapshot, error) {
	sqlStr, args, err := builder.BuildSelect("asset_snapshots",
		map[string]interface{}{"snapshot_id": snapshotID, "_orderby": "value_in_inr desc"}, assetSnapshotFields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var snapshots []*model.AssetSnapshot
	for rows.Next() {
		var row model.AssetSnapshot
		if err := rows.Scan(&row.ID, &row.SnapshotID, &row.AssetID, &row.AssetName,
			&row.AssetTypeName, &row.CurrentValue, &row.GainLoss, &row.Currency,
			&row.ValueInINR); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, &row)
	}
	return snapshots, rows.Err()
}

func (r *SnapshotRepo) ListLiabilityRows(ctx context.Context, snapshotID string) ([]*model.LiabilitySnapshot, error) {
	sqlStr, args, err := builder.BuildSelect("liability_snapshots",
		map[string]interface{}{"snapshot_id": snapshotID, "_orderby": "balance_in_inr desc"}, liabilitySnapshotFields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var snapshots []*model.LiabilitySnapshot
	for rows.Next() {
		var row model.LiabilitySnapshot
		if err := rows.Scan(&row.ID, &row.SnapshotID, &row.LiabilityID, &row.LiabilityName,
			&row.LiabilityTypeName, &row.CurrentBalance, &row.Currency,
			&row.BalanceInINR); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, &row)
	}
	return snapshots, rows.Err()
}

// ListAssetRowsBySnapshotIDs returns the asset rows of every listed
// snapshot in one query. Callers group them by snapshot themselves.
func (r *SnapshotRepo) ListAssetRowsBySnapshotIDs(ctx context.Context, snapshotIDs []string) ([]*model.AssetSnapshot, error) {
	if len(snapshotIDs) == 0 {
		return nil, nil
	}
	sqlStr, args, err := builder.BuildSelect("asset_snapshots",
		map[string]interface{}{"snapshot_id in": snapshotIDs}, assetSnapshotFields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var snapshots []*model.AssetSnapshot
	for rows.Next() {
		var row model.AssetSnapshot
		if err := rows.Scan(&row.ID, &row.SnapshotID, &row.AssetID, &row.AssetName,
			&row.AssetTypeName, &row.CurrentValue, &row.GainLoss, &row.Currency,
			&row.ValueInINR); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, &row)
	}
	return snapshots, rows.Err()
}

// ListLiabilityRowsBySnapshotIDs returns the liability rows of every listed
// snapshot in one query.
func (r *SnapshotRepo) ListLiabilityRowsBySnapshotIDs(ctx context.Context, snapshotIDs []string) ([]*model.LiabilitySnapshot, error) {
	if len(snapshotIDs) == 0 {
		return nil, nil
	}
	sqlStr, args, err := builder.BuildSelect("liability_snapshots",
		map[string]interface{}{"snapshot_id in": snapshotIDs}, liabilitySnapshotFields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var snapshots []*model.LiabilitySnapshot
	for rows.Next() {
		var row model.LiabilitySnapshot
		if err := rows.Scan(&row.ID, &row.SnapshotID, &row.LiabilityID, &row.LiabilityName,
			&row.LiabilityTypeName, &row.CurrentBalance, &row.Currency,
			&row.BalanceInINR); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, &row)
	}
	return snapshots, rows.Err()
}

func (r *SnapshotRepo) query(ctx context.Context, where map[string]interface{}) ([]*model.PortfolioSnapshot, error) {
	sqlStr, args, err := builder.BuildSelect("portfolio_snapshots", where, portfolioSnapshotFields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var snapshots []*model.PortfolioSnapshot
	for rows.Next() {
		var snapshot model.PortfolioSnapshot
		if err := rows.Scan(&snapshot.ID, &snapshot.UserID, &snapshot.SnapshotDate,
			&snapshot.TotalAssets, &snapshot.TotalLiabilities, &snapshot.NetWorth,
			&snapshot.TotalGains, &snapshot.Ctime); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, &snapshot)
	}
	return snapshots, rows.Err()
}
