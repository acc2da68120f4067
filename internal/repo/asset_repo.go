package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"
	"github.com/shopspring/decimal"

	"github.com/netly-app/netly/internal/model"
	"github.com/netly-app/netly/internal/pkg/dbutil"
	appErr "github.com/netly-app/netly/internal/pkg/errors"
)

var assetFields = []string{
	"id", "user_id", "name", "asset_type_id", "current_value", "purchase_price",
	"purchase_date", "quantity", "description", "location", "currency", "illiquid",
	"ctime", "mtime",
}

type AssetRepo struct {
	db *sql.DB
}

func NewAssetRepo(db *sql.DB) *AssetRepo {
	return &AssetRepo{db: db}
}

func (r *AssetRepo) Create(ctx context.Context, asset *model.Asset) error {
	data := map[string]interface{}{
		"id":             asset.ID,
		"user_id":        asset.UserID,
		"name":           asset.Name,
		"asset_type_id":  asset.AssetTypeID,
		"current_value":  asset.CurrentValue,
		"purchase_price": decArg(asset.PurchasePrice),
		"purchase_date":  asset.PurchaseDate,
		"quantity":       decArg(asset.Quantity),
		"description":    asset.Description,
		"location":       asset.Location,
		"currency":       asset.Currency,
		"illiquid":       asset.Illiquid,
		"ctime":          asset.Ctime,
		"mtime":          asset.Mtime,
	}
	sqlStr, args, err := builder.BuildInsert("assets", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *AssetRepo) Update(ctx context.Context, asset *model.Asset) error {
	where := map[string]interface{}{"id": asset.ID, "user_id": asset.UserID}
	update := map[string]interface{}{
		"name":           asset.Name,
		"asset_type_id":  asset.AssetTypeID,
		"current_value":  asset.CurrentValue,
		"purchase_price": decArg(asset.PurchasePrice),
		"purchase_date":  asset.PurchaseDate,
		"quantity":       decArg(asset.Quantity),
		"description":    asset.Description,
		"location":       asset.Location,
		"currency":       asset.Currency,
		"illiquid":       asset.Illiquid,
		"mtime":          asset.Mtime,
	}
	sqlStr, args, err := builder.BuildUpdate("assets", where, update)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}

func (r *AssetRepo) Delete(ctx context.Context, userID, assetID string) error {
	where := map[string]interface{}{"id": assetID, "user_id": userID}
	sqlStr, args, err := builder.BuildDelete("assets", where)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}

func (r *AssetRepo) GetByID(ctx context.Context, userID, assetID string) (*model.Asset, error) {
	assets, err := r.query(ctx, map[string]interface{}{"id": assetID, "user_id": userID})
	if err != nil {
		return nil, err
	}
	if len(assets) == 0 {
		return nil, appErr.ErrNotFound
	}
	return assets[0], nil
}

// ListByUser returns the user's assets, most recently updated first.
func (r *AssetRepo) ListByUser(ctx context.Context, userID string) ([]*model.Asset, error) {
	return r.query(ctx, map[string]interface{}{"user_id": userID, "_orderby": "mtime desc"})
}

func (r *AssetRepo) CountByUserAndCurrency(ctx context.Context, userID, currency string) (int64, error) {
	sqlStr, args, err := builder.BuildSelect("assets",
		map[string]interface{}{"user_id": userID, "currency": currency}, []string{"count(*)"})
	if err != nil {
		return 0, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	var count int64
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *AssetRepo) CountByUserAndType(ctx context.Context, userID, assetTypeID string) (int64, error) {
	sqlStr, args, err := builder.BuildSelect("assets",
		map[string]interface{}{"user_id": userID, "asset_type_id": assetTypeID}, []string{"count(*)"})
	if err != nil {
		return 0, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	var count int64
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *AssetRepo) query(ctx context.Context, where map[string]interface{}) ([]*model.Asset, error) {
	sqlStr, args, err := builder.BuildSelect("assets", where, assetFields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var assets []*model.Asset
	for rows.Next() {
		var asset model.Asset
		var purchasePrice, quantity decimal.NullDecimal
		if err := rows.Scan(&asset.ID, &asset.UserID, &asset.Name, &asset.AssetTypeID,
			&asset.CurrentValue, &purchasePrice, &asset.PurchaseDate, &quantity,
			&asset.Description, &asset.Location, &asset.Currency, &asset.Illiquid,
			&asset.Ctime, &asset.Mtime); err != nil {
			return nil, err
		}
		asset.PurchasePrice = decPtr(purchasePrice)
		asset.Quantity = decPtr(quantity)
		assets = append(assets, &asset)
	}
	return assets, rows.Err()
}
