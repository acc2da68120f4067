package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/netly-app/netly/internal/model"
	"github.com/netly-app/netly/internal/pkg/dbutil"
	appErr "github.com/netly-app/netly/internal/pkg/errors"
)

var currencyRateFields = []string{
	"id", "user_id", "currency_code", "currency_name", "rate_to_inr", "is_active",
	"ctime", "mtime",
}

type CurrencyRateRepo struct {
	db *sql.DB
}

func NewCurrencyRateRepo(db *sql.DB) *CurrencyRateRepo {
	return &CurrencyRateRepo{db: db}
}

func (r *CurrencyRateRepo) Create(ctx context.Context, rate *model.CurrencyRate) error {
	data := map[string]interface{}{
		"id":            rate.ID,
		"user_id":       rate.UserID,
		"currency_code": rate.CurrencyCode,
		"currency_name": rate.CurrencyName,
		"rate_to_inr":   rate.RateToINR,
		"is_active":     rate.IsActive,
		"ctime":         rate.Ctime,
		"mtime":         rate.Mtime,
	}
	sqlStr, args, err := builder.BuildInsert("currency_rates", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	if _, err := r.db.ExecContext(ctx, sqlStr, args...); err != nil {
		if dbutil.IsConflict(err) {
			return appErr.ErrConflict
		}
		return err
	}
	return nil
}

func (r *CurrencyRateRepo) Update(ctx context.Context, rate *model.CurrencyRate) error {
	where := map[string]interface{}{"id": rate.ID, "user_id": rate.UserID}
	update := map[string]interface{}{
		"currency_name": rate.CurrencyName,
		"rate_to_inr":   rate.RateToINR,
		"is_active":     rate.IsActive,
		"mtime":         rate.Mtime,
	}
	sqlStr, args, err := builder.BuildUpdate("currency_rates", where, update)
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

func (r *CurrencyRateRepo) Delete(ctx context.Context, userID, rateID string) error {
	where := map[string]interface{}{"id": rateID, "user_id": userID}
	sqlStr, args, err := builder.BuildDelete("currency_rates", where)
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

func (r *CurrencyRateRepo) GetByID(ctx context.Context, userID, rateID string) (*model.CurrencyRate, error) {
	rates, err := r.query(ctx, map[string]interface{}{"id": rateID, "user_id": userID})
	if err != nil {
		return nil, err
	}
	if len(rates) == 0 {
		return nil, appErr.ErrNotFound
	}
	return rates[0], nil
}

func (r *CurrencyRateRepo) ListByUser(ctx context.Context, userID string) ([]*model.CurrencyRate, error) {
	return r.query(ctx, map[string]interface{}{"user_id": userID, "_orderby": "currency_code asc"})
}

func (r *CurrencyRateRepo) ListActiveByUser(ctx context.Context, userID string) ([]*model.CurrencyRate, error) {
	return r.query(ctx, map[string]interface{}{
		"user_id": userID, "is_active": true, "_orderby": "currency_code asc",
	})
}

func (r *CurrencyRateRepo) query(ctx context.Context, where map[string]interface{}) ([]*model.CurrencyRate, error) {
	sqlStr, args, err := builder.BuildSelect("currency_rates", where, currencyRateFields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var rates []*model.CurrencyRate
	for rows.Next() {
		var rate model.CurrencyRate
		if err := rows.Scan(&rate.ID, &rate.UserID, &rate.CurrencyCode, &rate.CurrencyName,
			&rate.RateToINR, &rate.IsActive, &rate.Ctime, &rate.Mtime); err != nil {
			return nil, err
		}
		rates = append(rates, &rate)
	}
	return rates, rows.Err()
}
