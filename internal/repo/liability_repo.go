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

var liabilityFields = []string{
	"id", "user_id", "name", "liability_type_id", "current_balance", "original_amount",
	"start_date", "end_date", "interest_rate", "monthly_payment", "lender", "description",
	"currency", "ctime", "mtime",
}

type LiabilityRepo struct {
	db *sql.DB
}

func NewLiabilityRepo(db *sql.DB) *LiabilityRepo {
	return &LiabilityRepo{db: db}
}

func (r *LiabilityRepo) Create(ctx context.Context, liability *model.Liability) error {
	data := map[string]interface{}{
		"id":                liability.ID,
		"user_id":           liability.UserID,
		"name":              liability.Name,
		"liability_type_id": liability.LiabilityTypeID,
		"current_balance":   liability.CurrentBalance,
		"original_amount":   decArg(liability.OriginalAmount),
		"start_date":        liability.StartDate,
		"end_date":          liability.EndDate,
		"interest_rate":     decArg(liability.InterestRate),
		"monthly_payment":   decArg(liability.MonthlyPayment),
		"lender":            liability.Lender,
		"description":       liability.Description,
		"currency":          liability.Currency,
		"ctime":             liability.Ctime,
		"mtime":             liability.Mtime,
	}
	sqlStr, args, err := builder.BuildInsert("liabilities", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *LiabilityRepo) Update(ctx context.Context, liability *model.Liability) error {
	where := map[string]interface{}{"id": liability.ID, "user_id": liability.UserID}
	update := map[string]interface{}{
		"name":              liability.Name,
		"liability_type_id": liability.LiabilityTypeID,
		"current_balance":   liability.CurrentBalance,
		"original_amount":   decArg(liability.OriginalAmount),
		"start_date":        liability.StartDate,
		"end_date":          liability.EndDate,
		"interest_rate":     decArg(liability.InterestRate),
		"monthly_payment":   decArg(liability.MonthlyPayment),
		"lender":            liability.Lender,
		"description":       liability.Description,
		"currency":          liability.Currency,
		"mtime":             liability.Mtime,
	}
	sqlStr, args, err := builder.BuildUpdate("liabilities", where, update)
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

func (r *LiabilityRepo) Delete(ctx context.Context, userID, liabilityID string) error {
	where := map[string]interface{}{"id": liabilityID, "user_id": userID}
	sqlStr, args, err := builder.BuildDelete("liabilities", where)
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

func (r *LiabilityRepo) GetByID(ctx context.Context, userID, liabilityID string) (*model.Liability, error) {
	liabilities, err := r.query(ctx, map[string]interface{}{"id": liabilityID, "user_id": userID})
	if err != nil {
		return nil, err
	}
	if len(liabilities) == 0 {
		return nil, appErr.ErrNotFound
	}
	return liabilities[0], nil
}

func (r *LiabilityRepo) ListByUser(ctx context.Context, userID string) ([]*model.Liability, error) {
	return r.query(ctx, map[string]interface{}{"user_id": userID, "_orderby": "mtime desc"})
}

func (r *LiabilityRepo) CountByUserAndCurrency(ctx context.Context, userID, currency string) (int64, error) {
	sqlStr, args, err := builder.BuildSelect("liabilities",
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

func (r *LiabilityRepo) CountByUserAndType(ctx context.Context, userID, liabilityTypeID string) (int64, error) {
	sqlStr, args, err := builder.BuildSelect("liabilities",
		map[string]interface{}{"user_id": userID, "liability_type_id": liabilityTypeID}, []string{"count(*)"})
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

func (r *LiabilityRepo) query(ctx context.Context, where map[string]interface{}) ([]*model.Liability, error) {
	sqlStr, args, err := builder.BuildSelect("liabilities", where, liabilityFields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var liabilities []*model.Liability
	for rows.Next() {
		var liability model.Liability
		var originalAmount, interestRate, monthlyPayment decimal.NullDecimal
		if err := rows.Scan(&liability.ID, &liability.UserID, &liability.Name,
			&liability.LiabilityTypeID, &liability.CurrentBalance, &originalAmount,
			&liability.StartDate, &liability.EndDate, &interestRate, &monthlyPayment,
			&liability.Lender, &liability.Description, &liability.Currency,
			&liability.Ctime, &liability.Mtime); err != nil {
			return nil, err
		}
		liability.OriginalAmount = decPtr(originalAmount)
		liability.InterestRate = decPtr(interestRate)
		liability.MonthlyPayment = decPtr(monthlyPayment)
		liabilities = append(liabilities, &liability)
	}
	return liabilities, rows.Err()
}
