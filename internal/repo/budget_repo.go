package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/netly-app/netly/internal/model"
	"github.com/netly-app/netly/internal/pkg/dbutil"
	appErr "github.com/netly-app/netly/internal/pkg/errors"
)

var budgetItemFields = []string{
	"id", "user_id", "item_type", "item_name", "amount", "is_investment",
	"description", "display_order", "ctime", "mtime",
}

type BudgetRepo struct {
	db *sql.DB
}

func NewBudgetRepo(db *sql.DB) *BudgetRepo {
	return &BudgetRepo{db: db}
}

func (r *BudgetRepo) Create(ctx context.Context, item *model.BudgetItem) error {
	data := map[string]interface{}{
		"id":            item.ID,
		"user_id":       item.UserID,
		"item_type":     item.ItemType,
		"item_name":     item.ItemName,
		"amount":        item.Amount,
		"is_investment": item.IsInvestment,
		"description":   item.Description,
		"display_order": item.DisplayOrder,
		"ctime":         item.Ctime,
		"mtime":         item.Mtime,
	}
	sqlStr, args, err := builder.BuildInsert("budget_items", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *BudgetRepo) Update(ctx context.Context, item *model.BudgetItem) error {
	where := map[string]interface{}{"id": item.ID, "user_id": item.UserID}
	update := map[string]interface{}{
		"item_type":     item.ItemType,
		"item_name":     item.ItemName,
		"amount":        item.Amount,
		"is_investment": item.IsInvestment,
		"description":   item.Description,
		"display_order": item.DisplayOrder,
		"mtime":         item.Mtime,
	}
	sqlStr, args, err := builder.BuildUpdate("budget_items", where, update)
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

func (r *BudgetRepo) Delete(ctx context.Context, userID, itemID string) error {
	where := map[string]interface{}{"id": itemID, "user_id": userID}
	sqlStr, args, err := builder.BuildDelete("budget_items", where)
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

func (r *BudgetRepo) GetByID(ctx context.Context, userID, itemID string) (*model.BudgetItem, error) {
	items, err := r.query(ctx, map[string]interface{}{"id": itemID, "user_id": userID})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, appErr.ErrNotFound
	}
	return items[0], nil
}

func (r *BudgetRepo) ListByUser(ctx context.Context, userID string) ([]*model.BudgetItem, error) {
	return r.query(ctx, map[string]interface{}{"user_id": userID, "_orderby": "display_order asc, ctime asc"})
}

func (r *BudgetRepo) ListByUserAndType(ctx context.Context, userID, itemType string) ([]*model.BudgetItem, error) {
	return r.query(ctx, map[string]interface{}{
		"user_id": userID, "item_type": itemType, "_orderby": "display_order asc, ctime asc",
	})
}

func (r *BudgetRepo) query(ctx context.Context, where map[string]interface{}) ([]*model.BudgetItem, error) {
	sqlStr, args, err := builder.BuildSelect("budget_items", where, budgetItemFields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var items []*model.BudgetItem
	for rows.Next() {
		var item model.BudgetItem
		if err := rows.Scan(&item.ID, &item.UserID, &item.ItemType, &item.ItemName,
			&item.Amount, &item.IsInvestment, &item.Description, &item.DisplayOrder,
			&item.Ctime, &item.Mtime); err != nil {
			return nil, err
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}
