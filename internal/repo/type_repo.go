package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/netly-app/netly/internal/model"
	"github.com/netly-app/netly/internal/pkg/dbutil"
	appErr "github.com/netly-app/netly/internal/pkg/errors"
)

var typeFields = []string{"id", "user_id", "type_name", "display_name", "ctime"}

// AssetTypeRepo and LiabilityTypeRepo manage the per-user category tables.
// The tables share a shape, so both repos delegate to the same helpers.

type AssetTypeRepo struct {
	db *sql.DB
}

func NewAssetTypeRepo(db *sql.DB) *AssetTypeRepo {
	return &AssetTypeRepo{db: db}
}

func (r *AssetTypeRepo) Create(ctx context.Context, t *model.AssetType) error {
	return insertType(ctx, r.db, "asset_types", t.ID, t.UserID, t.TypeName, t.DisplayName, t.Ctime)
}

func (r *AssetTypeRepo) Delete(ctx context.Context, userID, typeID string) error {
	return deleteType(ctx, r.db, "asset_types", userID, typeID)
}

func (r *AssetTypeRepo) GetByID(ctx context.Context, userID, typeID string) (*model.AssetType, error) {
	row, err := getTypeByID(ctx, r.db, "asset_types", userID, typeID)
	if err != nil {
		return nil, err
	}
	return &model.AssetType{ID: row.id, UserID: row.userID, TypeName: row.typeName,
		DisplayName: row.displayName, Ctime: row.ctime}, nil
}

func (r *AssetTypeRepo) ListByUser(ctx context.Context, userID string) ([]*model.AssetType, error) {
	typeRows, err := listTypes(ctx, r.db, "asset_types", userID)
	if err != nil {
		return nil, err
	}
	types := make([]*model.AssetType, 0, len(typeRows))
	for _, row := range typeRows {
		types = append(types, &model.AssetType{ID: row.id, UserID: row.userID,
			TypeName: row.typeName, DisplayName: row.displayName, Ctime: row.ctime})
	}
	return types, nil
}

type LiabilityTypeRepo struct {
	db *sql.DB
}

func NewLiabilityTypeRepo(db *sql.DB) *LiabilityTypeRepo {
	return &LiabilityTypeRepo{db: db}
}

func (r *LiabilityTypeRepo) Create(ctx context.Context, t *model.LiabilityType) error {
	return insertType(ctx, r.db, "liability_types", t.ID, t.UserID, t.TypeName, t.DisplayName, t.Ctime)
}

func (r *LiabilityTypeRepo) Delete(ctx context.Context, userID, typeID string) error {
	return deleteType(ctx, r.db, "liability_types", userID, typeID)
}

func (r *LiabilityTypeRepo) GetByID(ctx context.Context, userID, typeID string) (*model.LiabilityType, error) {
	row, err := getTypeByID(ctx, r.db, "liability_types", userID, typeID)
	if err != nil {
		return nil, err
	}
	return &model.LiabilityType{ID: row.id, UserID: row.userID, TypeName: row.typeName,
		DisplayName: row.displayName, Ctime: row.ctime}, nil
}

func (r *LiabilityTypeRepo) ListByUser(ctx context.Context, userID string) ([]*model.LiabilityType, error) {
	typeRows, err := listTypes(ctx, r.db, "liability_types", userID)
	if err != nil {
		return nil, err
	}
	types := make([]*model.LiabilityType, 0, len(typeRows))
	for _, row := range typeRows {
		types = append(types, &model.LiabilityType{ID: row.id, UserID: row.userID,
			TypeName: row.typeName, DisplayName: row.displayName, Ctime: row.ctime})
	}
	return types, nil
}

type typeRow struct {
	id          string
	userID      string
	typeName    string
	displayName string
	ctime       int64
}

func insertType(ctx context.Context, db *sql.DB, table, id, userID, typeName, displayName string, ctime int64) error {
	data := map[string]interface{}{
		"id":           id,
		"user_id":      userID,
		"type_name":    typeName,
		"display_name": displayName,
		"ctime":        ctime,
	}
	sqlStr, args, err := builder.BuildInsert(table, []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	if _, err := db.ExecContext(ctx, sqlStr, args...); err != nil {
		if dbutil.IsConflict(err) {
			return appErr.ErrConflict
		}
		return err
	}
	return nil
}

func deleteType(ctx context.Context, db *sql.DB, table, userID, typeID string) error {
	where := map[string]interface{}{"id": typeID, "user_id": userID}
	sqlStr, args, err := builder.BuildDelete(table, where)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := db.ExecContext(ctx, sqlStr, args...)
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

func getTypeByID(ctx context.Context, db *sql.DB, table, userID, typeID string) (*typeRow, error) {
	typeRows, err := queryTypes(ctx, db, table, map[string]interface{}{"id": typeID, "user_id": userID})
	if err != nil {
		return nil, err
	}
	if len(typeRows) == 0 {
		return nil, appErr.ErrNotFound
	}
	return typeRows[0], nil
}

func listTypes(ctx context.Context, db *sql.DB, table, userID string) ([]*typeRow, error) {
	return queryTypes(ctx, db, table, map[string]interface{}{"user_id": userID, "_orderby": "ctime asc"})
}

func queryTypes(ctx context.Context, db *sql.DB, table string, where map[string]interface{}) ([]*typeRow, error) {
	sqlStr, args, err := builder.BuildSelect(table, where, typeFields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var typeRows []*typeRow
	for rows.Next() {
		var row typeRow
		if err := rows.Scan(&row.id, &row.userID, &row.typeName, &row.displayName, &row.ctime); err != nil {
			return nil, err
		}
		typeRows = append(typeRows, &row)
	}
	return typeRows, rows.Err()
}
