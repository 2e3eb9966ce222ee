package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/oakmall/oakmall/internal/model"
	"github.com/oakmall/oakmall/internal/pkg/dbutil"
	appErr "github.com/oakmall/oakmall/internal/pkg/errors"
)

type InteractionRepo struct {
	db *sql.DB
}

func NewInteractionRepo(db *sql.DB) *InteractionRepo {
	return &InteractionRepo{db: db}
}

// Create inserts one behaviour signal. The unique index over
// (user_id, product_id, action) makes repeats a conflict.
func (r *InteractionRepo) Create(ctx context.Context, inter *model.UserInteraction) error {
	data := map[string]interface{}{
		"id":         inter.ID,
		"user_id":    inter.UserID,
		"product_id": inter.ProductID,
		"action":     inter.Action,
		"ctime":      inter.Ctime,
	}
	sqlStr, args, err := builder.BuildInsert("user_interactions", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		if dbutil.IsConflict(err) {
			return appErr.ErrConflict
		}
		return err
	}
	return nil
}

// ListAll reads every interaction row. Full-table-scan design, same as orders.
func (r *InteractionRepo) ListAll(ctx context.Context) ([]model.UserInteraction, error) {
	sqlStr, args, err := builder.BuildSelect("user_interactions", nil, []string{"id", "user_id", "product_id", "action", "ctime"})
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var inters []model.UserInteraction
	for rows.Next() {
		var inter model.UserInteraction
		if err := rows.Scan(&inter.ID, &inter.UserID, &inter.ProductID, &inter.Action, &inter.Ctime); err != nil {
			return nil, err
		}
		inters = append(inters, inter)
	}
	return inters, rows.Err()
}

// CountAll returns the number of interaction rows in the store.
func (r *InteractionRepo) CountAll(ctx context.Context) (int64, error) {
	row := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM user_interactions")
	var count int64
	if err := row.Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
