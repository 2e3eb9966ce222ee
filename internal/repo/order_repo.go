package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/oakmall/oakmall/internal/model"
	"github.com/oakmall/oakmall/internal/pkg/dbutil"
)

type OrderRepo struct {
	db *sql.DB
}

func NewOrderRepo(db *sql.DB) *OrderRepo {
	return &OrderRepo{db: db}
}

// ListAll reads every order together with its line items. The recommendation
// pipeline is a full-table-scan design; there is no pagination here.
func (r *OrderRepo) ListAll(ctx context.Context) ([]model.Order, error) {
	sqlStr, args, err := builder.BuildSelect("orders", nil, []string{"id", "user_id", "ctime"})
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var orders []model.Order
	index := make(map[string]int)
	for rows.Next() {
		var order model.Order
		if err := rows.Scan(&order.ID, &order.UserID, &order.Ctime); err != nil {
			return nil, err
		}
		index[order.ID] = len(orders)
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, nil
	}

	itemSQL, itemArgs, err := builder.BuildSelect("order_items", nil, []string{"order_id", "product_id", "quantity"})
	if err != nil {
		return nil, err
	}
	itemSQL, itemArgs = dbutil.Finalize(itemSQL, itemArgs)
	itemRows, err := r.db.QueryContext(ctx, itemSQL, itemArgs...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = itemRows.Close() }()
	for itemRows.Next() {
		var orderID string
		var item model.OrderItem
		if err := itemRows.Scan(&orderID, &item.ProductID, &item.Quantity); err != nil {
			return nil, err
		}
		if i, ok := index[orderID]; ok {
			orders[i].Items = append(orders[i].Items, item)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}

// CountAll returns the number of orders in the store.
func (r *OrderRepo) CountAll(ctx context.Context) (int64, error) {
	row := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM orders")
	var count int64
	if err := row.Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
