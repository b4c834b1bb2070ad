package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"mystore-backend/internal/domain"
	"mystore-backend/pkg/xerrors"
)

type OrderRepo struct {
	db *pgxpool.Pool
}

func NewOrderRepo(db *pgxpool.Pool) *OrderRepo {
	return &OrderRepo{db: db}
}

// Save writes the order and its items in one transaction.
func (r *OrderRepo) Save(ctx context.Context, o *domain.Order) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, xerrors.Store("begin order save", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO orders (email, full_name, total_price, address, city, state, pincode, phone)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, o.Email, o.FullName, o.TotalPrice, o.Address, o.City, o.State, o.Pincode, o.Phone).Scan(&o.ID)
	if err != nil {
		return 0, xerrors.Store("insert order", err)
	}

	for _, item := range o.Items {
		_, err := tx.Exec(ctx, `
			INSERT INTO order_items (order_id, title, price, quantity)
			VALUES ($1, $2, $3, $4)
		`, o.ID, item.Title, item.Price, item.Quantity)
		if err != nil {
			return 0, xerrors.Store("insert order item", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, xerrors.Store("commit order save", err)
	}
	return o.ID, nil
}

func (r *OrderRepo) ListByEmail(ctx context.Context, email string) ([]domain.Order, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, full_name, total_price, address, city, state, pincode, phone
		FROM orders
		WHERE email = $1
		ORDER BY id DESC
	`, email)
	if err != nil {
		return nil, xerrors.Store("list orders", err)
	}
	defer rows.Close()

	var out []domain.Order
	for rows.Next() {
		var o domain.Order
		var address, city, state, pincode, phone *string
		if err := rows.Scan(&o.ID, &o.FullName, &o.TotalPrice, &address, &city, &state, &pincode, &phone); err != nil {
			return nil, xerrors.Store("scan order", err)
		}
		o.Email = email
		o.Address = deref(address)
		o.City = deref(city)
		o.State = deref(state)
		o.Pincode = deref(pincode)
		o.Phone = deref(phone)
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, xerrors.Store("list orders", err)
	}

	for i := range out {
		items, err := r.listItems(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Items = items
	}
	return out, nil
}

func (r *OrderRepo) listItems(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT title, price, quantity FROM order_items WHERE order_id = $1
	`, orderID)
	if err != nil {
		return nil, xerrors.Store("list order items", err)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var it domain.OrderItem
		if err := rows.Scan(&it.Title, &it.Price, &it.Quantity); err != nil {
			return nil, xerrors.Store("scan order item", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
