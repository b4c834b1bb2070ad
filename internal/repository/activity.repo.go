package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mystore-backend/internal/domain"
	"mystore-backend/pkg/xerrors"
)

type ActivityRepo struct {
	db *pgxpool.Pool
}

func NewActivityRepo(db *pgxpool.Pool) *ActivityRepo {
	return &ActivityRepo{db: db}
}

// insertActivity appends a log entry inside the caller's transaction, so a
// mutation and its audit row commit or roll back together.
func insertActivity(ctx context.Context, tx pgx.Tx, e *domain.ActivityLogEntry) error {
	oldData, err := marshalSnapshot(e.OldData)
	if err != nil {
		return err
	}
	newData, err := marshalSnapshot(e.NewData)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO product_activity_log (product_id, seller_email, seller_name, action, product_title, old_data, new_data)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, e.ProductID, e.SellerEmail, e.SellerName, e.Action, e.ProductTitle, oldData, newData)
	return err
}

func marshalSnapshot(m map[string]interface{}) (*string, error) {
	if m == nil {
		return nil, nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	s := string(b)
	return &s, nil
}

// ListBySeller returns the newest entries first, capped at limit.
func (r *ActivityRepo) ListBySeller(ctx context.Context, sellerEmail string, limit int) ([]domain.ActivityLogEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, product_id, seller_email, seller_name, action, product_title, old_data, new_data, created_at
		FROM product_activity_log
		WHERE seller_email = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, sellerEmail, limit)
	if err != nil {
		return nil, xerrors.Store("list activity", err)
	}
	defer rows.Close()

	var out []domain.ActivityLogEntry
	for rows.Next() {
		var e domain.ActivityLogEntry
		var oldData, newData *string
		if err := rows.Scan(&e.ID, &e.ProductID, &e.SellerEmail, &e.SellerName,
			&e.Action, &e.ProductTitle, &oldData, &newData, &e.CreatedAt); err != nil {
			return nil, xerrors.Store("scan activity", err)
		}
		if oldData != nil {
			_ = json.Unmarshal([]byte(*oldData), &e.OldData)
		}
		if newData != nil {
			_ = json.Unmarshal([]byte(*newData), &e.NewData)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
