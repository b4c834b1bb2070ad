package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mystore-backend/internal/domain"
	"mystore-backend/pkg/xerrors"
)

type ProductRepo struct {
	db *pgxpool.Pool
}

func NewProductRepo(db *pgxpool.Pool) *ProductRepo {
	return &ProductRepo{db: db}
}

// CreateWithLog inserts the product and its created entry atomically. The
// entry's ProductID is filled from the fresh row.
func (r *ProductRepo) CreateWithLog(ctx context.Context, p *domain.Product, entry *domain.ActivityLogEntry) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, xerrors.Store("begin product create", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO products (title, price, description, category, image, seller_email, seller_name, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`, p.Title, p.Price, p.Description, p.Category, p.Image, p.SellerEmail, p.SellerName, p.Status).
		Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return 0, xerrors.Store("insert product", err)
	}

	entry.ProductID = p.ID
	if err := insertActivity(ctx, tx, entry); err != nil {
		return 0, xerrors.Store("insert activity", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, xerrors.Store("commit product create", err)
	}
	return p.ID, nil
}

func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	var description, category, image, sellerName, status *string
	err := r.db.QueryRow(ctx, `
		SELECT id, title, price, description, category, image, seller_email, seller_name, status, created_at
		FROM products
		WHERE id = $1
	`, id).Scan(&p.ID, &p.Title, &p.Price, &description, &category, &image,
		&p.SellerEmail, &sellerName, &status, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, xerrors.ErrNotFound
		}
		return nil, xerrors.Store("get product", err)
	}

	p.Description = deref(description)
	p.Category = deref(category)
	p.Image = deref(image)
	p.SellerName = deref(sellerName)
	p.Status = deref(status)
	if p.Status == "" {
		p.Status = domain.ProductDraft
	}
	return &p, nil
}

// UpdateWithLog persists new field values and the updated entry atomically.
// Status is untouched.
func (r *ProductRepo) UpdateWithLog(ctx context.Context, p *domain.Product, entry *domain.ActivityLogEntry) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return xerrors.Store("begin product update", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE products
		SET title = $1, price = $2, description = $3, category = $4, image = $5
		WHERE id = $6
	`, p.Title, p.Price, p.Description, p.Category, p.Image, p.ID)
	if err != nil {
		return xerrors.Store("update product", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	if err := insertActivity(ctx, tx, entry); err != nil {
		return xerrors.Store("insert activity", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return xerrors.Store("commit product update", err)
	}
	return nil
}

// SetStatusWithLog flips draft/published and appends the entry atomically.
func (r *ProductRepo) SetStatusWithLog(ctx context.Context, id int64, status string, entry *domain.ActivityLogEntry) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return xerrors.Store("begin status change", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `UPDATE products SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return xerrors.Store("update product status", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	if err := insertActivity(ctx, tx, entry); err != nil {
		return xerrors.Store("insert activity", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return xerrors.Store("commit status change", err)
	}
	return nil
}

// DeleteWithLog removes the row and appends the deleted entry atomically.
// No soft-delete; this is irreversible.
func (r *ProductRepo) DeleteWithLog(ctx context.Context, id int64, entry *domain.ActivityLogEntry) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return xerrors.Store("begin product delete", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return xerrors.Store("delete product", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	if err := insertActivity(ctx, tx, entry); err != nil {
		return xerrors.Store("insert activity", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return xerrors.Store("commit product delete", err)
	}
	return nil
}

func (r *ProductRepo) ListBySeller(ctx context.Context, sellerEmail string) ([]domain.Product, error) {
	return r.scanMany(ctx, `WHERE seller_email = $1 ORDER BY created_at DESC`, sellerEmail)
}

func (r *ProductRepo) ListPublished(ctx context.Context) ([]domain.Product, error) {
	return r.scanMany(ctx, `WHERE status = 'published' ORDER BY created_at DESC`)
}

func (r *ProductRepo) scanMany(ctx context.Context, tail string, args ...interface{}) ([]domain.Product, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, title, price, description, category, image, seller_email, seller_name, status, created_at
		FROM products `+tail, args...)
	if err != nil {
		return nil, xerrors.Store("list products", err)
	}
	defer rows.Close()

	var out []domain.Product
	for rows.Next() {
		var p domain.Product
		var description, category, image, sellerName, status *string
		if err := rows.Scan(&p.ID, &p.Title, &p.Price, &description, &category, &image,
			&p.SellerEmail, &sellerName, &status, &p.CreatedAt); err != nil {
			return nil, xerrors.Store("scan product", err)
		}
		p.Description = deref(description)
		p.Category = deref(category)
		p.Image = deref(image)
		p.SellerName = deref(sellerName)
		p.Status = deref(status)
		if p.Image == "" {
			p.Image = domain.PlaceholderImage
		}
		if p.Status == "" {
			p.Status = domain.ProductDraft
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
