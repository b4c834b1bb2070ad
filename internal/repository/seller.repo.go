package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mystore-backend/internal/domain"
	"mystore-backend/pkg/xerrors"
)

type SellerRepo struct {
	db *pgxpool.Pool
}

func NewSellerRepo(db *pgxpool.Pool) *SellerRepo {
	return &SellerRepo{db: db}
}

func (r *SellerRepo) Create(ctx context.Context, s *domain.Seller) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO sellers (fullname, email, password, store_name, store_description, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, s.FullName, s.Email, s.PasswordHash, s.StoreName, s.StoreDescription, s.Status).
		Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		if xerrors.IsUniqueViolation(err) {
			return xerrors.ErrDuplicateEmail
		}
		return xerrors.Store("insert seller", err)
	}
	return nil
}

func (r *SellerRepo) GetByEmail(ctx context.Context, email string) (*domain.Seller, error) {
	return r.scanOne(ctx, `WHERE email = $1`, email)
}

func (r *SellerRepo) GetByID(ctx context.Context, id int64) (*domain.Seller, error) {
	return r.scanOne(ctx, `WHERE id = $1`, id)
}

func (r *SellerRepo) scanOne(ctx context.Context, where string, arg interface{}) (*domain.Seller, error) {
	var s domain.Seller
	err := r.db.QueryRow(ctx, `
		SELECT id, fullname, email, password, store_name, store_description, status, created_at
		FROM sellers `+where+` LIMIT 1
	`, arg).Scan(&s.ID, &s.FullName, &s.Email, &s.PasswordHash, &s.StoreName,
		&s.StoreDescription, &s.Status, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, xerrors.ErrNotFound
		}
		return nil, xerrors.Store("get seller", err)
	}
	return &s, nil
}

// UpdateStatus flips the seller's status and appends the status-change row in
// one transaction, so the audit trail can't miss a transition.
func (r *SellerRepo) UpdateStatus(ctx context.Context, s *domain.Seller, newStatus string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return xerrors.Store("begin status update", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `UPDATE sellers SET status = $1 WHERE email = $2`, newStatus, s.Email)
	if err != nil {
		return xerrors.Store("update seller status", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO seller_status_changes (seller_id, seller_email, seller_name, store_name, old_status, new_status, email_sent)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE)
	`, s.ID, s.Email, s.FullName, s.StoreName, s.Status, newStatus)
	if err != nil {
		return xerrors.Store("insert status change", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return xerrors.Store("commit status update", err)
	}
	return nil
}

func (r *SellerRepo) UpdatePassword(ctx context.Context, email, hash string) error {
	tag, err := r.db.Exec(ctx, `UPDATE sellers SET password = $1 WHERE email = $2`, hash, email)
	if err != nil {
		return xerrors.Store("update seller password", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (r *SellerRepo) UpdateInfo(ctx context.Context, id int64, fullname, storeName, storeDescription string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE sellers SET fullname = $1, store_name = $2, store_description = $3
		WHERE id = $4
	`, fullname, storeName, storeDescription, id)
	if err != nil {
		return xerrors.Store("update seller info", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (r *SellerRepo) List(ctx context.Context) ([]domain.Seller, error) {
	return r.scanMany(ctx, `ORDER BY id DESC`)
}

func (r *SellerRepo) ListPending(ctx context.Context) ([]domain.Seller, error) {
	return r.scanMany(ctx, `WHERE status = 'Pending' ORDER BY created_at ASC`)
}

func (r *SellerRepo) scanMany(ctx context.Context, tail string) ([]domain.Seller, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, fullname, email, password, store_name, store_description, status, created_at
		FROM sellers `+tail)
	if err != nil {
		return nil, xerrors.Store("list sellers", err)
	}
	defer rows.Close()

	var out []domain.Seller
	for rows.Next() {
		var s domain.Seller
		if err := rows.Scan(&s.ID, &s.FullName, &s.Email, &s.PasswordHash, &s.StoreName,
			&s.StoreDescription, &s.Status, &s.CreatedAt); err != nil {
			return nil, xerrors.Store("scan seller", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// DeleteCascade removes a seller and every dependent row. Irreversible.
func (r *SellerRepo) DeleteCascade(ctx context.Context, id int64) error {
	s, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return xerrors.Store("begin seller delete", err)
	}
	defer tx.Rollback(ctx)

	for _, stmt := range []string{
		`DELETE FROM product_activity_log WHERE seller_email = $1`,
		`DELETE FROM products WHERE seller_email = $1`,
		`DELETE FROM seller_status_changes WHERE seller_email = $1`,
		`DELETE FROM sellers WHERE email = $1`,
	} {
		if _, err := tx.Exec(ctx, stmt, s.Email); err != nil {
			return xerrors.Store("delete seller cascade", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return xerrors.Store("commit seller delete", err)
	}
	return nil
}

// UnsentStatusChanges returns approval/rejection transitions whose
// notification email has not gone out yet.
func (r *SellerRepo) UnsentStatusChanges(ctx context.Context) ([]domain.SellerStatusChange, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, seller_id, seller_email, seller_name, store_name, old_status, new_status, email_sent, created_at
		FROM seller_status_changes
		WHERE email_sent = FALSE AND new_status IN ('Approved', 'Rejected')
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, xerrors.Store("list status changes", err)
	}
	defer rows.Close()

	var out []domain.SellerStatusChange
	for rows.Next() {
		var c domain.SellerStatusChange
		var oldStatus, newStatus *string
		if err := rows.Scan(&c.ID, &c.SellerID, &c.SellerEmail, &c.SellerName, &c.StoreName,
			&oldStatus, &newStatus, &c.EmailSent, &c.CreatedAt); err != nil {
			return nil, xerrors.Store("scan status change", err)
		}
		if oldStatus != nil {
			c.OldStatus = *oldStatus
		}
		if newStatus != nil {
			c.NewStatus = *newStatus
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *SellerRepo) MarkStatusChangeEmailSent(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `UPDATE seller_status_changes SET email_sent = TRUE WHERE id = $1`, id)
	if err != nil {
		return xerrors.Store("mark status change sent", err)
	}
	return nil
}
