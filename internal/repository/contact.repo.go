package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"mystore-backend/internal/domain"
	"mystore-backend/pkg/xerrors"
)

type ContactRepo struct {
	db *pgxpool.Pool
}

func NewContactRepo(db *pgxpool.Pool) *ContactRepo {
	return &ContactRepo{db: db}
}

func (r *ContactRepo) Create(ctx context.Context, m *domain.ContactMessage) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO contact_messages (name, email, subject, message, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, m.Name, m.Email, m.Subject, m.Message, m.Status).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return xerrors.Store("insert contact message", err)
	}
	return nil
}

func (r *ContactRepo) List(ctx context.Context) ([]domain.ContactMessage, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, email, subject, message, status, created_at
		FROM contact_messages
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, xerrors.Store("list contact messages", err)
	}
	defer rows.Close()

	var out []domain.ContactMessage
	for rows.Next() {
		var m domain.ContactMessage
		var subject *string
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &subject, &m.Message, &m.Status, &m.CreatedAt); err != nil {
			return nil, xerrors.Store("scan contact message", err)
		}
		m.Subject = deref(subject)
		out = append(out, m)
	}
	return out, rows.Err()
}
