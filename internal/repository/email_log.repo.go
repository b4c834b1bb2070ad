package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"mystore-backend/internal/domain"
)

type EmailLogRepo struct {
	db *pgxpool.Pool
}

func NewEmailLogRepo(db *pgxpool.Pool) *EmailLogRepo {
	return &EmailLogRepo{db: db}
}

func (r *EmailLogRepo) LogEmail(ctx context.Context, e domain.EmailLog) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO email_logs (id, recipient_email, subject, email_type, delivery_status, error_message, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, e.ID, e.RecipientEmail, e.Subject, e.EmailType, e.DeliveryStatus, e.ErrorMessage, e.SentAt)
	return err
}
