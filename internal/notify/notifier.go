package notify

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"mystore-backend/internal/domain"
	"mystore-backend/internal/metrics"
)

// EmailLogStore records delivery outcomes. Logging is best-effort; a failed
// insert never fails the send.
type EmailLogStore interface {
	LogEmail(ctx context.Context, entry domain.EmailLog) error
}

// Notifier turns transition events into emails. Delivery is synchronous and
// inside the request path; whether a failure propagates is the caller's
// choice (Send vs SendBestEffort).
type Notifier struct {
	mailer Mailer
	logs   EmailLogStore // optional
	tmpl   Templates
	now    func() time.Time
}

func NewNotifier(mailer Mailer, logs EmailLogStore, tmpl Templates) *Notifier {
	return &Notifier{
		mailer: mailer,
		logs:   logs,
		tmpl:   tmpl,
		now:    time.Now,
	}
}

func (n *Notifier) Templates() Templates { return n.tmpl }

// Send delivers and returns the delivery error, recording the outcome either
// way.
func (n *Notifier) Send(ctx context.Context, to, subject, body, emailType string) error {
	err := n.mailer.Send(to, subject, body)

	status := "sent"
	errMsg := ""
	if err != nil {
		status = "failed"
		errMsg = err.Error()
	}
	metrics.EmailsSent.WithLabelValues(emailType, status).Inc()

	if n.logs != nil {
		logErr := n.logs.LogEmail(ctx, domain.EmailLog{
			ID:             uuid.NewString(),
			RecipientEmail: to,
			Subject:        subject,
			EmailType:      emailType,
			DeliveryStatus: status,
			ErrorMessage:   errMsg,
			SentAt:         n.now(),
		})
		if logErr != nil {
			log.Printf("Failed to insert email log | To=%s | Type=%s | Err=%v", to, emailType, logErr)
		}
	}

	return err
}

// SendBestEffort swallows delivery failures; the preceding state mutation is
// already committed and stays committed.
func (n *Notifier) SendBestEffort(ctx context.Context, to, subject, body, emailType string) {
	if err := n.Send(ctx, to, subject, body, emailType); err != nil {
		log.Printf("Email delivery failed | To=%s | Type=%s | Err=%v", to, emailType, err)
	}
}

// ProductActivity renders the per-action template and delivers best-effort.
func (n *Notifier) ProductActivity(ctx context.Context, ev ProductEvent) {
	subject, body := n.tmpl.ProductActivity(ev, n.now())
	n.SendBestEffort(ctx, ev.SellerEmail, subject, body, "product_"+ev.Action)
}
