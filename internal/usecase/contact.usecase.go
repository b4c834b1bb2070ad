package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	"mystore-backend/internal/domain"
	"mystore-backend/internal/notify"
	"mystore-backend/pkg/xerrors"
)

type ContactStore interface {
	Create(ctx context.Context, m *domain.ContactMessage) error
	List(ctx context.Context) ([]domain.ContactMessage, error)
}

type ContactUsecase struct {
	messages   ContactStore
	notifier   *notify.Notifier
	adminEmail string
}

func NewContactUsecase(messages ContactStore, notifier *notify.Notifier, adminEmail string) *ContactUsecase {
	return &ContactUsecase{messages: messages, notifier: notifier, adminEmail: adminEmail}
}

// Submit persists the message, confirms to the sender and alerts the admin.
// The sender confirmation propagates failure; the admin alert does not.
func (uc *ContactUsecase) Submit(ctx context.Context, m *domain.ContactMessage) error {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	m.Subject = strings.TrimSpace(m.Subject)
	m.Message = strings.TrimSpace(m.Message)

	if m.Name == "" || m.Email == "" || m.Message == "" {
		return xerrors.ErrValidation
	}
	if !emailPattern.MatchString(m.Email) {
		return xerrors.ErrInvalidEmailFormat
	}
	if m.Subject == "" {
		m.Subject = "General Inquiry"
	}
	m.Status = "New"

	if err := uc.messages.Create(ctx, m); err != nil {
		return err
	}
	log.Printf("Contact message saved | From=%s <%s>", m.Name, m.Email)

	subject, body := uc.notifier.Templates().ContactReceipt(m.Name, m.Subject, m.Message)
	if err := uc.notifier.Send(ctx, m.Email, subject, body, "contact_receipt"); err != nil {
		return err
	}

	if uc.adminEmail != "" {
		subject, body = uc.notifier.Templates().ContactAdminAlert(m.Name, m.Email, m.Subject, m.Message, time.Now())
		uc.notifier.SendBestEffort(ctx, uc.adminEmail, subject, body, "contact_admin")
	}

	return nil
}

func (uc *ContactUsecase) List(ctx context.Context) ([]domain.ContactMessage, error) {
	return uc.messages.List(ctx)
}
