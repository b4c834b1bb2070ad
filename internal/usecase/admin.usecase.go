package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"

	"mystore-backend/internal/domain"
	"mystore-backend/internal/notify"
	"mystore-backend/pkg/utils"
	"mystore-backend/pkg/xerrors"
)

// AdminSellerStore is the wider seller surface the admin tooling needs.
// *repository.SellerRepo satisfies it.
type AdminSellerStore interface {
	Create(ctx context.Context, s *domain.Seller) error
	GetByID(ctx context.Context, id int64) (*domain.Seller, error)
	GetByEmail(ctx context.Context, email string) (*domain.Seller, error)
	UpdateStatus(ctx context.Context, s *domain.Seller, newStatus string) error
	UpdateInfo(ctx context.Context, id int64, fullname, storeName, storeDescription string) error
	List(ctx context.Context) ([]domain.Seller, error)
	ListPending(ctx context.Context) ([]domain.Seller, error)
	DeleteCascade(ctx context.Context, id int64) error
	UnsentStatusChanges(ctx context.Context) ([]domain.SellerStatusChange, error)
	MarkStatusChangeEmailSent(ctx context.Context, id int64) error
}

// AdminUsecase backs the operator CLI. It addresses sellers by ID, unlike the
// HTTP surface which works with emails.
type AdminUsecase struct {
	sellers  AdminSellerStore
	notifier *notify.Notifier
}

func NewAdminUsecase(sellers AdminSellerStore, notifier *notify.Notifier) *AdminUsecase {
	return &AdminUsecase{sellers: sellers, notifier: notifier}
}

func (uc *AdminUsecase) ListSellers(ctx context.Context) ([]domain.Seller, error) {
	return uc.sellers.List(ctx)
}

func (uc *AdminUsecase) PendingSellers(ctx context.Context) ([]domain.Seller, error) {
	return uc.sellers.ListPending(ctx)
}

func (uc *AdminUsecase) SellerDetails(ctx context.Context, id int64) (*domain.Seller, error) {
	return uc.sellers.GetByID(ctx, id)
}

// SetStatus flips the seller by ID and records the transition; the
// notification email is left for FlushStatusEmails so a dead SMTP server
// never blocks an approval.
func (uc *AdminUsecase) SetStatus(ctx context.Context, id int64, newStatus string) (*domain.Seller, error) {
	if newStatus != domain.SellerApproved && newStatus != domain.SellerRejected {
		return nil, fmt.Errorf("%w: status must be %s or %s", xerrors.ErrValidation, domain.SellerApproved, domain.SellerRejected)
	}

	s, err := uc.sellers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.Status == newStatus {
		return s, nil
	}

	if err := uc.sellers.UpdateStatus(ctx, s, newStatus); err != nil {
		return nil, err
	}
	log.Printf("Seller status updated | ID=%d | Email=%s | %s -> %s", s.ID, s.Email, s.Status, newStatus)
	s.Status = newStatus
	return s, nil
}

// CreateSeller provisions an account directly, bypassing the review queue.
func (uc *AdminUsecase) CreateSeller(ctx context.Context, fullName, email, password, storeName, storeDescription, status string) (*domain.Seller, error) {
	fullName = strings.TrimSpace(fullName)
	email = strings.TrimSpace(email)
	storeName = strings.TrimSpace(storeName)

	if fullName == "" || email == "" || password == "" || storeName == "" {
		return nil, xerrors.ErrValidation
	}
	if !emailPattern.MatchString(email) {
		return nil, xerrors.ErrInvalidEmailFormat
	}
	switch status {
	case domain.SellerPending, domain.SellerApproved, domain.SellerRejected:
	default:
		return nil, fmt.Errorf("%w: unknown status %q", xerrors.ErrValidation, status)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	s := &domain.Seller{
		FullName:         fullName,
		Email:            email,
		PasswordHash:     hash,
		StoreName:        storeName,
		StoreDescription: storeDescription,
		Status:           status,
	}
	if err := uc.sellers.Create(ctx, s); err != nil {
		return nil, err
	}
	log.Printf("Seller created by admin | ID=%d | Email=%s | Status=%s", s.ID, s.Email, s.Status)
	return s, nil
}

func (uc *AdminUsecase) UpdateSeller(ctx context.Context, id int64, fullName, storeName, storeDescription string) error {
	if strings.TrimSpace(fullName) == "" || strings.TrimSpace(storeName) == "" {
		return xerrors.ErrValidation
	}
	return uc.sellers.UpdateInfo(ctx, id, fullName, storeName, storeDescription)
}

// DeleteSeller removes the account and all dependent rows. Irreversible.
func (uc *AdminUsecase) DeleteSeller(ctx context.Context, id int64) error {
	if err := uc.sellers.DeleteCascade(ctx, id); err != nil {
		return err
	}
	log.Printf("Seller deleted | ID=%d", id)
	return nil
}

// FlushStatusEmails delivers the approval/rejection email for every recorded
// transition that hasn't gone out, marking each sent on success. Returns the
// number delivered.
func (uc *AdminUsecase) FlushStatusEmails(ctx context.Context) (int, error) {
	changes, err := uc.sellers.UnsentStatusChanges(ctx)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, c := range changes {
		subject, body := uc.notifier.Templates().SellerStatusChanged(c.SellerName, c.StoreName, c.NewStatus)
		if err := uc.notifier.Send(ctx, c.SellerEmail, subject, body, "seller_status"); err != nil {
			log.Printf("Status email failed | ChangeID=%d | Email=%s | Err=%v", c.ID, c.SellerEmail, err)
			continue
		}
		if err := uc.sellers.MarkStatusChangeEmailSent(ctx, c.ID); err != nil {
			return sent, err
		}
		sent++
	}
	return sent, nil
}
