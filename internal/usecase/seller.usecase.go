package usecase

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"

	"mystore-backend/internal/domain"
	"mystore-backend/internal/notify"
	"mystore-backend/pkg/utils"
	"mystore-backend/pkg/xerrors"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// SellerStore is the persistence surface the seller lifecycle needs.
type SellerStore interface {
	Create(ctx context.Context, s *domain.Seller) error
	GetByEmail(ctx context.Context, email string) (*domain.Seller, error)
	UpdateStatus(ctx context.Context, s *domain.Seller, newStatus string) error
}

type SellerUsecase struct {
	sellers  SellerStore
	notifier *notify.Notifier
}

func NewSellerUsecase(sellers SellerStore, notifier *notify.Notifier) *SellerUsecase {
	return &SellerUsecase{sellers: sellers, notifier: notifier}
}

// Signup creates a Pending seller application. There is no self-service path
// out of Pending; only SetStatus moves it.
func (uc *SellerUsecase) Signup(ctx context.Context, name, email, storeName, storeDescription, password string) (*domain.Seller, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	storeName = strings.TrimSpace(storeName)
	storeDescription = strings.TrimSpace(storeDescription)

	if name == "" || email == "" || storeName == "" || storeDescription == "" || password == "" {
		return nil, xerrors.ErrValidation
	}
	if !emailPattern.MatchString(email) {
		return nil, xerrors.ErrInvalidEmailFormat
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	seller := &domain.Seller{
		FullName:         name,
		Email:            email,
		StoreName:        storeName,
		StoreDescription: storeDescription,
		PasswordHash:     hash,
		Status:           domain.SellerPending,
	}
	if err := uc.sellers.Create(ctx, seller); err != nil {
		return nil, err
	}
	log.Printf("Seller application received | Email=%s | Store=%s", email, storeName)

	subject, body := uc.notifier.Templates().SellerApplicationReceived(name, storeName)
	uc.notifier.SendBestEffort(ctx, email, subject, body, "seller_application")

	return seller, nil
}

// SetStatus is the only legal way to change a seller's status. Setting the
// already-stored status is a no-op: no update, no status-change row, no email.
func (uc *SellerUsecase) SetStatus(ctx context.Context, email, newStatus string) error {
	if newStatus != domain.SellerApproved && newStatus != domain.SellerRejected {
		return fmt.Errorf("%w: status must be Approved or Rejected", xerrors.ErrValidation)
	}

	seller, err := uc.sellers.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	if seller.Status == newStatus {
		log.Printf("Seller already %s | Email=%s", newStatus, email)
		return nil
	}

	if err := uc.sellers.UpdateStatus(ctx, seller, newStatus); err != nil {
		return err
	}
	log.Printf("Seller status updated | Email=%s | %s -> %s", email, seller.Status, newStatus)

	subject, body := uc.notifier.Templates().SellerStatusChanged(seller.FullName, seller.StoreName, newStatus)
	uc.notifier.SendBestEffort(ctx, email, subject, body, "seller_status")

	return nil
}

// Authenticate checks credentials first, then gates on status. A matching
// password is not enough for a Pending or Rejected account.
func (uc *SellerUsecase) Authenticate(ctx context.Context, email, password string) (*domain.Seller, error) {
	seller, err := uc.sellers.GetByEmail(ctx, email)
	if err != nil {
		if err == xerrors.ErrNotFound {
			return nil, xerrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPasswordHash(password, seller.PasswordHash) {
		return nil, xerrors.ErrInvalidCredentials
	}

	switch seller.Status {
	case domain.SellerPending:
		return nil, xerrors.ErrAccountPending
	case domain.SellerRejected:
		return nil, xerrors.ErrAccountRejected
	case domain.SellerApproved:
		return seller, nil
	default:
		// status outside the enum fails closed
		return nil, xerrors.ErrInvalidState
	}
}

// RequireApproved guards every product mutation.
func (uc *SellerUsecase) RequireApproved(ctx context.Context, email string) (*domain.Seller, error) {
	seller, err := uc.sellers.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if seller.Status != domain.SellerApproved {
		return nil, xerrors.ErrSellerNotApproved
	}
	return seller, nil
}

// CheckStatus is the dashboard polling lookup.
func (uc *SellerUsecase) CheckStatus(ctx context.Context, email string) (*domain.Seller, error) {
	return uc.sellers.GetByEmail(ctx, email)
}
