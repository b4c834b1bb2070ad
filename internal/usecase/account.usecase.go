package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"

	"mystore-backend/internal/domain"
	"mystore-backend/pkg/utils"
	"mystore-backend/pkg/xerrors"
)

// UserStore is the customer-account persistence surface.
type UserStore interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type AccountUsecase struct {
	users UserStore
}

func NewAccountUsecase(users UserStore) *AccountUsecase {
	return &AccountUsecase{users: users}
}

func (uc *AccountUsecase) Signup(ctx context.Context, name, email, password string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if name == "" || email == "" || password == "" {
		return nil, xerrors.ErrValidation
	}
	if !emailPattern.MatchString(email) {
		return nil, xerrors.ErrInvalidEmailFormat
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{Name: name, Email: email, PasswordHash: hash}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	log.Printf("Customer signup | Email=%s", email)
	return user, nil
}

func (uc *AccountUsecase) Login(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := uc.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if err == xerrors.ErrNotFound {
			return nil, xerrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, xerrors.ErrInvalidCredentials
	}
	return user, nil
}
