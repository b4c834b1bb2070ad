package usecase

import (
	"context"
	"log"
	"strings"

	"mystore-backend/internal/domain"
	"mystore-backend/internal/notify"
	"mystore-backend/pkg/xerrors"
)

type OrderStore interface {
	Save(ctx context.Context, o *domain.Order) (int64, error)
	ListByEmail(ctx context.Context, email string) ([]domain.Order, error)
}

type OrderUsecase struct {
	orders   OrderStore
	notifier *notify.Notifier
}

func NewOrderUsecase(orders OrderStore, notifier *notify.Notifier) *OrderUsecase {
	return &OrderUsecase{orders: orders, notifier: notifier}
}

// Place persists the order and its items in one transaction.
func (uc *OrderUsecase) Place(ctx context.Context, o *domain.Order) (int64, error) {
	o.Email = strings.TrimSpace(o.Email)
	o.FullName = strings.TrimSpace(o.FullName)
	if o.Email == "" || o.FullName == "" || len(o.Items) == 0 || o.TotalPrice <= 0 || o.Address == "" {
		return 0, xerrors.ErrValidation
	}

	id, err := uc.orders.Save(ctx, o)
	if err != nil {
		return 0, err
	}
	log.Printf("Order saved | ID=%d | Email=%s | Total=$%.2f", id, o.Email, o.TotalPrice)
	return id, nil
}

// SendConfirmation delivers the order email; the caller decides whether a
// delivery failure fails the request.
func (uc *OrderUsecase) SendConfirmation(ctx context.Context, o *domain.Order) error {
	if o.Email == "" || o.FullName == "" || len(o.Items) == 0 || o.TotalPrice <= 0 {
		return xerrors.ErrValidation
	}
	subject, body := uc.notifier.Templates().OrderConfirmation(*o)
	return uc.notifier.Send(ctx, o.Email, subject, body, "order_confirmation")
}

func (uc *OrderUsecase) History(ctx context.Context, email string) ([]domain.Order, error) {
	return uc.orders.ListByEmail(ctx, email)
}
