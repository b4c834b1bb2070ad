package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"

	"mystore-backend/internal/domain"
	"mystore-backend/internal/metrics"
	"mystore-backend/internal/notify"
	"mystore-backend/pkg/xerrors"
)

// ProductStore pairs each mutation with its activity-log entry; the repo
// commits both in one transaction.
type ProductStore interface {
	CreateWithLog(ctx context.Context, p *domain.Product, entry *domain.ActivityLogEntry) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	UpdateWithLog(ctx context.Context, p *domain.Product, entry *domain.ActivityLogEntry) error
	SetStatusWithLog(ctx context.Context, id int64, status string, entry *domain.ActivityLogEntry) error
	DeleteWithLog(ctx context.Context, id int64, entry *domain.ActivityLogEntry) error
	ListBySeller(ctx context.Context, sellerEmail string) ([]domain.Product, error)
	ListPublished(ctx context.Context) ([]domain.Product, error)
}

type ActivityStore interface {
	ListBySeller(ctx context.Context, sellerEmail string, limit int) ([]domain.ActivityLogEntry, error)
}

// SellerGuard gates product mutations on seller approval.
type SellerGuard interface {
	RequireApproved(ctx context.Context, email string) (*domain.Seller, error)
}

const activityFeedLimit = 50

type ProductInput struct {
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
}

func (in *ProductInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)
	in.Image = strings.TrimSpace(in.Image)
}

func (in *ProductInput) validate() error {
	if in.Title == "" || in.Description == "" || in.Category == "" {
		return xerrors.ErrValidation
	}
	if in.Price <= 0 {
		return fmt.Errorf("%w: price must be a positive number", xerrors.ErrValidation)
	}
	return nil
}

type ProductUsecase struct {
	products ProductStore
	activity ActivityStore
	sellers  SellerGuard
	notifier *notify.Notifier
}

func NewProductUsecase(products ProductStore, activity ActivityStore, sellers SellerGuard, notifier *notify.Notifier) *ProductUsecase {
	return &ProductUsecase{products: products, activity: activity, sellers: sellers, notifier: notifier}
}

// Create persists a new draft for an approved seller and appends the created
// entry. Nothing is written when the guard or validation fails.
func (uc *ProductUsecase) Create(ctx context.Context, sellerEmail string, in ProductInput) (*domain.Product, error) {
	seller, err := uc.sellers.RequireApproved(ctx, sellerEmail)
	if err != nil {
		return nil, err
	}

	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}
	if in.Image == "" {
		in.Image = domain.PlaceholderImage
	}

	p := &domain.Product{
		Title:       in.Title,
		Price:       in.Price,
		Description: in.Description,
		Category:    in.Category,
		Image:       in.Image,
		SellerEmail: seller.Email,
		SellerName:  seller.FullName,
		Status:      domain.ProductDraft,
	}
	entry := &domain.ActivityLogEntry{
		SellerEmail:  seller.Email,
		SellerName:   seller.FullName,
		Action:       domain.ActionCreated,
		ProductTitle: p.Title,
	}

	id, err := uc.products.CreateWithLog(ctx, p, entry)
	if err != nil {
		return nil, err
	}
	metrics.ProductMutations.WithLabelValues(domain.ActionCreated).Inc()
	log.Printf("Product saved as draft | ID=%d | Title=%s | Seller=%s", id, p.Title, seller.Email)

	subject, body := uc.notifier.Templates().DraftSaved(seller.FullName, p.Title, p.Price, p.Category)
	uc.notifier.SendBestEffort(ctx, seller.Email, subject, body, "product_created")

	return p, nil
}

// Publish makes the product visible to customers. Re-publishing an already
// published product re-sets the same status and re-logs; there is no no-op
// special case.
func (uc *ProductUsecase) Publish(ctx context.Context, id int64) (*domain.Product, error) {
	return uc.setStatus(ctx, id, domain.ProductPublished, domain.ActionPublished)
}

// Unpublish moves the product back to draft.
func (uc *ProductUsecase) Unpublish(ctx context.Context, id int64) (*domain.Product, error) {
	return uc.setStatus(ctx, id, domain.ProductDraft, domain.ActionUnpublished)
}

func (uc *ProductUsecase) setStatus(ctx context.Context, id int64, status, action string) (*domain.Product, error) {
	p, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	entry := &domain.ActivityLogEntry{
		ProductID:    p.ID,
		SellerEmail:  p.SellerEmail,
		SellerName:   p.SellerName,
		Action:       action,
		ProductTitle: p.Title,
		OldData:      map[string]interface{}{"status": p.Status},
		NewData:      map[string]interface{}{"status": status},
	}
	if err := uc.products.SetStatusWithLog(ctx, id, status, entry); err != nil {
		return nil, err
	}
	metrics.ProductMutations.WithLabelValues(action).Inc()
	log.Printf("Product %s | ID=%d | Title=%s", action, id, p.Title)

	details := fmt.Sprintf("Your product '%s' is now LIVE and visible to all customers on the store! 🎉", p.Title)
	if action == domain.ActionUnpublished {
		details = fmt.Sprintf("Your product '%s' has been moved back to DRAFT status and is no longer visible to customers.", p.Title)
	}
	uc.notifier.ProductActivity(ctx, notify.ProductEvent{
		Action:       action,
		SellerEmail:  p.SellerEmail,
		SellerName:   p.SellerName,
		ProductTitle: p.Title,
		Details:      details,
	})

	p.Status = status
	return p, nil
}

// Update persists new field values (status untouched) and logs full old/new
// snapshots. The notification carries a field-by-field change summary;
// identical values still succeed and still log.
func (uc *ProductUsecase) Update(ctx context.Context, id int64, in ProductInput) (*domain.Product, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}

	old, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *old
	updated.Title = in.Title
	updated.Price = in.Price
	updated.Description = in.Description
	updated.Category = in.Category
	updated.Image = in.Image

	entry := &domain.ActivityLogEntry{
		ProductID:    old.ID,
		SellerEmail:  old.SellerEmail,
		SellerName:   old.SellerName,
		Action:       domain.ActionUpdated,
		ProductTitle: updated.Title,
		OldData:      old.Snapshot(),
		NewData:      updated.Snapshot(),
	}
	if err := uc.products.UpdateWithLog(ctx, &updated, entry); err != nil {
		return nil, err
	}
	metrics.ProductMutations.WithLabelValues(domain.ActionUpdated).Inc()
	log.Printf("Product updated | ID=%d | Title=%s", id, updated.Title)

	uc.notifier.ProductActivity(ctx, notify.ProductEvent{
		Action:       domain.ActionUpdated,
		SellerEmail:  old.SellerEmail,
		SellerName:   old.SellerName,
		ProductTitle: updated.Title,
		Details:      "Changes made:\n" + ChangeSummary(old, &updated),
	})

	return &updated, nil
}

// Delete removes the product and logs the deleted action with no new_data.
func (uc *ProductUsecase) Delete(ctx context.Context, id int64) error {
	p, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return err
	}

	entry := &domain.ActivityLogEntry{
		ProductID:    p.ID,
		SellerEmail:  p.SellerEmail,
		SellerName:   p.SellerName,
		Action:       domain.ActionDeleted,
		ProductTitle: p.Title,
	}
	if err := uc.products.DeleteWithLog(ctx, id, entry); err != nil {
		return err
	}
	metrics.ProductMutations.WithLabelValues(domain.ActionDeleted).Inc()
	log.Printf("Product deleted | ID=%d | Title=%s", id, p.Title)

	uc.notifier.ProductActivity(ctx, notify.ProductEvent{
		Action:       domain.ActionDeleted,
		SellerEmail:  p.SellerEmail,
		SellerName:   p.SellerName,
		ProductTitle: p.Title,
		Details:      fmt.Sprintf("The product '%s' has been permanently removed from your store.", p.Title),
	})

	return nil
}

func (uc *ProductUsecase) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	return uc.products.GetByID(ctx, id)
}

// ListBySeller requires an approved seller, matching the dashboard's gate.
func (uc *ProductUsecase) ListBySeller(ctx context.Context, sellerEmail string) ([]domain.Product, error) {
	if _, err := uc.sellers.RequireApproved(ctx, sellerEmail); err != nil {
		return nil, err
	}
	return uc.products.ListBySeller(ctx, sellerEmail)
}

// ListPublished is the customer-facing catalog.
func (uc *ProductUsecase) ListPublished(ctx context.Context) ([]domain.Product, error) {
	return uc.products.ListPublished(ctx)
}

// Activity returns the seller's most recent log entries.
func (uc *ProductUsecase) Activity(ctx context.Context, sellerEmail string) ([]domain.ActivityLogEntry, error) {
	return uc.activity.ListBySeller(ctx, sellerEmail, activityFeedLimit)
}

// ChangeSummary builds the human-readable diff for update notifications.
func ChangeSummary(old, new *domain.Product) string {
	var changes []string
	if old.Title != new.Title {
		changes = append(changes, fmt.Sprintf("• Title: '%s' → '%s'", old.Title, new.Title))
	}
	if old.Price != new.Price {
		changes = append(changes, fmt.Sprintf("• Price: $%.2f → $%.2f", old.Price, new.Price))
	}
	if old.Description != new.Description {
		changes = append(changes, "• Description updated")
	}
	if old.Category != new.Category {
		changes = append(changes, fmt.Sprintf("• Category: %s → %s", old.Category, new.Category))
	}
	if old.Image != new.Image {
		changes = append(changes, "• Image updated")
	}
	if len(changes) == 0 {
		return "No changes detected"
	}
	return strings.Join(changes, "\n")
}
