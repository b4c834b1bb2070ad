package usecase_test

import (
	"context"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"

	"mystore-backend/internal/domain"
	"mystore-backend/internal/usecase"
	"mystore-backend/pkg/xerrors"
)

type productFixture struct {
	products *usecase.ProductUsecase
	sellers  *usecase.SellerUsecase
	store    *fakeProductStore
	mailer   *fakeMailer
}

func newProductFixture(c *qt.C, approved bool) *productFixture {
	sellerStore := newFakeSellerStore()
	productStore := newFakeProductStore()
	mailer := &fakeMailer{}
	notifier := newTestNotifier(mailer)

	sellers := usecase.NewSellerUsecase(sellerStore, notifier)
	products := usecase.NewProductUsecase(productStore, activityView{store: productStore}, sellers, notifier)

	_, err := sellers.Signup(context.Background(), "Jane", "jane@shop.com", "Shop", "Desc", "pw")
	c.Assert(err, qt.IsNil)
	if approved {
		c.Assert(sellers.SetStatus(context.Background(), "jane@shop.com", domain.SellerApproved), qt.IsNil)
	}
	mailer.sent = nil

	return &productFixture{products: products, sellers: sellers, store: productStore, mailer: mailer}
}

func validInput() usecase.ProductInput {
	return usecase.ProductInput{
		Title:       "Ceramic Mug",
		Price:       19.99,
		Description: "Hand-thrown stoneware mug",
		Category:    "Kitchen",
	}
}

func TestCreateProductStartsAsDraft(t *testing.T) {
	c := qt.New(t)
	f := newProductFixture(c, true)

	p, err := f.products.Create(context.Background(), "jane@shop.com", validInput())
	c.Assert(err, qt.IsNil)
	c.Assert(p.Status, qt.Equals, domain.ProductDraft)
	c.Assert(p.Image, qt.Equals, domain.PlaceholderImage)
	c.Assert(p.SellerEmail, qt.Equals, "jane@shop.com")

	c.Assert(f.store.entries, qt.HasLen, 1)
	c.Assert(f.store.entries[0].Action, qt.Equals, domain.ActionCreated)
	c.Assert(f.store.entries[0].ProductID, qt.Equals, p.ID)

	c.Assert(f.mailer.sent, qt.HasLen, 1)
	c.Assert(f.mailer.sent[0].subject, qt.Equals, "📦 Product Saved as Draft")
}

func TestCreateProductRequiresApprovedSeller(t *testing.T) {
	c := qt.New(t)
	f := newProductFixture(c, false)

	_, err := f.products.Create(context.Background(), "jane@shop.com", validInput())
	c.Assert(err, qt.ErrorIs, xerrors.ErrSellerNotApproved)

	// gate fires before any write
	c.Assert(f.store.products, qt.HasLen, 0)
	c.Assert(f.store.entries, qt.HasLen, 0)
	c.Assert(f.mailer.sent, qt.HasLen, 0)
}

func TestCreateProductValidation(t *testing.T) {
	c := qt.New(t)
	f := newProductFixture(c, true)

	in := validInput()
	in.Title = ""
	_, err := f.products.Create(context.Background(), "jane@shop.com", in)
	c.Assert(err, qt.ErrorIs, xerrors.ErrValidation)

	in = validInput()
	in.Price = 0
	_, err = f.products.Create(context.Background(), "jane@shop.com", in)
	c.Assert(err, qt.ErrorIs, xerrors.ErrValidation)

	in = validInput()
	in.Price = -3
	_, err = f.products.Create(context.Background(), "jane@shop.com", in)
	c.Assert(err, qt.ErrorIs, xerrors.ErrValidation)

	c.Assert(f.store.products, qt.HasLen, 0)
}

func TestPublishLogsStatusSnapshots(t *testing.T) {
	c := qt.New(t)
	f := newProductFixture(c, true)

	p, err := f.products.Create(context.Background(), "jane@shop.com", validInput())
	c.Assert(err, qt.IsNil)

	published, err := f.products.Publish(context.Background(), p.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(published.Status, qt.Equals, domain.ProductPublished)
	c.Assert(f.store.products[p.ID].Status, qt.Equals, domain.ProductPublished)

	entry := f.store.entries[len(f.store.entries)-1]
	c.Assert(entry.Action, qt.Equals, domain.ActionPublished)
	c.Assert(entry.OldData, qt.DeepEquals, map[string]interface{}{"status": domain.ProductDraft})
	c.Assert(entry.NewData, qt.DeepEquals, map[string]interface{}{"status": domain.ProductPublished})
}

func TestUnpublishReturnsToDraft(t *testing.T) {
	c := qt.New(t)
	f := newProductFixture(c, true)

	p, err := f.products.Create(context.Background(), "jane@shop.com", validInput())
	c.Assert(err, qt.IsNil)
	_, err = f.products.Publish(context.Background(), p.ID)
	c.Assert(err, qt.IsNil)

	back, err := f.products.Unpublish(context.Background(), p.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(back.Status, qt.Equals, domain.ProductDraft)

	entry := f.store.entries[len(f.store.entries)-1]
	c.Assert(entry.Action, qt.Equals, domain.ActionUnpublished)
}

func TestRepublishIsNotSpecialCased(t *testing.T) {
	c := qt.New(t)
	f := newProductFixture(c, true)

	p, err := f.products.Create(context.Background(), "jane@shop.com", validInput())
	c.Assert(err, qt.IsNil)
	_, err = f.products.Publish(context.Background(), p.ID)
	c.Assert(err, qt.IsNil)
	before := len(f.store.entries)

	// publishing an already published product re-logs
	_, err = f.products.Publish(context.Background(), p.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(f.store.entries, qt.HasLen, before+1)
}

func TestPublishUnknownProduct(t *testing.T) {
	c := qt.New(t)
	f := newProductFixture(c, true)

	_, err := f.products.Publish(context.Background(), 42)
	c.Assert(err, qt.ErrorIs, xerrors.ErrNotFound)
	c.Assert(f.store.entries, qt.HasLen, 0)
}

func TestUpdateLogsFullSnapshots(t *testing.T) {
	c := qt.New(t)
	f := newProductFixture(c, true)

	p, err := f.products.Create(context.Background(), "jane@shop.com", validInput())
	c.Assert(err, qt.IsNil)
	f.mailer.sent = nil

	in := validInput()
	in.Title = "Ceramic Mug v2"
	in.Price = 24.99
	in.Image = p.Image
	updated, err := f.products.Update(context.Background(), p.ID, in)
	c.Assert(err, qt.IsNil)
	c.Assert(updated.Title, qt.Equals, "Ceramic Mug v2")
	c.Assert(updated.Status, qt.Equals, domain.ProductDraft)

	entry := f.store.entries[len(f.store.entries)-1]
	c.Assert(entry.Action, qt.Equals, domain.ActionUpdated)
	c.Assert(entry.OldData["title"], qt.Equals, "Ceramic Mug")
	c.Assert(entry.NewData["title"], qt.Equals, "Ceramic Mug v2")

	c.Assert(f.mailer.sent, qt.HasLen, 1)
	c.Assert(strings.Contains(f.mailer.sent[0].body, "• Title: 'Ceramic Mug' → 'Ceramic Mug v2'"), qt.IsTrue)
	c.Assert(strings.Contains(f.mailer.sent[0].body, "• Price: $19.99 → $24.99"), qt.IsTrue)
}

func TestUpdateWithIdenticalValuesStillLogs(t *testing.T) {
	c := qt.New(t)
	f := newProductFixture(c, true)

	p, err := f.products.Create(context.Background(), "jane@shop.com", validInput())
	c.Assert(err, qt.IsNil)
	before := len(f.store.entries)
	f.mailer.sent = nil

	in := validInput()
	in.Image = p.Image
	_, err = f.products.Update(context.Background(), p.ID, in)
	c.Assert(err, qt.IsNil)

	c.Assert(f.store.entries, qt.HasLen, before+1)
	c.Assert(strings.Contains(f.mailer.sent[0].body, "No changes detected"), qt.IsTrue)
}

func TestDeleteUnknownProduct(t *testing.T) {
	c := qt.New(t)
	f := newProductFixture(c, true)

	err := f.products.Delete(context.Background(), 7)
	c.Assert(err, qt.ErrorIs, xerrors.ErrNotFound)
	c.Assert(f.store.entries, qt.HasLen, 0)
	c.Assert(f.mailer.sent, qt.HasLen, 0)
}

func TestDeleteLogsWithoutNewData(t *testing.T) {
	c := qt.New(t)
	f := newProductFixture(c, true)

	p, err := f.products.Create(context.Background(), "jane@shop.com", validInput())
	c.Assert(err, qt.IsNil)

	c.Assert(f.products.Delete(context.Background(), p.ID), qt.IsNil)
	c.Assert(f.store.products, qt.HasLen, 0)

	entry := f.store.entries[len(f.store.entries)-1]
	c.Assert(entry.Action, qt.Equals, domain.ActionDeleted)
	c.Assert(entry.OldData, qt.IsNil)
	c.Assert(entry.NewData, qt.IsNil)
}

func TestListPublishedHidesDrafts(t *testing.T) {
	c := qt.New(t)
	f := newProductFixture(c, true)
	ctx := context.Background()

	draft, err := f.products.Create(ctx, "jane@shop.com", validInput())
	c.Assert(err, qt.IsNil)
	in := validInput()
	in.Title = "Second"
	live, err := f.products.Create(ctx, "jane@shop.com", in)
	c.Assert(err, qt.IsNil)
	_, err = f.products.Publish(ctx, live.ID)
	c.Assert(err, qt.IsNil)

	catalog, err := f.products.ListPublished(ctx)
	c.Assert(err, qt.IsNil)
	c.Assert(catalog, qt.HasLen, 1)
	c.Assert(catalog[0].ID, qt.Equals, live.ID)
	c.Assert(catalog[0].ID, qt.Not(qt.Equals), draft.ID)
}

func TestListBySellerRequiresApproval(t *testing.T) {
	c := qt.New(t)
	f := newProductFixture(c, false)

	_, err := f.products.ListBySeller(context.Background(), "jane@shop.com")
	c.Assert(err, qt.ErrorIs, xerrors.ErrSellerNotApproved)
}

func TestActivityFeedNewestFirst(t *testing.T) {
	c := qt.New(t)
	f := newProductFixture(c, true)
	ctx := context.Background()

	p, err := f.products.Create(ctx, "jane@shop.com", validInput())
	c.Assert(err, qt.IsNil)
	_, err = f.products.Publish(ctx, p.ID)
	c.Assert(err, qt.IsNil)

	feed, err := f.products.Activity(ctx, "jane@shop.com")
	c.Assert(err, qt.IsNil)
	c.Assert(feed, qt.HasLen, 2)
	c.Assert(feed[0].Action, qt.Equals, domain.ActionPublished)
	c.Assert(feed[1].Action, qt.Equals, domain.ActionCreated)
}

func TestChangeSummary(t *testing.T) {
	c := qt.New(t)

	old := &domain.Product{Title: "A", Price: 10, Description: "d", Category: "c", Image: "i"}

	same := *old
	c.Assert(usecase.ChangeSummary(old, &same), qt.Equals, "No changes detected")

	changed := *old
	changed.Title = "B"
	changed.Price = 12.5
	changed.Description = "d2"
	changed.Category = "c2"
	changed.Image = "i2"
	summary := usecase.ChangeSummary(old, &changed)
	c.Assert(summary, qt.Equals, strings.Join([]string{
		"• Title: 'A' → 'B'",
		"• Price: $10.00 → $12.50",
		"• Description updated",
		"• Category: c → c2",
		"• Image updated",
	}, "\n"))
}

// TestSellerLifecycleEndToEnd walks the happy path: apply, approve, log in,
// create a draft, publish it.
func TestSellerLifecycleEndToEnd(t *testing.T) {
	c := qt.New(t)
	f := newProductFixture(c, false)
	ctx := context.Background()

	_, err := f.sellers.Authenticate(ctx, "jane@shop.com", "pw")
	c.Assert(err, qt.ErrorIs, xerrors.ErrAccountPending)

	c.Assert(f.sellers.SetStatus(ctx, "jane@shop.com", domain.SellerApproved), qt.IsNil)

	seller, err := f.sellers.Authenticate(ctx, "jane@shop.com", "pw")
	c.Assert(err, qt.IsNil)

	p, err := f.products.Create(ctx, seller.Email, validInput())
	c.Assert(err, qt.IsNil)

	live, err := f.products.Publish(ctx, p.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(live.Status, qt.Equals, domain.ProductPublished)

	catalog, err := f.products.ListPublished(ctx)
	c.Assert(err, qt.IsNil)
	c.Assert(catalog, qt.HasLen, 1)
}
