package usecase_test

import (
	"context"

	"mystore-backend/internal/domain"
	"mystore-backend/internal/notify"
	"mystore-backend/pkg/xerrors"
)

type sentEmail struct {
	to      string
	subject string
	body    string
}

type fakeMailer struct {
	sent []sentEmail
	fail error
}

func (m *fakeMailer) Send(to, subject, body string) error {
	if m.fail != nil {
		return m.fail
	}
	m.sent = append(m.sent, sentEmail{to: to, subject: subject, body: body})
	return nil
}

func newTestNotifier(m *fakeMailer) *notify.Notifier {
	return notify.NewNotifier(m, nil, notify.Templates{
		DashboardURL: "http://localhost:5173/seller-dashboard",
		LoginURL:     "http://localhost:5173/seller-login",
	})
}

type statusChange struct {
	email     string
	oldStatus string
	newStatus string
	emailSent bool
}

type fakeSellerStore struct {
	sellers map[string]*domain.Seller
	changes []statusChange
	nextID  int64
}

func newFakeSellerStore() *fakeSellerStore {
	return &fakeSellerStore{sellers: make(map[string]*domain.Seller)}
}

func (f *fakeSellerStore) Create(_ context.Context, s *domain.Seller) error {
	if _, ok := f.sellers[s.Email]; ok {
		return xerrors.ErrDuplicateEmail
	}
	f.nextID++
	s.ID = f.nextID
	cp := *s
	f.sellers[s.Email] = &cp
	return nil
}

func (f *fakeSellerStore) GetByEmail(_ context.Context, email string) (*domain.Seller, error) {
	s, ok := f.sellers[email]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSellerStore) UpdateStatus(_ context.Context, s *domain.Seller, newStatus string) error {
	stored, ok := f.sellers[s.Email]
	if !ok {
		return xerrors.ErrNotFound
	}
	f.changes = append(f.changes, statusChange{email: s.Email, oldStatus: stored.Status, newStatus: newStatus})
	stored.Status = newStatus
	return nil
}

func (f *fakeSellerStore) UpdatePassword(_ context.Context, email, hash string) error {
	s, ok := f.sellers[email]
	if !ok {
		return xerrors.ErrNotFound
	}
	s.PasswordHash = hash
	return nil
}

func (f *fakeSellerStore) GetByID(_ context.Context, id int64) (*domain.Seller, error) {
	for _, s := range f.sellers {
		if s.ID == id {
			cp := *s
			return &cp, nil
		}
	}
	return nil, xerrors.ErrNotFound
}

func (f *fakeSellerStore) UpdateInfo(_ context.Context, id int64, fullname, storeName, storeDescription string) error {
	for _, s := range f.sellers {
		if s.ID == id {
			s.FullName = fullname
			s.StoreName = storeName
			s.StoreDescription = storeDescription
			return nil
		}
	}
	return xerrors.ErrNotFound
}

func (f *fakeSellerStore) List(_ context.Context) ([]domain.Seller, error) {
	var out []domain.Seller
	for _, s := range f.sellers {
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeSellerStore) ListPending(_ context.Context) ([]domain.Seller, error) {
	var out []domain.Seller
	for _, s := range f.sellers {
		if s.Status == domain.SellerPending {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeSellerStore) DeleteCascade(_ context.Context, id int64) error {
	for email, s := range f.sellers {
		if s.ID == id {
			delete(f.sellers, email)
			return nil
		}
	}
	return xerrors.ErrNotFound
}

func (f *fakeSellerStore) UnsentStatusChanges(_ context.Context) ([]domain.SellerStatusChange, error) {
	var out []domain.SellerStatusChange
	for i, ch := range f.changes {
		if ch.emailSent || (ch.newStatus != domain.SellerApproved && ch.newStatus != domain.SellerRejected) {
			continue
		}
		change := domain.SellerStatusChange{
			ID:          int64(i + 1),
			SellerEmail: ch.email,
			OldStatus:   ch.oldStatus,
			NewStatus:   ch.newStatus,
		}
		if s, ok := f.sellers[ch.email]; ok {
			change.SellerID = s.ID
			change.SellerName = s.FullName
			change.StoreName = s.StoreName
		}
		out = append(out, change)
	}
	return out, nil
}

func (f *fakeSellerStore) MarkStatusChangeEmailSent(_ context.Context, id int64) error {
	if id < 1 || int(id) > len(f.changes) {
		return xerrors.ErrNotFound
	}
	f.changes[id-1].emailSent = true
	return nil
}

type fakeProductStore struct {
	products map[int64]domain.Product
	entries  []domain.ActivityLogEntry
	nextID   int64
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{products: make(map[int64]domain.Product)}
}

func (f *fakeProductStore) CreateWithLog(_ context.Context, p *domain.Product, entry *domain.ActivityLogEntry) (int64, error) {
	f.nextID++
	p.ID = f.nextID
	entry.ProductID = p.ID
	f.products[p.ID] = *p
	f.entries = append(f.entries, *entry)
	return p.ID, nil
}

func (f *fakeProductStore) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	return &p, nil
}

func (f *fakeProductStore) UpdateWithLog(_ context.Context, p *domain.Product, entry *domain.ActivityLogEntry) error {
	if _, ok := f.products[p.ID]; !ok {
		return xerrors.ErrNotFound
	}
	f.products[p.ID] = *p
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeProductStore) SetStatusWithLog(_ context.Context, id int64, status string, entry *domain.ActivityLogEntry) error {
	p, ok := f.products[id]
	if !ok {
		return xerrors.ErrNotFound
	}
	p.Status = status
	f.products[id] = p
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeProductStore) DeleteWithLog(_ context.Context, id int64, entry *domain.ActivityLogEntry) error {
	if _, ok := f.products[id]; !ok {
		return xerrors.ErrNotFound
	}
	delete(f.products, id)
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeProductStore) ListBySeller(_ context.Context, sellerEmail string) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range f.products {
		if p.SellerEmail == sellerEmail {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductStore) ListPublished(_ context.Context) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range f.products {
		if p.Status == domain.ProductPublished {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductStore) ListActivityBySeller(_ context.Context, sellerEmail string, limit int) ([]domain.ActivityLogEntry, error) {
	var out []domain.ActivityLogEntry
	for i := len(f.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if f.entries[i].SellerEmail == sellerEmail {
			out = append(out, f.entries[i])
		}
	}
	return out, nil
}

// activityView adapts fakeProductStore's entry list to the ActivityStore
// interface.
type activityView struct {
	store *fakeProductStore
}

func (v activityView) ListBySeller(ctx context.Context, sellerEmail string, limit int) ([]domain.ActivityLogEntry, error) {
	return v.store.ListActivityBySeller(ctx, sellerEmail, limit)
}

type fakeUserStore struct {
	users map[string]*domain.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*domain.User)}
}

func (f *fakeUserStore) Create(_ context.Context, u *domain.User) error {
	if _, ok := f.users[u.Email]; ok {
		return xerrors.ErrDuplicateEmail
	}
	u.ID = int64(len(f.users) + 1)
	cp := *u
	f.users[u.Email] = &cp
	return nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) UpdatePassword(_ context.Context, email, hash string) error {
	u, ok := f.users[email]
	if !ok {
		return xerrors.ErrNotFound
	}
	u.PasswordHash = hash
	return nil
}

type fakeLimiter struct {
	err   error
	calls int
}

func (f *fakeLimiter) CanRequest(context.Context, string, string) error {
	f.calls++
	return f.err
}
