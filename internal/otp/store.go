package otp

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"sync"
	"time"

	"mystore-backend/pkg/xerrors"
)

// OTP purposes.
const (
	PurposeSignup        = "signup"
	PurposePasswordReset = "password_reset"
)

// Account discriminator recorded with password-reset codes.
const (
	UserTypeCustomer = "customer"
	UserTypeSeller   = "seller"
)

const DefaultTTL = 5 * time.Minute

type Record struct {
	Code      string
	Purpose   string
	UserType  string
	ExpiresAt time.Time
}

// Store keeps at most one outstanding code per email: a new Issue overwrites
// whatever was there, so only the most recent code is verifiable. Codes live
// in process memory only; a restart silently invalidates everything
// outstanding.
type Store struct {
	mu      sync.Mutex
	records map[string]Record

	ttl  time.Duration
	now  func() time.Time
	rand io.Reader
}

type Option func(*Store)

// WithClock replaces the wall clock, for deterministic expiry in tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithRand replaces the randomness source used for code generation.
func WithRand(r io.Reader) Option {
	return func(s *Store) { s.rand = r }
}

func WithTTL(d time.Duration) Option {
	return func(s *Store) { s.ttl = d }
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		records: make(map[string]Record),
		ttl:     DefaultTTL,
		now:     time.Now,
		rand:    rand.Reader,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TTL reports the configured code lifetime.
func (s *Store) TTL() time.Duration { return s.ttl }

// Issue generates a fresh six-digit code for email, replacing any outstanding
// record for that address.
func (s *Store) Issue(email, purpose, userType string) (Record, error) {
	code, err := s.generateCode()
	if err != nil {
		return Record{}, fmt.Errorf("generate otp: %w", err)
	}

	rec := Record{
		Code:      code,
		Purpose:   purpose,
		UserType:  userType,
		ExpiresAt: s.now().Add(s.ttl),
	}

	s.mu.Lock()
	s.records[email] = rec
	s.mu.Unlock()

	return rec, nil
}

// VerifySingleUse checks the code and consumes the record on success. An
// expired record is left in place; only a successful verification or a newer
// Issue removes it.
func (s *Store) VerifySingleUse(email, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[email]
	if !ok {
		return xerrors.ErrOTPNotFound
	}
	if s.now().After(rec.ExpiresAt) {
		return xerrors.ErrOTPExpired
	}
	if code != rec.Code {
		return xerrors.ErrInvalidOTP
	}

	delete(s.records, email)
	return nil
}

// VerifyTwoStep checks the code without consuming it, so a following
// password-reset step can check it again. Expired records are dropped here,
// and a recorded user type must match the caller's.
func (s *Store) VerifyTwoStep(email, code, userType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[email]
	if !ok {
		return xerrors.ErrOTPNotFound
	}
	if s.now().After(rec.ExpiresAt) {
		delete(s.records, email)
		return xerrors.ErrOTPExpired
	}
	if rec.UserType != "" && userType != rec.UserType {
		return xerrors.ErrUserTypeMismatch
	}
	if code != rec.Code {
		return xerrors.ErrInvalidOTP
	}

	return nil
}

// Consume drops the record once a two-step flow completes.
func (s *Store) Consume(email string) {
	s.mu.Lock()
	delete(s.records, email)
	s.mu.Unlock()
}

// generateCode draws uniformly from 100000..999999.
func (s *Store) generateCode() (string, error) {
	n, err := rand.Int(s.rand, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", n.Int64()+100000), nil
}
