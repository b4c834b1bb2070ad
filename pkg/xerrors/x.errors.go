package xerrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Generic
var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrNotFound       = errors.New("not found")
	ErrValidation     = errors.New("all required fields must be filled")
)

// Accounts
var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWeakPassword       = errors.New("password must be at least 6 characters long")
	ErrInvalidEmailFormat = errors.New("invalid email format")
)

// Seller lifecycle
var (
	ErrAccountPending    = errors.New("account is pending approval")
	ErrAccountRejected   = errors.New("seller application was rejected")
	ErrSellerNotApproved = errors.New("only approved sellers can manage products")
	ErrInvalidState      = errors.New("invalid account status")
)

// OTP / verification
var (
	ErrRateLimited      = errors.New("too many requests")
	ErrOTPNotFound      = errors.New("otp not found")
	ErrOTPExpired       = errors.New("otp expired")
	ErrInvalidOTP       = errors.New("invalid otp")
	ErrUserTypeMismatch = errors.New("otp was issued for a different account type")
)

// StoreError carries an unexpected failure from the backing store. Callers
// treat it as opaque; the underlying message is kept for logs.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *StoreError) Unwrap() error { return e.Err }

func Store(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}

func ParsePGErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code // e.g. 23505 for unique_violation
	}
	return "unknown"
}

func IsUniqueViolation(err error) bool {
	return ParsePGErrorCode(err) == "23505"
}
