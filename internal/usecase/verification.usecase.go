package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"

	"mystore-backend/internal/domain"
	"mystore-backend/internal/metrics"
	"mystore-backend/internal/notify"
	"mystore-backend/internal/otp"
	"mystore-backend/pkg/utils"
	"mystore-backend/pkg/xerrors"
)

// RequestLimiter throttles OTP issuance; nil disables limiting.
type RequestLimiter interface {
	CanRequest(ctx context.Context, email, purpose string) error
}

// SellerAccounts is the slice of the seller store the reset flow needs.
type SellerAccounts interface {
	GetByEmail(ctx context.Context, email string) (*domain.Seller, error)
	UpdatePassword(ctx context.Context, email, hash string) error
}

// CustomerAccounts is the same slice for customer accounts.
type CustomerAccounts interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdatePassword(ctx context.Context, email, hash string) error
}

const minPasswordLen = 6

// VerificationUsecase owns the OTP flows. The signup flow is single-use
// (verify consumes); the password-reset flow is two-step (verify leaves the
// record for the reset call to check again).
type VerificationUsecase struct {
	otp      *otp.Store
	limiter  RequestLimiter
	users    CustomerAccounts
	sellers  SellerAccounts
	notifier *notify.Notifier
}

func NewVerificationUsecase(store *otp.Store, limiter RequestLimiter, users CustomerAccounts, sellers SellerAccounts, notifier *notify.Notifier) *VerificationUsecase {
	return &VerificationUsecase{
		otp:      store,
		limiter:  limiter,
		users:    users,
		sellers:  sellers,
		notifier: notifier,
	}
}

// RequestSignupOTP issues and delivers a signup code. Delivery failure fails
// the request: a code nobody received is useless.
func (uc *VerificationUsecase) RequestSignupOTP(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return xerrors.ErrValidation
	}
	if !emailPattern.MatchString(email) {
		return xerrors.ErrInvalidEmailFormat
	}
	if uc.limiter != nil {
		if err := uc.limiter.CanRequest(ctx, email, otp.PurposeSignup); err != nil {
			return err
		}
	}

	rec, err := uc.otp.Issue(email, otp.PurposeSignup, "")
	if err != nil {
		return err
	}
	metrics.OTPIssued.Inc()
	log.Printf("OTP issued | Email=%s | Purpose=%s | ExpiresAt=%s", email, otp.PurposeSignup, rec.ExpiresAt.Format("15:04:05"))

	subject, body := uc.notifier.Templates().OTP(rec.Code, otp.PurposeSignup, uc.otp.TTL())
	return uc.notifier.Send(ctx, email, subject, body, "otp")
}

// VerifySignupOTP consumes the code on success.
func (uc *VerificationUsecase) VerifySignupOTP(ctx context.Context, email, code string) error {
	err := uc.otp.VerifySingleUse(strings.TrimSpace(email), strings.TrimSpace(code))
	if err != nil {
		metrics.OTPVerifications.WithLabelValues("failed").Inc()
		return err
	}
	metrics.OTPVerifications.WithLabelValues("ok").Inc()
	return nil
}

// RequestPasswordReset issues a reset code tagged with the account type.
// The code email is best-effort here; the account must exist.
func (uc *VerificationUsecase) RequestPasswordReset(ctx context.Context, email, userType string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return xerrors.ErrValidation
	}
	if err := uc.accountExists(ctx, email, userType); err != nil {
		return err
	}
	if uc.limiter != nil {
		if err := uc.limiter.CanRequest(ctx, email, otp.PurposePasswordReset); err != nil {
			return err
		}
	}

	rec, err := uc.otp.Issue(email, otp.PurposePasswordReset, userType)
	if err != nil {
		return err
	}
	metrics.OTPIssued.Inc()
	log.Printf("Reset OTP issued | Email=%s | UserType=%s", email, userType)

	subject, body := uc.notifier.Templates().OTP(rec.Code, otp.PurposePasswordReset, uc.otp.TTL())
	uc.notifier.SendBestEffort(ctx, email, subject, body, "otp")
	return nil
}

// VerifyResetOTP checks the code without consuming it, so ResetPassword can
// check it again.
func (uc *VerificationUsecase) VerifyResetOTP(ctx context.Context, email, code, userType string) error {
	err := uc.otp.VerifyTwoStep(strings.TrimSpace(email), strings.TrimSpace(code), userType)
	if err != nil {
		metrics.OTPVerifications.WithLabelValues("failed").Inc()
		return err
	}
	metrics.OTPVerifications.WithLabelValues("ok").Inc()
	return nil
}

// ResetPassword re-validates the code inline, enforces the minimum length,
// persists the new hash and only then consumes the code.
func (uc *VerificationUsecase) ResetPassword(ctx context.Context, email, code, newPassword, userType string) error {
	email = strings.TrimSpace(email)

	if err := uc.otp.VerifyTwoStep(email, strings.TrimSpace(code), userType); err != nil {
		return err
	}
	if len(newPassword) < minPasswordLen {
		return xerrors.ErrWeakPassword
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	switch userType {
	case otp.UserTypeSeller:
		err = uc.sellers.UpdatePassword(ctx, email, hash)
	case otp.UserTypeCustomer:
		err = uc.users.UpdatePassword(ctx, email, hash)
	default:
		return fmt.Errorf("%w: unknown user type %q", xerrors.ErrValidation, userType)
	}
	if err != nil {
		// the account vanished between issuance and reset
		return err
	}

	uc.otp.Consume(email)
	log.Printf("Password reset | Email=%s | UserType=%s", email, userType)

	subject, body := uc.notifier.Templates().PasswordResetConfirmed(email)
	uc.notifier.SendBestEffort(ctx, email, subject, body, "password_reset")
	return nil
}

func (uc *VerificationUsecase) accountExists(ctx context.Context, email, userType string) error {
	switch userType {
	case otp.UserTypeSeller:
		_, err := uc.sellers.GetByEmail(ctx, email)
		return err
	case otp.UserTypeCustomer:
		_, err := uc.users.GetByEmail(ctx, email)
		return err
	default:
		return fmt.Errorf("%w: unknown user type %q", xerrors.ErrValidation, userType)
	}
}
