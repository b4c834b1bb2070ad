package usecase_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	qt "github.com/frankban/quicktest"
	"golang.org/x/crypto/bcrypt"

	"mystore-backend/internal/domain"
	"mystore-backend/internal/otp"
	"mystore-backend/internal/usecase"
	"mystore-backend/pkg/xerrors"
)

var codePattern = regexp.MustCompile(`\b\d{6}\b`)

type verificationFixture struct {
	uc      *usecase.VerificationUsecase
	store   *otp.Store
	users   *fakeUserStore
	sellers *fakeSellerStore
	limiter *fakeLimiter
	mailer  *fakeMailer
}

func newVerificationFixture() *verificationFixture {
	store := otp.NewStore()
	users := newFakeUserStore()
	sellers := newFakeSellerStore()
	limiter := &fakeLimiter{}
	mailer := &fakeMailer{}

	return &verificationFixture{
		uc:      usecase.NewVerificationUsecase(store, limiter, users, sellers, newTestNotifier(mailer)),
		store:   store,
		users:   users,
		sellers: sellers,
		limiter: limiter,
		mailer:  mailer,
	}
}

func TestRequestSignupOTPDeliversCode(t *testing.T) {
	c := qt.New(t)
	f := newVerificationFixture()

	err := f.uc.RequestSignupOTP(context.Background(), "a@b.com")
	c.Assert(err, qt.IsNil)
	c.Assert(f.limiter.calls, qt.Equals, 1)
	c.Assert(f.mailer.sent, qt.HasLen, 1)

	// the emailed six-digit code verifies
	code := codePattern.FindString(f.mailer.sent[0].body)
	c.Assert(code, qt.Not(qt.Equals), "")
	c.Assert(f.uc.VerifySignupOTP(context.Background(), "a@b.com", code), qt.IsNil)
}

func TestRequestSignupOTPDeliveryFailurePropagates(t *testing.T) {
	c := qt.New(t)
	f := newVerificationFixture()
	f.mailer.fail = errors.New("smtp down")

	err := f.uc.RequestSignupOTP(context.Background(), "a@b.com")
	c.Assert(err, qt.ErrorMatches, "smtp down")
}

func TestRequestSignupOTPValidation(t *testing.T) {
	c := qt.New(t)
	f := newVerificationFixture()

	c.Assert(f.uc.RequestSignupOTP(context.Background(), ""), qt.ErrorIs, xerrors.ErrValidation)
	c.Assert(f.uc.RequestSignupOTP(context.Background(), "nope"), qt.ErrorIs, xerrors.ErrInvalidEmailFormat)
	c.Assert(f.limiter.calls, qt.Equals, 0)
}

func TestRequestSignupOTPRateLimited(t *testing.T) {
	c := qt.New(t)
	f := newVerificationFixture()
	f.limiter.err = xerrors.ErrRateLimited

	err := f.uc.RequestSignupOTP(context.Background(), "a@b.com")
	c.Assert(err, qt.ErrorIs, xerrors.ErrRateLimited)
	c.Assert(f.mailer.sent, qt.HasLen, 0)
}

func TestVerifySignupOTPConsumes(t *testing.T) {
	c := qt.New(t)
	f := newVerificationFixture()

	rec, err := f.store.Issue("a@b.com", otp.PurposeSignup, "")
	c.Assert(err, qt.IsNil)

	c.Assert(f.uc.VerifySignupOTP(context.Background(), "a@b.com", rec.Code), qt.IsNil)
	err = f.uc.VerifySignupOTP(context.Background(), "a@b.com", rec.Code)
	c.Assert(err, qt.ErrorIs, xerrors.ErrOTPNotFound)
}

func TestRequestPasswordResetUnknownAccount(t *testing.T) {
	c := qt.New(t)
	f := newVerificationFixture()

	err := f.uc.RequestPasswordReset(context.Background(), "ghost@b.com", otp.UserTypeCustomer)
	c.Assert(err, qt.ErrorIs, xerrors.ErrNotFound)
	c.Assert(f.mailer.sent, qt.HasLen, 0)
}

func TestRequestPasswordResetBestEffortDelivery(t *testing.T) {
	c := qt.New(t)
	f := newVerificationFixture()
	f.users.users["a@b.com"] = &domain.User{ID: 1, Name: "A", Email: "a@b.com"}
	f.mailer.fail = errors.New("smtp down")

	// the code is issued even when the email bounces
	err := f.uc.RequestPasswordReset(context.Background(), "a@b.com", otp.UserTypeCustomer)
	c.Assert(err, qt.IsNil)
}

func TestResetPasswordFullFlow(t *testing.T) {
	c := qt.New(t)
	f := newVerificationFixture()
	ctx := context.Background()

	f.users.users["a@b.com"] = &domain.User{ID: 1, Name: "A", Email: "a@b.com"}

	c.Assert(f.uc.RequestPasswordReset(ctx, "a@b.com", otp.UserTypeCustomer), qt.IsNil)

	rec, err := f.store.Issue("a@b.com", otp.PurposePasswordReset, otp.UserTypeCustomer)
	c.Assert(err, qt.IsNil)

	// the verify step does not consume
	c.Assert(f.uc.VerifyResetOTP(ctx, "a@b.com", rec.Code, otp.UserTypeCustomer), qt.IsNil)
	c.Assert(f.uc.VerifyResetOTP(ctx, "a@b.com", rec.Code, otp.UserTypeCustomer), qt.IsNil)

	c.Assert(f.uc.ResetPassword(ctx, "a@b.com", rec.Code, "newsecret", otp.UserTypeCustomer), qt.IsNil)

	hash := f.users.users["a@b.com"].PasswordHash
	c.Assert(bcrypt.CompareHashAndPassword([]byte(hash), []byte("newsecret")), qt.IsNil)

	// the reset consumed the code
	err = f.uc.ResetPassword(ctx, "a@b.com", rec.Code, "newsecret2", otp.UserTypeCustomer)
	c.Assert(err, qt.ErrorIs, xerrors.ErrOTPNotFound)
}

func TestResetPasswordWeakPassword(t *testing.T) {
	c := qt.New(t)
	f := newVerificationFixture()
	ctx := context.Background()

	f.users.users["a@b.com"] = &domain.User{ID: 1, Name: "A", Email: "a@b.com"}
	rec, err := f.store.Issue("a@b.com", otp.PurposePasswordReset, otp.UserTypeCustomer)
	c.Assert(err, qt.IsNil)

	err = f.uc.ResetPassword(ctx, "a@b.com", rec.Code, "short", otp.UserTypeCustomer)
	c.Assert(err, qt.ErrorIs, xerrors.ErrWeakPassword)

	// code survives the rejected attempt
	c.Assert(f.uc.ResetPassword(ctx, "a@b.com", rec.Code, "longenough", otp.UserTypeCustomer), qt.IsNil)
}

func TestResetPasswordUserTypeMismatch(t *testing.T) {
	c := qt.New(t)
	f := newVerificationFixture()

	rec, err := f.store.Issue("s@b.com", otp.PurposePasswordReset, otp.UserTypeSeller)
	c.Assert(err, qt.IsNil)

	err = f.uc.ResetPassword(context.Background(), "s@b.com", rec.Code, "longenough", otp.UserTypeCustomer)
	c.Assert(err, qt.ErrorIs, xerrors.ErrUserTypeMismatch)
}

func TestResetPasswordSellerAccount(t *testing.T) {
	c := qt.New(t)
	f := newVerificationFixture()
	ctx := context.Background()

	f.sellers.sellers["s@b.com"] = &domain.Seller{
		ID: 1, FullName: "S", Email: "s@b.com", Status: domain.SellerApproved,
	}
	rec, err := f.store.Issue("s@b.com", otp.PurposePasswordReset, otp.UserTypeSeller)
	c.Assert(err, qt.IsNil)

	c.Assert(f.uc.ResetPassword(ctx, "s@b.com", rec.Code, "newsecret", otp.UserTypeSeller), qt.IsNil)
	hash := f.sellers.sellers["s@b.com"].PasswordHash
	c.Assert(bcrypt.CompareHashAndPassword([]byte(hash), []byte("newsecret")), qt.IsNil)
}

func TestResetPasswordAccountVanished(t *testing.T) {
	c := qt.New(t)
	f := newVerificationFixture()

	rec, err := f.store.Issue("a@b.com", otp.PurposePasswordReset, otp.UserTypeCustomer)
	c.Assert(err, qt.IsNil)

	err = f.uc.ResetPassword(context.Background(), "a@b.com", rec.Code, "longenough", otp.UserTypeCustomer)
	c.Assert(err, qt.ErrorIs, xerrors.ErrNotFound)
}
