package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"mystore-backend/pkg/response"
	"mystore-backend/pkg/xerrors"
)

func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return xerrors.ErrInvalidRequest
	}
	return nil
}

// writeError maps domain sentinels to HTTP statuses; anything unrecognized is
// logged and reported as a 500 without leaking the underlying message.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, xerrors.ErrInvalidRequest),
		errors.Is(err, xerrors.ErrValidation),
		errors.Is(err, xerrors.ErrInvalidEmailFormat),
		errors.Is(err, xerrors.ErrDuplicateEmail),
		errors.Is(err, xerrors.ErrWeakPassword),
		errors.Is(err, xerrors.ErrOTPNotFound),
		errors.Is(err, xerrors.ErrOTPExpired),
		errors.Is(err, xerrors.ErrInvalidOTP),
		errors.Is(err, xerrors.ErrUserTypeMismatch):
		response.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, xerrors.ErrInvalidCredentials):
		response.Error(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, xerrors.ErrAccountPending),
		errors.Is(err, xerrors.ErrAccountRejected),
		errors.Is(err, xerrors.ErrSellerNotApproved),
		errors.Is(err, xerrors.ErrInvalidState):
		response.Error(w, http.StatusForbidden, err.Error())
	case errors.Is(err, xerrors.ErrNotFound):
		response.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, xerrors.ErrRateLimited):
		response.Error(w, http.StatusTooManyRequests, err.Error())
	default:
		log.Printf("Unhandled error: %v", err)
		response.Error(w, http.StatusInternalServerError, "internal server error")
	}
}
