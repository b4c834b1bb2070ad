package handler

import (
	"fmt"
	"net/http"

	"mystore-backend/internal/usecase"
	"mystore-backend/pkg/response"
)

// AuthHandler serves the customer account and OTP endpoints.
type AuthHandler struct {
	accounts     *usecase.AccountUsecase
	verification *usecase.VerificationUsecase
}

func NewAuthHandler(accounts *usecase.AccountUsecase, verification *usecase.VerificationUsecase) *AuthHandler {
	return &AuthHandler{accounts: accounts, verification: verification}
}

func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if _, err := h.accounts.Signup(r.Context(), req.Name, req.Email, req.Password); err != nil {
		writeError(w, err)
		return
	}
	response.Message(w, http.StatusCreated, "Signup successful!")
}

func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Welcome %s!", user.Name),
		"name":    user.Name,
		"email":   user.Email,
	})
}

func (h *AuthHandler) HandleSendOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.verification.RequestSignupOTP(r.Context(), req.Email); err != nil {
		writeError(w, err)
		return
	}
	response.Message(w, http.StatusOK, "OTP sent successfully!")
}

// HandleVerifyOTP dispatches on userType: absent means the single-use signup
// flow, present means the non-consuming password-reset check.
func (h *AuthHandler) HandleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		OTP      string `json:"otp"`
		UserType string `json:"userType"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	var err error
	if req.UserType == "" {
		err = h.verification.VerifySignupOTP(r.Context(), req.Email, req.OTP)
	} else {
		err = h.verification.VerifyResetOTP(r.Context(), req.Email, req.OTP, req.UserType)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	response.Message(w, http.StatusOK, "OTP verified successfully!")
}

func (h *AuthHandler) HandleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		UserType string `json:"userType"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.verification.RequestPasswordReset(r.Context(), req.Email, req.UserType); err != nil {
		writeError(w, err)
		return
	}
	response.Message(w, http.StatusOK, "Password reset code sent to your email.")
}

func (h *AuthHandler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email       string `json:"email"`
		OTP         string `json:"otp"`
		NewPassword string `json:"newPassword"`
		UserType    string `json:"userType"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.verification.ResetPassword(r.Context(), req.Email, req.OTP, req.NewPassword, req.UserType); err != nil {
		writeError(w, err)
		return
	}
	response.Message(w, http.StatusOK, "Password reset successfully!")
}
