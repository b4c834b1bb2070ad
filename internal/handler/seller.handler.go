package handler

import (
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"mystore-backend/internal/usecase"
	"mystore-backend/pkg/response"
)

type SellerHandler struct {
	sellers *usecase.SellerUsecase
}

func NewSellerHandler(sellers *usecase.SellerUsecase) *SellerHandler {
	return &SellerHandler{sellers: sellers}
}

func (h *SellerHandler) HandleSellerSignup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name             string `json:"name"`
		Email            string `json:"email"`
		StoreName        string `json:"storeName"`
		StoreDescription string `json:"store_description"`
		Password         string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if _, err := h.sellers.Signup(r.Context(), req.Name, req.Email, req.StoreName, req.StoreDescription, req.Password); err != nil {
		writeError(w, err)
		return
	}
	response.Message(w, http.StatusCreated, "Seller application submitted successfully! Check your email for confirmation.")
}

func (h *SellerHandler) HandleSellerLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	seller, err := h.sellers.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Welcome %s!", seller.FullName),
		"name":    seller.FullName,
		"email":   seller.Email,
		"status":  strings.ToLower(seller.Status),
	})
}

func (h *SellerHandler) HandleCheckStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	seller, err := h.sellers.CheckStatus(r.Context(), req.Email)
	if err != nil {
		writeError(w, err)
		return
	}

	status := strings.ToLower(seller.Status)
	response.JSON(w, http.StatusOK, map[string]interface{}{
		"name":       seller.FullName,
		"email":      seller.Email,
		"status":     status,
		"isApproved": status == "approved",
	})
}

// HandleUpdateStatus accepts the status in any casing, like the admin
// dashboard sends it.
func (h *SellerHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email  string `json:"email"`
		Status string `json:"status"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	status := cases.Title(language.English).String(strings.ToLower(strings.TrimSpace(req.Status)))
	if err := h.sellers.SetStatus(r.Context(), strings.TrimSpace(req.Email), status); err != nil {
		writeError(w, err)
		return
	}
	response.Message(w, http.StatusOK, fmt.Sprintf("Seller status updated to %s.", status))
}
