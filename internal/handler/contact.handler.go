package handler

import (
	"net/http"

	"mystore-backend/internal/domain"
	"mystore-backend/internal/usecase"
	"mystore-backend/pkg/response"
)

type ContactHandler struct {
	contact *usecase.ContactUsecase
}

func NewContactHandler(contact *usecase.ContactUsecase) *ContactHandler {
	return &ContactHandler{contact: contact}
}

func (h *ContactHandler) HandleContactUs(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Subject string `json:"subject"`
		Message string `json:"message"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	msg := &domain.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := h.contact.Submit(r.Context(), msg); err != nil {
		writeError(w, err)
		return
	}
	response.Message(w, http.StatusOK, "Message sent successfully! Check your email for confirmation.")
}

func (h *ContactHandler) HandleAdminContactMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.contact.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, messages)
}
