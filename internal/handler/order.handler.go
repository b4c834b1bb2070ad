package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"mystore-backend/internal/domain"
	"mystore-backend/internal/usecase"
	"mystore-backend/pkg/response"
)

type OrderHandler struct {
	orders *usecase.OrderUsecase
}

func NewOrderHandler(orders *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// orderRequest mirrors the checkout payload: the address arrives as a nested
// object.
type orderRequest struct {
	Email      string             `json:"email"`
	FullName   string             `json:"fullName"`
	TotalPrice float64            `json:"totalPrice"`
	Items      []domain.OrderItem `json:"items"`
	Address    struct {
		Address string `json:"address"`
		City    string `json:"city"`
		State   string `json:"state"`
		Pincode string `json:"pincode"`
		Phone   string `json:"phone"`
	} `json:"address"`
}

func (req *orderRequest) toOrder() *domain.Order {
	return &domain.Order{
		Email:      req.Email,
		FullName:   req.FullName,
		TotalPrice: req.TotalPrice,
		Items:      req.Items,
		Address:    req.Address.Address,
		City:       req.Address.City,
		State:      req.Address.State,
		Pincode:    req.Address.Pincode,
		Phone:      req.Address.Phone,
	}
}

func (h *OrderHandler) HandleSaveOrder(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if _, err := h.orders.Place(r.Context(), req.toOrder()); err != nil {
		writeError(w, err)
		return
	}
	response.Message(w, http.StatusOK, "Order saved successfully!")
}

func (h *OrderHandler) HandleGetOrders(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	orders, err := h.orders.History(r.Context(), email)
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) HandleSendOrderEmail(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.orders.SendConfirmation(r.Context(), req.toOrder()); err != nil {
		writeError(w, err)
		return
	}
	response.Message(w, http.StatusOK, "Order confirmation email sent!")
}
