package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"mystore-backend/internal/usecase"
	"mystore-backend/pkg/response"
	"mystore-backend/pkg/xerrors"
)

type ProductHandler struct {
	products *usecase.ProductUsecase
}

func NewProductHandler(products *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{products: products}
}

func productID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, xerrors.ErrInvalidRequest
	}
	return id, nil
}

func (h *ProductHandler) HandleAddProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		usecase.ProductInput
		SellerID string `json:"sellerId"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.SellerID == "" {
		response.Error(w, http.StatusBadRequest, "Seller information missing")
		return
	}

	p, err := h.products.Create(r.Context(), req.SellerID, req.ProductInput)
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, map[string]interface{}{
		"message":    "Product saved as draft! Check your email and dashboard.",
		"product_id": p.ID,
		"status":     p.Status,
	})
}

func (h *ProductHandler) HandleSellerProducts(w http.ResponseWriter, r *http.Request) {
	sellerEmail := r.URL.Query().Get("sellerId")
	if sellerEmail == "" {
		response.Error(w, http.StatusBadRequest, "Seller email is required")
		return
	}

	products, err := h.products.ListBySeller(r.Context(), sellerEmail)
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, products)
}

func (h *ProductHandler) HandleSellerActivity(w http.ResponseWriter, r *http.Request) {
	sellerEmail := r.URL.Query().Get("sellerId")
	if sellerEmail == "" {
		response.Error(w, http.StatusBadRequest, "Seller email required")
		return
	}

	entries, err := h.products.Activity(r.Context(), sellerEmail)
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, entries)
}

// HandleListProducts is the public catalog: published products only.
func (h *ProductHandler) HandleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.ListPublished(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, products)
}

func (h *ProductHandler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	p, err := h.products.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, p)
}

func (h *ProductHandler) HandleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var in usecase.ProductInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}

	p, err := h.products.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "Product updated successfully! Check your email for details.",
		"product": p,
	})
}

func (h *ProductHandler) HandleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.products.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	response.Message(w, http.StatusOK, "Product deleted successfully!")
}

func (h *ProductHandler) HandlePublish(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	p, err := h.products.Publish(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "Product published successfully! It's now live on the store.",
		"status":  p.Status,
	})
}

func (h *ProductHandler) HandleUnpublish(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	p, err := h.products.Unpublish(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "Product unpublished and moved back to drafts.",
		"status":  p.Status,
	})
}
