package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mystore-backend/internal/handler"
	"mystore-backend/pkg/response"
)

func SetupRoutes(
	r chi.Router,
	auth *handler.AuthHandler,
	seller *handler.SellerHandler,
	product *handler.ProductHandler,
	order *handler.OrderHandler,
	contact *handler.ContactHandler,
) chi.Router {
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		response.Message(w, http.StatusOK, "ok")
	})
	r.Handle("/metrics", promhttp.Handler())

	// ---------------- Customer accounts & OTP ----------------
	r.Post("/signup", auth.HandleSignup)
	r.Post("/login", auth.HandleLogin)
	r.Post("/send-otp", auth.HandleSendOTP)
	r.Post("/verify-otp", auth.HandleVerifyOTP)
	r.Post("/forgot-password", auth.HandleForgotPassword)
	r.Post("/reset-password", auth.HandleResetPassword)

	// ---------------- Sellers ----------------
	r.Post("/seller-signup", seller.HandleSellerSignup)
	r.Post("/seller-login", seller.HandleSellerLogin)
	r.Post("/check-seller-status", seller.HandleCheckStatus)
	r.Post("/update-seller-status", seller.HandleUpdateStatus)

	// ---------------- Products ----------------
	r.Post("/add-product", product.HandleAddProduct)
	r.Get("/seller-products", product.HandleSellerProducts)
	r.Get("/seller-activity", product.HandleSellerActivity)
	r.Get("/products", product.HandleListProducts)
	r.Route("/products/{id}", func(pr chi.Router) {
		pr.Get("/", product.HandleGetProduct)
		pr.Put("/", product.HandleUpdateProduct)
		pr.Delete("/", product.HandleDeleteProduct)
		pr.Patch("/publish", product.HandlePublish)
		pr.Patch("/unpublish", product.HandleUnpublish)
	})

	// ---------------- Orders & contact ----------------
	r.Post("/save-order", order.HandleSaveOrder)
	r.Get("/get-orders/{email}", order.HandleGetOrders)
	r.Post("/send-order-email", order.HandleSendOrderEmail)
	r.Post("/contact-us", contact.HandleContactUs)
	r.Get("/admin/contact-messages", contact.HandleAdminContactMessages)

	return r
}
