package server

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"mystore-backend/internal/config"
	"mystore-backend/internal/handler"
	"mystore-backend/internal/notify"
	"mystore-backend/internal/otp"
	"mystore-backend/internal/rate"
	"mystore-backend/internal/repository"
	"mystore-backend/internal/router"
	"mystore-backend/internal/usecase"
	"mystore-backend/pkg/cache"
)

// NewServer wires repositories, usecases and handlers into a ready-to-run
// HTTP server.
func NewServer(ctx context.Context, cfg config.AppConfig) (*http.Server, func(), error) {
	db, err := config.ConnectDB(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	redisCache := cache.New(cfg.RedisAddr, cfg.RedisPass)

	userRepo := repository.NewUserRepo(db)
	sellerRepo := repository.NewSellerRepo(db)
	productRepo := repository.NewProductRepo(db)
	activityRepo := repository.NewActivityRepo(db)
	orderRepo := repository.NewOrderRepo(db)
	contactRepo := repository.NewContactRepo(db)
	emailLogRepo := repository.NewEmailLogRepo(db)

	mailer := notify.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
	notifier := notify.NewNotifier(mailer, emailLogRepo, notify.Templates{
		DashboardURL: cfg.DashboardURL,
		LoginURL:     cfg.LoginURL,
	})

	otpStore := otp.NewStore(otp.WithTTL(cfg.OTP_TTL))
	limiter := rate.NewLimiter(redisCache, cfg.OTP_Window, cfg.OTP_MaxPerWindow, cfg.OTP_Cooldown)

	accountUC := usecase.NewAccountUsecase(userRepo)
	sellerUC := usecase.NewSellerUsecase(sellerRepo, notifier)
	productUC := usecase.NewProductUsecase(productRepo, activityRepo, sellerUC, notifier)
	orderUC := usecase.NewOrderUsecase(orderRepo, notifier)
	contactUC := usecase.NewContactUsecase(contactRepo, notifier, cfg.AdminEmail)
	verificationUC := usecase.NewVerificationUsecase(otpStore, limiter, userRepo, sellerRepo, notifier)

	authHandler := handler.NewAuthHandler(accountUC, verificationUC)
	sellerHandler := handler.NewSellerHandler(sellerUC)
	productHandler := handler.NewProductHandler(productUC)
	orderHandler := handler.NewOrderHandler(orderUC)
	contactHandler := handler.NewContactHandler(contactUC)

	r := chi.NewRouter()
	router.SetupRoutes(r, authHandler, sellerHandler, productHandler, orderHandler, contactHandler)

	cleanup := func() {
		if err := redisCache.Close(); err != nil {
			log.Printf("Redis close error: %v", err)
		}
		db.Close()
	}

	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}, cleanup, nil
}
