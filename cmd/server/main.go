package main

import (
	"fmt"
	"log"

	"sartor/internal/config"
	"sartor/internal/email/noop"
	"sartor/internal/email/ses"
	"sartor/internal/handler"
	"sartor/internal/port"
	"sartor/internal/repository/postgres"
	"sartor/internal/router"
	"sartor/internal/service"
	"sartor/internal/storage"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	serviceRepo := postgres.NewServiceRepo(db)
	orderRepo := postgres.NewOrderRepo(db)
	imageRepo := postgres.NewOrderImageRepo(db)
	bookingRepo := postgres.NewBookingRepo(db)

	// Initialize the active storage backend
	store, err := storage.Active(&cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize storage backend: %w", err)
	}

	// Initialize email delivery
	var emailSender port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		emailSender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		emailSender = noop.NewNoopSender()
	}

	// Initialize services
	authSvc := service.NewAuthService(userRepo, cfg.JWT)
	userSvc := service.NewUserService(userRepo)
	catalogSvc := service.NewCatalogService(serviceRepo)
	orderSvc := service.NewOrderService(orderRepo, serviceRepo, userRepo, emailSender)
	imageSvc := service.NewImageService(imageRepo, store, &cfg.Storage)
	bookingSvc := service.NewBookingService(bookingRepo, serviceRepo, userRepo, emailSender)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	userH := handler.NewUserHandler(userSvc)
	catalogH := handler.NewCatalogHandler(catalogSvc)
	orderH := handler.NewOrderHandler(orderSvc)
	imageH := handler.NewImageHandler(imageSvc, orderSvc)
	bookingH := handler.NewBookingHandler(bookingSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(authSvc, cfg.CORS.AllowedOrigins,
		authH, userH, catalogH, orderH, imageH, bookingH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
