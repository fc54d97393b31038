package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"servicemarket/internal/config"
	"servicemarket/internal/database"
	"servicemarket/internal/middleware"
	"servicemarket/internal/modules/auth"
	"servicemarket/internal/modules/booking"
	"servicemarket/internal/modules/cart"
	"servicemarket/internal/modules/notification"
	"servicemarket/internal/modules/payment"
	"servicemarket/internal/modules/payout"
	"servicemarket/internal/modules/rating"
	"servicemarket/internal/pkg/codes"
	jwtsvc "servicemarket/internal/pkg/jwt"
	"servicemarket/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	codeStore, err := codes.New(cfg.RedisURL, cfg.VerifyCodeTTL)
	if err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	cartRepo := repository.NewCartRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	payoutRepo := repository.NewPayoutRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	notifRepo := repository.NewNotificationRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	hub := notification.NewHub()
	defer hub.Close()
	notifService := notification.NewService(notifRepo, userRepo, hub, log.Printf)
	notifHandler := notification.NewHandler(notifService, hub, j)

	authService := auth.NewService(userRepo, codeStore, j, log.Printf)
	authHandler := auth.NewHandler(authService)

	cartService := cart.NewService(cartRepo)
	cartHandler := cart.NewHandler(cartService)

	bookingService := booking.NewService(bookingRepo, notifService, log.Printf)
	bookingHandler := booking.NewHandler(bookingService)

	stripeProvider := payment.NewStripeProvider(cfg.StripeSecretKey)
	stripeVerifier := payment.NewStripeVerifier(cfg.StripeWebhookSecret)
	paymentService := payment.NewService(paymentRepo, stripeProvider, stripeVerifier, notifService, cfg.Currency, log.Printf)
	paymentHandler := payment.NewHandler(paymentService)

	payoutService := payout.NewService(payoutRepo, bookingRepo, notifService, log.Printf)
	payoutHandler := payout.NewHandler(payoutService)

	ratingService := rating.NewService(ratingRepo, bookingRepo, notifService, log.Printf)
	ratingHandler := rating.NewHandler(ratingService)

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)
		ratingHandler.RegisterPublicRoutes(v1)
		paymentHandler.RegisterWebhookRoutes(v1)
		notifHandler.RegisterWSRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			cartHandler.RegisterRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
			paymentHandler.RegisterRoutes(protected)
			ratingHandler.RegisterRoutes(protected)
			notifHandler.RegisterRoutes(protected)
		}

		vendor := v1.Group("/")
		vendor.Use(middleware.JWTAuth(j), middleware.VendorOnly())
		{
			bookingHandler.RegisterVendorRoutes(vendor)
			payoutHandler.RegisterVendorRoutes(vendor)
		}

		admin := v1.Group("/")
		admin.Use(middleware.JWTAuth(j), middleware.AdminOnly())
		{
			bookingHandler.RegisterAdminRoutes(admin)
			payoutHandler.RegisterAdminRoutes(admin)
			ratingHandler.RegisterAdminRoutes(admin)
		}
	}

	log.Printf("level=info msg=listening port=%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
