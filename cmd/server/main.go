package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"limo-booking/internal/catalog"
	"limo-booking/internal/config"
	"limo-booking/internal/modules/admin"
	"limo-booking/internal/modules/availability"
	"limo-booking/internal/modules/booking"
	"limo-booking/internal/modules/policy"
	"limo-booking/internal/modules/pricing"
	"limo-booking/internal/modules/routing"
	"limo-booking/pkg/email"
	"limo-booking/pkg/payment"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	dbpool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbpool.Close()

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to redis: %v", err)
	}
	defer rdb.Close()

	emailSvc, err := email.NewService(ctx, cfg.AWSRegion, cfg.SenderEmail, cfg.SenderName, cfg.AdminEmail)
	if err != nil {
		log.Fatalf("Failed to set up mailer: %v", err)
	}

	cat := catalog.Default()

	bookingRepo := booking.NewRepository(dbpool)
	adminRepo := admin.NewRepository(dbpool)
	quoteCache := booking.NewQuoteCache(rdb)

	bookingSvc := booking.NewService(
		bookingRepo,
		quoteCache,
		cat,
		pricing.NewService(cat),
		availability.NewService(),
		policy.NewService(),
		routing.NewService(),
		adminRepo,
		payment.NewStripeService(cfg.StripeAPIKey),
		emailSvc,
		cfg.PaymentMaxCHF,
	)
	adminSvc := admin.NewService(adminRepo, bookingSvc, cfg.JWTSecret, cfg.OpsPasswordHash)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.ClientOrigin},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
	}))

	api := e.Group("/api")
	booking.NewHandler(bookingSvc, cat).RegisterRoutes(api)
	admin.NewHandler(adminSvc).RegisterRoutes(api.Group("/admin"), cfg.JWTSecret)

	go func() {
		if err := e.Start(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Forced shutdown: %v", err)
	}
}
