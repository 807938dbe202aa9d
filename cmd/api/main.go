package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/catalinahotel/booking-api/internal/config"
	"github.com/catalinahotel/booking-api/internal/domain/checkout"
	"github.com/catalinahotel/booking-api/internal/domain/paymentreturn"
	"github.com/catalinahotel/booking-api/internal/domain/search"
	"github.com/catalinahotel/booking-api/internal/middleware"
	"github.com/catalinahotel/booking-api/internal/pkg/database"
	"github.com/catalinahotel/booking-api/internal/pkg/hotelapi"
	"github.com/catalinahotel/booking-api/internal/pkg/logger"
	"github.com/catalinahotel/booking-api/internal/pkg/response"
)

func main() {
	cfg := config.Load()
	logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Environment: cfg.Env,
	})

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Str("hotel_api", cfg.HotelAPIBaseURL).
		Msg("Starting booking API")

	redisClient, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redisClient)

	apiClient := hotelapi.NewClient(cfg.HotelAPIBaseURL, cfg.HotelAPIToken, cfg.HotelAPITimeout, "BookingAPI/1.0")

	// Session state and the checkout lock live in redis when configured,
	// in process memory otherwise.
	var sessionStore search.SessionStore
	var actionLocker checkout.ActionLocker
	if redisClient != nil {
		sessionStore = search.NewRedisSessionStore(redisClient, cfg.SessionTTL)
		actionLocker = checkout.NewRedisActionLocker(redisClient, cfg.CheckoutLockTTL)
	} else {
		sessionStore = search.NewMemorySessionStore(cfg.SessionTTL)
		actionLocker = checkout.NewMemoryActionLocker(cfg.CheckoutLockTTL)
	}

	// ---------- Services ----------
	searchService := search.NewService(apiClient, sessionStore)
	checkoutService := checkout.NewService(apiClient, sessionStore, actionLocker)

	// ---------- Handlers ----------
	searchHandler := search.NewHandler(searchService)
	checkoutHandler := checkout.NewHandler(checkoutService)
	paymentReturnHandler := paymentreturn.NewHandler()

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))
	r.Use(chimw.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/search", searchHandler.Routes())
		r.Mount("/checkout", checkoutHandler.Routes())
		r.Mount("/payments", paymentReturnHandler.Routes())
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}
