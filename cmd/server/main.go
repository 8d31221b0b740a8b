package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hashforge/site-server-go/internal/config"
	"github.com/hashforge/site-server-go/internal/database"
	"github.com/hashforge/site-server-go/internal/handler"
	"github.com/hashforge/site-server-go/internal/jobs"
	"github.com/hashforge/site-server-go/internal/middleware"
	"github.com/hashforge/site-server-go/internal/redis"
	"github.com/hashforge/site-server-go/internal/repository"
	"github.com/hashforge/site-server-go/internal/service"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	setLogLevel(cfg.LogLevel)

	isProduction := os.Getenv("FLY_APP_NAME") != ""
	if err := cfg.Validate(isProduction); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), config.DBPingTimeout)
	if err := db.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ping database")
	}
	cancel()
	log.Info().Msg("database connected")

	redisClient, err := redis.NewClient(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected")

	adminUserRepo := repository.NewAdminUserRepository(db.DB)
	adminSessionRepo := repository.NewAdminSessionRepository(db.DB)
	contactRepo := repository.NewContactRepository(db.DB)
	appointmentRepo := repository.NewAppointmentRepository(db.DB)

	authService := service.NewAuthService(adminUserRepo, adminSessionRepo, cfg.SessionTTL())
	adminService := service.NewAdminService(db, adminUserRepo, adminSessionRepo, contactRepo, appointmentRepo)
	submissionService := service.NewSubmissionService(contactRepo, appointmentRepo)
	rateLimiter := service.NewRateLimiter(redisClient.Client)

	seedCtx, seedCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := adminService.EnsureDefaultAdmin(seedCtx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("failed to seed default admin")
	}
	seedCancel()

	authMiddleware := middleware.NewAuthMiddleware(adminSessionRepo)
	formRateLimitMiddleware := middleware.NewIPRateLimitMiddleware(
		rateLimiter, cfg.FormRateLimit, config.FormRateLimitWindow, "form",
	)
	bodyLimitMiddleware := middleware.NewBodyLimitMiddleware(0)
	securityHeadersMiddleware := middleware.NewSecurityHeadersMiddleware(isProduction)

	publicHandler := handler.NewPublicHandler(submissionService, formRateLimitMiddleware.Handler)
	adminHandler := handler.NewAdminHandler(
		authService, adminService, submissionService, authMiddleware.Handler, cfg.MinPasswordChars,
	)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(config.ServerRequestTimeout))
	r.Use(bodyLimitMiddleware.Handler)
	r.Use(securityHeadersMiddleware.Handler)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{
			"status":    "ok",
			"timestamp": time.Now().UnixMilli(),
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Mount("/admin", adminHandler.Routes())
		r.Mount("/", publicHandler.Routes())
	})

	r.NotFound(handler.NewSPAHandler(cfg.StaticDir).ServeHTTP)

	cleanupJob := jobs.NewCleanupJob(adminSessionRepo, config.CleanupJobInterval)
	cleanupJob.Start()
	defer cleanupJob.Stop()

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), config.ServerShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

func setLogLevel(level string) {
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
