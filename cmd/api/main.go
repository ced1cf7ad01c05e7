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
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/festhub/festival-api/internal/config"
	"github.com/festhub/festival-api/internal/domain/auth"
	"github.com/festhub/festival-api/internal/domain/catalog"
	"github.com/festhub/festival-api/internal/domain/registration"
	"github.com/festhub/festival-api/internal/domain/shifts"
	"github.com/festhub/festival-api/internal/domain/wizard"
	"github.com/festhub/festival-api/internal/middleware"
	"github.com/festhub/festival-api/internal/pkg/database"
	"github.com/festhub/festival-api/internal/pkg/jwt"
	"github.com/festhub/festival-api/internal/pkg/metrics"
	pkgresponse "github.com/festhub/festival-api/internal/pkg/response"
	"github.com/festhub/festival-api/internal/pkg/session"
	"github.com/festhub/festival-api/internal/pkg/signature"
	"github.com/festhub/festival-api/internal/queue"
)

func main() {
	cfg := config.Load()
	setupLogger(cfg)

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Str("form_version", cfg.FormVersion).
		Msg("Starting Festival API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redis, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redis)

	publisher, err := queue.NewPublisher(cfg.AMQPURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to RabbitMQ")
	}
	defer publisher.Close()

	var archiver signature.Archiver
	if cfg.S3AccessKey != "" {
		s3Archiver, err := signature.NewS3Archiver(signature.S3Config{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Bucket:    cfg.S3Bucket,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create S3 archiver")
		}
		archiver = s3Archiver
	} else {
		log.Warn().Msg("S3 credentials missing, signature archival disabled")
	}

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL)
	sessions := session.NewStore(redis)

	// ---------- Repositories ----------
	catalogRepo := catalog.NewRepository(db)
	registrationRepo := registration.NewRepository(db)
	shiftsRepo := shifts.NewRepository(db)

	// ---------- Services ----------
	catalogService := catalog.NewService(catalogRepo)
	registrationService := registration.NewService(registrationRepo, catalogService, archiver, publisher)
	shiftsService := shifts.NewService(shiftsRepo)

	snapshotStore := wizard.NewRedisStore(redis, cfg.FormVersion, cfg.SnapshotTTL)
	wizardService := wizard.NewService(
		snapshotStore,
		catalogService,
		registrationService,
		sessions,
		cfg.LogoutAfterSuccess,
		cfg.LogoutAfterFailure,
	)

	authService, err := auth.NewService(jwtService, cfg.RegistrationPassword, cfg.AdminPassword, cfg.ArtistPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create auth service")
	}

	// ---------- Handlers ----------
	authHandler := auth.NewHandler(authService)
	catalogHandler := catalog.NewHandler(catalogService)
	wizardHandler := wizard.NewHandler(wizardService)
	registrationHandler := registration.NewHandler(registrationService)
	shiftsHandler := shifts.NewHandler(shiftsService)

	authMiddleware := middleware.Auth(jwtService, sessions)

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.Metrics)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]string{
			"status":  "ok",
			"version": cfg.FormVersion,
		})
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Mount("/auth", authHandler.Routes())
		r.Mount("/formcontent", catalogHandler.Routes(authMiddleware))
		r.Mount("/wizard", wizardHandler.Routes(authMiddleware))
		r.Mount("/", registrationHandler.Routes(authMiddleware))
		r.Mount("/shifts", shiftsHandler.Routes(authMiddleware))
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

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
		})
	}
}
