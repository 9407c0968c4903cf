package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/vasapolrittideah/upsy-api/services/upsy-service/internal/config"
	"github.com/vasapolrittideah/upsy-api/services/upsy-service/internal/handler"
	"github.com/vasapolrittideah/upsy-api/services/upsy-service/internal/notification"
	"github.com/vasapolrittideah/upsy-api/services/upsy-service/internal/repository"
	"github.com/vasapolrittideah/upsy-api/services/upsy-service/internal/usecase"
	"github.com/vasapolrittideah/upsy-api/shared/auth"
	"github.com/vasapolrittideah/upsy-api/shared/database"
	"github.com/vasapolrittideah/upsy-api/shared/logger"
	"github.com/vasapolrittideah/upsy-api/shared/mailer"
	"github.com/vasapolrittideah/upsy-api/shared/middleware"
	"github.com/vasapolrittideah/upsy-api/shared/validation"
)

const serviceName = "upsy-service"

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatal().Err(err).Msg("failed to load .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logger := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Environment: cfg.Environment,
		Service:     serviceName,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := database.Connect(ctx, logger, cfg.Mongo)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), cfg.Mongo.Timeout)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			logger.Error().Err(err).Msg("failed to disconnect from MongoDB")
		}
	}()

	db := client.Database(cfg.Mongo.Database)
	userRepo := repository.NewUserMongoRepository(ctx, logger, db)
	sessionRepo := repository.NewSessionMongoRepository(ctx, logger, db)
	submissionRepo := repository.NewSubmissionMongoRepository(ctx, logger, db)
	categoryRepo := repository.NewPartnerCategoryMongoRepository(ctx, logger, db)
	requestRepo := repository.NewPartnershipRequestMongoRepository(ctx, logger, db)

	emailSender, err := mailer.NewMailer(logger, cfg.Mailer)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create mailer")
	}

	notifier, err := notification.NewEmailNotifier(emailSender, cfg.AppBaseURL, cfg.Token.EmailVerificationExpiresIn)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to parse email templates")
	}

	jwtAuth := auth.NewJWTAuthenticator(cfg.Token.Issuer, cfg.Token.Issuer, cfg.Token.SessionSecret)

	validator, err := validation.New()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create validator")
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	go limiter.Run(ctx)

	router := handler.NewRouter(handler.RouterParams{
		AuthUsecase:               usecase.NewAuthUsecase(userRepo, sessionRepo, jwtAuth, notifier, cfg, logger),
		VerificationUsecase:       usecase.NewVerificationUsecase(userRepo, notifier, cfg, logger),
		SubmissionUsecase:         usecase.NewSubmissionUsecase(submissionRepo),
		PartnerUsecase:            usecase.NewPartnerUsecase(categoryRepo, logger),
		PartnershipRequestUsecase: usecase.NewPartnershipRequestUsecase(requestRepo, userRepo, logger),
		Pinger:                    database.NewPinger(client),
		RateLimiter:               limiter,
		Validator:                 validator,
		Config:                    cfg,
		Logger:                    logger,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info().Int("port", cfg.Port).Str("env", cfg.Environment).Msg("HTTP server started")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			logger.Error().Err(err).Msg("HTTP server stopped unexpectedly")
		}
	case <-ctx.Done():
		logger.Info().Msg("shutting down HTTP server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shut down HTTP server gracefully")
	}
}
