package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/upsy-api/services/upsy-service/internal/config"
	"github.com/vasapolrittideah/upsy-api/services/upsy-service/internal/model"
	"github.com/vasapolrittideah/upsy-api/services/upsy-service/internal/notification"
	"github.com/vasapolrittideah/upsy-api/services/upsy-service/internal/repository"
	"github.com/vasapolrittideah/upsy-api/shared/apperror"
)

// VerificationUsecase defines the email verification use cases.
type VerificationUsecase interface {
	// VerifyEmail consumes token. A token verifies at most one account, once.
	VerifyEmail(ctx context.Context, token string) (*model.User, error)

	// ResendVerification issues a fresh token to an unverified account. It
	// reports success whether or not such an account exists.
	ResendVerification(ctx context.Context, email string) error
}

var ErrInvalidVerificationToken = apperror.Validation("Invalid or expired verification token")

type verificationUsecase struct {
	userRepo repository.UserRepository
	notifier notification.Notifier
	appCfg   *config.AppServiceConfig
	logger   *zerolog.Logger
	now      func() time.Time
}

func NewVerificationUsecase(
	userRepo repository.UserRepository,
	notifier notification.Notifier,
	appCfg *config.AppServiceConfig,
	logger *zerolog.Logger,
) VerificationUsecase {
	return &verificationUsecase{
		userRepo: userRepo,
		notifier: notifier,
		appCfg:   appCfg,
		logger:   logger,
		now:      time.Now,
	}
}

func (u *verificationUsecase) VerifyEmail(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, ErrInvalidVerificationToken
	}

	user, err := u.userRepo.VerifyEmail(ctx, token, u.now())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvalidVerificationToken
		}

		return nil, err
	}

	if err := u.notifier.SendWelcome(user.Email, user.Name); err != nil {
		u.logger.Error().Err(err).Str("user_id", user.ID.Hex()).Msg("failed to send welcome email")
	}

	return user, nil
}

func (u *verificationUsecase) ResendVerification(ctx context.Context, email string) error {
	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil
		}
		return err
	}

	if user.IsEmailVerified {
		return nil
	}

	token, err := generateVerificationToken()
	if err != nil {
		return err
	}

	expiresAt := u.now().Add(u.appCfg.Token.EmailVerificationExpiresIn)
	if err := u.userRepo.ReplaceVerificationToken(ctx, user.ID.Hex(), token, expiresAt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Verified concurrently.
			return nil
		}
		return err
	}

	if err := u.notifier.SendVerification(user.Email, user.Name, token); err != nil {
		u.logger.Error().Err(err).Str("user_id", user.ID.Hex()).Msg("failed to resend verification email")
	}

	return nil
}
