package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/upsy-api/services/upsy-service/internal/config"
	"github.com/vasapolrittideah/upsy-api/services/upsy-service/internal/model"
	"github.com/vasapolrittideah/upsy-api/services/upsy-service/internal/notification"
	"github.com/vasapolrittideah/upsy-api/services/upsy-service/internal/repository"
	"github.com/vasapolrittideah/upsy-api/shared/apperror"
	"github.com/vasapolrittideah/upsy-api/shared/auth"
	"github.com/vasapolrittideah/upsy-api/shared/security"
)

// AuthUsecase defines the interface for account and session use cases.
type AuthUsecase interface {
	Signup(ctx context.Context, params SignupParams) (*model.User, error)
	Login(ctx context.Context, params LoginParams) (*LoginResult, error)
	Me(ctx context.Context, userID string) (*model.User, error)
	Logout(ctx context.Context, sessionID string) error

	// Authenticate resolves a session token to its claims. The token must be
	// validly signed and its session must still exist.
	Authenticate(ctx context.Context, token string) (*auth.SessionClaims, error)

	// AuthorizeStaff fails with ErrStaffOnly unless userID belongs to a
	// verified account listed in STAFF_EMAILS.
	AuthorizeStaff(ctx context.Context, userID string) error
}

// SignupParams defines the parameters for user signup. Values are expected to
// be validated and normalised already.
type SignupParams struct {
	Name         string
	Email        string
	Password     string
	Mobile       string
	AadharNumber string
	PANNumber    string
	UserType     model.UserType
	CollegeEmail string
}

// LoginParams defines the parameters for user login.
type LoginParams struct {
	Email     string
	Password  string
	UserAgent string
	IPAddress string
}

// LoginResult is a signed session token together with the logged-in user.
type LoginResult struct {
	User      *model.User
	Token     string
	ExpiresAt time.Time
}

var (
	ErrEmailTaken         = apperror.Conflict("User with this email already exists")
	ErrAadharTaken        = apperror.Conflict("User with this Aadhar number already exists")
	ErrPANTaken           = apperror.Conflict("User with this PAN number already exists")
	ErrUserAlreadyExists  = apperror.Conflict("User with these details already exists")
	ErrInvalidCredentials = apperror.Unauthorized("Invalid email or password")
	ErrEmailNotVerified   = apperror.Unauthorized("Please verify your email before logging in").WithCode("EMAIL_NOT_VERIFIED")
	ErrInvalidSession     = apperror.Unauthorized("Unauthorized")
	ErrUserNotFound       = apperror.NotFound("User not found")
	ErrStaffOnly          = apperror.Forbidden("Forbidden")
)

type authUsecase struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	jwtAuth     *auth.JWTAuthenticator
	notifier    notification.Notifier
	appCfg      *config.AppServiceConfig
	logger      *zerolog.Logger
	now         func() time.Time
}

func NewAuthUsecase(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	jwtAuth *auth.JWTAuthenticator,
	notifier notification.Notifier,
	appCfg *config.AppServiceConfig,
	logger *zerolog.Logger,
) AuthUsecase {
	return &authUsecase{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		jwtAuth:     jwtAuth,
		notifier:    notifier,
		appCfg:      appCfg,
		logger:      logger,
		now:         time.Now,
	}
}

func (u *authUsecase) Signup(ctx context.Context, params SignupParams) (*model.User, error) {
	uniqueChecks := []struct {
		field repository.UniqueUserField
		value string
		err   error
	}{
		{repository.UserFieldEmail, params.Email, ErrEmailTaken},
		{repository.UserFieldAadhar, params.AadharNumber, ErrAadharTaken},
		{repository.UserFieldPAN, params.PANNumber, ErrPANTaken},
	}

	for _, check := range uniqueChecks {
		exists, err := u.userRepo.Exists(ctx, check.field, check.value)
		if err != nil {
			return nil, fmt.Errorf("check %s: %w", check.field, err)
		}
		if exists {
			return nil, check.err
		}
	}

	passwordHash, err := security.HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	token, err := generateVerificationToken()
	if err != nil {
		return nil, err
	}
	expiresAt := u.now().Add(u.appCfg.Token.EmailVerificationExpiresIn)

	user, err := u.userRepo.CreateUser(ctx, &model.User{
		Name:                     params.Name,
		Email:                    params.Email,
		PasswordHash:             passwordHash,
		Mobile:                   params.Mobile,
		AadharNumber:             params.AadharNumber,
		PANNumber:                params.PANNumber,
		CollegeEmail:             params.CollegeEmail,
		UserType:                 params.UserType,
		EmailVerificationToken:   token,
		EmailVerificationExpires: &expiresAt,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrUserAlreadyExists
		}

		return nil, err
	}

	if err := u.notifier.SendVerification(user.Email, user.Name, token); err != nil {
		u.logger.Error().Err(err).Str("user_id", user.ID.Hex()).Msg("failed to send verification email")
	}

	return user, nil
}

// Login reports an unverified account before comparing the password, so the
// client can prompt for verification even after a mistyped password.
func (u *authUsecase) Login(ctx context.Context, params LoginParams) (*LoginResult, error) {
	user, err := u.userRepo.GetUserByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvalidCredentials
		}

		return nil, err
	}

	if !user.IsEmailVerified {
		return nil, ErrEmailNotVerified
	}

	if ok, err := security.VerifyPassword(params.Password, user.PasswordHash); err != nil {
		return nil, err
	} else if !ok {
		return nil, ErrInvalidCredentials
	}

	now := u.now()
	if err := u.userRepo.UpdateLastLogin(ctx, user.ID.Hex(), now); err != nil {
		return nil, err
	}
	user.LastLoginAt = &now

	return u.createSession(ctx, user, params)
}

func (u *authUsecase) createSession(ctx context.Context, user *model.User, params LoginParams) (*LoginResult, error) {
	expiresAt := u.now().Add(u.appCfg.Token.SessionExpiresIn)

	session, err := u.sessionRepo.CreateSession(ctx, &model.Session{
		UserID:    user.ID,
		UserAgent: params.UserAgent,
		IPAddress: params.IPAddress,
		ExpiresAt: expiresAt,
	})
	if err != nil {
		return nil, err
	}

	token, err := u.jwtAuth.IssueSessionToken(user.ID.Hex(), session.ID.Hex(), expiresAt)
	if err != nil {
		return nil, err
	}

	return &LoginResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

func (u *authUsecase) Me(ctx context.Context, userID string) (*model.User, error) {
	if !isObjectID(userID) {
		return nil, ErrUserNotFound
	}

	user, err := u.userRepo.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	return user, nil
}

func (u *authUsecase) Logout(ctx context.Context, sessionID string) error {
	if !isObjectID(sessionID) {
		return ErrInvalidSession
	}

	return u.sessionRepo.DeleteSession(ctx, sessionID)
}

func (u *authUsecase) Authenticate(ctx context.Context, token string) (*auth.SessionClaims, error) {
	claims, err := u.jwtAuth.ParseSessionToken(token)
	if err != nil || !isObjectID(claims.SessionID) {
		return nil, ErrInvalidSession
	}

	session, err := u.sessionRepo.GetSession(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvalidSession
		}

		return nil, err
	}

	if session.UserID.Hex() != claims.UserID || !session.ExpiresAt.After(u.now()) {
		return nil, ErrInvalidSession
	}

	return claims, nil
}

func (u *authUsecase) AuthorizeStaff(ctx context.Context, userID string) error {
	user, err := u.Me(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrInvalidSession
		}

		return err
	}

	if !user.IsEmailVerified || !u.appCfg.IsStaffEmail(user.Email) {
		u.logger.Warn().Str("user_id", userID).Msg("staff route denied")
		return ErrStaffOnly
	}

	return nil
}
