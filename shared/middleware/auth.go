package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/upsy-api/shared/apperror"
	"github.com/vasapolrittideah/upsy-api/shared/auth"
	"github.com/vasapolrittideah/upsy-api/shared/utilities"
)

type claimsKey struct{}

var ErrUnauthorized = apperror.Unauthorized("Unauthorized")

// SessionAuthenticator resolves a bearer token to the claims of a live session.
type SessionAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*auth.SessionClaims, error)
}

// RequireSession rejects requests without a valid session token and stores the
// session claims in the request context.
func RequireSession(authenticator SessionAuthenticator, logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := bearerToken(r)
			if err != nil {
				utilities.WriteError(w, logger, ErrUnauthorized)
				return
			}

			claims, err := authenticator.Authenticate(r.Context(), token)
			if err != nil {
				var appErr *apperror.Error
				if !errors.As(err, &appErr) {
					utilities.WriteError(w, logger, err)
					return
				}
				utilities.WriteError(w, logger, ErrUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// StaffAuthorizer decides whether a signed-in user may use staff routes.
type StaffAuthorizer interface {
	AuthorizeStaff(ctx context.Context, userID string) error
}

// RequireStaff must run after RequireSession. Callers that are not staff get
// the authorizer's error, normally 403.
func RequireStaff(authorizer StaffAuthorizer, logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				utilities.WriteError(w, logger, ErrUnauthorized)
				return
			}

			if err := authorizer.AuthorizeStaff(r.Context(), claims.UserID); err != nil {
				utilities.WriteError(w, logger, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ClaimsFromContext returns the session claims stored by RequireSession.
func ClaimsFromContext(ctx context.Context) (*auth.SessionClaims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*auth.SessionClaims)
	return claims, ok
}

func bearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errors.New("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
		return "", errors.New("invalid authorization header format")
	}

	return parts[1], nil
}
