package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// SessionClaims are the claims carried by a session token. SessionID refers to
// the server-side session record that must still exist for the token to be
// accepted.
type SessionClaims struct {
	UserID    string `json:"uid"`
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// JWTAuthenticator issues and validates HS256 tokens bound to one issuer and
// audience.
type JWTAuthenticator struct {
	audience string
	issuer   string
	secret   []byte
	now      func() time.Time
}

// NewJWTAuthenticator creates a new JWTAuthenticator instance.
func NewJWTAuthenticator(audience, issuer, secret string) *JWTAuthenticator {
	return &JWTAuthenticator{
		audience: audience,
		issuer:   issuer,
		secret:   []byte(secret),
		now:      time.Now,
	}
}

// IssueSessionToken signs a session token for userID and sessionID that
// expires at expiresAt.
func (a *JWTAuthenticator) IssueSessionToken(userID, sessionID string, expiresAt time.Time) (string, error) {
	now := a.now()
	claims := SessionClaims{
		UserID:    userID,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    a.issuer,
			Audience:  jwt.ClaimStrings{a.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	return a.GenerateToken(claims)
}

// ParseSessionToken validates tokenString and returns its session claims.
func (a *JWTAuthenticator) ParseSessionToken(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	if _, err := a.ValidateTokenWithClaims(tokenString, claims); err != nil {
		return nil, err
	}

	if claims.UserID == "" || claims.SessionID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// GenerateToken signs any claims with the authenticator's secret.
func (a *JWTAuthenticator) GenerateToken(claims jwt.Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenStr, err := token.SignedString(a.secret)
	if err != nil {
		return "", err
	}

	return tokenStr, nil
}

// ValidateTokenWithClaims validates a JWT token and parses it into the provided claims type.
// The claims parameter should be a pointer to a struct that implements jwt.Claims.
func (a *JWTAuthenticator) ValidateTokenWithClaims(tokenString string, claims jwt.Claims) (*jwt.Token, error) {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}

		return a.secret, nil
	},
		jwt.WithExpirationRequired(),
		jwt.WithAudience(a.audience),
		jwt.WithIssuer(a.issuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return token, nil
}
