package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestIssueAndParseSessionToken(t *testing.T) {
	a := NewJWTAuthenticator("upsy-api", "upsy-api", "secret")

	token, err := a.IssueSessionToken("user-1", "session-1", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := a.ParseSessionToken(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != "user-1" || claims.SessionID != "session-1" || claims.Subject != "user-1" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestParseSessionTokenRejects(t *testing.T) {
	a := NewJWTAuthenticator("upsy-api", "upsy-api", "secret")
	valid, err := a.IssueSessionToken("user-1", "session-1", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	expired, err := a.IssueSessionToken("user-1", "session-1", time.Now().Add(-time.Minute))
	if err != nil {
		t.Fatalf("issue expired: %v", err)
	}

	otherSecret, err := NewJWTAuthenticator("upsy-api", "upsy-api", "other").
		IssueSessionToken("user-1", "session-1", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("issue other secret: %v", err)
	}

	otherAudience, err := NewJWTAuthenticator("someone-else", "upsy-api", "secret").
		IssueSessionToken("user-1", "session-1", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("issue other audience: %v", err)
	}

	none := jwt.NewWithClaims(jwt.SigningMethodNone, SessionClaims{UserID: "user-1", SessionID: "session-1"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"expired", expired},
		{"wrong secret", otherSecret},
		{"wrong audience", otherAudience},
		{"unsigned", unsigned},
		{"tampered", valid + "x"},
		{"garbage", "not.a.token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := a.ParseSessionToken(tt.token); err == nil {
				t.Fatal("expected token to be rejected")
			}
		})
	}
}

func TestParseSessionTokenRequiresSessionID(t *testing.T) {
	a := NewJWTAuthenticator("upsy-api", "upsy-api", "secret")

	token, err := a.GenerateToken(SessionClaims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "upsy-api",
			Audience:  jwt.ClaimStrings{"upsy-api"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := a.ParseSessionToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}
