package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/upsy-api/shared/apperror"
	"github.com/vasapolrittideah/upsy-api/shared/auth"
)

type stubAuthenticator struct {
	token string
	err   error
}

func (a stubAuthenticator) Authenticate(_ context.Context, token string) (*auth.SessionClaims, error) {
	if a.err != nil {
		return nil, a.err
	}
	if token != a.token {
		return nil, apperror.Unauthorized("Unauthorized")
	}
	return &auth.SessionClaims{UserID: "user-1", SessionID: "session-1"}, nil
}

func TestRequireSession(t *testing.T) {
	logger := zerolog.New(io.Discard)

	tests := []struct {
		name   string
		authn  stubAuthenticator
		header string
		status int
		body   string
	}{
		{"valid", stubAuthenticator{token: "good"}, "Bearer good", http.StatusOK, ""},
		{"lower-case scheme", stubAuthenticator{token: "good"}, "bearer good", http.StatusOK, ""},
		{"missing header", stubAuthenticator{token: "good"}, "", http.StatusUnauthorized, `"Unauthorized"`},
		{"wrong scheme", stubAuthenticator{token: "good"}, "Basic good", http.StatusUnauthorized, `"Unauthorized"`},
		{"empty token", stubAuthenticator{token: "good"}, "Bearer ", http.StatusUnauthorized, `"Unauthorized"`},
		{"rejected token", stubAuthenticator{token: "good"}, "Bearer bad", http.StatusUnauthorized, `"Unauthorized"`},
		{
			"store failure",
			stubAuthenticator{err: errors.New("mongo down")},
			"Bearer good",
			http.StatusInternalServerError,
			`"Internal server error"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var claims *auth.SessionClaims
			h := RequireSession(tt.authn, &logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				claims, _ = ClaimsFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			if tt.status == http.StatusOK && (claims == nil || claims.UserID != "user-1") {
				t.Fatalf("claims = %+v", claims)
			}
			if tt.body != "" && !strings.Contains(rec.Body.String(), tt.body) {
				t.Fatalf("body = %s, want %s", rec.Body.String(), tt.body)
			}
		})
	}
}

type stubStaffAuthorizer struct {
	staff string
	err   error
}

func (a stubStaffAuthorizer) AuthorizeStaff(_ context.Context, userID string) error {
	if a.err != nil {
		return a.err
	}
	if userID != a.staff {
		return apperror.Forbidden("Forbidden")
	}
	return nil
}

func TestRequireStaff(t *testing.T) {
	logger := zerolog.New(io.Discard)
	authn := stubAuthenticator{token: "good"}

	tests := []struct {
		name   string
		authz  stubStaffAuthorizer
		header string
		status int
	}{
		{"staff", stubStaffAuthorizer{staff: "user-1"}, "Bearer good", http.StatusOK},
		{"not staff", stubStaffAuthorizer{staff: "user-2"}, "Bearer good", http.StatusForbidden},
		{"no session", stubStaffAuthorizer{staff: "user-1"}, "", http.StatusUnauthorized},
		{"store failure", stubStaffAuthorizer{err: errors.New("mongo down")}, "Bearer good", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
			h := RequireSession(authn, &logger)(RequireStaff(tt.authz, &logger)(next))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
		})
	}
}

func TestRequireStaffWithoutSession(t *testing.T) {
	logger := zerolog.New(io.Discard)
	h := RequireStaff(stubStaffAuthorizer{staff: "user-1"}, &logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}
