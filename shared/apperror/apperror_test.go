package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/vasapolrittideah/upsy-api/shared/apperror"
)

func TestKindHTTPStatus(t *testing.T) {
	tests := []struct {
		kind apperror.Kind
		want int
	}{
		{apperror.KindValidation, http.StatusBadRequest},
		{apperror.KindConflict, http.StatusBadRequest},
		{apperror.KindUnauthorized, http.StatusUnauthorized},
		{apperror.KindForbidden, http.StatusForbidden},
		{apperror.KindNotFound, http.StatusNotFound},
		{apperror.KindInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := tt.kind.HTTPStatus(); got != tt.want {
				t.Fatalf("HTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAs(t *testing.T) {
	sentinel := apperror.Conflict("already exists")
	wrapped := fmt.Errorf("create user: %w", sentinel)

	got := apperror.As(wrapped)
	if got != sentinel {
		t.Fatalf("As() = %v, want sentinel", got)
	}
	if !errors.Is(wrapped, sentinel) {
		t.Fatal("errors.Is should match the sentinel through wrapping")
	}

	plain := errors.New("boom")
	internal := apperror.As(plain)
	if internal.Kind != apperror.KindInternal {
		t.Fatalf("kind = %v, want internal", internal.Kind)
	}
	if internal.Message != "Internal server error" {
		t.Fatalf("message leaked detail: %q", internal.Message)
	}
	if !errors.Is(internal, plain) {
		t.Fatal("internal error should unwrap to the cause")
	}
}

func TestWithCodeCopies(t *testing.T) {
	base := apperror.Unauthorized("not verified")
	coded := base.WithCode("EMAIL_NOT_VERIFIED")

	if base.Code != "" {
		t.Fatalf("base code mutated: %q", base.Code)
	}
	if coded.Code != "EMAIL_NOT_VERIFIED" || coded.Message != base.Message {
		t.Fatalf("unexpected copy: %+v", coded)
	}
}
