package utilities

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/upsy-api/shared/apperror"
)

// maxBodyBytes caps request bodies. Bulk partner uploads are the largest payload.
const maxBodyBytes = 4 << 20

var ErrInvalidBody = apperror.Validation("Invalid request body")

// ErrorResponse is the body written for every failed request.
type ErrorResponse struct {
	Success *bool                 `json:"success,omitempty"`
	Error   string                `json:"error"`
	Code    string                `json:"code,omitempty"`
	Details []apperror.FieldError `json:"details,omitempty"`
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError maps err to its HTTP status and writes an ErrorResponse. Internal
// errors are logged and rendered without detail.
func WriteError(w http.ResponseWriter, logger *zerolog.Logger, err error) {
	writeError(w, logger, err, nil)
}

// WriteErrorWithSuccess is WriteError for endpoints whose clients expect a
// "success": false flag on failures.
func WriteErrorWithSuccess(w http.ResponseWriter, logger *zerolog.Logger, err error) {
	success := false
	writeError(w, logger, err, &success)
}

func writeError(w http.ResponseWriter, logger *zerolog.Logger, err error, success *bool) {
	appErr := apperror.As(err)
	if appErr.Kind == apperror.KindInternal {
		logger.Error().Err(err).Msg("request failed")
	}

	WriteJSON(w, appErr.Kind.HTTPStatus(), ErrorResponse{
		Success: success,
		Error:   appErr.Message,
		Code:    appErr.Code,
		Details: appErr.Details,
	})
}

// DecodeJSON decodes the request body into v. Any decoding failure is reported
// as ErrInvalidBody.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("empty body: %w", ErrInvalidBody)
		}
		return fmt.Errorf("%s: %w", err.Error(), ErrInvalidBody)
	}

	return nil
}

// ClientIP returns the host part of r.RemoteAddr. Proxy headers are honoured
// only when a proxy-aware middleware has already rewritten RemoteAddr.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
