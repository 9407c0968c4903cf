package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/upsy-api/shared/apperror"
	"github.com/vasapolrittideah/upsy-api/shared/utilities"
	"github.com/vasapolrittideah/upsy-api/shared/validation"
)

// request is a decoded JSON body that knows how to clean and check itself.
type request interface {
	Normalize()
	Validate(v *validation.Validator) error
}

// bind decodes the body into req, normalises it and validates it.
func bind(w http.ResponseWriter, r *http.Request, v *validation.Validator, req request) error {
	if err := utilities.DecodeJSON(w, r, req); err != nil {
		return err
	}

	req.Normalize()

	return req.Validate(v)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	utilities.WriteError(w, zerolog.Ctx(r.Context()), err)
}

func writeErrorWithSuccess(w http.ResponseWriter, r *http.Request, err error) {
	utilities.WriteErrorWithSuccess(w, zerolog.Ctx(r.Context()), err)
}

// logClientError logs failures the client caused at debug level. Internal
// errors are logged by the error writer.
func logClientError(r *http.Request, err error, msg string) {
	if apperror.As(err).Kind == apperror.KindInternal {
		return
	}
	zerolog.Ctx(r.Context()).Debug().Err(err).Msg(msg)
}
