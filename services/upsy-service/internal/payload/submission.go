package payload

import (
	"strings"
	"unicode/utf8"

	"github.com/vasapolrittideah/upsy-api/services/upsy-service/internal/model"
	"github.com/vasapolrittideah/upsy-api/shared/apperror"
	"github.com/vasapolrittideah/upsy-api/shared/validation"
)

var (
	ErrAllFieldsRequired = apperror.Validation("All fields are required")
	ErrInvalidEmail      = apperror.Validation("Please enter a valid email address")
	ErrInvalidPhone      = apperror.Validation("Phone number must be 10-15 digits")
	ErrPhoneTooLong      = apperror.Validation("Phone number cannot exceed 15 digits")
	ErrInvalidPurpose    = apperror.Validation("Invalid purpose selected")
)

type CreateSubmissionRequest struct {
	Name    string `json:"name"    validate:"max=100"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	College string `json:"college" validate:"max=200"`
	Purpose string `json:"purpose"`
}

func (r *CreateSubmissionRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Phone = strings.TrimSpace(r.Phone)
	r.College = strings.TrimSpace(r.College)
	r.Purpose = strings.TrimSpace(r.Purpose)
}

// Validate reports the first failing rule in the order the lead form checks
// them: presence, email, phone digits, purpose, then field lengths.
func (r *CreateSubmissionRequest) Validate(v *validation.Validator) error {
	if r.Name == "" || r.Email == "" || r.Phone == "" || r.College == "" || r.Purpose == "" {
		return ErrAllFieldsRequired
	}

	if !v.Var(r.Email, "site_email") {
		return ErrInvalidEmail
	}

	if digits := len(validation.DigitsOnly(r.Phone)); digits < 10 || digits > 15 {
		return ErrInvalidPhone
	}

	if !model.Purpose(r.Purpose).Valid() {
		return ErrInvalidPurpose
	}

	// Raw length, formatting characters included.
	if utf8.RuneCountInString(r.Phone) > 15 {
		return ErrPhoneTooLong
	}

	return v.StructFirst(r)
}

type SubmissionResponse struct {
	Message string            `json:"message"`
	Data    *model.Submission `json:"data"`
}

type SubmissionListResponse struct {
	Message string              `json:"message"`
	Data    []*model.Submission `json:"data"`
}
