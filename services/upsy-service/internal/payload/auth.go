package payload

import (
	"strings"
	"time"

	"github.com/vasapolrittideah/upsy-api/services/upsy-service/internal/model"
	"github.com/vasapolrittideah/upsy-api/shared/apperror"
	"github.com/vasapolrittideah/upsy-api/shared/validation"
)

type SignupRequest struct {
	Name            string `json:"name"            validate:"required,min=2,max=100,person_name"`
	Email           string `json:"email"           validate:"required,email"`
	Password        string `json:"password"        validate:"required,min=6,strong_password"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	Mobile          string `json:"mobile"          validate:"required,mobile_in"`
	AadharNumber    string `json:"aadharNumber"    validate:"required,aadhar"`
	PANNumber       string `json:"panNumber"       validate:"required,pan"`
	UserType        string `json:"userType"        validate:"required,oneof=parent student"`
	CollegeEmail    string `json:"collegeEmail"    validate:"required_if=UserType student,omitempty,email"`
	AgreeToTerms    bool   `json:"agreeToTerms"    validate:"accepted"`
	AllowMarketing  bool   `json:"allowMarketing"`
}

// Normalize trims every text field, lower-cases the email addresses and
// upper-cases the PAN.
func (r *SignupRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Mobile = strings.TrimSpace(r.Mobile)
	r.AadharNumber = strings.TrimSpace(r.AadharNumber)
	r.PANNumber = strings.ToUpper(strings.TrimSpace(r.PANNumber))
	r.UserType = strings.TrimSpace(r.UserType)
	r.CollegeEmail = strings.ToLower(strings.TrimSpace(r.CollegeEmail))
}

func (r *SignupRequest) Validate(v *validation.Validator) error {
	return v.Struct(r)
}

type SignupResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r *LoginRequest) Validate(v *validation.Validator) error {
	return v.Struct(r)
}

type LoginResponse struct {
	Message   string       `json:"message"`
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

var ErrVerificationTokenRequired = apperror.Validation("Verification token is required")

type VerifyEmailRequest struct {
	Token string `json:"token"`
}

func (r *VerifyEmailRequest) Normalize() {
	r.Token = strings.TrimSpace(r.Token)
}

func (r *VerifyEmailRequest) Validate(_ *validation.Validator) error {
	if r.Token == "" {
		return ErrVerificationTokenRequired
	}
	return nil
}

type VerifyEmailResponse struct {
	Message string               `json:"message"`
	User    VerifiedUserResponse `json:"user"`
}

type ResendVerificationRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (r *ResendVerificationRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r *ResendVerificationRequest) Validate(v *validation.Validator) error {
	return v.Struct(r)
}

type MessageResponse struct {
	Message string `json:"message"`
}

// UserResponse is the sanitised view of a user. It never carries the password
// hash or verification token.
type UserResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Mobile          string `json:"mobile"`
	UserType        string `json:"userType"`
	CollegeEmail    string `json:"collegeEmail,omitempty"`
	IsEmailVerified bool   `json:"isEmailVerified"`
}

func NewUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:              user.ID.Hex(),
		Name:            user.Name,
		Email:           user.Email,
		Mobile:          user.Mobile,
		UserType:        string(user.UserType),
		CollegeEmail:    user.CollegeEmail,
		IsEmailVerified: user.IsEmailVerified,
	}
}

type VerifiedUserResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	UserType        string `json:"userType"`
	IsEmailVerified bool   `json:"isEmailVerified"`
}

func NewVerifiedUserResponse(user *model.User) VerifiedUserResponse {
	return VerifiedUserResponse{
		ID:              user.ID.Hex(),
		Name:            user.Name,
		Email:           user.Email,
		UserType:        string(user.UserType),
		IsEmailVerified: user.IsEmailVerified,
	}
}

type MeResponse struct {
	User UserResponse `json:"user"`
}
