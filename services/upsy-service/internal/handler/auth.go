package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/upsy-api/services/upsy-service/internal/model"
	"github.com/vasapolrittideah/upsy-api/services/upsy-service/internal/payload"
	"github.com/vasapolrittideah/upsy-api/services/upsy-service/internal/usecase"
	"github.com/vasapolrittideah/upsy-api/shared/middleware"
	"github.com/vasapolrittideah/upsy-api/shared/utilities"
	"github.com/vasapolrittideah/upsy-api/shared/validation"
)

const (
	signupMessage        = "Account created successfully! Please check your email to verify your account."
	verifiedMessage      = "Email verified successfully! You can now log in."
	loginMessage         = "Login successful"
	logoutMessage        = "Logged out successfully"
	resendMessage        = "If an unverified account exists for this email, a new verification link has been sent."
	loginPath            = "/auth/login"
	redirectMissingToken = "missing_token"
	redirectInvalidToken = "invalid_token"
	redirectServerError  = "server_error"
)

type authHTTPHandler struct {
	authUsecase         usecase.AuthUsecase
	verificationUsecase usecase.VerificationUsecase
	validator           *validation.Validator
	appBaseURL          string
}

func (h *authHTTPHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req payload.SignupRequest
	if err := bind(w, r, h.validator, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.authUsecase.Signup(r.Context(), usecase.SignupParams{
		Name:         req.Name,
		Email:        req.Email,
		Password:     req.Password,
		Mobile:       req.Mobile,
		AadharNumber: req.AadharNumber,
		PANNumber:    req.PANNumber,
		UserType:     model.UserType(req.UserType),
		CollegeEmail: req.CollegeEmail,
	})
	if err != nil {
		logClientError(r, err, "signup rejected")
		writeError(w, r, err)
		return
	}

	utilities.WriteJSON(w, http.StatusCreated, payload.SignupResponse{
		Message: signupMessage,
		UserID:  user.ID.Hex(),
	})
}

func (h *authHTTPHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req payload.LoginRequest
	if err := bind(w, r, h.validator, &req); err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.authUsecase.Login(r.Context(), usecase.LoginParams{
		Email:     req.Email,
		Password:  req.Password,
		UserAgent: r.UserAgent(),
		IPAddress: utilities.ClientIP(r),
	})
	if err != nil {
		logClientError(r, err, "login rejected")
		writeError(w, r, err)
		return
	}

	utilities.WriteJSON(w, http.StatusOK, payload.LoginResponse{
		Message:   loginMessage,
		User:      payload.NewUserResponse(result.User),
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
	})
}

func (h *authHTTPHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req payload.VerifyEmailRequest
	if err := bind(w, r, h.validator, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.verificationUsecase.VerifyEmail(r.Context(), req.Token)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utilities.WriteJSON(w, http.StatusOK, payload.VerifyEmailResponse{
		Message: verifiedMessage,
		User:    payload.NewVerifiedUserResponse(user),
	})
}

// VerifyEmailRedirect handles the link from the verification email and sends
// the browser to the login page with the outcome in the query string.
func (h *authHTTPHandler) VerifyEmailRedirect(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimSpace(r.URL.Query().Get("token"))
	if token == "" {
		h.redirectToLogin(w, r, "error", redirectMissingToken)
		return
	}

	if _, err := h.verificationUsecase.VerifyEmail(r.Context(), token); err != nil {
		if errors.Is(err, usecase.ErrInvalidVerificationToken) {
			h.redirectToLogin(w, r, "error", redirectInvalidToken)
			return
		}

		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to verify email")
		h.redirectToLogin(w, r, "error", redirectServerError)
		return
	}

	h.redirectToLogin(w, r, "verified", "true")
}

func (h *authHTTPHandler) redirectToLogin(w http.ResponseWriter, r *http.Request, key, value string) {
	query := url.Values{}
	query.Set(key, value)

	target := strings.TrimRight(h.appBaseURL, "/") + loginPath + "?" + query.Encode()
	http.Redirect(w, r, target, http.StatusFound)
}

func (h *authHTTPHandler) ResendVerification(w http.ResponseWriter, r *http.Request) {
	var req payload.ResendVerificationRequest
	if err := bind(w, r, h.validator, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.verificationUsecase.ResendVerification(r.Context(), req.Email); err != nil {
		writeError(w, r, err)
		return
	}

	utilities.WriteJSON(w, http.StatusOK, payload.MessageResponse{Message: resendMessage})
}

func (h *authHTTPHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, r, middleware.ErrUnauthorized)
		return
	}

	user, err := h.authUsecase.Me(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utilities.WriteJSON(w, http.StatusOK, payload.MeResponse{User: payload.NewUserResponse(user)})
}

func (h *authHTTPHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, r, middleware.ErrUnauthorized)
		return
	}

	if err := h.authUsecase.Logout(r.Context(), claims.SessionID); err != nil {
		writeError(w, r, err)
		return
	}

	utilities.WriteJSON(w, http.StatusOK, payload.MessageResponse{Message: logoutMessage})
}
