package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/upsy-api/services/upsy-service/internal/config"
	"github.com/vasapolrittideah/upsy-api/services/upsy-service/internal/usecase"
	"github.com/vasapolrittideah/upsy-api/shared/database"
	"github.com/vasapolrittideah/upsy-api/shared/middleware"
	"github.com/vasapolrittideah/upsy-api/shared/utilities"
	"github.com/vasapolrittideah/upsy-api/shared/validation"
)

// RouterParams holds everything the HTTP layer depends on.
type RouterParams struct {
	AuthUsecase               usecase.AuthUsecase
	VerificationUsecase       usecase.VerificationUsecase
	SubmissionUsecase         usecase.SubmissionUsecase
	PartnerUsecase            usecase.PartnerUsecase
	PartnershipRequestUsecase usecase.PartnershipRequestUsecase
	Pinger                    database.Pinger
	RateLimiter               *middleware.RateLimiter
	Validator                 *validation.Validator
	Config                    *config.AppServiceConfig
	Logger                    *zerolog.Logger
}

// NewRouter wires every route of the service.
func NewRouter(params RouterParams) http.Handler {
	authHandler := &authHTTPHandler{
		authUsecase:         params.AuthUsecase,
		verificationUsecase: params.VerificationUsecase,
		validator:           params.Validator,
		appBaseURL:          params.Config.AppBaseURL,
	}
	submissionHandler := &submissionHTTPHandler{
		submissionUsecase: params.SubmissionUsecase,
		validator:         params.Validator,
	}
	partnerHandler := &partnerHTTPHandler{
		partnerUsecase: params.PartnerUsecase,
		validator:      params.Validator,
	}
	partnershipHandler := &partnershipRequestHTTPHandler{
		partnershipRequestUsecase: params.PartnershipRequestUsecase,
		validator:                 params.Validator,
	}
	healthHandler := &healthHTTPHandler{pinger: params.Pinger}

	requireSession := middleware.RequireSession(params.AuthUsecase, params.Logger)
	requireStaff := middleware.RequireStaff(params.AuthUsecase, params.Logger)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	if params.Config.TrustProxyHeaders {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(middleware.Logger(params.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   params.Config.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(chimiddleware.Timeout(30 * time.Second))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		utilities.WriteJSON(w, http.StatusNotFound, utilities.ErrorResponse{Error: "Not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		utilities.WriteJSON(w, http.StatusMethodNotAllowed, utilities.ErrorResponse{Error: "Method not allowed"})
	})

	r.Get("/healthz", healthHandler.Healthz)

	r.Route("/api", func(r chi.Router) {
		r.Get("/db-test", healthHandler.DBTest)

		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(params.RateLimiter.Handler)
				r.Post("/signup", authHandler.Signup)
				r.Post("/login", authHandler.Login)
				r.Post("/resend-verification", authHandler.ResendVerification)
			})

			r.Post("/verify-email", authHandler.VerifyEmail)
			r.Get("/verify-email", authHandler.VerifyEmailRedirect)

			r.Group(func(r chi.Router) {
				r.Use(requireSession)
				r.Get("/me", authHandler.Me)
				r.Post("/logout", authHandler.Logout)
			})
		})

		r.Post("/submit", submissionHandler.CreateSubmission)
		r.Get("/submissions", submissionHandler.ListSubmissions)

		r.Route("/partners", func(r chi.Router) {
			r.Get("/", partnerHandler.ListCategories)
			r.Post("/", partnerHandler.UploadCategories)
			r.Post("/single", partnerHandler.AddPartner)

			r.Post("/partnership-request", partnershipHandler.Submit)
			r.Get("/partnership-request", partnershipHandler.MethodNotAllowed)

			r.Group(func(r chi.Router) {
				r.Use(requireSession, requireStaff)
				r.Get("/partnership-requests", partnershipHandler.List)
				r.Patch("/partnership-requests/{id}", partnershipHandler.Review)
			})
		})
	})

	return r
}
