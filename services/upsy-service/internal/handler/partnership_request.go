package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/upsy-api/services/upsy-service/internal/model"
	"github.com/vasapolrittideah/upsy-api/services/upsy-service/internal/payload"
	"github.com/vasapolrittideah/upsy-api/services/upsy-service/internal/usecase"
	"github.com/vasapolrittideah/upsy-api/shared/apperror"
	"github.com/vasapolrittideah/upsy-api/shared/middleware"
	"github.com/vasapolrittideah/upsy-api/shared/utilities"
	"github.com/vasapolrittideah/upsy-api/shared/validation"
)

var (
	errInvalidLimit  = apperror.Validation("Invalid limit")
	errInvalidOffset = apperror.Validation("Invalid offset")
)

type partnershipRequestHTTPHandler struct {
	partnershipRequestUsecase usecase.PartnershipRequestUsecase
	validator                 *validation.Validator
}

func (h *partnershipRequestHTTPHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req payload.CreatePartnershipRequest
	if err := bind(w, r, h.validator, &req); err != nil {
		h.writeSubmitError(w, r, err)
		return
	}

	saved, err := h.partnershipRequestUsecase.Submit(r.Context(), req.PartnershipRequest())
	if err != nil {
		h.writeSubmitError(w, r, err)
		return
	}

	utilities.WriteJSON(w, http.StatusCreated, payload.CreatePartnershipResponse{
		Success: true,
		Message: "Partnership request submitted successfully",
		Data: payload.PartnershipReceipt{
			ID:          saved.ID.Hex(),
			Status:      saved.Status,
			SubmittedAt: saved.SubmittedAt,
		},
	})
}

func (h *partnershipRequestHTTPHandler) writeSubmitError(w http.ResponseWriter, r *http.Request, err error) {
	if apperror.As(err).Kind != apperror.KindInternal {
		writeErrorWithSuccess(w, r, err)
		return
	}

	zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to submit partnership request")

	success := false
	utilities.WriteJSON(w, http.StatusInternalServerError, utilities.ErrorResponse{
		Success: &success,
		Error:   "Failed to submit partnership request",
	})
}

func (h *partnershipRequestHTTPHandler) MethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	success := false
	utilities.WriteJSON(w, http.StatusMethodNotAllowed, utilities.ErrorResponse{
		Success: &success,
		Error:   "Method not allowed",
	})
}

func (h *partnershipRequestHTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limit, err := parseUint(query.Get("limit"), errInvalidLimit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	offset, err := parseUint(query.Get("offset"), errInvalidOffset)
	if err != nil {
		writeError(w, r, err)
		return
	}

	requests, err := h.partnershipRequestUsecase.List(r.Context(), usecase.ListPartnershipRequestsParams{
		Status: model.RequestStatus(query.Get("status")),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	utilities.WriteJSON(w, http.StatusOK, payload.PartnershipRequestListResponse{Data: requests})
}

func (h *partnershipRequestHTTPHandler) Review(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, r, middleware.ErrUnauthorized)
		return
	}

	var req payload.ReviewPartnershipRequest
	if err := bind(w, r, h.validator, &req); err != nil {
		writeError(w, r, err)
		return
	}

	updated, err := h.partnershipRequestUsecase.Review(r.Context(), chi.URLParam(r, "id"), usecase.ReviewParams{
		Status:     model.RequestStatus(req.Status),
		Notes:      req.Notes,
		ReviewerID: claims.UserID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	utilities.WriteJSON(w, http.StatusOK, payload.PartnershipRequestResponse{Data: updated})
}

func parseUint(value string, invalid error) (uint64, error) {
	if value == "" {
		return 0, nil
	}

	n, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, invalid
	}

	return n, nil
}
