package handler

import (
	"net/http"

	"github.com/vasapolrittideah/upsy-api/services/upsy-service/internal/model"
	"github.com/vasapolrittideah/upsy-api/services/upsy-service/internal/payload"
	"github.com/vasapolrittideah/upsy-api/services/upsy-service/internal/usecase"
	"github.com/vasapolrittideah/upsy-api/shared/utilities"
	"github.com/vasapolrittideah/upsy-api/shared/validation"
)

type submissionHTTPHandler struct {
	submissionUsecase usecase.SubmissionUsecase
	validator         *validation.Validator
}

func (h *submissionHTTPHandler) CreateSubmission(w http.ResponseWriter, r *http.Request) {
	var req payload.CreateSubmissionRequest
	if err := bind(w, r, h.validator, &req); err != nil {
		writeError(w, r, err)
		return
	}

	submission, err := h.submissionUsecase.CreateSubmission(r.Context(), &model.Submission{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		College: req.College,
		Purpose: model.Purpose(req.Purpose),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	utilities.WriteJSON(w, http.StatusCreated, payload.SubmissionResponse{
		Message: "Submission saved successfully",
		Data:    submission,
	})
}

func (h *submissionHTTPHandler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	submissions, err := h.submissionUsecase.ListSubmissions(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	utilities.WriteJSON(w, http.StatusOK, payload.SubmissionListResponse{
		Message: "Submissions fetched successfully",
		Data:    submissions,
	})
}
