package handler

import (
	"net/http"

	"github.com/vasapolrittideah/upsy-api/services/upsy-service/internal/payload"
	"github.com/vasapolrittideah/upsy-api/services/upsy-service/internal/usecase"
	"github.com/vasapolrittideah/upsy-api/shared/utilities"
	"github.com/vasapolrittideah/upsy-api/shared/validation"
)

type partnerHTTPHandler struct {
	partnerUsecase usecase.PartnerUsecase
	validator      *validation.Validator
}

func (h *partnerHTTPHandler) AddPartner(w http.ResponseWriter, r *http.Request) {
	var req payload.AddPartnerRequest
	if err := bind(w, r, h.validator, &req); err != nil {
		writeError(w, r, err)
		return
	}

	partner, err := h.partnerUsecase.AddPartner(r.Context(), req.Partner())
	if err != nil {
		writeError(w, r, err)
		return
	}

	utilities.WriteJSON(w, http.StatusCreated, payload.AddPartnerResponse{
		Message: "Partner added successfully",
		Data: payload.AddPartnerData{
			Category: partner.Category,
			Partner:  partner,
		},
	})
}

func (h *partnerHTTPHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.partnerUsecase.ListCategories(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	utilities.WriteJSON(w, http.StatusOK, payload.NewPartnerCategoriesResponse(
		"Partner categories fetched successfully",
		categories,
	))
}

// UploadCategories replaces every partner category with the uploaded set.
func (h *partnerHTTPHandler) UploadCategories(w http.ResponseWriter, r *http.Request) {
	var req payload.UploadPartnerCategoriesRequest
	if err := bind(w, r, h.validator, &req); err != nil {
		writeError(w, r, err)
		return
	}

	categories, err := h.partnerUsecase.ReplaceCategories(r.Context(), req.Categories())
	if err != nil {
		writeError(w, r, err)
		return
	}

	data := make([]payload.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		data = append(data, payload.NewCategoryResponse(category))
	}

	utilities.WriteJSON(w, http.StatusCreated, payload.UploadPartnerCategoriesResponse{
		Message: "Partner categories uploaded successfully",
		Data:    data,
	})
}
