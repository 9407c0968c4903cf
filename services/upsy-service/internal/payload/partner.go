package payload

import (
	"bytes"
	"encoding/json"
	"errors"
	"maps"
	"slices"
	"strings"

	"github.com/vasapolrittideah/upsy-api/services/upsy-service/internal/model"
	"github.com/vasapolrittideah/upsy-api/shared/apperror"
	"github.com/vasapolrittideah/upsy-api/shared/validation"
)

var (
	ErrProgramsRequired       = apperror.Validation("At least one program is required")
	ErrInvalidCategory        = apperror.Validation("Invalid category")
	ErrInvalidPartnerCategory = apperror.Validation("Invalid partner categories data")
)

type AddPartnerRequest struct {
	Name        string   `json:"name"        validate:"max=200"`
	Logo        string   `json:"logo"`
	Description string   `json:"description" validate:"max=500"`
	Programs    []string `json:"programs"    validate:"dive,required,max=100"`
	Students    string   `json:"students"`
	Category    string   `json:"category"`
}

func (r *AddPartnerRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Logo = strings.TrimSpace(r.Logo)
	r.Description = strings.TrimSpace(r.Description)
	r.Students = strings.TrimSpace(r.Students)
	r.Category = strings.TrimSpace(r.Category)
	for i := range r.Programs {
		r.Programs[i] = strings.TrimSpace(r.Programs[i])
	}
}

// Validate checks presence first, then programs, then the category, then the
// length limits. A missing programs list counts as a missing field; an empty
// one does not.
func (r *AddPartnerRequest) Validate(v *validation.Validator) error {
	if r.Name == "" || r.Logo == "" || r.Description == "" || r.Programs == nil || r.Students == "" ||
		r.Category == "" {
		return ErrAllFieldsRequired
	}

	if len(r.Programs) == 0 {
		return ErrProgramsRequired
	}

	if !model.CategoryKey(r.Category).Valid() {
		return ErrInvalidCategory
	}

	return v.StructFirst(r)
}

// Partner returns the embedded partner entry described by the request.
func (r *AddPartnerRequest) Partner() model.Partner {
	return model.Partner{
		Name:        r.Name,
		NameKey:     strings.ToLower(r.Name),
		Logo:        r.Logo,
		Description: r.Description,
		Programs:    r.Programs,
		Students:    r.Students,
		Category:    model.CategoryKey(r.Category),
	}
}

type AddPartnerResponse struct {
	Message string         `json:"message"`
	Data    AddPartnerData `json:"data"`
}

type AddPartnerData struct {
	Category model.CategoryKey `json:"category"`
	Partner  model.Partner     `json:"partner"`
}

type PartnerPayload struct {
	Name        string   `json:"name"        validate:"required,max=200"`
	Logo        string   `json:"logo"        validate:"required"`
	Description string   `json:"description" validate:"required,max=500"`
	Programs    []string `json:"programs"    validate:"dive,max=100"`
	Students    string   `json:"students"    validate:"required"`
	Category    string   `json:"category"    validate:"omitempty,oneof=universities corporates platforms"`
}

type PartnerCategoryPayload struct {
	Title       string           `json:"title"       validate:"required"`
	Description string           `json:"description" validate:"required"`
	Partners    []PartnerPayload `json:"partners"    validate:"dive"`
}

func (p *PartnerCategoryPayload) normalize() {
	p.Title = strings.TrimSpace(p.Title)
	p.Description = strings.TrimSpace(p.Description)
	for i := range p.Partners {
		partner := &p.Partners[i]
		partner.Name = strings.TrimSpace(partner.Name)
		partner.Logo = strings.TrimSpace(partner.Logo)
		partner.Description = strings.TrimSpace(partner.Description)
		partner.Students = strings.TrimSpace(partner.Students)
		partner.Category = strings.TrimSpace(partner.Category)
		for j := range partner.Programs {
			partner.Programs[j] = strings.TrimSpace(partner.Programs[j])
		}
	}
}

type UploadPartnerCategoriesRequest struct {
	PartnerCategories json.RawMessage `json:"partnerCategories"`

	categories map[string]*PartnerCategoryPayload
}

func (r *UploadPartnerCategoriesRequest) Normalize() {}

// Validate requires partnerCategories to be a JSON object keyed by category
// and validates every category and partner in it.
func (r *UploadPartnerCategoriesRequest) Validate(v *validation.Validator) error {
	raw := bytes.TrimSpace(r.PartnerCategories)
	if len(raw) == 0 || raw[0] != '{' {
		return ErrInvalidPartnerCategory
	}

	var categories map[string]*PartnerCategoryPayload
	if err := json.Unmarshal(raw, &categories); err != nil {
		return ErrInvalidPartnerCategory
	}

	var details []apperror.FieldError
	for _, key := range slices.Sorted(maps.Keys(categories)) {
		category := categories[key]
		prefix := "partnerCategories." + key
		if !model.CategoryKey(key).Valid() {
			details = append(details, apperror.FieldError{Field: prefix, Message: "Invalid category"})
			continue
		}
		if category == nil {
			details = append(details, apperror.FieldError{Field: prefix, Message: prefix + " must be an object"})
			continue
		}

		category.normalize()
		if err := v.Struct(category); err != nil {
			var appErr *apperror.Error
			if !errors.As(err, &appErr) || appErr.Kind != apperror.KindValidation {
				return err
			}
			for _, d := range appErr.Details {
				details = append(details, apperror.FieldError{Field: prefix + "." + d.Field, Message: d.Message})
			}
		}
	}

	if len(details) > 0 {
		return apperror.Validation("Validation failed", details...)
	}

	r.categories = categories
	return nil
}

// Categories returns the validated categories in display order.
func (r *UploadPartnerCategoriesRequest) Categories() []*model.PartnerCategory {
	result := make([]*model.PartnerCategory, 0, len(r.categories))
	for _, key := range model.CategoryKeys {
		category, ok := r.categories[string(key)]
		if !ok {
			continue
		}

		partners := make([]model.Partner, 0, len(category.Partners))
		for _, p := range category.Partners {
			partnerCategory := model.CategoryKey(p.Category)
			if partnerCategory == "" {
				partnerCategory = key
			}
			programs := p.Programs
			if programs == nil {
				programs = []string{}
			}
			partners = append(partners, model.Partner{
				Name:        p.Name,
				NameKey:     strings.ToLower(p.Name),
				Logo:        p.Logo,
				Description: p.Description,
				Programs:    programs,
				Students:    p.Students,
				Category:    partnerCategory,
			})
		}

		result = append(result, &model.PartnerCategory{
			CategoryKey: key,
			Title:       category.Title,
			Description: category.Description,
			Partners:    partners,
		})
	}

	return result
}

type CategoryResponse struct {
	CategoryKey model.CategoryKey `json:"categoryKey,omitempty"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Partners    []model.Partner   `json:"partners"`
}

func NewCategoryResponse(category *model.PartnerCategory) CategoryResponse {
	partners := category.Partners
	if partners == nil {
		partners = []model.Partner{}
	}
	return CategoryResponse{
		CategoryKey: category.CategoryKey,
		Title:       category.Title,
		Description: category.Description,
		Partners:    partners,
	}
}

type PartnerCategoriesResponse struct {
	Message string                      `json:"message"`
	Data    map[string]CategoryResponse `json:"data"`
}

// NewPartnerCategoriesResponse keys each category by its category key. The
// key is not repeated inside the value.
func NewPartnerCategoriesResponse(message string, categories []*model.PartnerCategory) PartnerCategoriesResponse {
	data := make(map[string]CategoryResponse, len(categories))
	for _, category := range categories {
		resp := NewCategoryResponse(category)
		resp.CategoryKey = ""
		data[string(category.CategoryKey)] = resp
	}
	return PartnerCategoriesResponse{Message: message, Data: data}
}

type UploadPartnerCategoriesResponse struct {
	Message string             `json:"message"`
	Data    []CategoryResponse `json:"data"`
}
