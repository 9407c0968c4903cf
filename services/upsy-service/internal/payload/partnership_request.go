package payload

import (
	"strings"
	"time"

	"github.com/vasapolrittideah/upsy-api/services/upsy-service/internal/model"
	"github.com/vasapolrittideah/upsy-api/shared/validation"
)

type CreatePartnershipRequest struct {
	OrganizationName    string   `json:"organizationName"    validate:"required,max=200"`
	OrganizationType    string   `json:"organizationType"    validate:"required,oneof=university corporate platform other"`
	ContactPersonName   string   `json:"contactPersonName"   validate:"required,max=100"`
	ContactEmail        string   `json:"contactEmail"        validate:"required,email"`
	ContactPhone        string   `json:"contactPhone"        validate:"required,max=20"`
	Website             string   `json:"website"             validate:"max=200"`
	EstablishedYear     string   `json:"establishedYear"     validate:"max=4"`
	NumberOfStudents    string   `json:"numberOfStudents"    validate:"max=50"`
	Programs            []string `json:"programs"            validate:"required,max=20"`
	Description         string   `json:"description"         validate:"required,max=1000"`
	PartnershipGoals    string   `json:"partnershipGoals"    validate:"required,max=1000"`
	CurrentPartnerships string   `json:"currentPartnerships" validate:"max=1000"`
	AdditionalInfo      string   `json:"additionalInfo"      validate:"max=1000"`
}

func (r *CreatePartnershipRequest) Normalize() {
	r.OrganizationName = strings.TrimSpace(r.OrganizationName)
	r.OrganizationType = strings.TrimSpace(r.OrganizationType)
	r.ContactPersonName = strings.TrimSpace(r.ContactPersonName)
	r.ContactEmail = strings.ToLower(strings.TrimSpace(r.ContactEmail))
	r.ContactPhone = strings.TrimSpace(r.ContactPhone)
	r.Website = strings.TrimSpace(r.Website)
	r.EstablishedYear = strings.TrimSpace(r.EstablishedYear)
	r.NumberOfStudents = strings.TrimSpace(r.NumberOfStudents)
	r.Description = strings.TrimSpace(r.Description)
	r.PartnershipGoals = strings.TrimSpace(r.PartnershipGoals)
	r.CurrentPartnerships = strings.TrimSpace(r.CurrentPartnerships)
	r.AdditionalInfo = strings.TrimSpace(r.AdditionalInfo)
}

func (r *CreatePartnershipRequest) Validate(v *validation.Validator) error {
	return v.Struct(r)
}

// PartnershipRequest returns a pending request built from the payload.
func (r *CreatePartnershipRequest) PartnershipRequest() *model.PartnershipRequest {
	return &model.PartnershipRequest{
		OrganizationName:    r.OrganizationName,
		OrganizationType:    model.OrganizationType(r.OrganizationType),
		ContactPersonName:   r.ContactPersonName,
		ContactEmail:        r.ContactEmail,
		ContactPhone:        r.ContactPhone,
		Website:             r.Website,
		EstablishedYear:     r.EstablishedYear,
		NumberOfStudents:    r.NumberOfStudents,
		Programs:            r.Programs,
		Description:         r.Description,
		PartnershipGoals:    r.PartnershipGoals,
		CurrentPartnerships: r.CurrentPartnerships,
		AdditionalInfo:      r.AdditionalInfo,
	}
}

type CreatePartnershipResponse struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	Data    PartnershipReceipt `json:"data"`
}

type PartnershipReceipt struct {
	ID          string              `json:"id"`
	Status      model.RequestStatus `json:"status"`
	SubmittedAt time.Time           `json:"submittedAt"`
}

type ReviewPartnershipRequest struct {
	Status string  `json:"status" validate:"required,oneof=pending approved rejected in-review"`
	Notes  *string `json:"notes"  validate:"omitempty,max=2000"`
}

func (r *ReviewPartnershipRequest) Normalize() {
	r.Status = strings.TrimSpace(r.Status)
	if r.Notes != nil {
		notes := strings.TrimSpace(*r.Notes)
		r.Notes = &notes
	}
}

func (r *ReviewPartnershipRequest) Validate(v *validation.Validator) error {
	return v.Struct(r)
}

type PartnershipRequestListResponse struct {
	Data []*model.PartnershipRequest `json:"data"`
}

type PartnershipRequestResponse struct {
	Data *model.PartnershipRequest `json:"data"`
}
