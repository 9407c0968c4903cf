package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type OrganizationType string

const (
	OrganizationUniversity OrganizationType = "university"
	OrganizationCorporate  OrganizationType = "corporate"
	OrganizationPlatform   OrganizationType = "platform"
	OrganizationOther      OrganizationType = "other"
)

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
	RequestStatusInReview RequestStatus = "in-review"
)

// Valid reports whether s is a known review status.
func (s RequestStatus) Valid() bool {
	switch s {
	case RequestStatusPending, RequestStatusApproved, RequestStatusRejected, RequestStatusInReview:
		return true
	}
	return false
}

// PartnershipRequest is an inbound partner application.
type PartnershipRequest struct {
	ID                  bson.ObjectID    `bson:"_id,omitempty"                  json:"id"`
	OrganizationName    string           `bson:"organization_name"              json:"organizationName"`
	OrganizationType    OrganizationType `bson:"organization_type"              json:"organizationType"`
	ContactPersonName   string           `bson:"contact_person_name"            json:"contactPersonName"`
	ContactEmail        string           `bson:"contact_email"                  json:"contactEmail"`
	ContactPhone        string           `bson:"contact_phone"                  json:"contactPhone"`
	Website             string           `bson:"website,omitempty"              json:"website,omitempty"`
	EstablishedYear     string           `bson:"established_year,omitempty"     json:"establishedYear,omitempty"`
	NumberOfStudents    string           `bson:"number_of_students,omitempty"   json:"numberOfStudents,omitempty"`
	Programs            []string         `bson:"programs"                       json:"programs"`
	Description         string           `bson:"description"                    json:"description"`
	PartnershipGoals    string           `bson:"partnership_goals"              json:"partnershipGoals"`
	CurrentPartnerships string           `bson:"current_partnerships,omitempty" json:"currentPartnerships,omitempty"`
	AdditionalInfo      string           `bson:"additional_info,omitempty"      json:"additionalInfo,omitempty"`
	Status              RequestStatus    `bson:"status"                         json:"status"`
	SubmittedAt         time.Time        `bson:"submitted_at"                   json:"submittedAt"`
	ReviewedAt          *time.Time       `bson:"reviewed_at,omitempty"          json:"reviewedAt,omitempty"`
	ReviewedBy          string           `bson:"reviewed_by,omitempty"          json:"reviewedBy,omitempty"`
	Notes               string           `bson:"notes,omitempty"                json:"notes,omitempty"`
	CreatedAt           time.Time        `bson:"created_at"                     json:"createdAt"`
	UpdatedAt           time.Time        `bson:"updated_at"                     json:"updatedAt"`
}
