package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/upsy-api/services/upsy-service/internal/model"
	"github.com/vasapolrittideah/upsy-api/services/upsy-service/internal/repository"
	"github.com/vasapolrittideah/upsy-api/shared/apperror"
)

// PartnershipRequestUsecase defines the partnership request use cases.
type PartnershipRequestUsecase interface {
	Submit(ctx context.Context, request *model.PartnershipRequest) (*model.PartnershipRequest, error)
	List(ctx context.Context, params ListPartnershipRequestsParams) ([]*model.PartnershipRequest, error)
	Review(ctx context.Context, id string, params ReviewParams) (*model.PartnershipRequest, error)
}

// ListPartnershipRequestsParams defines the filters for listing requests. An
// empty Status lists every request.
type ListPartnershipRequestsParams struct {
	Status model.RequestStatus
	Limit  uint64
	Offset uint64
}

// ReviewParams defines a review decision made by the user ReviewerID.
type ReviewParams struct {
	Status     model.RequestStatus
	Notes      *string
	ReviewerID string
}

const (
	defaultRequestListLimit = 50
	maxRequestListLimit     = 100
)

var (
	ErrPartnershipRequestNotFound = apperror.NotFound("Partnership request not found")
	ErrInvalidPartnershipRequest  = apperror.Validation("Invalid partnership request id")
	ErrInvalidRequestStatus       = apperror.Validation("Invalid status")
)

type partnershipRequestUsecase struct {
	requestRepo repository.PartnershipRequestRepository
	userRepo    repository.UserRepository
	logger      *zerolog.Logger
	now         func() time.Time
}

func NewPartnershipRequestUsecase(
	requestRepo repository.PartnershipRequestRepository,
	userRepo repository.UserRepository,
	logger *zerolog.Logger,
) PartnershipRequestUsecase {
	return &partnershipRequestUsecase{
		requestRepo: requestRepo,
		userRepo:    userRepo,
		logger:      logger,
		now:         time.Now,
	}
}

func (u *partnershipRequestUsecase) Submit(
	ctx context.Context,
	request *model.PartnershipRequest,
) (*model.PartnershipRequest, error) {
	request.Status = model.RequestStatusPending
	request.SubmittedAt = u.now()
	if request.Programs == nil {
		request.Programs = []string{}
	}

	saved, err := u.requestRepo.CreateRequest(ctx, request)
	if err != nil {
		return nil, err
	}

	u.logger.Info().
		Str("id", saved.ID.Hex()).
		Str("organization", saved.OrganizationName).
		Str("type", string(saved.OrganizationType)).
		Str("contact", saved.ContactEmail).
		Time("submitted_at", saved.SubmittedAt).
		Msg("partnership request saved")

	return saved, nil
}

func (u *partnershipRequestUsecase) List(
	ctx context.Context,
	params ListPartnershipRequestsParams,
) ([]*model.PartnershipRequest, error) {
	filter := repository.FilterRequestsParams{
		Limit:  params.Limit,
		Offset: params.Offset,
	}

	if params.Status != "" {
		if !params.Status.Valid() {
			return nil, ErrInvalidRequestStatus
		}
		filter.Status = &params.Status
	}

	switch {
	case filter.Limit == 0:
		filter.Limit = defaultRequestListLimit
	case filter.Limit > maxRequestListLimit:
		filter.Limit = maxRequestListLimit
	}

	return u.requestRepo.ListRequests(ctx, filter)
}

func (u *partnershipRequestUsecase) Review(
	ctx context.Context,
	id string,
	params ReviewParams,
) (*model.PartnershipRequest, error) {
	if !isObjectID(id) {
		return nil, ErrInvalidPartnershipRequest
	}
	if !params.Status.Valid() {
		return nil, ErrInvalidRequestStatus
	}

	reviewer, err := u.userRepo.GetUser(ctx, params.ReviewerID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvalidSession
		}
		return nil, err
	}

	updated, err := u.requestRepo.UpdateReview(ctx, id, repository.UpdateReviewParams{
		Status:     params.Status,
		Notes:      params.Notes,
		ReviewedBy: reviewer.Name,
		ReviewedAt: u.now(),
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPartnershipRequestNotFound
		}
		return nil, err
	}

	return updated, nil
}
