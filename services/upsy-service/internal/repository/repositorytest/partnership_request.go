package repositorytest

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/upsy-api/services/upsy-service/internal/model"
	"github.com/vasapolrittideah/upsy-api/services/upsy-service/internal/repository"
)

// PartnershipRequestRepository is an in-memory
// repository.PartnershipRequestRepository.
type PartnershipRequestRepository struct {
	mu       sync.Mutex
	requests []*model.PartnershipRequest
}

var _ repository.PartnershipRequestRepository = (*PartnershipRequestRepository)(nil)

func NewPartnershipRequestRepository() *PartnershipRequestRepository {
	return &PartnershipRequestRepository{}
}

func (r *PartnershipRequestRepository) CreateRequest(
	_ context.Context,
	request *model.PartnershipRequest,
) (*model.PartnershipRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if request.SubmittedAt.IsZero() {
		request.SubmittedAt = now
	}
	request.ID = bson.NewObjectID()
	request.CreatedAt = now
	request.UpdatedAt = now

	stored := *request
	r.requests = append(r.requests, &stored)

	return request, nil
}

func (r *PartnershipRequestRepository) ListRequests(
	_ context.Context,
	params repository.FilterRequestsParams,
) ([]*model.PartnershipRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := []*model.PartnershipRequest{}
	for i := len(r.requests) - 1; i >= 0; i-- {
		request := r.requests[i]
		if params.Status != nil && request.Status != *params.Status {
			continue
		}
		cp := *request
		result = append(result, &cp)
	}

	return paginate(result, params.Limit, params.Offset), nil
}

func (r *PartnershipRequestRepository) UpdateReview(
	_ context.Context,
	id string,
	params repository.UpdateReviewParams,
) (*model.PartnershipRequest, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, request := range r.requests {
		if request.ID != objectID {
			continue
		}

		reviewedAt := params.ReviewedAt
		request.Status = params.Status
		request.ReviewedBy = params.ReviewedBy
		request.ReviewedAt = &reviewedAt
		request.UpdatedAt = reviewedAt
		if params.Notes != nil {
			request.Notes = *params.Notes
		}

		cp := *request
		return &cp, nil
	}

	return nil, mongo.ErrNoDocuments
}
