package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vasapolrittideah/upsy-api/services/upsy-service/internal/model"
)

// PartnershipRequestRepository defines the interface for partnership request operations.
type PartnershipRequestRepository interface {
	CreateRequest(ctx context.Context, request *model.PartnershipRequest) (*model.PartnershipRequest, error)

	// ListRequests returns requests newest first, optionally filtered by status.
	ListRequests(ctx context.Context, params FilterRequestsParams) ([]*model.PartnershipRequest, error)

	// UpdateReview records a review decision. It returns mongo.ErrNoDocuments
	// when no request has the given id.
	UpdateReview(ctx context.Context, id string, params UpdateReviewParams) (*model.PartnershipRequest, error)
}

// FilterRequestsParams defines the parameters for listing partnership requests.
type FilterRequestsParams struct {
	Status *model.RequestStatus
	Limit  uint64
	Offset uint64
}

// UpdateReviewParams defines the fields written when a request is reviewed.
type UpdateReviewParams struct {
	Status     model.RequestStatus
	Notes      *string
	ReviewedBy string
	ReviewedAt time.Time
}

const partnershipRequestCollection = "partnership_requests"

type partnershipRequestMongoRepository struct {
	db *mongo.Database
}

func NewPartnershipRequestMongoRepository(
	ctx context.Context,
	logger *zerolog.Logger,
	db *mongo.Database,
) PartnershipRequestRepository {
	collection := db.Collection(partnershipRequestCollection)

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "contact_email", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "organization_type", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "submitted_at", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}, {Key: "submitted_at", Value: -1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create partnership request indexes")
	}

	return &partnershipRequestMongoRepository{db: db}
}

func (r *partnershipRequestMongoRepository) CreateRequest(
	ctx context.Context,
	request *model.PartnershipRequest,
) (*model.PartnershipRequest, error) {
	now := time.Now()
	if request.SubmittedAt.IsZero() {
		request.SubmittedAt = now
	}
	request.CreatedAt = now
	request.UpdatedAt = now

	result, err := r.db.Collection(partnershipRequestCollection).InsertOne(ctx, request)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		request.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return request, nil
}

func (r *partnershipRequestMongoRepository) ListRequests(
	ctx context.Context,
	params FilterRequestsParams,
) ([]*model.PartnershipRequest, error) {
	filter := bson.M{}
	if params.Status != nil {
		filter["status"] = *params.Status
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "submitted_at", Value: -1}})
	if params.Limit > 0 {
		findOptions.SetLimit(int64(params.Limit))
	}
	if params.Offset > 0 {
		findOptions.SetSkip(int64(params.Offset))
	}

	cursor, err := r.db.Collection(partnershipRequestCollection).Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}

	requests := []*model.PartnershipRequest{}
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, err
	}

	return requests, nil
}

func (r *partnershipRequestMongoRepository) UpdateReview(
	ctx context.Context,
	id string,
	params UpdateReviewParams,
) (*model.PartnershipRequest, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{
		"status":      params.Status,
		"reviewed_by": params.ReviewedBy,
		"reviewed_at": params.ReviewedAt,
		"updated_at":  params.ReviewedAt,
	}
	if params.Notes != nil {
		set["notes"] = *params.Notes
	}

	result := r.db.Collection(partnershipRequestCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var request model.PartnershipRequest
	if err := result.Decode(&request); err != nil {
		return nil, err
	}

	return &request, nil
}
