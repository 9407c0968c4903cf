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

// SubmissionRepository defines the interface for lead submission operations.
type SubmissionRepository interface {
	CreateSubmission(ctx context.Context, submission *model.Submission) (*model.Submission, error)

	// ListSubmissions returns submissions newest first. A zero Limit returns
	// every submission.
	ListSubmissions(ctx context.Context, params FilterSubmissionsParams) ([]*model.Submission, error)
}

// FilterSubmissionsParams defines the parameters for paginating submissions.
type FilterSubmissionsParams struct {
	Limit  uint64
	Offset uint64
}

const submissionCollection = "submissions"

type submissionMongoRepository struct {
	db *mongo.Database
}

func NewSubmissionMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) SubmissionRepository {
	collection := db.Collection(submissionCollection)

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "created_at", Value: -1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create submission indexes")
	}

	return &submissionMongoRepository{db: db}
}

func (r *submissionMongoRepository) CreateSubmission(
	ctx context.Context,
	submission *model.Submission,
) (*model.Submission, error) {
	now := time.Now()
	submission.CreatedAt = now
	submission.UpdatedAt = now

	result, err := r.db.Collection(submissionCollection).InsertOne(ctx, submission)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		submission.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return submission, nil
}

func (r *submissionMongoRepository) ListSubmissions(
	ctx context.Context,
	params FilterSubmissionsParams,
) ([]*model.Submission, error) {
	findOptions := options.Find().SetSort(bson.D{
		{Key: "created_at", Value: -1},
		{Key: "_id", Value: -1},
	})

	if params.Limit > 0 {
		findOptions.SetLimit(int64(params.Limit))
	}
	if params.Offset > 0 {
		findOptions.SetSkip(int64(params.Offset))
	}

	cursor, err := r.db.Collection(submissionCollection).Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}

	submissions := []*model.Submission{}
	if err := cursor.All(ctx, &submissions); err != nil {
		return nil, err
	}

	return submissions, nil
}
