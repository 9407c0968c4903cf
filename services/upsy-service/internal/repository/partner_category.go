package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vasapolrittideah/upsy-api/services/upsy-service/internal/model"
)

// PartnerCategoryRepository defines the interface for partner category operations.
type PartnerCategoryRepository interface {
	GetCategory(ctx context.Context, key model.CategoryKey) (*model.PartnerCategory, error)

	// AddPartner appends partner to the category, creating the category with
	// info when it does not exist. The write only applies if no partner with
	// the same NameKey is present; a concurrent duplicate surfaces as a
	// duplicate key error.
	AddPartner(ctx context.Context, key model.CategoryKey, info model.CategoryInfo, partner model.Partner) error

	ListCategories(ctx context.Context) ([]*model.PartnerCategory, error)

	// ReplaceAll deletes every category and inserts categories. The two steps
	// are not transactional.
	ReplaceAll(ctx context.Context, categories []*model.PartnerCategory) error
}

const partnerCategoryCollection = "partner_categories"

type partnerCategoryMongoRepository struct {
	db     *mongo.Database
	logger *zerolog.Logger
}

func NewPartnerCategoryMongoRepository(
	ctx context.Context,
	logger *zerolog.Logger,
	db *mongo.Database,
) PartnerCategoryRepository {
	collection := db.Collection(partnerCategoryCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "category_key", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create partner category indexes")
	}

	return &partnerCategoryMongoRepository{db: db, logger: logger}
}

func (r *partnerCategoryMongoRepository) GetCategory(
	ctx context.Context,
	key model.CategoryKey,
) (*model.PartnerCategory, error) {
	var category model.PartnerCategory
	err := r.db.Collection(partnerCategoryCollection).FindOne(ctx, bson.M{"category_key": key}).Decode(&category)
	if err != nil {
		return nil, err
	}

	return &category, nil
}

func (r *partnerCategoryMongoRepository) AddPartner(
	ctx context.Context,
	key model.CategoryKey,
	info model.CategoryInfo,
	partner model.Partner,
) error {
	now := time.Now()
	partner.CreatedAt = now
	partner.UpdatedAt = now

	_, err := r.db.Collection(partnerCategoryCollection).UpdateOne(
		ctx,
		bson.M{
			"category_key":      key,
			"partners.name_key": bson.M{"$ne": partner.NameKey},
		},
		bson.M{
			"$push": bson.M{"partners": partner},
			"$set":  bson.M{"updated_at": now},
			"$setOnInsert": bson.M{
				"title":       info.Title,
				"description": info.Description,
				"created_at":  now,
			},
		},
		options.UpdateOne().SetUpsert(true),
	)
	return err
}

func (r *partnerCategoryMongoRepository) ListCategories(ctx context.Context) ([]*model.PartnerCategory, error) {
	cursor, err := r.db.Collection(partnerCategoryCollection).Find(
		ctx,
		bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}

	categories := []*model.PartnerCategory{}
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}

	return categories, nil
}

func (r *partnerCategoryMongoRepository) ReplaceAll(ctx context.Context, categories []*model.PartnerCategory) error {
	collection := r.db.Collection(partnerCategoryCollection)

	deleted, err := collection.DeleteMany(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("delete partner categories: %w", err)
	}

	if len(categories) == 0 {
		return nil
	}

	now := time.Now()
	docs := make([]*model.PartnerCategory, 0, len(categories))
	for _, category := range categories {
		category.ID = bson.NilObjectID
		category.CreatedAt = now
		category.UpdatedAt = now
		docs = append(docs, category)
	}

	if _, err := collection.InsertMany(ctx, docs); err != nil {
		r.logger.Error().
			Err(err).
			Int64("deleted", deleted.DeletedCount).
			Msg("partner categories were deleted but the replacement insert failed")
		return fmt.Errorf("insert partner categories: %w", err)
	}

	return nil
}
