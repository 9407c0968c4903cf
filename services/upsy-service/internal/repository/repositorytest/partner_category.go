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

// PartnerCategoryRepository is an in-memory repository.PartnerCategoryRepository.
type PartnerCategoryRepository struct {
	mu         sync.Mutex
	categories []*model.PartnerCategory

	// InsertErr, when set, makes ReplaceAll fail after the delete step, the
	// way a failed InsertMany leaves the collection empty.
	InsertErr error
}

var _ repository.PartnerCategoryRepository = (*PartnerCategoryRepository)(nil)

func NewPartnerCategoryRepository() *PartnerCategoryRepository {
	return &PartnerCategoryRepository{}
}

func (r *PartnerCategoryRepository) GetCategory(
	_ context.Context,
	key model.CategoryKey,
) (*model.PartnerCategory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	category := r.find(key)
	if category == nil {
		return nil, mongo.ErrNoDocuments
	}

	return clone(category), nil
}

func (r *PartnerCategoryRepository) AddPartner(
	_ context.Context,
	key model.CategoryKey,
	info model.CategoryInfo,
	partner model.Partner,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	partner.CreatedAt = now
	partner.UpdatedAt = now

	category := r.find(key)
	if category == nil {
		r.categories = append(r.categories, &model.PartnerCategory{
			ID:          bson.NewObjectID(),
			CategoryKey: key,
			Title:       info.Title,
			Description: info.Description,
			Partners:    []model.Partner{partner},
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		return nil
	}

	// The upsert filter misses on an existing name, so the insert collides
	// with the unique category_key index.
	for _, existing := range category.Partners {
		if existing.NameKey == partner.NameKey {
			return DuplicateKeyError()
		}
	}

	category.Partners = append(category.Partners, partner)
	category.UpdatedAt = now

	return nil
}

func (r *PartnerCategoryRepository) ListCategories(_ context.Context) ([]*model.PartnerCategory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := []*model.PartnerCategory{}
	for i := len(r.categories) - 1; i >= 0; i-- {
		result = append(result, clone(r.categories[i]))
	}

	return result, nil
}

func (r *PartnerCategoryRepository) ReplaceAll(_ context.Context, categories []*model.PartnerCategory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.categories = nil
	if r.InsertErr != nil {
		return r.InsertErr
	}

	now := time.Now()
	for _, category := range categories {
		category.ID = bson.NewObjectID()
		category.CreatedAt = now
		category.UpdatedAt = now
		r.categories = append(r.categories, clone(category))
	}

	return nil
}

func (r *PartnerCategoryRepository) find(key model.CategoryKey) *model.PartnerCategory {
	for _, category := range r.categories {
		if category.CategoryKey == key {
			return category
		}
	}
	return nil
}

func clone(category *model.PartnerCategory) *model.PartnerCategory {
	cp := *category
	cp.Partners = append([]model.Partner(nil), category.Partners...)
	return &cp
}
