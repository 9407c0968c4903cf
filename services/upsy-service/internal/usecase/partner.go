package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/upsy-api/services/upsy-service/internal/model"
	"github.com/vasapolrittideah/upsy-api/services/upsy-service/internal/repository"
	"github.com/vasapolrittideah/upsy-api/shared/apperror"
)

// PartnerUsecase defines the partner category use cases.
type PartnerUsecase interface {
	// AddPartner appends partner to its category, creating the category with
	// its default title and description if needed.
	AddPartner(ctx context.Context, partner model.Partner) (model.Partner, error)

	ListCategories(ctx context.Context) ([]*model.PartnerCategory, error)

	// ReplaceCategories deletes every category, then inserts categories.
	ReplaceCategories(ctx context.Context, categories []*model.PartnerCategory) ([]*model.PartnerCategory, error)
}

var (
	ErrPartnerExists   = apperror.Conflict("Partner with this name already exists in this category")
	ErrUnknownCategory = apperror.Validation("Invalid category")
)

type partnerUsecase struct {
	categoryRepo repository.PartnerCategoryRepository
	logger       *zerolog.Logger
}

func NewPartnerUsecase(categoryRepo repository.PartnerCategoryRepository, logger *zerolog.Logger) PartnerUsecase {
	return &partnerUsecase{categoryRepo: categoryRepo, logger: logger}
}

func (u *partnerUsecase) AddPartner(ctx context.Context, partner model.Partner) (model.Partner, error) {
	info, ok := model.DefaultCategoryInfo[partner.Category]
	if !ok {
		return model.Partner{}, ErrUnknownCategory
	}
	partner.NameKey = strings.ToLower(partner.Name)

	category, err := u.categoryRepo.GetCategory(ctx, partner.Category)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return model.Partner{}, err
	}

	if category != nil {
		for _, existing := range category.Partners {
			if strings.EqualFold(existing.Name, partner.Name) {
				return model.Partner{}, ErrPartnerExists
			}
		}
	}

	if err := u.categoryRepo.AddPartner(ctx, partner.Category, info, partner); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return model.Partner{}, ErrPartnerExists
		}

		return model.Partner{}, err
	}

	return partner, nil
}

func (u *partnerUsecase) ListCategories(ctx context.Context) ([]*model.PartnerCategory, error) {
	return u.categoryRepo.ListCategories(ctx)
}

func (u *partnerUsecase) ReplaceCategories(
	ctx context.Context,
	categories []*model.PartnerCategory,
) ([]*model.PartnerCategory, error) {
	for _, category := range categories {
		if !category.CategoryKey.Valid() {
			return nil, ErrUnknownCategory
		}
	}

	u.logger.Warn().Int("categories", len(categories)).Msg("replacing all partner categories")

	if err := u.categoryRepo.ReplaceAll(ctx, categories); err != nil {
		return nil, err
	}

	return categories, nil
}
