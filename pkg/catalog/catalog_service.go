package catalog

import (
	"context"
	"errors"
	"foodgram-backend/domain"

	"gorm.io/gorm"
)

type (
	CatalogService interface {
		GetIngredient(ctx context.Context, id string) (domain.IngredientResponse, error)
		ListIngredients(ctx context.Context, namePrefix string) ([]domain.IngredientResponse, error)
		GetTag(ctx context.Context, id string) (domain.TagResponse, error)
		ListTags(ctx context.Context) ([]domain.TagResponse, error)
	}

	catalogService struct {
		catalogRepository CatalogRepository
	}
)

func NewCatalogService(catalogRepository CatalogRepository) CatalogService {
	return &catalogService{catalogRepository: catalogRepository}
}

func (s *catalogService) GetIngredient(ctx context.Context, id string) (domain.IngredientResponse, error) {
	ingredient, err := s.catalogRepository.GetIngredientByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.IngredientResponse{}, domain.ErrIngredientNotFound
		}
		return domain.IngredientResponse{}, err
	}

	return domain.IngredientResponse{
		ID:              ingredient.ID.String(),
		Name:            ingredient.Name,
		MeasurementUnit: ingredient.MeasurementUnit,
	}, nil
}

func (s *catalogService) ListIngredients(ctx context.Context, namePrefix string) ([]domain.IngredientResponse, error) {
	ingredients, err := s.catalogRepository.GetIngredients(ctx, namePrefix)
	if err != nil {
		return nil, err
	}

	res := make([]domain.IngredientResponse, 0, len(ingredients))
	for _, ingredient := range ingredients {
		res = append(res, domain.IngredientResponse{
			ID:              ingredient.ID.String(),
			Name:            ingredient.Name,
			MeasurementUnit: ingredient.MeasurementUnit,
		})
	}

	return res, nil
}

func (s *catalogService) GetTag(ctx context.Context, id string) (domain.TagResponse, error) {
	tag, err := s.catalogRepository.GetTagByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.TagResponse{}, domain.ErrTagNotFound
		}
		return domain.TagResponse{}, err
	}

	return domain.TagResponse{
		ID:    tag.ID.String(),
		Name:  tag.Name,
		Slug:  tag.Slug,
		Color: tag.Color,
	}, nil
}

func (s *catalogService) ListTags(ctx context.Context) ([]domain.TagResponse, error) {
	tags, err := s.catalogRepository.GetTags(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]domain.TagResponse, 0, len(tags))
	for _, tag := range tags {
		res = append(res, domain.TagResponse{
			ID:    tag.ID.String(),
			Name:  tag.Name,
			Slug:  tag.Slug,
			Color: tag.Color,
		})
	}

	return res, nil
}
