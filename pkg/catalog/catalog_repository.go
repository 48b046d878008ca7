package catalog

import (
	"context"
	"foodgram-backend/entities"

	"gorm.io/gorm"
)

type (
	CatalogRepository interface {
		GetIngredientByID(ctx context.Context, id string) (*entities.Ingredient, error)
		GetIngredients(ctx context.Context, namePrefix string) ([]*entities.Ingredient, error)
		GetTagByID(ctx context.Context, id string) (*entities.Tag, error)
		GetTags(ctx context.Context) ([]*entities.Tag, error)
	}

	catalogRepository struct {
		db *gorm.DB
	}
)

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) GetIngredientByID(ctx context.Context, id string) (*entities.Ingredient, error) {
	var ingredient entities.Ingredient
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&ingredient).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (r *catalogRepository) GetIngredients(ctx context.Context, namePrefix string) ([]*entities.Ingredient, error) {
	var ingredients []*entities.Ingredient

	query := r.db.WithContext(ctx)
	if namePrefix != "" {
		query = query.Where("name LIKE ?", namePrefix+"%")
	}

	if err := query.Order("name asc").Find(&ingredients).Error; err != nil {
		return nil, err
	}

	return ingredients, nil
}

func (r *catalogRepository) GetTagByID(ctx context.Context, id string) (*entities.Tag, error) {
	var tag entities.Tag
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *catalogRepository) GetTags(ctx context.Context) ([]*entities.Tag, error) {
	var tags []*entities.Tag
	if err := r.db.WithContext(ctx).Order("name asc").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}
