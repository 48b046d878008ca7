package recipe

import (
	"context"
	"foodgram-backend/domain"
	"foodgram-backend/entities"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RecipeRepository interface {
		CreateRecipe(ctx context.Context, recipe *entities.Recipe, ingredients []*entities.RecipeIngredient, tags []*entities.RecipeTag) error
		UpdateRecipe(ctx context.Context, recipe *entities.Recipe, ingredients []*entities.RecipeIngredient, tags []*entities.RecipeTag) error
		DeleteRecipe(ctx context.Context, id string) error
		GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error)
		GetRecipes(ctx context.Context, filter domain.RecipeFilter, viewerID string, page, limit int) ([]*entities.Recipe, int64, error)

		AddFavorite(ctx context.Context, userID, recipeID string) error
		RemoveFavorite(ctx context.Context, userID, recipeID string) error
		IsFavorited(ctx context.Context, userID, recipeID string) (bool, error)

		AddCartEntry(ctx context.Context, userID, recipeID string) error
		RemoveCartEntry(ctx context.Context, userID, recipeID string) error
		IsInCart(ctx context.Context, userID, recipeID string) (bool, error)

		GetShoppingList(ctx context.Context, userID string) ([]domain.ShoppingListItem, error)
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe, ingredients []*entities.RecipeIngredient, tags []*entities.RecipeTag) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(recipe).Error; err != nil {
			return err
		}
		return createRecipeRelations(tx, recipe.ID, ingredients, tags)
	})
}

// UpdateRecipe applies the replace-all write policy: the recipe row is saved
// and every existing join row is deleted and reinserted from the new sets,
// all inside one transaction so a reader never observes a recipe with no
// ingredients mid-update.
func (r *recipeRepository) UpdateRecipe(ctx context.Context, recipe *entities.Recipe, ingredients []*entities.RecipeIngredient, tags []*entities.RecipeTag) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Ingredients", "Tags", "Author").Save(recipe).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&entities.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&entities.RecipeTag{}).Error; err != nil {
			return err
		}
		return createRecipeRelations(tx, recipe.ID, ingredients, tags)
	})
}

func createRecipeRelations(tx *gorm.DB, recipeID uuid.UUID, ingredients []*entities.RecipeIngredient, tags []*entities.RecipeTag) error {
	for _, ingredient := range ingredients {
		ingredient.ID = uuid.New()
		ingredient.RecipeID = recipeID
		if err := tx.Create(ingredient).Error; err != nil {
			return err
		}
	}
	for _, tag := range tags {
		tag.ID = uuid.New()
		tag.RecipeID = recipeID
		if err := tx.Create(tag).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *recipeRepository) DeleteRecipe(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&entities.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&entities.RecipeTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&entities.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&entities.ShoppingCartEntry{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entities.Recipe{}).Error
	})
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Ingredients.Ingredient").
		Preload("Tags.Tag").
		Where("id = ?", id).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetRecipes(ctx context.Context, filter domain.RecipeFilter, viewerID string, page, limit int) ([]*entities.Recipe, int64, error) {
	var recipes []*entities.Recipe
	var count int64
	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Model(&entities.Recipe{})

	if len(filter.TagSlugs) > 0 {
		query = query.
			Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", filter.TagSlugs)
	}
	if filter.AuthorID != "" {
		query = query.Where("recipes.author_id = ?", filter.AuthorID)
	}
	if filter.Favorited && viewerID != "" {
		query = query.
			Joins("JOIN favorites ON favorites.recipe_id = recipes.id").
			Where("favorites.user_id = ?", viewerID)
	}
	if filter.InShoppingCart && viewerID != "" {
		query = query.
			Joins("JOIN shopping_cart_entries ON shopping_cart_entries.recipe_id = recipes.id").
			Where("shopping_cart_entries.user_id = ?", viewerID)
	}

	if err := query.Distinct("recipes.id").Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Distinct("recipes.*").
		Preload("Author").
		Preload("Ingredients.Ingredient").
		Preload("Tags.Tag").
		Offset(offset).
		Limit(limit).
		Order("recipes.created_at desc").
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

func (r *recipeRepository) AddFavorite(ctx context.Context, userID, recipeID string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrParseUUID
	}
	recipeUUID, err := uuid.Parse(recipeID)
	if err != nil {
		return domain.ErrParseUUID
	}

	favorite := entities.Favorite{
		ID:        uuid.New(),
		UserID:    userUUID,
		RecipeID:  recipeUUID,
		CreatedAt: time.Now(),
	}

	return r.db.WithContext(ctx).Create(&favorite).Error
}

func (r *recipeRepository) RemoveFavorite(ctx context.Context, userID, recipeID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&entities.Favorite{}).Error
}

func (r *recipeRepository) IsFavorited(ctx context.Context, userID, recipeID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Favorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *recipeRepository) AddCartEntry(ctx context.Context, userID, recipeID string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrParseUUID
	}
	recipeUUID, err := uuid.Parse(recipeID)
	if err != nil {
		return domain.ErrParseUUID
	}

	entry := entities.ShoppingCartEntry{
		ID:        uuid.New(),
		UserID:    userUUID,
		RecipeID:  recipeUUID,
		CreatedAt: time.Now(),
	}

	return r.db.WithContext(ctx).Create(&entry).Error
}

func (r *recipeRepository) RemoveCartEntry(ctx context.Context, userID, recipeID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&entities.ShoppingCartEntry{}).Error
}

func (r *recipeRepository) IsInCart(ctx context.Context, userID, recipeID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.ShoppingCartEntry{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetShoppingList aggregates ingredient amounts across every recipe in the
// user's cart, grouped by (name, measurement unit). Amounts are summed as
// float64 with no rounding.
func (r *recipeRepository) GetShoppingList(ctx context.Context, userID string) ([]domain.ShoppingListItem, error) {
	items := make([]domain.ShoppingListItem, 0)

	if err := r.db.WithContext(ctx).
		Model(&entities.RecipeIngredient{}).
		Select("ingredients.name as name, ingredients.measurement_unit as measurement_unit, SUM(recipe_ingredients.amount) as amount").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Joins("JOIN shopping_cart_entries ON shopping_cart_entries.recipe_id = recipe_ingredients.recipe_id").
		Where("shopping_cart_entries.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name asc").
		Scan(&items).Error; err != nil {
		return nil, err
	}

	return items, nil
}
