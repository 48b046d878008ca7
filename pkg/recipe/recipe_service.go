package recipe

import (
	"context"
	"errors"
	"fmt"
	"foodgram-backend/domain"
	"foodgram-backend/entities"
	"foodgram-backend/internal/utils/storage"
	"foodgram-backend/pkg/catalog"
	"foodgram-backend/pkg/subscription"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RecipeService interface {
		CreateRecipe(ctx context.Context, req domain.RecipeRequest, authorID string) (domain.RecipeDetail, error)
		UpdateRecipe(ctx context.Context, recipeID string, req domain.RecipeRequest, userID string) (domain.RecipeDetail, error)
		DeleteRecipe(ctx context.Context, recipeID, userID string) error
		GetRecipeDetail(ctx context.Context, recipeID, viewerID string) (domain.RecipeDetail, error)
		GetRecipes(ctx context.Context, filter domain.RecipeFilter, viewerID string, page, limit int) ([]domain.RecipeDetail, int64, error)

		FavoriteRecipe(ctx context.Context, recipeID, userID string) error
		UnfavoriteRecipe(ctx context.Context, recipeID, userID string) error
		AddToCart(ctx context.Context, recipeID, userID string) error
		RemoveFromCart(ctx context.Context, recipeID, userID string) error

		BuildShoppingList(ctx context.Context, userID string) ([]domain.ShoppingListItem, error)
		RenderShoppingList(ctx context.Context, userID string) (string, error)
	}

	recipeService struct {
		recipeRepository       RecipeRepository
		catalogRepository      catalog.CatalogRepository
		subscriptionRepository subscription.SubscriptionRepository
		images                 storage.ImageStorage
	}
)

func NewRecipeService(
	recipeRepository RecipeRepository,
	catalogRepository catalog.CatalogRepository,
	subscriptionRepository subscription.SubscriptionRepository,
	images storage.ImageStorage,
) RecipeService {
	return &recipeService{
		recipeRepository:       recipeRepository,
		catalogRepository:      catalogRepository,
		subscriptionRepository: subscriptionRepository,
		images:                 images,
	}
}

// resolveRelations validates the write request and resolves every referenced
// ingredient and tag through the catalog before any row is written.
func (s *recipeService) resolveRelations(ctx context.Context, req domain.RecipeRequest) ([]*entities.RecipeIngredient, []*entities.RecipeTag, error) {
	if req.CookingTime < 1 {
		return nil, nil, domain.ErrInvalidCookingTime
	}
	if len(req.Ingredients) == 0 {
		return nil, nil, domain.ErrNoIngredients
	}

	ingredients := make([]*entities.RecipeIngredient, 0, len(req.Ingredients))
	for _, item := range req.Ingredients {
		if item.Amount < 0 {
			return nil, nil, domain.ErrInvalidAmount
		}
		ingredient, err := s.catalogRepository.GetIngredientByID(ctx, item.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, domain.ErrIngredientNotFound
			}
			return nil, nil, err
		}
		ingredients = append(ingredients, &entities.RecipeIngredient{
			IngredientID: ingredient.ID,
			Amount:       item.Amount,
		})
	}

	tags := make([]*entities.RecipeTag, 0, len(req.Tags))
	for _, tagID := range req.Tags {
		tag, err := s.catalogRepository.GetTagByID(ctx, tagID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, domain.ErrTagNotFound
			}
			return nil, nil, err
		}
		tags = append(tags, &entities.RecipeTag{TagID: tag.ID})
	}

	return ingredients, tags, nil
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.RecipeRequest, authorID string) (domain.RecipeDetail, error) {
	authorUUID, err := uuid.Parse(authorID)
	if err != nil {
		return domain.RecipeDetail{}, domain.ErrParseUUID
	}

	ingredients, tags, err := s.resolveRelations(ctx, req)
	if err != nil {
		return domain.RecipeDetail{}, err
	}

	recipe := &entities.Recipe{
		ID:          uuid.New(),
		AuthorID:    authorUUID,
		Name:        req.Name,
		Text:        req.Text,
		CookingTime: req.CookingTime,
	}

	if req.Image != "" {
		imageURL, err := s.images.UploadBase64Image(ctx, "recipes", req.Image)
		if err != nil {
			return domain.RecipeDetail{}, err
		}
		recipe.ImageURL = imageURL
	}

	if err := s.recipeRepository.CreateRecipe(ctx, recipe, ingredients, tags); err != nil {
		return domain.RecipeDetail{}, err
	}

	return s.GetRecipeDetail(ctx, recipe.ID.String(), authorID)
}

func (s *recipeService) UpdateRecipe(ctx context.Context, recipeID string, req domain.RecipeRequest, userID string) (domain.RecipeDetail, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeDetail{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeDetail{}, err
	}

	// Author is fixed at creation; only the author may rewrite the recipe.
	if recipe.AuthorID.String() != userID {
		return domain.RecipeDetail{}, domain.ErrNotRecipeAuthor
	}

	ingredients, tags, err := s.resolveRelations(ctx, req)
	if err != nil {
		return domain.RecipeDetail{}, err
	}

	recipe.Name = req.Name
	recipe.Text = req.Text
	recipe.CookingTime = req.CookingTime
	if req.Image != "" {
		imageURL, err := s.images.UploadBase64Image(ctx, "recipes", req.Image)
		if err != nil {
			return domain.RecipeDetail{}, err
		}
		recipe.ImageURL = imageURL
	}
	recipe.Ingredients = nil
	recipe.Tags = nil
	recipe.Author = nil

	if err := s.recipeRepository.UpdateRecipe(ctx, recipe, ingredients, tags); err != nil {
		return domain.RecipeDetail{}, err
	}

	return s.GetRecipeDetail(ctx, recipeID, userID)
}

func (s *recipeService) DeleteRecipe(ctx context.Context, recipeID, userID string) error {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}

	if recipe.AuthorID.String() != userID {
		return domain.ErrNotRecipeAuthor
	}

	return s.recipeRepository.DeleteRecipe(ctx, recipeID)
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, recipeID, viewerID string) (domain.RecipeDetail, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeDetail{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeDetail{}, err
	}

	return s.toRecipeDetail(ctx, recipe, viewerID)
}

func (s *recipeService) GetRecipes(ctx context.Context, filter domain.RecipeFilter, viewerID string, page, limit int) ([]domain.RecipeDetail, int64, error) {
	recipes, count, err := s.recipeRepository.GetRecipes(ctx, filter, viewerID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	res := make([]domain.RecipeDetail, 0, len(recipes))
	for _, recipe := range recipes {
		detail, err := s.toRecipeDetail(ctx, recipe, viewerID)
		if err != nil {
			return nil, 0, err
		}
		res = append(res, detail)
	}

	return res, count, nil
}

// toRecipeDetail builds the full read shape: ingredients resolved to
// (name, amount, unit), tags as full records, and the viewer-scoped flags
// computed from the relation tables on every read.
func (s *recipeService) toRecipeDetail(ctx context.Context, recipe *entities.Recipe, viewerID string) (domain.RecipeDetail, error) {
	detail := domain.RecipeDetail{
		Recipe: domain.Recipe{
			ID:          recipe.ID.String(),
			Name:        recipe.Name,
			ImageURL:    recipe.ImageURL,
			CookingTime: recipe.CookingTime,
			CreatedAt:   recipe.CreatedAt,
		},
		Text:        recipe.Text,
		Ingredients: make([]domain.RecipeIngredientResponse, 0, len(recipe.Ingredients)),
		Tags:        make([]domain.TagResponse, 0, len(recipe.Tags)),
	}

	for _, item := range recipe.Ingredients {
		if item.Ingredient == nil {
			continue
		}
		detail.Ingredients = append(detail.Ingredients, domain.RecipeIngredientResponse{
			ID:              item.Ingredient.ID.String(),
			Name:            item.Ingredient.Name,
			MeasurementUnit: item.Ingredient.MeasurementUnit,
			Amount:          item.Amount,
		})
	}

	for _, item := range recipe.Tags {
		if item.Tag == nil {
			continue
		}
		detail.Tags = append(detail.Tags, domain.TagResponse{
			ID:    item.Tag.ID.String(),
			Name:  item.Tag.Name,
			Slug:  item.Tag.Slug,
			Color: item.Tag.Color,
		})
	}

	if recipe.Author != nil {
		detail.Author = domain.UserResponse{
			ID:        recipe.Author.ID.String(),
			Username:  recipe.Author.Username,
			Email:     recipe.Author.Email,
			FirstName: recipe.Author.FirstName,
			LastName:  recipe.Author.LastName,
		}
	}

	if viewerID == "" {
		return detail, nil
	}

	isFavorited, err := s.recipeRepository.IsFavorited(ctx, viewerID, recipe.ID.String())
	if err != nil {
		return domain.RecipeDetail{}, err
	}
	detail.IsFavorited = isFavorited

	isInCart, err := s.recipeRepository.IsInCart(ctx, viewerID, recipe.ID.String())
	if err != nil {
		return domain.RecipeDetail{}, err
	}
	detail.IsInShoppingCart = isInCart

	isSubscribed, err := s.subscriptionRepository.IsFollowing(ctx, viewerID, recipe.AuthorID.String())
	if err != nil {
		return domain.RecipeDetail{}, err
	}
	detail.Author.IsSubscribed = isSubscribed

	return detail, nil
}

func (s *recipeService) requireRecipe(ctx context.Context, recipeID string) error {
	if _, err := s.recipeRepository.GetRecipeByID(ctx, recipeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}
	return nil
}

func (s *recipeService) FavoriteRecipe(ctx context.Context, recipeID, userID string) error {
	if err := s.requireRecipe(ctx, recipeID); err != nil {
		return err
	}

	isFavorited, err := s.recipeRepository.IsFavorited(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	if isFavorited {
		return domain.ErrAlreadyFavorited
	}

	if err := s.recipeRepository.AddFavorite(ctx, userID, recipeID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrRelationConflict
		}
		return err
	}
	return nil
}

func (s *recipeService) UnfavoriteRecipe(ctx context.Context, recipeID, userID string) error {
	if err := s.requireRecipe(ctx, recipeID); err != nil {
		return err
	}

	isFavorited, err := s.recipeRepository.IsFavorited(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	if !isFavorited {
		return domain.ErrNotFavorited
	}

	return s.recipeRepository.RemoveFavorite(ctx, userID, recipeID)
}

func (s *recipeService) AddToCart(ctx context.Context, recipeID, userID string) error {
	if err := s.requireRecipe(ctx, recipeID); err != nil {
		return err
	}

	isInCart, err := s.recipeRepository.IsInCart(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	if isInCart {
		return domain.ErrAlreadyInCart
	}

	if err := s.recipeRepository.AddCartEntry(ctx, userID, recipeID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrRelationConflict
		}
		return err
	}
	return nil
}

func (s *recipeService) RemoveFromCart(ctx context.Context, recipeID, userID string) error {
	if err := s.requireRecipe(ctx, recipeID); err != nil {
		return err
	}

	isInCart, err := s.recipeRepository.IsInCart(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	if !isInCart {
		return domain.ErrNotInCart
	}

	return s.recipeRepository.RemoveCartEntry(ctx, userID, recipeID)
}

func (s *recipeService) BuildShoppingList(ctx context.Context, userID string) ([]domain.ShoppingListItem, error) {
	return s.recipeRepository.GetShoppingList(ctx, userID)
}

// RenderShoppingList renders the aggregated list as downloadable plain text.
func (s *recipeService) RenderShoppingList(ctx context.Context, userID string) (string, error) {
	items, err := s.recipeRepository.GetShoppingList(ctx, userID)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("Shopping list:\n")
	for _, item := range items {
		b.WriteString(fmt.Sprintf(
			"%s (%s) - %s\n",
			item.Name,
			item.MeasurementUnit,
			strconv.FormatFloat(item.Amount, 'f', -1, 64),
		))
	}

	return b.String(), nil
}
