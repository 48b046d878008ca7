package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessSaveRecipe      = "recipe saved successfully"
	MessageSuccessDeleteRecipe    = "recipe deleted successfully"
	MessageSuccessFavorite        = "recipe added to favorites"
	MessageSuccessUnfavorite      = "recipe removed from favorites"
	MessageSuccessAddToCart       = "recipe added to shopping cart"
	MessageSuccessRemoveFromCart  = "recipe removed from shopping cart"
	MessageSuccessGetShoppingList = "success get shopping list"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedSaveRecipe      = "failed to save recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"
	MessageFailedFavorite        = "failed to add recipe to favorites"
	MessageFailedUnfavorite      = "failed to remove recipe from favorites"
	MessageFailedAddToCart       = "failed to add recipe to shopping cart"
	MessageFailedRemoveFromCart  = "failed to remove recipe from shopping cart"
	MessageFailedGetShoppingList = "failed to get shopping list"

	ErrRecipeNotFound     = errors.New("recipe not found")
	ErrNotRecipeAuthor    = errors.New("only the author can modify this recipe")
	ErrInvalidCookingTime = errors.New("cooking time must be an integer greater than or equal to 1")
	ErrNoIngredients      = errors.New("recipe must contain at least one ingredient")
	ErrInvalidAmount      = errors.New("ingredient amount must not be negative")
	ErrAlreadyFavorited   = errors.New("recipe already in favorites")
	ErrNotFavorited       = errors.New("recipe is not in favorites")
	ErrAlreadyInCart      = errors.New("recipe already in shopping cart")
	ErrNotInCart          = errors.New("recipe is not in shopping cart")
)

type (
	RecipeIngredientRequest struct {
		ID     string  `json:"id" validate:"required,uuid"`
		Amount float64 `json:"amount" validate:"gte=0"`
	}

	RecipeRequest struct {
		Name        string                    `json:"name" validate:"required,max=200"`
		Text        string                    `json:"text" validate:"required"`
		Image       string                    `json:"image,omitempty"`
		CookingTime int                       `json:"cooking_time"`
		Ingredients []RecipeIngredientRequest `json:"ingredients" validate:"required,min=1,dive"`
		Tags        []string                  `json:"tags" validate:"dive,uuid"`
	}

	// RecipeFilter carries the viewer-scoped list filters. The boolean
	// filters require an authenticated viewer.
	RecipeFilter struct {
		TagSlugs       []string
		AuthorID       string
		Favorited      bool
		InShoppingCart bool
	}

	Recipe struct {
		ID          string    `json:"id"`
		Name        string    `json:"name"`
		ImageURL    string    `json:"image_url,omitempty"`
		CookingTime int       `json:"cooking_time"`
		CreatedAt   time.Time `json:"created_at"`
	}

	RecipeIngredientResponse struct {
		ID              string  `json:"id"`
		Name            string  `json:"name"`
		MeasurementUnit string  `json:"measurement_unit"`
		Amount          float64 `json:"amount"`
	}

	RecipeDetail struct {
		Recipe
		Text             string                     `json:"text"`
		Author           UserResponse               `json:"author"`
		Ingredients      []RecipeIngredientResponse `json:"ingredients"`
		Tags             []TagResponse              `json:"tags"`
		IsFavorited      bool                       `json:"is_favorited"`
		IsInShoppingCart bool                       `json:"is_in_shopping_cart"`
	}

	ShoppingListItem struct {
		Name            string  `json:"name"`
		MeasurementUnit string  `json:"measurement_unit"`
		Amount          float64 `json:"amount"`
	}
)
