package entities

import (
	"github.com/google/uuid"
)

type Recipe struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	AuthorID    uuid.UUID `gorm:"index" json:"author_id"`
	Name        string    `json:"name"`
	Text        string    `gorm:"type:text" json:"text"`
	ImageURL    string    `json:"image_url,omitempty"`
	CookingTime int       `json:"cooking_time"`

	Author      *User               `gorm:"foreignKey:AuthorID"`
	Ingredients []*RecipeIngredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Tags        []*RecipeTag        `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Timestamp
}

// RecipeIngredient rows live and die with their recipe: every recipe write
// deletes the full set and reinserts it inside one transaction.
type RecipeIngredient struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RecipeID     uuid.UUID `gorm:"index" json:"recipe_id"`
	IngredientID uuid.UUID `json:"ingredient_id"`
	Amount       float64   `json:"amount"`

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID"`
}

type RecipeTag struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RecipeID uuid.UUID `gorm:"index" json:"recipe_id"`
	TagID    uuid.UUID `json:"tag_id"`

	Tag *Tag `gorm:"foreignKey:TagID"`
}
