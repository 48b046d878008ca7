package entities

import (
	"github.com/google/uuid"
)

type Ingredient struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name            string    `gorm:"index" json:"name"`
	MeasurementUnit string    `json:"measurement_unit"`
}

type Tag struct {
	ID    uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name  string    `json:"name"`
	Slug  string    `gorm:"uniqueIndex" json:"slug"`
	Color string    `gorm:"default:#FF0000" json:"color"`
}
