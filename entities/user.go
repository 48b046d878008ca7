package entities

import (
	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Username  string    `gorm:"uniqueIndex" json:"username"`
	Email     string    `gorm:"uniqueIndex" json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Password  string    `json:"-"`
	Role      string    `gorm:"default:user" json:"role"`

	Recipes []*Recipe `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Timestamp
}
