package migration

import (
	"fmt"
	"foodgram-backend/entities"
	"log"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Ingredient{}, &entities.Tag{}); err != nil {
		log.Fatalf("Error migrating catalog database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Recipe{}, &entities.RecipeIngredient{}, &entities.RecipeTag{}); err != nil {
		log.Fatalf("Error migrating recipe database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Follow{}, &entities.Favorite{}, &entities.ShoppingCartEntry{}); err != nil {
		log.Fatalf("Error migrating relation database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
