package subscription

import (
	"context"
	"foodgram-backend/entities"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	SubscriptionRepository interface {
		AddFollow(ctx context.Context, userID, authorID string) error
		RemoveFollow(ctx context.Context, userID, authorID string) error
		IsFollowing(ctx context.Context, userID, authorID string) (bool, error)
		GetFollowedAuthors(ctx context.Context, userID string, page, limit int) ([]*entities.User, int64, error)
		CountRecipesByAuthor(ctx context.Context, authorID string) (int64, error)
		GetRecipesByAuthor(ctx context.Context, authorID string, page, limit int) ([]*entities.Recipe, error)
	}

	subscriptionRepository struct {
		db *gorm.DB
	}
)

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) AddFollow(ctx context.Context, userID, authorID string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return err
	}
	authorUUID, err := uuid.Parse(authorID)
	if err != nil {
		return err
	}

	follow := entities.Follow{
		ID:        uuid.New(),
		UserID:    userUUID,
		AuthorID:  authorUUID,
		CreatedAt: time.Now(),
	}

	return r.db.WithContext(ctx).Create(&follow).Error
}

func (r *subscriptionRepository) RemoveFollow(ctx context.Context, userID, authorID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&entities.Follow{}).Error
}

func (r *subscriptionRepository) IsFollowing(ctx context.Context, userID, authorID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *subscriptionRepository) GetFollowedAuthors(ctx context.Context, userID string, page, limit int) ([]*entities.User, int64, error) {
	var authors []*entities.User
	var count int64
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).
		Model(&entities.User{}).
		Joins("JOIN follows ON follows.author_id = users.id").
		Where("follows.user_id = ?", userID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Joins("JOIN follows ON follows.author_id = users.id").
		Where("follows.user_id = ?", userID).
		Offset(offset).
		Limit(limit).
		Order("follows.created_at desc").
		Find(&authors).Error; err != nil {
		return nil, 0, err
	}

	return authors, count, nil
}

func (r *subscriptionRepository) CountRecipesByAuthor(ctx context.Context, authorID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Where("author_id = ?", authorID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *subscriptionRepository) GetRecipesByAuthor(ctx context.Context, authorID string, page, limit int) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Offset(offset).
		Limit(limit).
		Order("created_at desc").
		Find(&recipes).Error; err != nil {
		return nil, err
	}

	return recipes, nil
}
