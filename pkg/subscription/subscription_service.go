package subscription

import (
	"context"
	"errors"
	"foodgram-backend/domain"
	"foodgram-backend/entities"
	"foodgram-backend/pkg/user"

	"gorm.io/gorm"
)

type (
	SubscriptionService interface {
		FollowAuthor(ctx context.Context, userID, authorID string, recipesLimit int) (domain.FeedAuthor, error)
		UnfollowAuthor(ctx context.Context, userID, authorID string) error
		IsFollowing(ctx context.Context, userID, authorID string) (bool, error)
		ListFollowing(ctx context.Context, userID string, page, limit, recipesLimit int) ([]domain.FeedAuthor, int64, error)
	}

	subscriptionService struct {
		subscriptionRepository SubscriptionRepository
		userRepository         user.UserRepository
	}
)

func NewSubscriptionService(subscriptionRepository SubscriptionRepository, userRepository user.UserRepository) SubscriptionService {
	return &subscriptionService{
		subscriptionRepository: subscriptionRepository,
		userRepository:         userRepository,
	}
}

func (s *subscriptionService) FollowAuthor(ctx context.Context, userID, authorID string, recipesLimit int) (domain.FeedAuthor, error) {
	if userID == authorID {
		return domain.FeedAuthor{}, domain.ErrSelfFollow
	}

	author, err := s.userRepository.GetUserByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.FeedAuthor{}, domain.ErrUserNotFound
		}
		return domain.FeedAuthor{}, err
	}

	isFollowing, err := s.subscriptionRepository.IsFollowing(ctx, userID, authorID)
	if err != nil {
		return domain.FeedAuthor{}, err
	}
	if isFollowing {
		return domain.FeedAuthor{}, domain.ErrAlreadyFollowing
	}

	if err := s.subscriptionRepository.AddFollow(ctx, userID, authorID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.FeedAuthor{}, domain.ErrRelationConflict
		}
		return domain.FeedAuthor{}, err
	}

	return s.toFeedAuthor(ctx, author, recipesLimit)
}

func (s *subscriptionService) UnfollowAuthor(ctx context.Context, userID, authorID string) error {
	if _, err := s.userRepository.GetUserByID(ctx, authorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	isFollowing, err := s.subscriptionRepository.IsFollowing(ctx, userID, authorID)
	if err != nil {
		return err
	}
	if !isFollowing {
		return domain.ErrNotFollowing
	}

	return s.subscriptionRepository.RemoveFollow(ctx, userID, authorID)
}

func (s *subscriptionService) IsFollowing(ctx context.Context, userID, authorID string) (bool, error) {
	return s.subscriptionRepository.IsFollowing(ctx, userID, authorID)
}

// ListFollowing returns every author the user follows, each annotated with
// their recipe count and the first page of their recipes. recipesLimit <= 0
// falls back to the configured feed default.
func (s *subscriptionService) ListFollowing(ctx context.Context, userID string, page, limit, recipesLimit int) ([]domain.FeedAuthor, int64, error) {
	authors, count, err := s.subscriptionRepository.GetFollowedAuthors(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	res := make([]domain.FeedAuthor, 0, len(authors))
	for _, author := range authors {
		feedAuthor, err := s.toFeedAuthor(ctx, author, recipesLimit)
		if err != nil {
			return nil, 0, err
		}
		res = append(res, feedAuthor)
	}

	return res, count, nil
}

func (s *subscriptionService) toFeedAuthor(ctx context.Context, author *entities.User, recipesLimit int) (domain.FeedAuthor, error) {
	if recipesLimit <= 0 {
		recipesLimit = domain.DefaultFeedRecipesLimit
	}

	recipesCount, err := s.subscriptionRepository.CountRecipesByAuthor(ctx, author.ID.String())
	if err != nil {
		return domain.FeedAuthor{}, err
	}

	recipes, err := s.subscriptionRepository.GetRecipesByAuthor(ctx, author.ID.String(), 1, recipesLimit)
	if err != nil {
		return domain.FeedAuthor{}, err
	}

	feedRecipes := make([]domain.Recipe, 0, len(recipes))
	for _, recipe := range recipes {
		feedRecipes = append(feedRecipes, domain.Recipe{
			ID:          recipe.ID.String(),
			Name:        recipe.Name,
			ImageURL:    recipe.ImageURL,
			CookingTime: recipe.CookingTime,
			CreatedAt:   recipe.CreatedAt,
		})
	}

	return domain.FeedAuthor{
		UserResponse: domain.UserResponse{
			ID:        author.ID.String(),
			Username:  author.Username,
			Email:     author.Email,
			FirstName: author.FirstName,
			LastName:  author.LastName,
			// Tautologically true in this listing, kept for shape uniformity.
			IsSubscribed: true,
		},
		RecipesCount: recipesCount,
		Recipes:      feedRecipes,
	}, nil
}
