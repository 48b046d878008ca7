package domain

import (
	"errors"
)

// DefaultFeedRecipesLimit is the page size for the recipes embedded in each
// subscription feed entry when the caller does not pass recipes_limit.
const DefaultFeedRecipesLimit = 1

var (
	MessageSuccessSubscribe        = "subscribed to author"
	MessageSuccessUnsubscribe      = "unsubscribed from author"
	MessageSuccessGetSubscriptions = "success get subscriptions"

	MessageFailedSubscribe        = "failed to subscribe to author"
	MessageFailedUnsubscribe      = "failed to unsubscribe from author"
	MessageFailedGetSubscriptions = "failed to get subscriptions"

	ErrSelfFollow       = errors.New("cannot subscribe to yourself")
	ErrAlreadyFollowing = errors.New("already subscribed to this author")
	ErrNotFollowing     = errors.New("not subscribed to this author")
)

type (
	// FeedAuthor is a followed author annotated with their recipe count and
	// one page of their recipes. IsSubscribed is tautologically true here but
	// kept for uniformity with the general user read shape.
	FeedAuthor struct {
		UserResponse
		RecipesCount int64    `json:"recipes_count"`
		Recipes      []Recipe `json:"recipes"`
	}
)
