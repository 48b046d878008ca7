package handlers

import (
	"errors"
	"foodgram-backend/domain"
	"foodgram-backend/internal/api/presenters"
	"foodgram-backend/pkg/subscription"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type (
	SubscriptionHandler interface {
		Subscribe(c *fiber.Ctx) error
		Unsubscribe(c *fiber.Ctx) error
		GetSubscriptions(c *fiber.Ctx) error
	}

	subscriptionHandler struct {
		subscriptionService subscription.SubscriptionService
	}
)

func NewSubscriptionHandler(subscriptionService subscription.SubscriptionService) SubscriptionHandler {
	return &subscriptionHandler{subscriptionService: subscriptionService}
}

func parseRecipesLimit(c *fiber.Ctx) int {
	recipesLimit, err := strconv.Atoi(c.Query("recipes_limit", "0"))
	if err != nil || recipesLimit < 0 {
		return 0
	}
	return recipesLimit
}

func (h *subscriptionHandler) Subscribe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	authorID := c.Params("id")

	res, err := h.subscriptionService.FollowAuthor(c.Context(), userID, authorID, parseRecipesLimit(c))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedSubscribe, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSubscribe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSubscribe)
}

func (h *subscriptionHandler) Unsubscribe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	authorID := c.Params("id")

	if err := h.subscriptionService.UnfollowAuthor(c.Context(), userID, authorID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedUnsubscribe, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUnsubscribe, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUnsubscribe)
}

func (h *subscriptionHandler) GetSubscriptions(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	page, limit := parsePagination(c)

	authors, count, err := h.subscriptionService.ListFollowing(c.Context(), userID, page, limit, parseRecipesLimit(c))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetSubscriptions, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"authors": authors,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetSubscriptions)
}
