package handlers

import (
	"errors"
	"foodgram-backend/domain"
	"foodgram-backend/internal/api/presenters"
	"foodgram-backend/pkg/catalog"

	"github.com/gofiber/fiber/v2"
)

type (
	CatalogHandler interface {
		GetIngredients(c *fiber.Ctx) error
		GetIngredientDetail(c *fiber.Ctx) error
		GetTags(c *fiber.Ctx) error
		GetTagDetail(c *fiber.Ctx) error
	}

	catalogHandler struct {
		catalogService catalog.CatalogService
	}
)

func NewCatalogHandler(catalogService catalog.CatalogService) CatalogHandler {
	return &catalogHandler{catalogService: catalogService}
}

func (h *catalogHandler) GetIngredients(c *fiber.Ctx) error {
	res, err := h.catalogService.ListIngredients(c.Context(), c.Query("name", ""))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetIngredients, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetIngredients)
}

func (h *catalogHandler) GetIngredientDetail(c *fiber.Ctx) error {
	res, err := h.catalogService.GetIngredient(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrIngredientNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetIngredients, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetIngredients, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetIngredients)
}

func (h *catalogHandler) GetTags(c *fiber.Ctx) error {
	res, err := h.catalogService.ListTags(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetTags, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetTags)
}

func (h *catalogHandler) GetTagDetail(c *fiber.Ctx) error {
	res, err := h.catalogService.GetTag(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrTagNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetTags, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetTags, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetTags)
}
