package domain

import (
	"errors"
)

var (
	MessageSuccessGetIngredients = "success get ingredients"
	MessageSuccessGetTags        = "success get tags"

	MessageFailedGetIngredients = "failed to get ingredients"
	MessageFailedGetTags        = "failed to get tags"

	ErrIngredientNotFound = errors.New("ingredient not found")
	ErrTagNotFound        = errors.New("tag not found")
)

type (
	IngredientResponse struct {
		ID              string `json:"id"`
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
	}

	TagResponse struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Slug  string `json:"slug"`
		Color string `json:"color"`
	}
)
