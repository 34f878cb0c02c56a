package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"Meal-Planner-Backend/domain"
	"Meal-Planner-Backend/internal/api/presenters"
	"Meal-Planner-Backend/pkg/catalog"
)

type (
	RecipeHandler interface {
		SearchRecipes(c *fiber.Ctx) error
		GetRecipeDetail(c *fiber.Ctx) error
		SearchByIngredients(c *fiber.Ctx) error
	}

	recipeHandler struct {
		catalogService catalog.CatalogService
	}
)

func NewRecipeHandler(catalogService catalog.CatalogService) RecipeHandler {
	return &recipeHandler{catalogService: catalogService}
}

// SearchRecipes proxies a free-text catalog search for interactive browsing.
func (h *recipeHandler) SearchRecipes(c *fiber.Ctx) error {
	req := new(domain.RecipeSearchRequest)
	if err := c.QueryParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedProcessRequest, err)
	}

	res, err := h.catalogService.SearchRaw(c.Context(), *req)
	if err != nil {
		if errors.Is(err, domain.ErrCatalogUnavailable) {
			return presenters.ErrorResponse(c, fiber.StatusBadGateway, domain.MessageFailedSearchRecipes, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSearchRecipes, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSearchRecipes)
}

func (h *recipeHandler) GetRecipeDetail(c *fiber.Ctx) error {
	recipeID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedInvalidRecipeID, err)
	}

	res, err := h.catalogService.DetailRaw(c.Context(), recipeID)
	if err != nil {
		if errors.Is(err, domain.ErrCatalogUnavailable) {
			return presenters.ErrorResponse(c, fiber.StatusBadGateway, domain.MessageFailedGetRecipeDetail, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetRecipeDetail, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipeDetail)
}

func (h *recipeHandler) SearchByIngredients(c *fiber.Ctx) error {
	ingredients := c.Query("ingredients", "")
	if ingredients == "" {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedIngredientsNeeded, nil)
	}

	number, err := strconv.Atoi(c.Query("number", "10"))
	if err != nil || number < 1 {
		number = 10
	}

	res, err := h.catalogService.ByIngredientsRaw(c.Context(), ingredients, number)
	if err != nil {
		if errors.Is(err, domain.ErrCatalogUnavailable) {
			return presenters.ErrorResponse(c, fiber.StatusBadGateway, domain.MessageFailedSearchRecipes, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSearchRecipes, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSearchRecipes)
}
