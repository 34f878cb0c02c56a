package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"Meal-Planner-Backend/domain"
	"Meal-Planner-Backend/internal/api/presenters"
	"Meal-Planner-Backend/pkg/plan"
)

type (
	PlanHandler interface {
		GeneratePlan(c *fiber.Ctx) error
		GetPlan(c *fiber.Ctx) error
		GetShoppingList(c *fiber.Ctx) error
		UpdateShoppingList(c *fiber.Ctx) error
	}

	planHandler struct {
		planService plan.PlanService
		validator   *validator.Validate
	}
)

func NewPlanHandler(planService plan.PlanService, validator *validator.Validate) PlanHandler {
	return &planHandler{
		planService: planService,
		validator:   validator,
	}
}

// GeneratePlan accepts the request and returns 202 immediately; the plan is
// assembled in the background and polled via GetPlan.
func (h *planHandler) GeneratePlan(c *fiber.Ctx) error {
	userID := c.Params("user_id")
	req := new(domain.GeneratePlanRequest)

	if len(c.Body()) > 0 {
		if err := c.BodyParser(req); err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
		}
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGeneratePlan, err)
	}

	res, err := h.planService.GeneratePlan(c.Context(), userID, *req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrBudgetExhausted):
			return presenters.ErrorResponse(c, fiber.StatusTooManyRequests, domain.MessageFailedBudgetUnavailable, err)
		case errors.Is(err, domain.ErrUserNotFound):
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGeneratePlan, err)
		case errors.Is(err, domain.ErrParseUUID):
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGeneratePlan, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGeneratePlan, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusAccepted, domain.MessageSuccessGeneratePlan)
}

func (h *planHandler) GetPlan(c *fiber.Ctx) error {
	planID := c.Params("plan_id")

	res, err := h.planService.GetPlan(c.Context(), planID)
	if err != nil {
		if errors.Is(err, domain.ErrPlanNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetPlan, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetPlan, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetPlan)
}

func (h *planHandler) GetShoppingList(c *fiber.Ctx) error {
	planID := c.Params("plan_id")

	res, err := h.planService.GetShoppingList(c.Context(), planID)
	if err != nil {
		if errors.Is(err, domain.ErrPlanNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetShoppingList, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetShoppingList, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetShoppingList)
}

func (h *planHandler) UpdateShoppingList(c *fiber.Ctx) error {
	planID := c.Params("plan_id")
	req := new(domain.UpdateShoppingListRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateShoppingList, err)
	}

	res, err := h.planService.UpdateShoppingListItems(c.Context(), planID, *req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPlanNotFound):
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedUpdateShoppingList, err)
		case errors.Is(err, domain.ErrNoItemsProvided):
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateShoppingList, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateShoppingList, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateShoppingList)
}
