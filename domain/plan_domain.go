package domain

import (
	"errors"
	"time"

	"Meal-Planner-Backend/entities"
)

// Meal slots are filled in this fixed order for every day of a plan.
var MealSlots = []string{MealSlotBreakfast, MealSlotLunch, MealSlotDinner}

const (
	MealSlotBreakfast = "breakfast"
	MealSlotLunch     = "lunch"
	MealSlotDinner    = "dinner"

	// SlotBatchMain is the catalog search batch covering lunch and dinner;
	// breakfast is requested as its own batch.
	SlotBatchMain = "main"
)

var (
	MessageSuccessGeneratePlan       = "meal plan generation accepted"
	MessageSuccessGetPlan            = "plan retrieved successfully"
	MessageSuccessGetShoppingList    = "shopping list retrieved successfully"
	MessageSuccessUpdateShoppingList = "shopping list updated successfully"

	MessageFailedGeneratePlan       = "failed to generate meal plan"
	MessageFailedGetPlan            = "failed to retrieve plan"
	MessageFailedGetShoppingList    = "failed to retrieve shopping list"
	MessageFailedUpdateShoppingList = "failed to update shopping list"
	MessageFailedBudgetUnavailable  = "not enough daily points left to generate a new plan today"

	ErrPlanNotFound        = errors.New("plan not found")
	ErrInsufficientRecipes = errors.New("not enough recipes available to fill the plan")
	ErrNoItemsProvided     = errors.New("at least one shopping list item is required")
)

type (
	GeneratePlanRequest struct {
		Days      int    `json:"dias" validate:"omitempty,min=1,max=14"`
		StartDate string `json:"fecha_inicio" validate:"omitempty,datetime=2006-01-02"`
	}

	GeneratePlanResponse struct {
		PlanID          string  `json:"plan_id"`
		State           string  `json:"estado"`
		RemainingPoints float64 `json:"puntos_restantes"`
		PerPlanCap      float64 `json:"puntos_max_por_plan"`
	}

	ShoppingListResponse struct {
		PlanID       string                `json:"plan_id"`
		ShoppingList entities.ShoppingList `json:"lista_compras"`
	}

	ShoppingItemUpdate struct {
		Name      string `json:"nombre" validate:"required"`
		Purchased bool   `json:"comprado"`
	}

	UpdateShoppingListRequest struct {
		Items []ShoppingItemUpdate `json:"items" validate:"required,min=1,dive"`
	}

	UpdateShoppingListResponse struct {
		UpdatedItems      int      `json:"items_actualizados"`
		AddedToPantry     int      `json:"items_agregados_inventario"`
		ItemsNotFound     []string `json:"items_no_encontrados,omitempty"`
		UpdatedAtPlanTime time.Time `json:"fecha_actualizacion"`
	}

	// AssembledWeek is the result of a full assembly run, persisted in one
	// atomic update when the plan finalizes.
	AssembledWeek struct {
		Days         entities.PlanDays
		ShoppingList entities.ShoppingList
	}
)
