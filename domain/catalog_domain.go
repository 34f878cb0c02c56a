package domain

import (
	"errors"
)

var (
	MessageSuccessSearchRecipes    = "success search recipes"
	MessageSuccessGetRecipeDetail  = "success get recipe detail"
	MessageFailedSearchRecipes     = "failed to search recipes"
	MessageFailedGetRecipeDetail   = "failed to get recipe detail"
	MessageFailedInvalidRecipeID   = "invalid recipe id"
	MessageFailedIngredientsNeeded = "a comma separated ingredient list is required"

	ErrBudgetExhausted    = errors.New("daily recipe API point budget exhausted")
	ErrCatalogUnavailable = errors.New("recipe catalog unavailable")
)

type (
	// RecipeSummary is what catalog search returns. Transient, cached.
	RecipeSummary struct {
		ID          int          `json:"id"`
		Title       string       `json:"title"`
		Image       string       `json:"image"`
		ReadyTime   int          `json:"ready_in_minutes,omitempty"`
		Servings    int          `json:"servings,omitempty"`
		SourceURL   string       `json:"source_url,omitempty"`
		Vegetarian  bool         `json:"vegetarian,omitempty"`
		Vegan       bool         `json:"vegan,omitempty"`
		GlutenFree  bool         `json:"gluten_free,omitempty"`
		DairyFree   bool         `json:"dairy_free,omitempty"`
		Ingredients []Ingredient `json:"ingredients"`
	}

	// RecipeDetail adds full instructions. Cached separately from summaries
	// because detail lookups are billed separately.
	RecipeDetail struct {
		RecipeSummary
		Instructions string            `json:"instructions,omitempty"`
		Steps        []InstructionStep `json:"steps,omitempty"`
	}

	Ingredient struct {
		Name   string  `json:"name"`
		Amount float64 `json:"amount"`
		Unit   string  `json:"unit"`
	}

	InstructionStep struct {
		Number      int      `json:"number"`
		Text        string   `json:"step"`
		Ingredients []string `json:"ingredients,omitempty"`
		Equipment   []string `json:"equipment,omitempty"`
	}

	RecipeSearchRequest struct {
		Query        string `query:"query"`
		Diet         string `query:"diet"`
		Intolerances string `query:"intolerances"`
		Type         string `query:"type"`
		MaxReadyTime int    `query:"maxReadyTime"`
		Number       int    `query:"number"`
	}
)
