package plan

import (
	"context"
	"log"
	"time"

	"Meal-Planner-Backend/domain"
	"Meal-Planner-Backend/entities"
)

type (
	// RecipeCatalog is the slice of the catalog client the assembler needs.
	RecipeCatalog interface {
		SearchRecipesForSlot(ctx context.Context, user *entities.User, slot string, count int) ([]domain.RecipeSummary, float64, error)
		GetRecipeDetail(ctx context.Context, recipeID int) (domain.RecipeDetail, error)
	}

	Assembler interface {
		AssembleWeek(ctx context.Context, user *entities.User, startDate, endDate time.Time) (domain.AssembledWeek, error)
	}

	assembler struct {
		catalog RecipeCatalog
	}
)

func NewAssembler(catalog RecipeCatalog) Assembler {
	return &assembler{catalog: catalog}
}

// AssembleWeek builds every day of the plan in order, filling meal slots
// breakfast, lunch, dinner from two independently budgeted search batches.
// Any shortfall, upfront or during distribution, fails the whole assembly:
// partial plans are never produced.
func (a *assembler) AssembleWeek(ctx context.Context, user *entities.User, startDate, endDate time.Time) (domain.AssembledWeek, error) {
	days := daysInRange(startDate, endDate)
	required := days * len(domain.MealSlots)

	breakfasts, breakfastPoints, err := a.catalog.SearchRecipesForSlot(ctx, user, domain.MealSlotBreakfast, days)
	if err != nil {
		return domain.AssembledWeek{}, err
	}

	mains, mainPoints, err := a.catalog.SearchRecipesForSlot(ctx, user, domain.SlotBatchMain, days*2)
	if err != nil {
		return domain.AssembledWeek{}, err
	}

	if len(breakfasts)+len(mains) < required {
		log.Printf("catalog returned %d of %d required recipes", len(breakfasts)+len(mains), required)
		return domain.AssembledWeek{}, domain.ErrInsufficientRecipes
	}

	breakfastPool := a.fetchDetails(ctx, breakfasts)
	mainPool := a.fetchDetails(ctx, mains)

	planDays := make(entities.PlanDays, 0, days)
	shoppingList := entities.ShoppingList{}

	for d := 0; d < days; d++ {
		date := startDate.AddDate(0, 0, d)
		meals := make([]entities.PlanMeal, 0, len(domain.MealSlots))

		for _, slot := range domain.MealSlots {
			pool := &mainPool
			if slot == domain.MealSlotBreakfast {
				pool = &breakfastPool
			}

			detail, ok := popRecipe(pool)
			if !ok {
				// Skipped detail fetches shrank the pool below what the
				// upfront check approved.
				return domain.AssembledWeek{}, domain.ErrInsufficientRecipes
			}

			missing := ComputeMissing(detail.Ingredients, user.PantryItems)
			meals = append(meals, entities.PlanMeal{
				Slot:               slot,
				RecipeID:           detail.ID,
				RecipeName:         detail.Title,
				MissingIngredients: missing,
			})
			AddToShoppingList(&shoppingList, missing)
		}

		planDays = append(planDays, entities.PlanDay{Date: date, Meals: meals})
	}

	log.Printf("plan assembled with %d days (%.1f points used)", days, breakfastPoints+mainPoints)
	return domain.AssembledWeek{Days: planDays, ShoppingList: shoppingList}, nil
}

// fetchDetails resolves full details for a batch. A failed detail lookup is
// logged and skipped rather than aborting the assembly; the resulting pool
// may come up short, which distribution treats as insufficiency.
func (a *assembler) fetchDetails(ctx context.Context, summaries []domain.RecipeSummary) []domain.RecipeDetail {
	details := make([]domain.RecipeDetail, 0, len(summaries))
	for _, summary := range summaries {
		detail, err := a.catalog.GetRecipeDetail(ctx, summary.ID)
		if err != nil {
			log.Printf("skipping recipe %d: %v", summary.ID, err)
			continue
		}
		details = append(details, detail)
	}
	return details
}

func popRecipe(pool *[]domain.RecipeDetail) (domain.RecipeDetail, bool) {
	if len(*pool) == 0 {
		return domain.RecipeDetail{}, false
	}
	detail := (*pool)[0]
	*pool = (*pool)[1:]
	return detail, true
}

func daysInRange(startDate, endDate time.Time) int {
	start := startDate.Truncate(24 * time.Hour)
	end := endDate.Truncate(24 * time.Hour)
	return int(end.Sub(start).Hours()/24) + 1
}
