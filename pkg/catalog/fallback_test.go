package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"Meal-Planner-Backend/domain"
)

func TestFallbackSlotForRecipe(t *testing.T) {
	// local recipe ids map to their own slot
	assert.Equal(t, domain.MealSlotBreakfast, fallbackSlotForRecipe(-3001))
	assert.Equal(t, domain.MealSlotLunch, fallbackSlotForRecipe(-1001))
	assert.Equal(t, domain.MealSlotDinner, fallbackSlotForRecipe(-2001))

	// unknown ids fall back to parity
	assert.Equal(t, domain.MealSlotLunch, fallbackSlotForRecipe(42))
	assert.Equal(t, domain.MealSlotDinner, fallbackSlotForRecipe(43))
}

func TestFallbackSummariesAlternateMainSlots(t *testing.T) {
	summaries := fallbackSummaries(domain.SlotBatchMain, 4)
	assert.Equal(t, []int{-1001, -2001, -1001, -2001},
		[]int{summaries[0].ID, summaries[1].ID, summaries[2].ID, summaries[3].ID})

	breakfasts := fallbackSummaries(domain.MealSlotBreakfast, 2)
	assert.Equal(t, -3001, breakfasts[0].ID)
	assert.Equal(t, -3001, breakfasts[1].ID)
}
