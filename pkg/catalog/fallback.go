package catalog

import (
	"Meal-Planner-Backend/domain"
)

// Local recipes substituted when the catalog is unreachable or a detail
// lookup fails. One fixed recipe per meal slot, negative IDs so they can
// never collide with catalog identifiers.
var fallbackRecipes = map[string]domain.RecipeDetail{
	domain.MealSlotBreakfast: {
		RecipeSummary: domain.RecipeSummary{
			ID:         -3001,
			Title:      "Avena con Frutas y Miel",
			ReadyTime:  10,
			Servings:   2,
			Vegetarian: true,
			GlutenFree: true,
			Ingredients: []domain.Ingredient{
				{Name: "avena", Amount: 1, Unit: "cup"},
				{Name: "leche", Amount: 2, Unit: "cups"},
				{Name: "banana", Amount: 1, Unit: "medium"},
				{Name: "miel", Amount: 2, Unit: "tablespoons"},
				{Name: "canela", Amount: 0.5, Unit: "teaspoon"},
			},
		},
		Steps: []domain.InstructionStep{
			{Number: 1, Text: "Hervir la leche y agregar la avena, cocinar a fuego bajo por 5 minutos", Ingredients: []string{"avena", "leche"}, Equipment: []string{"olla"}},
			{Number: 2, Text: "Servir con banana en rodajas, miel y una pizca de canela", Ingredients: []string{"banana", "miel", "canela"}},
		},
	},
	domain.MealSlotLunch: {
		RecipeSummary: domain.RecipeSummary{
			ID:         -1001,
			Title:      "Ensalada Mediterránea de Quinoa",
			ReadyTime:  25,
			Servings:   2,
			Vegetarian: true,
			Vegan:      true,
			GlutenFree: true,
			DairyFree:  true,
			Ingredients: []domain.Ingredient{
				{Name: "quinoa", Amount: 1, Unit: "cup"},
				{Name: "pepino", Amount: 1, Unit: "medium"},
				{Name: "tomates cherry", Amount: 1, Unit: "cup"},
				{Name: "cebolla roja", Amount: 0.5, Unit: "small"},
				{Name: "aceitunas kalamata", Amount: 0.5, Unit: "cup"},
				{Name: "aceite de oliva", Amount: 3, Unit: "tablespoons"},
				{Name: "jugo de limón", Amount: 2, Unit: "tablespoons"},
			},
		},
		Steps: []domain.InstructionStep{
			{Number: 1, Text: "Cocinar quinoa según instrucciones del paquete y dejar enfriar", Ingredients: []string{"quinoa"}, Equipment: []string{"olla"}},
			{Number: 2, Text: "Picar pepino, tomates y cortar finamente la cebolla roja", Ingredients: []string{"pepino", "tomates cherry", "cebolla roja"}, Equipment: []string{"tabla de cortar", "cuchillo de chef"}},
			{Number: 3, Text: "Mezclar todo con las aceitunas, el aceite de oliva y el jugo de limón", Ingredients: []string{"aceitunas kalamata", "aceite de oliva", "jugo de limón"}},
		},
	},
	domain.MealSlotDinner: {
		RecipeSummary: domain.RecipeSummary{
			ID:         -2001,
			Title:      "Salmón con Mantequilla de Ajo y Espárragos",
			ReadyTime:  25,
			Servings:   2,
			GlutenFree: true,
			Ingredients: []domain.Ingredient{
				{Name: "filetes de salmón", Amount: 2, Unit: "6 oz"},
				{Name: "espárragos", Amount: 1, Unit: "manojo"},
				{Name: "mantequilla", Amount: 3, Unit: "tablespoons"},
				{Name: "ajo", Amount: 4, Unit: "dientes"},
				{Name: "limón", Amount: 1, Unit: "medium"},
				{Name: "aceite de oliva", Amount: 1, Unit: "tablespoon"},
			},
		},
		Steps: []domain.InstructionStep{
			{Number: 1, Text: "Precalentar el horno a 200°C y forrar una bandeja con papel pergamino", Equipment: []string{"horno", "bandeja para hornear"}},
			{Number: 2, Text: "Hornear el salmón y los espárragos con mantequilla de ajo por 15 minutos", Ingredients: []string{"filetes de salmón", "espárragos", "mantequilla", "ajo"}},
			{Number: 3, Text: "Servir con rodajas de limón y un chorrito de aceite de oliva", Ingredients: []string{"limón", "aceite de oliva"}},
		},
	},
}

// FallbackDetail returns the local recipe for a meal slot. Unknown slots
// get the lunch recipe.
func FallbackDetail(slot string) domain.RecipeDetail {
	if recipe, ok := fallbackRecipes[slot]; ok {
		return recipe
	}
	return fallbackRecipes[domain.MealSlotLunch]
}

// fallbackSlotForRecipe derives a meal type from a recipe id. Ids of the
// local recipes map to their own slot, so a fallback summary resolves to the
// matching fallback detail; for unknown catalog ids, even maps to lunch and
// odd to dinner.
func fallbackSlotForRecipe(recipeID int) string {
	for slot, recipe := range fallbackRecipes {
		if recipe.ID == recipeID {
			return slot
		}
	}
	if recipeID%2 == 0 {
		return domain.MealSlotLunch
	}
	return domain.MealSlotDinner
}

// fallbackSummaries synthesizes count summaries for a slot batch. The main
// batch alternates lunch and dinner so both slots get a recipe.
func fallbackSummaries(slot string, count int) []domain.RecipeSummary {
	summaries := make([]domain.RecipeSummary, 0, count)
	for i := 0; i < count; i++ {
		pick := slot
		if slot == domain.SlotBatchMain {
			pick = domain.MealSlotLunch
			if i%2 == 1 {
				pick = domain.MealSlotDinner
			}
		}
		summaries = append(summaries, FallbackDetail(pick).RecipeSummary)
	}
	return summaries
}
