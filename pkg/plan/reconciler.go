package plan

import (
	"math"
	"strings"

	"Meal-Planner-Backend/domain"
	"Meal-Planner-Backend/entities"
)

// ComputeMissing returns the recipe ingredients not sufficiently covered by
// the pantry. Matching is a case-insensitive exact name comparison and the
// delta keeps the recipe's unit: no unit conversion is attempted, so a
// pantry item recorded in a different unit is subtracted as-is.
func ComputeMissing(recipeIngredients []domain.Ingredient, pantry []*entities.PantryItem) []entities.MissingIngredient {
	var missing []entities.MissingIngredient

	for _, ing := range recipeIngredients {
		var available float64
		for _, item := range pantry {
			if strings.EqualFold(item.Name, ing.Name) {
				available = item.Quantity
				break
			}
		}

		if available >= ing.Amount {
			continue
		}

		missing = append(missing, entities.MissingIngredient{
			Name:     ing.Name,
			Quantity: round2(ing.Amount - available),
			Unit:     ing.Unit,
		})
	}

	return missing
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// AddToShoppingList merges missing ingredients into the list, deduplicating
// by (normalized name, unit). The display name keeps the casing of the
// first occurrence; repeated pairs accumulate into one entry's quantity.
func AddToShoppingList(list *entities.ShoppingList, missing []entities.MissingIngredient) {
	for _, ing := range missing {
		normalized := strings.ToLower(strings.TrimSpace(ing.Name))

		merged := false
		for i := range *list {
			item := &(*list)[i]
			if strings.ToLower(strings.TrimSpace(item.Name)) == normalized && item.Unit == ing.Unit {
				item.Quantity = round2(item.Quantity + ing.Quantity)
				merged = true
				break
			}
		}
		if merged {
			continue
		}

		*list = append(*list, entities.ShoppingItem{
			Name:      ing.Name,
			Quantity:  ing.Quantity,
			Unit:      ing.Unit,
			Category:  CategorizeIngredient(ing.Name),
			Purchased: false,
		})
	}
}

// Fixed Spanish keyword table for shopping-list categories. Unmatched
// ingredients fall to "otros".
var ingredientCategories = []struct {
	category string
	keywords []string
}{
	{"lácteos", []string{"leche", "queso", "yogur"}},
	{"carnes", []string{"carne", "pollo", "pescado", "res", "cerdo"}},
	{"frutas", []string{"manzana", "banana", "naranja", "uva"}},
	{"vegetales", []string{"cebolla", "zanahoria", "papa", "tomate"}},
	{"granos", []string{"arroz", "pasta", "pan", "harina"}},
}

func CategorizeIngredient(name string) string {
	lower := strings.ToLower(name)
	for _, c := range ingredientCategories {
		for _, keyword := range c.keywords {
			if strings.Contains(lower, keyword) {
				return c.category
			}
		}
	}
	return domain.PantryCategoryUnknown
}
