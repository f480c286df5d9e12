package service

import (
	"strings"

	"github.com/mgdevhub/gym-meals/internal/model"
)

const minSearchLength = 2

// foodCatalog is static reference data for log suggestions.
var foodCatalog = []model.FoodDatabaseEntry{
	{Name: "Chicken Breast (100g)", Calories: 165, Protein: 31, Carbs: 0, Fat: 3.6},
	{Name: "Salmon Fillet (100g)", Calories: 208, Protein: 20, Carbs: 0, Fat: 13},
	{Name: "Lean Ground Beef (100g)", Calories: 250, Protein: 26, Carbs: 0, Fat: 15},
	{Name: "Eggs (2 large)", Calories: 156, Protein: 12.6, Carbs: 1.2, Fat: 10.6},
	{Name: "Greek Yogurt (170g)", Calories: 100, Protein: 17, Carbs: 6, Fat: 0.7},
	{Name: "Cottage Cheese (100g)", Calories: 98, Protein: 11, Carbs: 3.4, Fat: 4.3},
	{Name: "White Rice cooked (150g)", Calories: 195, Protein: 4, Carbs: 43, Fat: 0.4},
	{Name: "Oats (80g)", Calories: 303, Protein: 10.6, Carbs: 54, Fat: 5.5},
	{Name: "Sweet Potato (200g)", Calories: 172, Protein: 3.1, Carbs: 40, Fat: 0.2},
	{Name: "Whole Wheat Bread (1 slice)", Calories: 81, Protein: 4, Carbs: 14, Fat: 1.1},
	{Name: "Banana (1 medium)", Calories: 105, Protein: 1.3, Carbs: 27, Fat: 0.4},
	{Name: "Apple (1 medium)", Calories: 95, Protein: 0.5, Carbs: 25, Fat: 0.3},
	{Name: "Blueberries (100g)", Calories: 57, Protein: 0.7, Carbs: 14, Fat: 0.3},
	{Name: "Avocado (100g)", Calories: 160, Protein: 2, Carbs: 8.5, Fat: 15},
	{Name: "Almonds (30g)", Calories: 170, Protein: 6, Carbs: 6, Fat: 15},
	{Name: "Walnuts (30g)", Calories: 185, Protein: 4.3, Carbs: 3.9, Fat: 18.5},
	{Name: "Peanut Butter (1 tbsp)", Calories: 94, Protein: 4, Carbs: 3.5, Fat: 8},
	{Name: "Whey Protein (1 scoop)", Calories: 120, Protein: 24, Carbs: 3, Fat: 1.5},
	{Name: "Olive Oil (1 tbsp)", Calories: 119, Protein: 0, Carbs: 0, Fat: 13.5},
	{Name: "Honey (1 tbsp)", Calories: 64, Protein: 0.1, Carbs: 17, Fat: 0},
	{Name: "Granola (30g)", Calories: 140, Protein: 3, Carbs: 19, Fat: 6},
}

// FoodService answers case-insensitive substring searches over the static
// catalog plus the built-in recipes.
type FoodService struct {
	entries []model.FoodDatabaseEntry
}

func NewFoodService() *FoodService {
	entries := make([]model.FoodDatabaseEntry, 0, len(foodCatalog)+len(builtinRecipes))
	entries = append(entries, foodCatalog...)
	for _, r := range builtinRecipes {
		entries = append(entries, model.FoodDatabaseEntry{
			Name:     r.Title,
			Calories: r.Calories,
			Protein:  r.Protein,
			Source:   "recipe",
		})
	}
	return &FoodService{entries: entries}
}

func (s *FoodService) Search(query string) []model.FoodDatabaseEntry {
	q := strings.ToLower(strings.TrimSpace(query))
	if len([]rune(q)) < minSearchLength {
		return []model.FoodDatabaseEntry{}
	}

	matches := []model.FoodDatabaseEntry{}
	for _, e := range s.entries {
		if strings.Contains(strings.ToLower(e.Name), q) {
			matches = append(matches, e)
		}
	}
	return matches
}
