package service

import (
	"context"
	"errors"
	"sync"

	"github.com/mgdevhub/gym-meals/internal/model"
	"github.com/mgdevhub/gym-meals/internal/repository"
	"github.com/mgdevhub/gym-meals/pkg/logger"
	"go.uber.org/zap"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

const defaultRecipeImage = "https://images.unsplash.com/photo-1546069901-ba9599a7e63c?auto=format&fit=crop&w=800&q=80"

// builtinRecipes ships with the app; custom recipes are persisted per
// device and appended after them.
var builtinRecipes = []model.Recipe{
	{
		ID:          "r1",
		Title:       "Power Chicken & Rice",
		Time:        "20 min",
		Description: "Legendary post-workout meal for muscle repair. Clean carbs, high protein.",
		Timing:      []string{"post-workout", "lunch", "dinner"},
		Difficulty:  "medium",
		Calories:    550,
		Protein:     45,
		Ingredients: []model.Ingredient{
			{ID: "r1-i1", Name: "Chicken breast", Amount: "200g"},
			{ID: "r1-i2", Name: "White rice", Amount: "150g"},
			{ID: "r1-i3", Name: "Broccoli", Amount: "100g"},
			{ID: "r1-i4", Name: "Olive oil", Amount: "1 tbsp"},
		},
		Steps: []string{
			"Season the chicken and grill 6-7 minutes per side.",
			"Cook the rice, steam the broccoli.",
			"Plate with a drizzle of olive oil.",
		},
	},
	{
		ID:          "r2",
		Title:       "Anabolic Oatmeal",
		Time:        "10 min",
		Description: "Slow carbs and whey for a steady morning drive.",
		Timing:      []string{"breakfast"},
		Difficulty:  "easy",
		Calories:    420,
		Protein:     32,
		Ingredients: []model.Ingredient{
			{ID: "r2-i1", Name: "Oats", Amount: "80g"},
			{ID: "r2-i2", Name: "Whey protein", Amount: "1 scoop"},
			{ID: "r2-i3", Name: "Banana", Amount: "1"},
			{ID: "r2-i4", Name: "Peanut butter", Amount: "1 tbsp"},
		},
		Steps: []string{
			"Cook the oats in water or milk.",
			"Stir in the whey off the heat, top with banana and peanut butter.",
		},
	},
	{
		ID:          "r3",
		Title:       "Lean Beef Bowl",
		Time:        "25 min",
		Description: "Iron and creatine dense. Dinner of champions.",
		Timing:      []string{"dinner"},
		Difficulty:  "medium",
		Calories:    620,
		Protein:     48,
		Ingredients: []model.Ingredient{
			{ID: "r3-i1", Name: "Lean ground beef", Amount: "200g"},
			{ID: "r3-i2", Name: "Sweet potato", Amount: "250g"},
			{ID: "r3-i3", Name: "Spinach", Amount: "80g"},
		},
		Steps: []string{
			"Roast the sweet potato cubes.",
			"Brown the beef, wilt the spinach in the same pan.",
			"Combine and season.",
		},
	},
}

type RecipeService struct {
	store KVStore

	mu    sync.Mutex
	cache map[string][]model.Recipe
}

func NewRecipeService(store KVStore) *RecipeService {
	return &RecipeService{
		store: store,
		cache: make(map[string][]model.Recipe),
	}
}

func (s *RecipeService) List(ctx context.Context, deviceID string) []model.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()

	custom := s.customLocked(ctx, deviceID)
	out := make([]model.Recipe, 0, len(builtinRecipes)+len(custom))
	out = append(out, builtinRecipes...)
	out = append(out, custom...)
	return out
}

func (s *RecipeService) AddCustom(ctx context.Context, deviceID string, recipe model.Recipe) model.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()

	recipe.ID = "custom_" + uuid.NewString()
	recipe.Custom = true
	if recipe.Image == "" {
		recipe.Image = defaultRecipeImage
	}
	if len(recipe.Timing) == 0 {
		recipe.Timing = []string{"lunch", "dinner"}
	}
	if recipe.Difficulty == "" {
		recipe.Difficulty = "easy"
	}
	for i := range recipe.Ingredients {
		if recipe.Ingredients[i].ID == "" {
			recipe.Ingredients[i].ID = recipe.ID + "-i" + uuid.NewString()[:8]
		}
	}

	custom := append(s.customLocked(ctx, deviceID), recipe)
	s.cache[deviceID] = custom
	s.persistLocked(ctx, deviceID, custom)

	return recipe
}

func (s *RecipeService) customLocked(ctx context.Context, deviceID string) []model.Recipe {
	if custom, ok := s.cache[deviceID]; ok {
		return custom
	}

	custom := []model.Recipe{}
	raw, err := s.store.Get(ctx, customRecipesKey(deviceID))
	switch {
	case err == nil:
		var stored []model.Recipe
		if jsonErr := json.Unmarshal([]byte(raw), &stored); jsonErr != nil {
			logger.Logger().Warn("discarding corrupt custom recipes",
				zap.String("device_id", deviceID), zap.Error(jsonErr))
		} else if stored != nil {
			custom = stored
		}
	case errors.Is(err, repository.ErrNotFound):
	default:
		logger.Logger().Warn("custom recipes read failed, continuing in memory",
			zap.String("device_id", deviceID), zap.Error(err))
	}

	s.cache[deviceID] = custom
	return custom
}

func (s *RecipeService) persistLocked(ctx context.Context, deviceID string, custom []model.Recipe) {
	raw, err := json.Marshal(custom)
	if err != nil {
		logger.Logger().Warn("failed to encode custom recipes",
			zap.String("device_id", deviceID), zap.Error(err))
		return
	}
	if err := s.store.Set(ctx, customRecipesKey(deviceID), string(raw)); err != nil {
		logger.Logger().Warn("custom recipes write failed, keeping in-memory state",
			zap.String("device_id", deviceID), zap.Error(err))
	}
}
