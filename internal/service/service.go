package service

import (
	"context"
	"errors"

	"github.com/mgdevhub/gym-meals/internal/model"
)

var (
	ErrDayNotAvailable = errors.New("this day has not arrived yet")
	ErrNotFood         = errors.New("no food detected in the image")
	ErrProfileNotFound = errors.New("profile not found")
	ErrEmptyImage      = errors.New("image payload is empty")
)

// KVStore is the durable key-value persistence collaborator. Values are
// JSON text under fixed per-device keys.
type KVStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, keys ...string) error
}

type DailyLogServiceI interface {
	Load(ctx context.Context, deviceID string) *model.DailyLog
	AddFood(ctx context.Context, deviceID string, entry model.FoodEntry) *model.DailyLog
	AddWorkout(ctx context.Context, deviceID string, minutes int) *model.DailyLog
}

type ChallengeServiceI interface {
	Status(ctx context.Context, deviceID string) *model.ChallengeStatus
	ToggleDay(ctx context.Context, deviceID string, day int) (*model.ChallengeStatus, error)
	AcknowledgeBriefing(ctx context.Context, deviceID string)
	Reset(ctx context.Context, deviceID string)
}

type GroceryServiceI interface {
	List(ctx context.Context, deviceID string) []model.GroceryItem
	AddItem(ctx context.Context, deviceID string, item model.GroceryItem) []model.GroceryItem
	MergeItems(ctx context.Context, deviceID string, items []model.GroceryItem) (int, []model.GroceryItem)
	RemoveItem(ctx context.Context, deviceID, itemID string) []model.GroceryItem
	Clear(ctx context.Context, deviceID string)
}

type RecipeServiceI interface {
	List(ctx context.Context, deviceID string) []model.Recipe
	AddCustom(ctx context.Context, deviceID string, recipe model.Recipe) model.Recipe
}

type FoodServiceI interface {
	Search(query string) []model.FoodDatabaseEntry
}

type ProfileServiceI interface {
	Get(ctx context.Context, deviceID string) (*model.Profile, error)
	Save(ctx context.Context, deviceID string, profile *model.Profile) error
	CalculateTargets(profile *model.Profile) model.MacroTargets
}

type AnalysisServiceI interface {
	AnalyzePhoto(ctx context.Context, imageBase64, mimeType string) (*model.FoodAnalysis, error)
}

// VisionClient is the opaque remote vision-model API. It either returns a
// structured nutrition estimate or reports that the image is not food.
type VisionClient interface {
	AnalyzeFoodPhoto(ctx context.Context, imageBase64, mimeType string) (*model.FoodAnalysis, error)
}

func dailyLogKey(deviceID string) string { return "daily_log:" + deviceID }

func challengeDaysKey(deviceID string) string { return "challenge_22day:" + deviceID }

func challengeStartKey(deviceID string) string { return "challenge_start:" + deviceID }

func briefingSeenKey(deviceID string) string { return "briefing_seen:" + deviceID }

func groceryListKey(deviceID string) string { return "grocery_list:" + deviceID }

func customRecipesKey(deviceID string) string { return "custom_recipes:" + deviceID }

func profileKey(deviceID string) string { return "profile:" + deviceID }
