package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/mgdevhub/gym-meals/internal/model"
	"github.com/mgdevhub/gym-meals/internal/repository"

	"github.com/goccy/go-json"
)

var activityMultipliers = map[string]float64{
	"sedentary": 1.2,
	"light":     1.375,
	"moderate":  1.55,
	"active":    1.725,
}

// ProfileService persists the user profile and derives daily intake
// targets from it. Unlike the daily log, a failed profile save is
// user-visible, so errors propagate here.
type ProfileService struct {
	store KVStore
}

func NewProfileService(store KVStore) *ProfileService {
	return &ProfileService{store: store}
}

func (s *ProfileService) Get(ctx context.Context, deviceID string) (*model.Profile, error) {
	raw, err := s.store.Get(ctx, profileKey(deviceID))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	var profile model.Profile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		// corrupt stored profile behaves like an absent one
		return nil, ErrProfileNotFound
	}
	return &profile, nil
}

func (s *ProfileService) Save(ctx context.Context, deviceID string, profile *model.Profile) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	if err := s.store.Set(ctx, profileKey(deviceID), string(raw)); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// CalculateTargets computes daily calorie and protein targets with the
// Mifflin-St Jeor equation, adjusted for activity and goal.
func (s *ProfileService) CalculateTargets(profile *model.Profile) model.MacroTargets {
	var bmr float64
	if profile.Gender == "male" {
		bmr = 10*profile.WeightKg + 6.25*profile.HeightCm - 5*float64(profile.Age) + 5
	} else {
		bmr = 10*profile.WeightKg + 6.25*profile.HeightCm - 5*float64(profile.Age) - 161
	}

	multiplier, ok := activityMultipliers[profile.Activity]
	if !ok {
		multiplier = activityMultipliers["moderate"]
	}
	tdee := bmr * multiplier

	switch profile.Goal {
	case "bulk":
		tdee += 300
	case "cut":
		tdee -= 500
	}

	protein := profile.WeightKg * 1.8
	if profile.Goal == "bulk" {
		protein = profile.WeightKg * 2
	}

	return model.MacroTargets{
		DailyCalories: int(math.Round(tdee)),
		DailyProtein:  int(math.Round(protein)),
	}
}
