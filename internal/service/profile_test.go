package service

import (
	"context"
	"testing"

	"github.com/mgdevhub/gym-meals/internal/model"
	"github.com/mgdevhub/gym-meals/internal/repository"
	"github.com/mgdevhub/gym-meals/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestProfileService_CalculateTargets(t *testing.T) {
	svc := NewProfileService(&mocks.MockStore{})

	tests := []struct {
		name         string
		profile      model.Profile
		wantCalories int
		wantProtein  int
	}{
		{
			name: "male bulk moderate",
			profile: model.Profile{
				HeightCm: 180, WeightKg: 80, Age: 25,
				Gender: "male", Goal: "bulk", Activity: "moderate",
			},
			// bmr 1805, tdee 2797.75, +300 bulk
			wantCalories: 3098,
			wantProtein:  160,
		},
		{
			name: "female cut light",
			profile: model.Profile{
				HeightCm: 165, WeightKg: 60, Age: 30,
				Gender: "female", Goal: "cut", Activity: "light",
			},
			// bmr 1320.25, tdee 1815.34, -500 cut
			wantCalories: 1315,
			wantProtein:  108,
		},
		{
			name: "unknown activity falls back to moderate",
			profile: model.Profile{
				HeightCm: 175, WeightKg: 70, Age: 40,
				Gender: "male", Goal: "maintain", Activity: "extreme",
			},
			// bmr 1598.75 * 1.55
			wantCalories: 2478,
			wantProtein:  126,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			targets := svc.CalculateTargets(&tt.profile)
			assert.Equal(t, tt.wantCalories, targets.DailyCalories)
			assert.Equal(t, tt.wantProtein, targets.DailyProtein)
		})
	}
}

func TestProfileService_GetNotFound(t *testing.T) {
	store := &mocks.MockStore{}
	svc := NewProfileService(store)

	store.On("Get", mock.Anything, profileKey(testDevice)).
		Return("", repository.ErrNotFound)

	_, err := svc.Get(context.Background(), testDevice)
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestProfileService_GetCorruptTreatedAsAbsent(t *testing.T) {
	store := &mocks.MockStore{}
	svc := NewProfileService(store)

	store.On("Get", mock.Anything, profileKey(testDevice)).Return("{broken", nil)

	_, err := svc.Get(context.Background(), testDevice)
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestProfileService_SaveRoundTrip(t *testing.T) {
	store := &mocks.MockStore{}
	svc := NewProfileService(store)

	var saved string
	store.On("Set", mock.Anything, profileKey(testDevice), mock.Anything).
		Run(func(args mock.Arguments) { saved = args.String(2) }).
		Return(nil)

	profile := &model.Profile{
		Name: "Alex", HeightCm: 180, WeightKg: 80, Age: 25,
		Gender: "male", Goal: "bulk", Activity: "moderate",
	}
	assert.NoError(t, svc.Save(context.Background(), testDevice, profile))

	store.On("Get", mock.Anything, profileKey(testDevice)).Return(saved, nil)

	loaded, err := svc.Get(context.Background(), testDevice)
	assert.NoError(t, err)
	assert.Equal(t, profile, loaded)
}
