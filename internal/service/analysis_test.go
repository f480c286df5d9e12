package service

import (
	"context"
	"testing"

	"github.com/mgdevhub/gym-meals/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockVisionClient struct {
	mock.Mock
}

func (m *mockVisionClient) AnalyzeFoodPhoto(ctx context.Context, imageBase64, mimeType string) (*model.FoodAnalysis, error) {
	args := m.Called(ctx, imageBase64, mimeType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FoodAnalysis), args.Error(1)
}

func TestAnalysisService_AnalyzePhoto(t *testing.T) {
	tests := []struct {
		name      string
		image     string
		mimeType  string
		mockSetup func(vision *mockVisionClient)
		wantErr   error
		check     func(t *testing.T, a *model.FoodAnalysis)
	}{
		{
			name:    "empty image rejected before the remote call",
			image:   "   ",
			wantErr: ErrEmptyImage,
		},
		{
			name:  "data uri is unwrapped",
			image: "data:image/png;base64,AAAA",
			mockSetup: func(vision *mockVisionClient) {
				vision.On("AnalyzeFoodPhoto", mock.Anything, "AAAA", "image/png").
					Return(&model.FoodAnalysis{Name: "Salad", Calories: 320}, nil)
			},
			check: func(t *testing.T, a *model.FoodAnalysis) {
				assert.Equal(t, "Salad", a.Name)
			},
		},
		{
			name:  "not food propagates",
			image: "AAAA",
			mockSetup: func(vision *mockVisionClient) {
				vision.On("AnalyzeFoodPhoto", mock.Anything, "AAAA", "").
					Return(nil, ErrNotFood)
			},
			wantErr: ErrNotFood,
		},
		{
			name:  "negative estimates clamped and name defaulted",
			image: "AAAA",
			mockSetup: func(vision *mockVisionClient) {
				vision.On("AnalyzeFoodPhoto", mock.Anything, "AAAA", "").
					Return(&model.FoodAnalysis{Calories: -10, Protein: -1}, nil)
			},
			check: func(t *testing.T, a *model.FoodAnalysis) {
				assert.Equal(t, 0, a.Calories)
				assert.Equal(t, float64(0), a.Protein)
				assert.Equal(t, "Analyzed Meal", a.Name)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vision := &mockVisionClient{}
			if tt.mockSetup != nil {
				tt.mockSetup(vision)
			}
			svc := NewAnalysisService(vision)

			analysis, err := svc.AnalyzePhoto(context.Background(), tt.image, tt.mimeType)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			assert.NoError(t, err)
			assert.NotNil(t, analysis)
			if tt.check != nil {
				tt.check(t, analysis)
			}
			vision.AssertExpectations(t)
		})
	}
}
