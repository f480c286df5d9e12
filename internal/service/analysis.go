package service

import (
	"context"
	"strings"

	"github.com/mgdevhub/gym-meals/internal/model"
)

// AnalysisService sits between the API layer and the vision model. It
// normalizes the image payload and clamps the estimate to sane ranges so
// whatever the model returns can feed straight into AddFood.
type AnalysisService struct {
	vision VisionClient
}

func NewAnalysisService(vision VisionClient) *AnalysisService {
	return &AnalysisService{vision: vision}
}

func (s *AnalysisService) AnalyzePhoto(ctx context.Context, imageBase64, mimeType string) (*model.FoodAnalysis, error) {
	imageBase64 = strings.TrimSpace(imageBase64)
	if imageBase64 == "" {
		return nil, ErrEmptyImage
	}

	// clients sometimes send a data URI instead of bare base64
	if strings.HasPrefix(imageBase64, "data:") {
		if idx := strings.Index(imageBase64, ","); idx >= 0 {
			if mimeType == "" {
				header := imageBase64[len("data:"):idx]
				mimeType = strings.TrimSuffix(header, ";base64")
			}
			imageBase64 = imageBase64[idx+1:]
		}
	}

	analysis, err := s.vision.AnalyzeFoodPhoto(ctx, imageBase64, mimeType)
	if err != nil {
		return nil, err
	}

	if analysis.Calories < 0 {
		analysis.Calories = 0
	}
	if analysis.Protein < 0 {
		analysis.Protein = 0
	}
	if analysis.Carbs < 0 {
		analysis.Carbs = 0
	}
	if analysis.Fat < 0 {
		analysis.Fat = 0
	}
	if analysis.Name == "" {
		analysis.Name = "Analyzed Meal"
	}

	return analysis, nil
}
