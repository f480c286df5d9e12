package model

// FoodAnalysis is the structured estimate produced by the external vision
// model for a food photo. The model's internal prompt contract is opaque;
// only this output shape is consumed, and it feeds straight into AddFood.
type FoodAnalysis struct {
	Name     string  `json:"name"`
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Verdict  string  `json:"verdict,omitempty"`
	Score    int     `json:"score,omitempty"`
}
