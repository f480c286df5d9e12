package model

// FoodDatabaseEntry is static reference nutrition data used for log entry
// suggestions. Never mutated at runtime.
type FoodDatabaseEntry struct {
	Name     string  `json:"name"`
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Source   string  `json:"source,omitempty"`
}
