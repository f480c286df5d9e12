package model

type Profile struct {
	Name     string  `json:"name,omitempty"`
	HeightCm float64 `json:"heightCm"`
	WeightKg float64 `json:"weightKg"`
	Age      int     `json:"age"`
	Gender   string  `json:"gender"`   // "male" or "female"
	Goal     string  `json:"goal"`     // "bulk", "cut" or "maintain"
	Activity string  `json:"activity"` // "sedentary", "light", "moderate", "active"
}

// MacroTargets are the computed daily intake targets for a profile.
type MacroTargets struct {
	DailyCalories int `json:"dailyCalories"`
	DailyProtein  int `json:"dailyProtein"`
}
