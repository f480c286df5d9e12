package model

// Ingredient is one recipe ingredient; its id is stable so grocery merges
// can deduplicate.
type Ingredient struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Amount string `json:"amount,omitempty"`
}

type Recipe struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Time        string       `json:"time,omitempty"`
	Description string       `json:"description,omitempty"`
	Image       string       `json:"image,omitempty"`
	Timing      []string     `json:"timing,omitempty"`
	Difficulty  string       `json:"difficulty,omitempty"`
	Calories    int          `json:"calories"`
	Protein     float64      `json:"protein"`
	Ingredients []Ingredient `json:"ingredients,omitempty"`
	Steps       []string     `json:"steps,omitempty"`
	Custom      bool         `json:"custom,omitempty"`
}
