package model

// GroceryItem is one line on the shopping list. Items coming from a
// recipe keep the recipe's ingredient id so merging the same recipe twice
// does not duplicate them.
type GroceryItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Amount   string `json:"amount,omitempty"`
	Category string `json:"category,omitempty"`
	Checked  bool   `json:"checked"`
}
