package model

// ShoppingListItem is one line of the shopping list. Quantity is free text.
type ShoppingListItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Checked  bool   `json:"checked"`
}
