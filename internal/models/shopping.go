package models

import (
	"time"

	"github.com/google/uuid"
)

// ShoppingList is a named set of ingredients to buy, owned by one user.
type ShoppingList struct {
	ID                uuid.UUID          `json:"id"`
	UserID            uuid.UUID          `json:"userId"`
	Name              string             `json:"name"`
	IsCompleted       bool               `json:"isCompleted"`
	CreatedAt         time.Time          `json:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt"`
	Items             []ShoppingListItem `json:"items"`
	CompletionPercent int                `json:"completionPercent"`
}

// ShoppingListItem is one line of a shopping list.
type ShoppingListItem struct {
	ID             uuid.UUID     `json:"id"`
	ShoppingListID uuid.UUID     `json:"shoppingListId"`
	IngredientID   uuid.UUID     `json:"ingredientId"`
	Quantity       float64       `json:"quantity"`
	IsPurchased    bool          `json:"isPurchased"`
	Notes          *string       `json:"notes"`
	Ingredient     IngredientRef `json:"ingredient"`
}

// PurchasedCount returns how many items are already bought.
func (l ShoppingList) PurchasedCount() int {
	n := 0
	for _, item := range l.Items {
		if item.IsPurchased {
			n++
		}
	}
	return n
}

// Completion is the purchased share in whole percent, rounded down. An empty
// list is 0% complete.
func (l ShoppingList) Completion() int {
	if len(l.Items) == 0 {
		return 0
	}
	return l.PurchasedCount() * 100 / len(l.Items)
}
