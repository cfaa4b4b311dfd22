package models

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
)

// ExpiringWindow is how far ahead an item counts as expiring soon.
const ExpiringWindow = 3 * 24 * time.Hour

// InventoryItem is a quantity of an ingredient held by one user.
type InventoryItem struct {
	ID             uuid.UUID     `json:"id"`
	UserID         uuid.UUID     `json:"userId"`
	IngredientID   uuid.UUID     `json:"ingredientId"`
	Quantity       float64       `json:"quantity"`
	ExpirationDate *time.Time    `json:"expirationDate"`
	Location       *string       `json:"location"`
	Notes          *string       `json:"notes"`
	IsReserved     bool          `json:"isReserved"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
	Ingredient     IngredientRef `json:"ingredient"`
	// DaysLeft is filled in when listing; it is not stored.
	DaysLeft *int `json:"daysUntilExpiration,omitempty"`
}

// InventorySummary counts the derived views over a user's inventory.
type InventorySummary struct {
	Total        int `json:"total"`
	ExpiringSoon int `json:"expiringSoon"`
	Reserved     int `json:"reserved"`
}

// SortInventory orders items by expiration date ascending with undated items
// last, then by ingredient name.
func SortInventory(items []InventoryItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].ExpirationDate, items[j].ExpirationDate
		switch {
		case a == nil && b != nil:
			return false
		case a != nil && b == nil:
			return true
		case a != nil && b != nil && !a.Equal(*b):
			return a.Before(*b)
		}
		return items[i].Ingredient.Name < items[j].Ingredient.Name
	})
}

// ExpiringSoon returns the items whose expiration date falls within
// [now, now+ExpiringWindow], both ends inclusive.
func ExpiringSoon(items []InventoryItem, now time.Time) []InventoryItem {
	limit := now.Add(ExpiringWindow)
	var out []InventoryItem
	for _, item := range items {
		if item.ExpirationDate == nil {
			continue
		}
		exp := *item.ExpirationDate
		if !exp.Before(now) && !exp.After(limit) {
			out = append(out, item)
		}
	}
	return out
}

// Reserved returns the items flagged as reserved.
func Reserved(items []InventoryItem) []InventoryItem {
	var out []InventoryItem
	for _, item := range items {
		if item.IsReserved {
			out = append(out, item)
		}
	}
	return out
}

// DaysUntilExpiration rounds the time left up to whole days. It reports false
// for items without an expiration date.
func DaysUntilExpiration(item InventoryItem, now time.Time) (int, bool) {
	if item.ExpirationDate == nil {
		return 0, false
	}
	days := item.ExpirationDate.Sub(now).Hours() / 24
	return int(math.Ceil(days)), true
}

// Summarize counts items in each derived view.
func Summarize(items []InventoryItem, now time.Time) InventorySummary {
	return InventorySummary{
		Total:        len(items),
		ExpiringSoon: len(ExpiringSoon(items, now)),
		Reserved:     len(Reserved(items)),
	}
}
