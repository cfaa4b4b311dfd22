package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func item(name string, exp *time.Time, reserved bool) InventoryItem {
	return InventoryItem{ExpirationDate: exp, IsReserved: reserved, Ingredient: IngredientRef{Name: name}}
}

func names(items []InventoryItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Ingredient.Name)
	}
	return out
}

func TestSortInventory(t *testing.T) {
	items := []InventoryItem{
		item("milk", date(2024, 3, 5), false),
		item("rice", nil, false),
		item("eggs", date(2024, 3, 1), false),
	}
	SortInventory(items)
	assert.Equal(t, []string{"eggs", "milk", "rice"}, names(items))
}

func TestSortInventoryTiesByName(t *testing.T) {
	items := []InventoryItem{
		item("zucchini", nil, false),
		item("butter", date(2024, 3, 1), false),
		item("apple", date(2024, 3, 1), false),
		item("flour", nil, false),
	}
	SortInventory(items)
	assert.Equal(t, []string{"apple", "butter", "flour", "zucchini"}, names(items))
}

func TestExpiringSoon(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	edge := now.Add(ExpiringWindow)
	past := now.Add(-time.Minute)
	later := edge.Add(time.Second)
	items := []InventoryItem{
		item("now", &now, false),
		item("edge", &edge, false),
		item("past", &past, false),
		item("later", &later, false),
		item("undated", nil, false),
	}
	assert.Equal(t, []string{"now", "edge"}, names(ExpiringSoon(items, now)))
}

func TestReservedAndSummary(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	items := []InventoryItem{
		item("a", date(2024, 3, 2), true),
		item("b", nil, true),
		item("c", date(2024, 4, 1), false),
	}
	assert.Equal(t, []string{"a", "b"}, names(Reserved(items)))
	assert.Equal(t, InventorySummary{Total: 3, ExpiringSoon: 1, Reserved: 2}, Summarize(items, now))
}

func TestDaysUntilExpiration(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	days, ok := DaysUntilExpiration(item("x", date(2024, 3, 3), false), now)
	assert.True(t, ok)
	assert.Equal(t, 2, days)

	_, ok = DaysUntilExpiration(item("y", nil, false), now)
	assert.False(t, ok)
}

func TestShoppingListCompletion(t *testing.T) {
	assert.Equal(t, 0, ShoppingList{}.Completion())

	list := ShoppingList{Items: []ShoppingListItem{{IsPurchased: true}, {}, {}}}
	assert.Equal(t, 1, list.PurchasedCount())
	assert.Equal(t, 33, list.Completion())

	list.Items[1].IsPurchased = true
	list.Items[2].IsPurchased = true
	assert.Equal(t, 100, list.Completion())
}

func TestMealType(t *testing.T) {
	assert.True(t, Dinner.Valid())
	assert.False(t, MealType("brunch").Valid())
	assert.False(t, MealType("snack").Valid())
}
