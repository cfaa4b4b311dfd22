package models

import (
	"time"

	"github.com/google/uuid"
)

// MealType is the calendar slot a planned meal occupies.
type MealType string

const (
	Breakfast MealType = "breakfast"
	Lunch     MealType = "lunch"
	Dinner    MealType = "dinner"
)

// Valid reports whether t is a known slot.
func (t MealType) Valid() bool {
	switch t {
	case Breakfast, Lunch, Dinner:
		return true
	}
	return false
}

// PlannedMeal assigns one of the owner's meals to a date and slot.
type PlannedMeal struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"userId"`
	MealID      uuid.UUID `json:"mealId"`
	PlannedDate time.Time `json:"plannedDate"`
	MealType    MealType  `json:"mealType"`
	Servings    int       `json:"servings"`
	CreatedAt   time.Time `json:"createdAt"`
	Meal        MealRef   `json:"meal"`
}
