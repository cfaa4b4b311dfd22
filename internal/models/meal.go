package models

import (
	"time"

	"github.com/google/uuid"
)

// Meal is a recipe owned by a single user.
type Meal struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"userId"`
	Name         string    `json:"name"`
	Description  *string   `json:"description"`
	Instructions *string   `json:"instructions"`
	Servings     int       `json:"servings"`
	PrepTime     *int      `json:"prepTime"`
	CookTime     *int      `json:"cookTime"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// MealRef is the projection of a meal embedded in planned meals.
type MealRef struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Servings    int       `json:"servings"`
}

// Ref returns the embedded projection of m.
func (m Meal) Ref() MealRef {
	return MealRef{ID: m.ID, Name: m.Name, Description: m.Description, Servings: m.Servings}
}
