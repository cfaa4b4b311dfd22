package models

import (
	"time"

	"github.com/google/uuid"
)

// Ingredient is shared reference data; no user owns it.
type Ingredient struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Unit      string    `json:"unit"`
	Category  *string   `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
}

// IngredientRef is the projection embedded in inventory and shopping items.
type IngredientRef struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Unit     string    `json:"unit"`
	Category *string   `json:"category"`
}

func (i Ingredient) Ref() IngredientRef {
	return IngredientRef{ID: i.ID, Name: i.Name, Unit: i.Unit, Category: i.Category}
}
