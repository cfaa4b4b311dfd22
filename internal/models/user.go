package models

import (
	"time"

	"github.com/google/uuid"
)

// User captures application-facing fields for an authenticated identity.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UserCounts tallies the records a user owns.
type UserCounts struct {
	Meals          int `json:"meals"`
	InventoryItems int `json:"inventoryItems"`
	PlannedMeals   int `json:"plannedMeals"`
	ShoppingLists  int `json:"shoppingLists"`
}

// UserOverview is the admin console's view of an account.
type UserOverview struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	IsAdmin   bool       `json:"isAdmin"`
	CreatedAt time.Time  `json:"createdAt"`
	Count     UserCounts `json:"_count"`
}
