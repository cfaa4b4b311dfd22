package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/hongminglow/mealplan-be/internal/models"
)

// ErrNotFound indicates a record does not exist, or is not visible to the owner asking.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// ErrInvalidReference indicates a write pointed at a shared record that does not exist.
var ErrInvalidReference = errors.New("referenced record does not exist")

// Every method on the owned-resource stores below takes the owner id and
// filters on it; none of them can read or write another user's rows.

// UserStore captures persistence operations on accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	ListUsers(ctx context.Context) ([]models.UserOverview, error)
	SetAdmin(ctx context.Context, id uuid.UUID, isAdmin bool) (models.User, error)
	// DeleteUser removes the user and everything they own atomically.
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

// MealStore persists recipes.
type MealStore interface {
	ListOwned(ctx context.Context, owner uuid.UUID) ([]models.Meal, error)
	FindOwnedByID(ctx context.Context, owner, id uuid.UUID) (models.Meal, error)
	CreateOwned(ctx context.Context, owner uuid.UUID, meal models.Meal) (models.Meal, error)
	DeleteOwned(ctx context.Context, owner, id uuid.UUID) error
}

// PlannedMealStore persists calendar entries.
type PlannedMealStore interface {
	ListOwned(ctx context.Context, owner uuid.UUID) ([]models.PlannedMeal, error)
	// CreateOwned returns ErrNotFound when pm.MealID is not one of owner's meals.
	CreateOwned(ctx context.Context, owner uuid.UUID, pm models.PlannedMeal) (models.PlannedMeal, error)
	DeleteOwned(ctx context.Context, owner, id uuid.UUID) error
}

// IngredientStore persists shared reference ingredients.
type IngredientStore interface {
	List(ctx context.Context) ([]models.Ingredient, error)
	FindByID(ctx context.Context, id uuid.UUID) (models.Ingredient, error)
	Create(ctx context.Context, ingredient models.Ingredient) (models.Ingredient, error)
}

// InventoryStore persists pantry contents.
type InventoryStore interface {
	ListOwned(ctx context.Context, owner uuid.UUID) ([]models.InventoryItem, error)
	// CreateOwned returns ErrInvalidReference for an unknown ingredient.
	CreateOwned(ctx context.Context, owner uuid.UUID, item models.InventoryItem) (models.InventoryItem, error)
	DeleteOwned(ctx context.Context, owner, id uuid.UUID) error
}

// ShoppingListStore persists shopping lists and their items.
type ShoppingListStore interface {
	ListOwned(ctx context.Context, owner uuid.UUID) ([]models.ShoppingList, error)
	// CreateOwned returns ErrInvalidReference for an unknown ingredient.
	CreateOwned(ctx context.Context, owner uuid.UUID, list models.ShoppingList) (models.ShoppingList, error)
	DeleteOwned(ctx context.Context, owner, id uuid.UUID) error
	// SetItemPurchased sets the flag to the given value, so repeated calls converge.
	SetItemPurchased(ctx context.Context, owner, listID, itemID uuid.UUID, purchased bool) (models.ShoppingListItem, error)
}

// Store bundles every repository the HTTP layer needs.
type Store interface {
	Users() UserStore
	Meals() MealStore
	PlannedMeals() PlannedMealStore
	Ingredients() IngredientStore
	Inventory() InventoryStore
	ShoppingLists() ShoppingListStore
}
