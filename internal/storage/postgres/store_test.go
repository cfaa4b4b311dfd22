package postgres

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/mealplan-be/internal/models"
	"github.com/hongminglow/mealplan-be/internal/storage"
)

func TestMigrationURL(t *testing.T) {
	got, err := migrationURL("postgres://u:p@localhost:5432/db?sslmode=disable")
	require.NoError(t, err)
	assert.Equal(t, "pgx5://u:p@localhost:5432/db?sslmode=disable", got)

	got, err = migrationURL("postgresql://localhost/db")
	require.NoError(t, err)
	assert.Equal(t, "pgx5://localhost/db", got)

	_, err = migrationURL("host=localhost dbname=db")
	assert.Error(t, err)
}

// setupStore connects to DATABASE_URL when RUN_DB_INTEGRATION=true.
func setupStore(t *testing.T) *Store {
	t.Helper()
	if os.Getenv("RUN_DB_INTEGRATION") != "true" {
		t.Skip("set RUN_DB_INTEGRATION=true to run this integration test")
	}
	for _, path := range []string{".env", "../.env", "../../.env", "../../../.env"} {
		_ = godotenv.Overload(path)
	}
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Fatal("DATABASE_URL is required")
	}

	store, err := NewStore(context.Background(), dbURL)
	require.NoError(t, err)
	t.Cleanup(store.Close)
	return store
}

func createTestUser(t *testing.T, ctx context.Context, s *Store) models.User {
	t.Helper()
	user, err := s.Users().CreateUser(ctx, models.User{
		Name:         "tester",
		Email:        fmt.Sprintf("store_%d@example.com", time.Now().UnixNano()),
		PasswordHash: "x",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Users().DeleteUser(context.Background(), user.ID) })
	return user
}

func TestStoreIntegration(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	alice := createTestUser(t, ctx, s)
	bob := createTestUser(t, ctx, s)

	t.Run("DuplicateEmail", func(t *testing.T) {
		_, err := s.Users().CreateUser(ctx, models.User{Name: "dup", Email: alice.Email, PasswordHash: "x"})
		assert.ErrorIs(t, err, storage.ErrAlreadyExists)
	})

	meal, err := s.Meals().CreateOwned(ctx, alice.ID, models.Meal{Name: "Pasta", Servings: 2})
	require.NoError(t, err)

	t.Run("MealOwnerScoping", func(t *testing.T) {
		_, err := s.Meals().FindOwnedByID(ctx, bob.ID, meal.ID)
		assert.ErrorIs(t, err, storage.ErrNotFound)
		assert.ErrorIs(t, s.Meals().DeleteOwned(ctx, bob.ID, meal.ID), storage.ErrNotFound)
	})

	t.Run("PlannedMealRequiresOwnedMeal", func(t *testing.T) {
		_, err := s.PlannedMeals().CreateOwned(ctx, bob.ID, models.PlannedMeal{
			MealID: meal.ID, PlannedDate: time.Now(), MealType: models.Dinner,
		})
		assert.ErrorIs(t, err, storage.ErrNotFound)

		pm, err := s.PlannedMeals().CreateOwned(ctx, alice.ID, models.PlannedMeal{
			MealID: meal.ID, PlannedDate: time.Now(), MealType: models.Dinner,
		})
		require.NoError(t, err)
		assert.Equal(t, 2, pm.Servings)
		assert.Equal(t, "Pasta", pm.Meal.Name)
	})

	ing, err := s.Ingredients().Create(ctx, models.Ingredient{
		Name: fmt.Sprintf("tomato-%d", time.Now().UnixNano()), Unit: "pcs",
	})
	require.NoError(t, err)

	t.Run("InventoryUnknownIngredient", func(t *testing.T) {
		_, err := s.Inventory().CreateOwned(ctx, alice.ID, models.InventoryItem{IngredientID: uuid.New(), Quantity: 1})
		assert.ErrorIs(t, err, storage.ErrInvalidReference)
	})

	t.Run("ShoppingItemToggle", func(t *testing.T) {
		list, err := s.ShoppingLists().CreateOwned(ctx, alice.ID, models.ShoppingList{
			Name:  "weekly",
			Items: []models.ShoppingListItem{{IngredientID: ing.ID, Quantity: 3}},
		})
		require.NoError(t, err)
		itemID := list.Items[0].ID

		_, err = s.ShoppingLists().SetItemPurchased(ctx, bob.ID, list.ID, itemID, true)
		assert.ErrorIs(t, err, storage.ErrNotFound)

		for i := 0; i < 2; i++ {
			item, err := s.ShoppingLists().SetItemPurchased(ctx, alice.ID, list.ID, itemID, true)
			require.NoError(t, err)
			assert.True(t, item.IsPurchased)
		}

		lists, err := s.ShoppingLists().ListOwned(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, lists, 1)
		assert.True(t, lists[0].IsCompleted)
	})

	t.Run("AdminCountsAndCascade", func(t *testing.T) {
		users, err := s.Users().ListUsers(ctx)
		require.NoError(t, err)
		var found bool
		for _, u := range users {
			if u.ID == alice.ID {
				found = true
				assert.Equal(t, 1, u.Count.Meals)
				assert.Equal(t, 1, u.Count.PlannedMeals)
				assert.Equal(t, 1, u.Count.ShoppingLists)
			}
		}
		assert.True(t, found)

		require.NoError(t, s.Users().DeleteUser(ctx, alice.ID))
		meals, err := s.Meals().ListOwned(ctx, alice.ID)
		require.NoError(t, err)
		assert.Empty(t, meals)

		err = s.Users().DeleteUser(ctx, alice.ID)
		assert.True(t, errors.Is(err, storage.ErrNotFound))
	})
}
