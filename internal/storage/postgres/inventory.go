package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hongminglow/mealplan-be/internal/models"
	"github.com/hongminglow/mealplan-be/internal/storage"
)

type inventoryStore struct {
	pool *pgxpool.Pool
}

// ListOwned returns owner's items, soonest expiration first with undated
// items last, then by ingredient name.
func (s *inventoryStore) ListOwned(ctx context.Context, owner uuid.UUID) ([]models.InventoryItem, error) {
	const query = `
	SELECT i.id, i.user_id, i.ingredient_id, i.quantity, i.expiration_date, i.location, i.notes,
		i.is_reserved, i.created_at, i.updated_at,
		g.id, g.name, g.unit, g.category
	FROM inventory_items i
	JOIN ingredients g ON g.id = i.ingredient_id
	WHERE i.user_id = $1
	ORDER BY i.expiration_date ASC NULLS LAST, g.name ASC;
	`
	rows, err := s.pool.Query(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()

	items := []models.InventoryItem{}
	for rows.Next() {
		item, err := scanInventoryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *inventoryStore) CreateOwned(ctx context.Context, owner uuid.UUID, item models.InventoryItem) (models.InventoryItem, error) {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	const query = `
	WITH inserted AS (
		INSERT INTO inventory_items (id, user_id, ingredient_id, quantity, expiration_date, location, notes, is_reserved)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, user_id, ingredient_id, quantity, expiration_date, location, notes, is_reserved, created_at, updated_at
	)
	SELECT i.id, i.user_id, i.ingredient_id, i.quantity, i.expiration_date, i.location, i.notes,
		i.is_reserved, i.created_at, i.updated_at,
		g.id, g.name, g.unit, g.category
	FROM inserted i
	JOIN ingredients g ON g.id = i.ingredient_id;
	`
	row := s.pool.QueryRow(ctx, query, item.ID, owner, item.IngredientID, item.Quantity,
		item.ExpirationDate, item.Location, item.Notes, item.IsReserved)
	created, err := scanInventoryItem(row)
	if err != nil {
		if hasCode(err, codeForeignKeyViolation) {
			return models.InventoryItem{}, storage.ErrInvalidReference
		}
		return models.InventoryItem{}, err
	}
	return created, nil
}

func (s *inventoryStore) DeleteOwned(ctx context.Context, owner, id uuid.UUID) error {
	return expectOne(s.pool.Exec(ctx, `DELETE FROM inventory_items WHERE id = $1 AND user_id = $2`, id, owner))
}

func scanInventoryItem(row pgx.Row) (models.InventoryItem, error) {
	var it models.InventoryItem
	if err := row.Scan(&it.ID, &it.UserID, &it.IngredientID, &it.Quantity, &it.ExpirationDate, &it.Location,
		&it.Notes, &it.IsReserved, &it.CreatedAt, &it.UpdatedAt,
		&it.Ingredient.ID, &it.Ingredient.Name, &it.Ingredient.Unit, &it.Ingredient.Category); err != nil {
		return models.InventoryItem{}, notFound(err)
	}
	return it, nil
}
