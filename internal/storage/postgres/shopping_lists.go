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

const shoppingListColumns = `id, user_id, name, is_completed, created_at, updated_at`

type shoppingListStore struct {
	pool *pgxpool.Pool
}

// ListOwned returns owner's lists, newest first, each with all of its items.
func (s *shoppingListStore) ListOwned(ctx context.Context, owner uuid.UUID) ([]models.ShoppingList, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+shoppingListColumns+` FROM shopping_lists WHERE user_id = $1 ORDER BY created_at DESC`, owner)
	if err != nil {
		return nil, fmt.Errorf("list shopping lists: %w", err)
	}
	defer rows.Close()

	lists := []models.ShoppingList{}
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		list, err := scanShoppingList(rows)
		if err != nil {
			return nil, fmt.Errorf("scan shopping list: %w", err)
		}
		index[list.ID] = len(lists)
		lists = append(lists, list)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(lists) == 0 {
		return lists, nil
	}

	const itemsQuery = `
	SELECT si.id, si.shopping_list_id, si.ingredient_id, si.quantity, si.is_purchased, si.notes,
		g.id, g.name, g.unit, g.category
	FROM shopping_list_items si
	JOIN shopping_lists sl ON sl.id = si.shopping_list_id
	JOIN ingredients g ON g.id = si.ingredient_id
	WHERE sl.user_id = $1
	ORDER BY g.name ASC;
	`
	itemRows, err := s.pool.Query(ctx, itemsQuery, owner)
	if err != nil {
		return nil, fmt.Errorf("list shopping list items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		item, err := scanShoppingListItem(itemRows)
		if err != nil {
			return nil, fmt.Errorf("scan shopping list item: %w", err)
		}
		if i, ok := index[item.ShoppingListID]; ok {
			lists[i].Items = append(lists[i].Items, item)
		}
	}
	return lists, itemRows.Err()
}

// CreateOwned writes the list and its items in one transaction.
func (s *shoppingListStore) CreateOwned(ctx context.Context, owner uuid.UUID, list models.ShoppingList) (models.ShoppingList, error) {
	if list.ID == uuid.Nil {
		list.ID = uuid.New()
	}
	var created models.ShoppingList
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		const listQuery = `
			INSERT INTO shopping_lists (id, user_id, name)
			VALUES ($1, $2, $3)
			RETURNING ` + shoppingListColumns
		var err error
		created, err = scanShoppingList(tx.QueryRow(ctx, listQuery, list.ID, owner, list.Name))
		if err != nil {
			return err
		}

		const itemQuery = `
		WITH inserted AS (
			INSERT INTO shopping_list_items (id, shopping_list_id, ingredient_id, quantity, notes)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, shopping_list_id, ingredient_id, quantity, is_purchased, notes
		)
		SELECT i.id, i.shopping_list_id, i.ingredient_id, i.quantity, i.is_purchased, i.notes,
			g.id, g.name, g.unit, g.category
		FROM inserted i
		JOIN ingredients g ON g.id = i.ingredient_id;
		`
		created.Items = make([]models.ShoppingListItem, 0, len(list.Items))
		for _, item := range list.Items {
			if item.ID == uuid.Nil {
				item.ID = uuid.New()
			}
			row := tx.QueryRow(ctx, itemQuery, item.ID, created.ID, item.IngredientID, item.Quantity, item.Notes)
			inserted, err := scanShoppingListItem(row)
			if err != nil {
				return err
			}
			created.Items = append(created.Items, inserted)
		}
		return nil
	})
	if err != nil {
		if hasCode(err, codeForeignKeyViolation) {
			return models.ShoppingList{}, storage.ErrInvalidReference
		}
		return models.ShoppingList{}, err
	}
	return created, nil
}

func (s *shoppingListStore) DeleteOwned(ctx context.Context, owner, id uuid.UUID) error {
	return expectOne(s.pool.Exec(ctx, `DELETE FROM shopping_lists WHERE id = $1 AND user_id = $2`, id, owner))
}

// SetItemPurchased sets the item's flag and recomputes the list's completion
// in the same transaction.
func (s *shoppingListStore) SetItemPurchased(ctx context.Context, owner, listID, itemID uuid.UUID, purchased bool) (models.ShoppingListItem, error) {
	var updated models.ShoppingListItem
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		const query = `
		WITH updated AS (
			UPDATE shopping_list_items si
			SET is_purchased = $4
			FROM shopping_lists sl
			WHERE si.id = $3 AND si.shopping_list_id = $2 AND sl.id = si.shopping_list_id AND sl.user_id = $1
			RETURNING si.id, si.shopping_list_id, si.ingredient_id, si.quantity, si.is_purchased, si.notes
		)
		SELECT u.id, u.shopping_list_id, u.ingredient_id, u.quantity, u.is_purchased, u.notes,
			g.id, g.name, g.unit, g.category
		FROM updated u
		JOIN ingredients g ON g.id = u.ingredient_id;
		`
		var err error
		updated, err = scanShoppingListItem(tx.QueryRow(ctx, query, owner, listID, itemID, purchased))
		if err != nil {
			return err
		}

		const completion = `
		UPDATE shopping_lists
		SET is_completed = NOT EXISTS (
			SELECT 1 FROM shopping_list_items WHERE shopping_list_id = $1 AND NOT is_purchased
		), updated_at = NOW()
		WHERE id = $1 AND user_id = $2;
		`
		if _, err := tx.Exec(ctx, completion, listID, owner); err != nil {
			return fmt.Errorf("update list completion: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.ShoppingListItem{}, err
	}
	return updated, nil
}

func scanShoppingList(row pgx.Row) (models.ShoppingList, error) {
	var l models.ShoppingList
	if err := row.Scan(&l.ID, &l.UserID, &l.Name, &l.IsCompleted, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return models.ShoppingList{}, notFound(err)
	}
	l.Items = []models.ShoppingListItem{}
	return l, nil
}

func scanShoppingListItem(row pgx.Row) (models.ShoppingListItem, error) {
	var it models.ShoppingListItem
	if err := row.Scan(&it.ID, &it.ShoppingListID, &it.IngredientID, &it.Quantity, &it.IsPurchased, &it.Notes,
		&it.Ingredient.ID, &it.Ingredient.Name, &it.Ingredient.Unit, &it.Ingredient.Category); err != nil {
		return models.ShoppingListItem{}, notFound(err)
	}
	return it, nil
}
