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

const ingredientColumns = `id, name, unit, category, created_at`

type ingredientStore struct {
	pool *pgxpool.Pool
}

func (s *ingredientStore) List(ctx context.Context) ([]models.Ingredient, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+ingredientColumns+` FROM ingredients ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	defer rows.Close()

	out := []models.Ingredient{}
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ingredient: %w", err)
		}
		out = append(out, ing)
	}
	return out, rows.Err()
}

func (s *ingredientStore) FindByID(ctx context.Context, id uuid.UUID) (models.Ingredient, error) {
	return scanIngredient(s.pool.QueryRow(ctx, `SELECT `+ingredientColumns+` FROM ingredients WHERE id = $1`, id))
}

func (s *ingredientStore) Create(ctx context.Context, ing models.Ingredient) (models.Ingredient, error) {
	if ing.ID == uuid.Nil {
		ing.ID = uuid.New()
	}
	const query = `
		INSERT INTO ingredients (id, name, unit, category)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + ingredientColumns
	created, err := scanIngredient(s.pool.QueryRow(ctx, query, ing.ID, ing.Name, ing.Unit, ing.Category))
	if err != nil {
		if hasCode(err, codeUniqueViolation) {
			return models.Ingredient{}, storage.ErrAlreadyExists
		}
		return models.Ingredient{}, err
	}
	return created, nil
}

func scanIngredient(row pgx.Row) (models.Ingredient, error) {
	var ing models.Ingredient
	if err := row.Scan(&ing.ID, &ing.Name, &ing.Unit, &ing.Category, &ing.CreatedAt); err != nil {
		return models.Ingredient{}, notFound(err)
	}
	return ing, nil
}
