package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hongminglow/mealplan-be/internal/models"
)

const mealColumns = `id, user_id, name, description, instructions, servings, prep_time, cook_time, created_at, updated_at`

type mealStore struct {
	pool *pgxpool.Pool
}

func (s *mealStore) ListOwned(ctx context.Context, owner uuid.UUID) ([]models.Meal, error) {
	const query = `SELECT ` + mealColumns + ` FROM meals WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := s.pool.Query(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}
	defer rows.Close()

	meals := []models.Meal{}
	for rows.Next() {
		meal, err := scanMeal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan meal: %w", err)
		}
		meals = append(meals, meal)
	}
	return meals, rows.Err()
}

func (s *mealStore) FindOwnedByID(ctx context.Context, owner, id uuid.UUID) (models.Meal, error) {
	const query = `SELECT ` + mealColumns + ` FROM meals WHERE id = $1 AND user_id = $2`
	return scanMeal(s.pool.QueryRow(ctx, query, id, owner))
}

func (s *mealStore) CreateOwned(ctx context.Context, owner uuid.UUID, meal models.Meal) (models.Meal, error) {
	if meal.ID == uuid.Nil {
		meal.ID = uuid.New()
	}
	const query = `
		INSERT INTO meals (id, user_id, name, description, instructions, servings, prep_time, cook_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + mealColumns
	row := s.pool.QueryRow(ctx, query, meal.ID, owner, meal.Name, meal.Description, meal.Instructions,
		meal.Servings, meal.PrepTime, meal.CookTime)
	return scanMeal(row)
}

// DeleteOwned removes the meal; its planned meals go with it through the
// foreign key.
func (s *mealStore) DeleteOwned(ctx context.Context, owner, id uuid.UUID) error {
	return expectOne(s.pool.Exec(ctx, `DELETE FROM meals WHERE id = $1 AND user_id = $2`, id, owner))
}

func scanMeal(row pgx.Row) (models.Meal, error) {
	var m models.Meal
	if err := row.Scan(&m.ID, &m.UserID, &m.Name, &m.Description, &m.Instructions, &m.Servings,
		&m.PrepTime, &m.CookTime, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return models.Meal{}, notFound(err)
	}
	return m, nil
}
