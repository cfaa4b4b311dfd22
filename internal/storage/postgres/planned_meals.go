package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hongminglow/mealplan-be/internal/models"
)

type plannedMealStore struct {
	pool *pgxpool.Pool
}

func (s *plannedMealStore) ListOwned(ctx context.Context, owner uuid.UUID) ([]models.PlannedMeal, error) {
	const query = `
	SELECT p.id, p.user_id, p.meal_id, p.planned_date, p.meal_type, p.servings, p.created_at,
		m.id, m.name, m.description, m.servings
	FROM planned_meals p
	JOIN meals m ON m.id = p.meal_id AND m.user_id = p.user_id
	WHERE p.user_id = $1
	ORDER BY p.planned_date ASC;
	`
	rows, err := s.pool.Query(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("list planned meals: %w", err)
	}
	defer rows.Close()

	planned := []models.PlannedMeal{}
	for rows.Next() {
		pm, err := scanPlannedMeal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan planned meal: %w", err)
		}
		planned = append(planned, pm)
	}
	return planned, rows.Err()
}

// CreateOwned inserts only when the meal belongs to owner; otherwise no row
// is written and storage.ErrNotFound is returned. Servings <= 0 falls back to
// the meal's own servings.
func (s *plannedMealStore) CreateOwned(ctx context.Context, owner uuid.UUID, pm models.PlannedMeal) (models.PlannedMeal, error) {
	if pm.ID == uuid.Nil {
		pm.ID = uuid.New()
	}
	const query = `
	WITH inserted AS (
		INSERT INTO planned_meals (id, user_id, meal_id, planned_date, meal_type, servings)
		SELECT $1::uuid, m.user_id, m.id, $4::timestamptz, $5::text, CASE WHEN $6::int > 0 THEN $6::int ELSE m.servings END
		FROM meals m
		WHERE m.id = $3 AND m.user_id = $2
		RETURNING id, user_id, meal_id, planned_date, meal_type, servings, created_at
	)
	SELECT i.id, i.user_id, i.meal_id, i.planned_date, i.meal_type, i.servings, i.created_at,
		m.id, m.name, m.description, m.servings
	FROM inserted i
	JOIN meals m ON m.id = i.meal_id;
	`
	row := s.pool.QueryRow(ctx, query, pm.ID, owner, pm.MealID, pm.PlannedDate, string(pm.MealType), pm.Servings)
	return scanPlannedMeal(row)
}

func (s *plannedMealStore) DeleteOwned(ctx context.Context, owner, id uuid.UUID) error {
	return expectOne(s.pool.Exec(ctx, `DELETE FROM planned_meals WHERE id = $1 AND user_id = $2`, id, owner))
}

func scanPlannedMeal(row pgx.Row) (models.PlannedMeal, error) {
	var pm models.PlannedMeal
	var mealType string
	if err := row.Scan(&pm.ID, &pm.UserID, &pm.MealID, &pm.PlannedDate, &mealType, &pm.Servings, &pm.CreatedAt,
		&pm.Meal.ID, &pm.Meal.Name, &pm.Meal.Description, &pm.Meal.Servings); err != nil {
		return models.PlannedMeal{}, notFound(err)
	}
	pm.MealType = models.MealType(mealType)
	return pm, nil
}
