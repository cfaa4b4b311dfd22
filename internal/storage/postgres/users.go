package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hongminglow/mealplan-be/internal/models"
	"github.com/hongminglow/mealplan-be/internal/storage"
)

const userColumns = `id, name, email, password_hash, is_admin, created_at`

type userStore struct {
	pool *pgxpool.Pool
}

// CreateUser inserts a new user row.
func (s *userStore) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	const query = `
		INSERT INTO users (id, name, email, password_hash, is_admin)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + userColumns
	row := s.pool.QueryRow(ctx, query, user.ID, user.Name, user.Email, user.PasswordHash, user.IsAdmin)
	created, err := scanUser(row)
	if err != nil {
		if hasCode(err, codeUniqueViolation) {
			return models.User{}, storage.ErrAlreadyExists
		}
		return models.User{}, err
	}
	return created, nil
}

// FindByEmail fetches a user by email address.
func (s *userStore) FindByEmail(ctx context.Context, email string) (models.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(s.pool.QueryRow(ctx, query, email))
}

func (s *userStore) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	return exists, err
}

// ListUsers returns every account with counts of what it owns, newest first.
func (s *userStore) ListUsers(ctx context.Context) ([]models.UserOverview, error) {
	const query = `
	SELECT u.id, u.name, u.email, u.is_admin, u.created_at,
		(SELECT COUNT(*) FROM meals m WHERE m.user_id = u.id),
		(SELECT COUNT(*) FROM inventory_items i WHERE i.user_id = u.id),
		(SELECT COUNT(*) FROM planned_meals p WHERE p.user_id = u.id),
		(SELECT COUNT(*) FROM shopping_lists l WHERE l.user_id = u.id)
	FROM users u
	ORDER BY u.created_at DESC;
	`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := []models.UserOverview{}
	for rows.Next() {
		var u models.UserOverview
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.IsAdmin, &u.CreatedAt,
			&u.Count.Meals, &u.Count.InventoryItems, &u.Count.PlannedMeals, &u.Count.ShoppingLists); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *userStore) SetAdmin(ctx context.Context, id uuid.UUID, isAdmin bool) (models.User, error) {
	const query = `UPDATE users SET is_admin = $2 WHERE id = $1 RETURNING ` + userColumns
	return scanUser(s.pool.QueryRow(ctx, query, id, isAdmin))
}

// DeleteUser removes the user's dependents and then the user in one
// transaction. Nothing is deleted when the user does not exist.
func (s *userStore) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		var locked uuid.UUID
		if err := tx.QueryRow(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, id).Scan(&locked); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return storage.ErrNotFound
			}
			return fmt.Errorf("lock user: %w", err)
		}
		stmts := []string{
			`DELETE FROM shopping_list_items WHERE shopping_list_id IN (SELECT id FROM shopping_lists WHERE user_id = $1)`,
			`DELETE FROM shopping_lists WHERE user_id = $1`,
			`DELETE FROM planned_meals WHERE user_id = $1`,
			`DELETE FROM inventory_items WHERE user_id = $1`,
			`DELETE FROM meals WHERE user_id = $1`,
			`DELETE FROM users WHERE id = $1`,
		}
		for _, stmt := range stmts {
			if _, err := tx.Exec(ctx, stmt, id); err != nil {
				return fmt.Errorf("delete user cascade: %w", err)
			}
		}
		return nil
	})
}

func scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.IsAdmin, &user.CreatedAt); err != nil {
		return models.User{}, notFound(err)
	}
	return user, nil
}
