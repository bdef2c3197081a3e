package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pftapp/pft-backend/models"
)

var ErrDuplicateCategory = errors.New("категория с таким именем уже существует")

// CreateCategory добавляет категорию пользователя. Имена в рамках одного
// пользователя не повторяются.
func CreateCategory(pool *pgxpool.Pool, category *models.Category) error {
	ctx := context.Background()

	var exists bool
	err := pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM categories WHERE user_id = $1 AND name = $2)`,
		category.UserID, category.Name).Scan(&exists)
	if err != nil {
		return fmt.Errorf("ошибка проверки имени категории: %v", err)
	}
	if exists {
		return ErrDuplicateCategory
	}

	query := `
		INSERT INTO categories (user_id, name, type) VALUES ($1, $2, $3) RETURNING id`
	err = pool.QueryRow(ctx, query, category.UserID, category.Name, category.Type).Scan(&category.ID)
	if err != nil {
		return fmt.Errorf("ошибка при добавлении категории: %v", err)
	}
	return nil
}

// GetCategoriesForUser возвращает категории пользователя вместе с общими
// (user_id IS NULL) категориями по умолчанию.
func GetCategoriesForUser(pool *pgxpool.Pool, userID int) ([]models.Category, error) {
	query := `
		SELECT id, user_id, name, type
		FROM categories
		WHERE user_id = $1 OR user_id IS NULL
		ORDER BY id`
	rows, err := pool.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении категорий: %v", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var category models.Category
		if err := rows.Scan(&category.ID, &category.UserID, &category.Name, &category.Type); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

// GetCategoryByID возвращает категорию, если она принадлежит пользователю
// или является общей.
func GetCategoryByID(pool *pgxpool.Pool, categoryID, userID int) (*models.Category, error) {
	query := `
		SELECT id, user_id, name, type
		FROM categories
		WHERE id = $1 AND (user_id = $2 OR user_id IS NULL)`

	category := &models.Category{}
	err := pool.QueryRow(context.Background(), query, categoryID, userID).Scan(
		&category.ID,
		&category.UserID,
		&category.Name,
		&category.Type,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("категория с ID %d не найдена: %w", categoryID, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении категории: %v", err)
	}
	return category, nil
}

// UpdateCategory обновляет только собственную категорию пользователя.
func UpdateCategory(pool *pgxpool.Pool, category *models.Category, userID int) error {
	query := `
		UPDATE categories
		SET name = $1, type = $2
		WHERE id = $3 AND user_id = $4`
	result, err := pool.Exec(context.Background(), query, category.Name, category.Type, category.ID, userID)
	if err != nil {
		return fmt.Errorf("ошибка обновления категории: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("категория с ID %d не найдена: %w", category.ID, ErrNotFound)
	}
	return nil
}

// DeleteCategory удаляет собственную категорию. Транзакции, ссылавшиеся на неё,
// остаются без категории (внешний ключ сбрасывает ссылку в NULL).
func DeleteCategory(pool *pgxpool.Pool, categoryID, userID int) error {
	result, err := pool.Exec(context.Background(),
		`DELETE FROM categories WHERE id = $1 AND user_id = $2`, categoryID, userID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении категории: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("категория с ID %d не найдена: %w", categoryID, ErrNotFound)
	}
	return nil
}
