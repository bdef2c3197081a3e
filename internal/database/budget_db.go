package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pftapp/pft-backend/models"
)

// UpsertBudget — запись бюджета по естественному ключу
// (user_id, category_id, month, year). Если строка с таким ключом уже есть,
// обновляется её лимит и возвращается created = false; иначе создаётся новая.
// Поиск и запись выполняются в одной транзакции, явным образом, без побочных
// эффектов на этапе валидации.
func UpsertBudget(pool *pgxpool.Pool, budget *models.Budget) (created bool, err error) {
	ctx := context.Background()
	tx, err := pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("ошибка открытия транзакции: %v", err)
	}
	defer tx.Rollback(ctx)

	var existingID int
	err = tx.QueryRow(ctx, `
		SELECT id FROM budgets
		WHERE user_id = $1 AND category_id = $2 AND month = $3 AND year = $4
		FOR UPDATE`,
		budget.UserID, budget.CategoryID, budget.Month, budget.Year).Scan(&existingID)

	switch {
	case err == nil:
		// Существующий кортеж побеждает: обновляем его, а не создаём дубликат.
		budget.ID = existingID
		_, err = tx.Exec(ctx,
			`UPDATE budgets SET amount_limit = $1 WHERE id = $2`,
			budget.AmountLimit, existingID)
		if err != nil {
			return false, fmt.Errorf("ошибка обновления бюджета: %v", err)
		}
	case errors.Is(err, pgx.ErrNoRows):
		// Две параллельные первые записи по одному ключу не видят строк друг
		// друга до коммита: проигравшую вставку уводим в обновление.
		err = tx.QueryRow(ctx, `
			INSERT INTO budgets (user_id, category_id, month, year, amount_limit)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (user_id, category_id, month, year)
			DO UPDATE SET amount_limit = EXCLUDED.amount_limit
			RETURNING id`,
			budget.UserID, budget.CategoryID, budget.Month, budget.Year, budget.AmountLimit,
		).Scan(&budget.ID)
		if err != nil {
			return false, fmt.Errorf("ошибка при добавлении бюджета: %v", err)
		}
		created = true
	default:
		return false, fmt.Errorf("ошибка поиска бюджета: %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("ошибка фиксации транзакции: %v", err)
	}
	return created, nil
}

func GetBudgetByID(pool *pgxpool.Pool, budgetID, userID int) (*models.Budget, error) {
	query := `
		SELECT id, user_id, category_id, month, year, amount_limit
		FROM budgets
		WHERE id = $1 AND user_id = $2`

	budget := &models.Budget{}
	err := pool.QueryRow(context.Background(), query, budgetID, userID).Scan(
		&budget.ID,
		&budget.UserID,
		&budget.CategoryID,
		&budget.Month,
		&budget.Year,
		&budget.AmountLimit,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("бюджет с ID %d не найден: %w", budgetID, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении бюджета: %v", err)
	}
	return budget, nil
}

func GetBudgetsByUserID(pool *pgxpool.Pool, userID int) ([]models.Budget, error) {
	query := `
		SELECT id, user_id, category_id, month, year, amount_limit
		FROM budgets
		WHERE user_id = $1
		ORDER BY year, month, category_id`
	rows, err := pool.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении списка бюджетов: %v", err)
	}
	defer rows.Close()

	budgets := []models.Budget{}
	for rows.Next() {
		var budget models.Budget
		if err := rows.Scan(
			&budget.ID,
			&budget.UserID,
			&budget.CategoryID,
			&budget.Month,
			&budget.Year,
			&budget.AmountLimit,
		); err != nil {
			return nil, err
		}
		budgets = append(budgets, budget)
	}
	return budgets, rows.Err()
}

// UpdateBudget обновляет бюджет по id. Если новый кортеж естественного ключа
// совпадает с другой существующей строкой, обновляется та строка — цель записи
// перенаправляется на неё, дубликат не появляется.
func UpdateBudget(pool *pgxpool.Pool, budget *models.Budget) error {
	ctx := context.Background()
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка открытия транзакции: %v", err)
	}
	defer tx.Rollback(ctx)

	var targetID int
	err = tx.QueryRow(ctx, `
		SELECT id FROM budgets
		WHERE user_id = $1 AND category_id = $2 AND month = $3 AND year = $4
		FOR UPDATE`,
		budget.UserID, budget.CategoryID, budget.Month, budget.Year).Scan(&targetID)
	if errors.Is(err, pgx.ErrNoRows) {
		targetID = budget.ID
	} else if err != nil {
		return fmt.Errorf("ошибка поиска бюджета: %v", err)
	}

	result, err := tx.Exec(ctx, `
		UPDATE budgets
		SET category_id = $1, month = $2, year = $3, amount_limit = $4
		WHERE id = $5 AND user_id = $6`,
		budget.CategoryID,
		budget.Month,
		budget.Year,
		budget.AmountLimit,
		targetID,
		budget.UserID)
	if err != nil {
		return fmt.Errorf("ошибка обновления бюджета: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("бюджет с ID %d не найден: %w", budget.ID, ErrNotFound)
	}
	budget.ID = targetID

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("ошибка фиксации транзакции: %v", err)
	}
	return nil
}

func DeleteBudget(pool *pgxpool.Pool, budgetID, userID int) error {
	result, err := pool.Exec(context.Background(),
		`DELETE FROM budgets WHERE id = $1 AND user_id = $2`, budgetID, userID)
	if err != nil {
		return fmt.Errorf("ошибка удаления бюджета: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("бюджет с ID %d не найден: %w", budgetID, ErrNotFound)
	}
	return nil
}
