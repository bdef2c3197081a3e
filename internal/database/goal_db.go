package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pftapp/pft-backend/models"
	"github.com/shopspring/decimal"
)

// CreateGoal добавляет новую цель накопления.
func CreateGoal(pool *pgxpool.Pool, goal *models.SavingsGoal) error {
	query := `
		INSERT INTO savings_goals (user_id, title, target_amount, current_amount, target_date, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`
	err := pool.QueryRow(context.Background(), query,
		goal.UserID,
		goal.Title,
		goal.TargetAmount,
		goal.CurrentAmount,
		goal.TargetDate,
		goal.Status,
	).Scan(&goal.ID, &goal.CreatedAt, &goal.UpdatedAt)
	if err != nil {
		return fmt.Errorf("ошибка при добавлении цели: %v", err)
	}
	goal.ProgressPercentage = goal.Progress()
	return nil
}

func GetGoalByID(pool *pgxpool.Pool, goalID, userID int) (*models.SavingsGoal, error) {
	query := `
		SELECT id, user_id, title, target_amount, current_amount, target_date, status, created_at, updated_at
		FROM savings_goals
		WHERE id = $1 AND user_id = $2`

	goal := &models.SavingsGoal{}
	err := pool.QueryRow(context.Background(), query, goalID, userID).Scan(
		&goal.ID,
		&goal.UserID,
		&goal.Title,
		&goal.TargetAmount,
		&goal.CurrentAmount,
		&goal.TargetDate,
		&goal.Status,
		&goal.CreatedAt,
		&goal.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("цель с ID %d не найдена: %w", goalID, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении цели: %v", err)
	}
	goal.ProgressPercentage = goal.Progress()
	return goal, nil
}

func GetGoalsByUserID(pool *pgxpool.Pool, userID int) ([]models.SavingsGoal, error) {
	query := `
		SELECT id, user_id, title, target_amount, current_amount, target_date, status, created_at, updated_at
		FROM savings_goals
		WHERE user_id = $1
		ORDER BY created_at DESC`
	rows, err := pool.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении целей: %v", err)
	}
	defer rows.Close()

	goals := []models.SavingsGoal{}
	for rows.Next() {
		var goal models.SavingsGoal
		if err := rows.Scan(
			&goal.ID,
			&goal.UserID,
			&goal.Title,
			&goal.TargetAmount,
			&goal.CurrentAmount,
			&goal.TargetDate,
			&goal.Status,
			&goal.CreatedAt,
			&goal.UpdatedAt,
		); err != nil {
			return nil, err
		}
		goal.ProgressPercentage = goal.Progress()
		goals = append(goals, goal)
	}
	return goals, rows.Err()
}

func UpdateGoal(pool *pgxpool.Pool, goal *models.SavingsGoal) error {
	query := `
		UPDATE savings_goals
		SET title = $1, target_amount = $2, current_amount = $3, target_date = $4, status = $5, updated_at = now()
		WHERE id = $6 AND user_id = $7`
	result, err := pool.Exec(context.Background(), query,
		goal.Title,
		goal.TargetAmount,
		goal.CurrentAmount,
		goal.TargetDate,
		goal.Status,
		goal.ID,
		goal.UserID)
	if err != nil {
		return fmt.Errorf("ошибка обновления цели: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("цель с ID %d не найдена: %w", goal.ID, ErrNotFound)
	}
	goal.ProgressPercentage = goal.Progress()
	return nil
}

func DeleteGoal(pool *pgxpool.Pool, goalID, userID int) error {
	result, err := pool.Exec(context.Background(),
		`DELETE FROM savings_goals WHERE id = $1 AND user_id = $2`, goalID, userID)
	if err != nil {
		return fmt.Errorf("ошибка удаления цели: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("цель с ID %d не найдена: %w", goalID, ErrNotFound)
	}
	return nil
}

// AddGoalProgress прибавляет amount к накопленному и переводит цель в completed,
// как только накопленное достигает целевой суммы. Строка цели блокируется на время
// транзакции, поэтому параллельные пополнения не теряются.
func AddGoalProgress(pool *pgxpool.Pool, goalID, userID int, amount decimal.Decimal) (*models.SavingsGoal, error) {
	ctx := context.Background()
	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия транзакции: %v", err)
	}
	defer tx.Rollback(ctx)

	goal := &models.SavingsGoal{}
	err = tx.QueryRow(ctx, `
		SELECT id, user_id, title, target_amount, current_amount, target_date, status, created_at, updated_at
		FROM savings_goals
		WHERE id = $1 AND user_id = $2
		FOR UPDATE`, goalID, userID).Scan(
		&goal.ID,
		&goal.UserID,
		&goal.Title,
		&goal.TargetAmount,
		&goal.CurrentAmount,
		&goal.TargetDate,
		&goal.Status,
		&goal.CreatedAt,
		&goal.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("цель с ID %d не найдена: %w", goalID, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении цели: %v", err)
	}

	goal.CurrentAmount = goal.CurrentAmount.Add(amount)
	if goal.Achieved() {
		goal.Status = "completed"
	}

	err = tx.QueryRow(ctx, `
		UPDATE savings_goals
		SET current_amount = $1, status = $2, updated_at = now()
		WHERE id = $3
		RETURNING updated_at`,
		goal.CurrentAmount, goal.Status, goal.ID).Scan(&goal.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("ошибка при добавлении прогресса к цели: %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("ошибка фиксации транзакции: %v", err)
	}
	goal.ProgressPercentage = goal.Progress()
	return goal, nil
}
