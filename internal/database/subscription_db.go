package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pftapp/pft-backend/models"
)

func CreateSubscriptionPlan(pool *pgxpool.Pool, plan *models.SubscriptionPlan) error {
	query := `
		INSERT INTO subscription_plans (name, description, type, billing_cycle)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`
	err := pool.QueryRow(context.Background(), query,
		plan.Name,
		plan.Description,
		plan.Type,
		plan.BillingCycle,
	).Scan(&plan.ID, &plan.CreatedAt, &plan.UpdatedAt)
	if err != nil {
		return fmt.Errorf("ошибка при добавлении плана подписки: %v", err)
	}
	return nil
}

func GetSubscriptionPlanByID(pool *pgxpool.Pool, planID int) (*models.SubscriptionPlan, error) {
	query := `
		SELECT id, name, description, type, billing_cycle, created_at, updated_at
		FROM subscription_plans
		WHERE id = $1`

	plan := &models.SubscriptionPlan{}
	err := pool.QueryRow(context.Background(), query, planID).Scan(
		&plan.ID,
		&plan.Name,
		&plan.Description,
		&plan.Type,
		&plan.BillingCycle,
		&plan.CreatedAt,
		&plan.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("план подписки с ID %d не найден: %w", planID, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении плана подписки: %v", err)
	}
	return plan, nil
}

func GetAllSubscriptionPlans(pool *pgxpool.Pool) ([]models.SubscriptionPlan, error) {
	query := `
		SELECT id, name, description, type, billing_cycle, created_at, updated_at
		FROM subscription_plans
		ORDER BY name`
	rows, err := pool.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении планов подписок: %v", err)
	}
	defer rows.Close()

	plans := []models.SubscriptionPlan{}
	for rows.Next() {
		var plan models.SubscriptionPlan
		if err := rows.Scan(
			&plan.ID,
			&plan.Name,
			&plan.Description,
			&plan.Type,
			&plan.BillingCycle,
			&plan.CreatedAt,
			&plan.UpdatedAt,
		); err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, rows.Err()
}

func UpdateSubscriptionPlan(pool *pgxpool.Pool, plan *models.SubscriptionPlan) error {
	query := `
		UPDATE subscription_plans
		SET name = $1, description = $2, type = $3, billing_cycle = $4, updated_at = now()
		WHERE id = $5`
	result, err := pool.Exec(context.Background(), query,
		plan.Name, plan.Description, plan.Type, plan.BillingCycle, plan.ID)
	if err != nil {
		return fmt.Errorf("ошибка обновления плана подписки: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("план подписки с ID %d не найден: %w", plan.ID, ErrNotFound)
	}
	return nil
}

func DeleteSubscriptionPlan(pool *pgxpool.Pool, planID int) error {
	result, err := pool.Exec(context.Background(),
		`DELETE FROM subscription_plans WHERE id = $1`, planID)
	if err != nil {
		return fmt.Errorf("ошибка удаления плана подписки: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("план подписки с ID %d не найден: %w", planID, ErrNotFound)
	}
	return nil
}

const subscriptionColumns = `
	s.id, s.user_id, s.plan_id, s.amount, s.start_date, s.end_date,
	s.auto_renewal, s.status, s.next_billing_date, s.notes, s.created_at, s.updated_at,
	p.id, p.name, p.description, p.type, p.billing_cycle, p.created_at, p.updated_at`

func scanSubscription(row pgx.Row) (*models.Subscription, error) {
	sub := &models.Subscription{PlanDetails: &models.SubscriptionPlan{}}
	err := row.Scan(
		&sub.ID,
		&sub.UserID,
		&sub.PlanID,
		&sub.Amount,
		&sub.StartDate,
		&sub.EndDate,
		&sub.AutoRenewal,
		&sub.Status,
		&sub.NextBillingDate,
		&sub.Notes,
		&sub.CreatedAt,
		&sub.UpdatedAt,
		&sub.PlanDetails.ID,
		&sub.PlanDetails.Name,
		&sub.PlanDetails.Description,
		&sub.PlanDetails.Type,
		&sub.PlanDetails.BillingCycle,
		&sub.PlanDetails.CreatedAt,
		&sub.PlanDetails.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return sub, nil
}

func CreateSubscription(pool *pgxpool.Pool, sub *models.Subscription) error {
	query := `
		INSERT INTO subscriptions (user_id, plan_id, amount, start_date, end_date, auto_renewal, status, next_billing_date, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`
	err := pool.QueryRow(context.Background(), query,
		sub.UserID,
		sub.PlanID,
		sub.Amount,
		sub.StartDate,
		sub.EndDate,
		sub.AutoRenewal,
		sub.Status,
		sub.NextBillingDate,
		sub.Notes,
	).Scan(&sub.ID, &sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		return fmt.Errorf("ошибка при добавлении подписки: %v", err)
	}
	return nil
}

func GetSubscriptionByID(pool *pgxpool.Pool, subscriptionID, userID int) (*models.Subscription, error) {
	query := `
		SELECT ` + subscriptionColumns + `
		FROM subscriptions s
		JOIN subscription_plans p ON s.plan_id = p.id
		WHERE s.id = $1 AND s.user_id = $2`

	sub, err := scanSubscription(pool.QueryRow(context.Background(), query, subscriptionID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("подписка с ID %d не найдена: %w", subscriptionID, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении подписки: %v", err)
	}
	return sub, nil
}

func scanSubscriptions(pool *pgxpool.Pool, query string, args ...any) ([]models.Subscription, error) {
	rows, err := pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении подписок: %v", err)
	}
	defer rows.Close()

	subscriptions := []models.Subscription{}
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		subscriptions = append(subscriptions, *sub)
	}
	return subscriptions, rows.Err()
}

func GetSubscriptionsByUserID(pool *pgxpool.Pool, userID int) ([]models.Subscription, error) {
	query := `
		SELECT ` + subscriptionColumns + `
		FROM subscriptions s
		JOIN subscription_plans p ON s.plan_id = p.id
		WHERE s.user_id = $1
		ORDER BY s.created_at DESC`
	return scanSubscriptions(pool, query, userID)
}

// GetUpcomingRenewals возвращает активные подписки со списанием не позже until,
// по возрастанию даты списания.
func GetUpcomingRenewals(pool *pgxpool.Pool, userID int, until time.Time) ([]models.Subscription, error) {
	query := `
		SELECT ` + subscriptionColumns + `
		FROM subscriptions s
		JOIN subscription_plans p ON s.plan_id = p.id
		WHERE s.user_id = $1 AND s.status = 'active' AND s.next_billing_date <= $2
		ORDER BY s.next_billing_date`
	return scanSubscriptions(pool, query, userID, until)
}

// GetActiveSubscriptions — активные подписки пользователя для подсчёта статистики.
func GetActiveSubscriptions(pool *pgxpool.Pool, userID int) ([]models.Subscription, error) {
	query := `
		SELECT ` + subscriptionColumns + `
		FROM subscriptions s
		JOIN subscription_plans p ON s.plan_id = p.id
		WHERE s.user_id = $1 AND s.status = 'active'
		ORDER BY s.created_at DESC`
	return scanSubscriptions(pool, query, userID)
}

func UpdateSubscription(pool *pgxpool.Pool, sub *models.Subscription) error {
	query := `
		UPDATE subscriptions
		SET plan_id = $1, amount = $2, start_date = $3, end_date = $4, auto_renewal = $5,
		    status = $6, next_billing_date = $7, notes = $8, updated_at = now()
		WHERE id = $9 AND user_id = $10`
	result, err := pool.Exec(context.Background(), query,
		sub.PlanID,
		sub.Amount,
		sub.StartDate,
		sub.EndDate,
		sub.AutoRenewal,
		sub.Status,
		sub.NextBillingDate,
		sub.Notes,
		sub.ID,
		sub.UserID)
	if err != nil {
		return fmt.Errorf("ошибка обновления подписки: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("подписка с ID %d не найдена: %w", sub.ID, ErrNotFound)
	}
	return nil
}

func DeleteSubscription(pool *pgxpool.Pool, subscriptionID, userID int) error {
	result, err := pool.Exec(context.Background(),
		`DELETE FROM subscriptions WHERE id = $1 AND user_id = $2`, subscriptionID, userID)
	if err != nil {
		return fmt.Errorf("ошибка удаления подписки: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("подписка с ID %d не найдена: %w", subscriptionID, ErrNotFound)
	}
	return nil
}
