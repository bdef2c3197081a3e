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

var ErrBillAlreadyPaid = errors.New("счёт уже оплачен")

func CreateBillReminder(pool *pgxpool.Pool, reminder *models.BillReminder) error {
	query := `
		INSERT INTO bill_reminders (user_id, title, amount, due_date, recurrence, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, notification_sent, created_at, updated_at`
	err := pool.QueryRow(context.Background(), query,
		reminder.UserID,
		reminder.Title,
		reminder.Amount,
		reminder.DueDate,
		reminder.Recurrence,
		reminder.Status,
	).Scan(&reminder.ID, &reminder.NotificationSent, &reminder.CreatedAt, &reminder.UpdatedAt)
	if err != nil {
		return fmt.Errorf("ошибка при добавлении напоминания о счёте: %v", err)
	}
	return nil
}

func scanBillReminder(row pgx.Row) (*models.BillReminder, error) {
	reminder := &models.BillReminder{}
	err := row.Scan(
		&reminder.ID,
		&reminder.UserID,
		&reminder.Title,
		&reminder.Amount,
		&reminder.DueDate,
		&reminder.Recurrence,
		&reminder.Status,
		&reminder.NotificationSent,
		&reminder.CreatedAt,
		&reminder.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return reminder, nil
}

const billReminderColumns = `
	id, user_id, title, amount, due_date, recurrence, status, notification_sent, created_at, updated_at`

func GetBillReminderByID(pool *pgxpool.Pool, reminderID, userID int) (*models.BillReminder, error) {
	query := `
		SELECT ` + billReminderColumns + `
		FROM bill_reminders
		WHERE id = $1 AND user_id = $2`
	reminder, err := scanBillReminder(pool.QueryRow(context.Background(), query, reminderID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("напоминание с ID %d не найдено: %w", reminderID, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении напоминания: %v", err)
	}
	return reminder, nil
}

func scanBillReminders(pool *pgxpool.Pool, query string, args ...any) ([]models.BillReminder, error) {
	rows, err := pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении напоминаний: %v", err)
	}
	defer rows.Close()

	reminders := []models.BillReminder{}
	for rows.Next() {
		reminder, err := scanBillReminder(rows)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, *reminder)
	}
	return reminders, rows.Err()
}

func GetBillRemindersByUserID(pool *pgxpool.Pool, userID int) ([]models.BillReminder, error) {
	query := `
		SELECT ` + billReminderColumns + `
		FROM bill_reminders
		WHERE user_id = $1
		ORDER BY due_date`
	return scanBillReminders(pool, query, userID)
}

// GetUpcomingBillReminders — неоплаченные счета со сроком в пределах недели.
func GetUpcomingBillReminders(pool *pgxpool.Pool, userID int, from, to time.Time) ([]models.BillReminder, error) {
	query := `
		SELECT ` + billReminderColumns + `
		FROM bill_reminders
		WHERE user_id = $1 AND status = 'pending' AND due_date BETWEEN $2 AND $3
		ORDER BY due_date`
	return scanBillReminders(pool, query, userID, from, to)
}

func UpdateBillReminder(pool *pgxpool.Pool, reminder *models.BillReminder) error {
	// notification_sent намеренно не обновляется: поле системное.
	query := `
		UPDATE bill_reminders
		SET title = $1, amount = $2, due_date = $3, recurrence = $4, status = $5, updated_at = now()
		WHERE id = $6 AND user_id = $7`
	result, err := pool.Exec(context.Background(), query,
		reminder.Title,
		reminder.Amount,
		reminder.DueDate,
		reminder.Recurrence,
		reminder.Status,
		reminder.ID,
		reminder.UserID)
	if err != nil {
		return fmt.Errorf("ошибка обновления напоминания: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("напоминание с ID %d не найдено: %w", reminder.ID, ErrNotFound)
	}
	return nil
}

func DeleteBillReminder(pool *pgxpool.Pool, reminderID, userID int) error {
	result, err := pool.Exec(context.Background(),
		`DELETE FROM bill_reminders WHERE id = $1 AND user_id = $2`, reminderID, userID)
	if err != nil {
		return fmt.Errorf("ошибка удаления напоминания: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("напоминание с ID %d не найдено: %w", reminderID, ErrNotFound)
	}
	return nil
}

// MarkBillReminderPaid помечает счёт оплаченным и создаёт транзакцию расхода
// на его сумму. Оба изменения выполняются в одной транзакции БД: счёт не может
// оказаться оплаченным без записи в журнале. Повторная оплата отклоняется.
func MarkBillReminderPaid(pool *pgxpool.Pool, reminderID, userID int) (*models.BillReminder, error) {
	ctx := context.Background()
	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия транзакции: %v", err)
	}
	defer tx.Rollback(ctx)

	query := `
		SELECT ` + billReminderColumns + `
		FROM bill_reminders
		WHERE id = $1 AND user_id = $2
		FOR UPDATE`
	reminder, err := scanBillReminder(tx.QueryRow(ctx, query, reminderID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("напоминание с ID %d не найдено: %w", reminderID, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении напоминания: %v", err)
	}
	if reminder.Status == "paid" {
		return nil, ErrBillAlreadyPaid
	}

	err = tx.QueryRow(ctx, `
		UPDATE bill_reminders
		SET status = 'paid', updated_at = now()
		WHERE id = $1
		RETURNING updated_at`, reminder.ID).Scan(&reminder.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("ошибка обновления статуса счёта: %v", err)
	}
	reminder.Status = "paid"

	payment := &models.Transaction{
		UserID:          userID,
		Title:           fmt.Sprintf("Payment for %s", reminder.Title),
		Amount:          reminder.Amount,
		TransactionDate: time.Now(),
	}
	if err := insertExpenseTx(ctx, tx, payment); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("ошибка фиксации транзакции: %v", err)
	}
	return reminder, nil
}

// MarkOverdueBillReminders переводит просроченные неоплаченные счета в overdue.
// Вызывается ежедневной cron-задачей.
func MarkOverdueBillReminders(pool *pgxpool.Pool) (int64, error) {
	result, err := pool.Exec(context.Background(), `
		UPDATE bill_reminders
		SET status = 'overdue', updated_at = now()
		WHERE status = 'pending' AND due_date < CURRENT_DATE`)
	if err != nil {
		return 0, fmt.Errorf("ошибка пометки просроченных счетов: %v", err)
	}
	return result.RowsAffected(), nil
}
