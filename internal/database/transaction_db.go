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

func CreateTransaction(pool *pgxpool.Pool, transaction *models.Transaction) error {
	query := `
		INSERT INTO transactions (user_id, title, amount, type, category_id, transaction_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`
	err := pool.QueryRow(context.Background(), query,
		transaction.UserID,
		transaction.Title,
		transaction.Amount,
		transaction.Type,
		transaction.CategoryID,
		transaction.TransactionDate,
	).Scan(&transaction.ID, &transaction.CreatedAt, &transaction.UpdatedAt)
	if err != nil {
		return fmt.Errorf("ошибка при добавлении транзакции: %v", err)
	}
	return nil
}

func GetTransactionByID(pool *pgxpool.Pool, transactionID, userID int) (*models.Transaction, error) {
	query := `
		SELECT t.id, t.user_id, t.title, t.amount, t.type, t.category_id, c.name,
		       t.transaction_date, t.created_at, t.updated_at
		FROM transactions t
		LEFT JOIN categories c ON t.category_id = c.id
		WHERE t.id = $1 AND t.user_id = $2`

	transaction := &models.Transaction{}
	err := pool.QueryRow(context.Background(), query, transactionID, userID).Scan(
		&transaction.ID,
		&transaction.UserID,
		&transaction.Title,
		&transaction.Amount,
		&transaction.Type,
		&transaction.CategoryID,
		&transaction.CategoryName,
		&transaction.TransactionDate,
		&transaction.CreatedAt,
		&transaction.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("транзакция с ID %d не найдена: %w", transactionID, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении транзакции: %v", err)
	}
	return transaction, nil
}

func GetTransactionsByUserID(pool *pgxpool.Pool, userID int) ([]models.Transaction, error) {
	query := `
		SELECT t.id, t.user_id, t.title, t.amount, t.type, t.category_id, c.name,
		       t.transaction_date, t.created_at, t.updated_at
		FROM transactions t
		LEFT JOIN categories c ON t.category_id = c.id
		WHERE t.user_id = $1
		ORDER BY t.transaction_date DESC, t.id DESC`
	return scanTransactions(pool, query, userID)
}

// GetTransactionsByPeriod возвращает транзакции пользователя за период
// [from, to] включительно.
func GetTransactionsByPeriod(pool *pgxpool.Pool, userID int, from, to time.Time) ([]models.Transaction, error) {
	query := `
		SELECT t.id, t.user_id, t.title, t.amount, t.type, t.category_id, c.name,
		       t.transaction_date, t.created_at, t.updated_at
		FROM transactions t
		LEFT JOIN categories c ON t.category_id = c.id
		WHERE t.user_id = $1 AND t.transaction_date BETWEEN $2 AND $3
		ORDER BY t.transaction_date, t.id`
	return scanTransactions(pool, query, userID, from, to)
}

func scanTransactions(pool *pgxpool.Pool, query string, args ...any) ([]models.Transaction, error) {
	rows, err := pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения транзакций: %v", err)
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(
			&t.ID,
			&t.UserID,
			&t.Title,
			&t.Amount,
			&t.Type,
			&t.CategoryID,
			&t.CategoryName,
			&t.TransactionDate,
			&t.CreatedAt,
			&t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

func UpdateTransaction(pool *pgxpool.Pool, transaction *models.Transaction) error {
	query := `
		UPDATE transactions
		SET title = $1, amount = $2, type = $3, category_id = $4, transaction_date = $5, updated_at = now()
		WHERE id = $6 AND user_id = $7`
	result, err := pool.Exec(context.Background(), query,
		transaction.Title,
		transaction.Amount,
		transaction.Type,
		transaction.CategoryID,
		transaction.TransactionDate,
		transaction.ID,
		transaction.UserID)
	if err != nil {
		return fmt.Errorf("ошибка обновления транзакции: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("транзакция с ID %d не найдена: %w", transaction.ID, ErrNotFound)
	}
	return nil
}

func DeleteTransaction(pool *pgxpool.Pool, transactionID, userID int) error {
	result, err := pool.Exec(context.Background(),
		`DELETE FROM transactions WHERE id = $1 AND user_id = $2`, transactionID, userID)
	if err != nil {
		return fmt.Errorf("ошибка удаления транзакции: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("транзакция с ID %d не найдена: %w", transactionID, ErrNotFound)
	}
	return nil
}

// insertExpenseTx добавляет транзакцию расхода внутри уже открытой транзакции БД.
// Используется оплатой счетов и платежами по долгам.
func insertExpenseTx(ctx context.Context, tx pgx.Tx, t *models.Transaction) error {
	query := `
		INSERT INTO transactions (user_id, title, amount, type, transaction_date)
		VALUES ($1, $2, $3, 'expense', $4)
		RETURNING id, created_at, updated_at`
	err := tx.QueryRow(ctx, query,
		t.UserID,
		t.Title,
		t.Amount,
		t.TransactionDate,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("ошибка создания транзакции расхода: %v", err)
	}
	t.Type = "expense"
	return nil
}
