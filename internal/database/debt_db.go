package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pftapp/pft-backend/models"
	"github.com/shopspring/decimal"
)

func CreateDebtAccount(pool *pgxpool.Pool, account *models.DebtAccount) error {
	query := `
		INSERT INTO debt_accounts (user_id, name, balance, interest_rate, minimum_payment, due_date, account_type, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`
	err := pool.QueryRow(context.Background(), query,
		account.UserID,
		account.Name,
		account.Balance,
		account.InterestRate,
		account.MinimumPayment,
		account.DueDate,
		account.AccountType,
		account.Status,
	).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		return fmt.Errorf("ошибка при добавлении долгового счёта: %v", err)
	}
	account.Payments = []models.DebtPayment{}
	return nil
}

const debtAccountColumns = `
	id, user_id, name, balance, interest_rate, minimum_payment, due_date, account_type, status, created_at, updated_at`

func scanDebtAccount(row pgx.Row) (*models.DebtAccount, error) {
	account := &models.DebtAccount{}
	err := row.Scan(
		&account.ID,
		&account.UserID,
		&account.Name,
		&account.Balance,
		&account.InterestRate,
		&account.MinimumPayment,
		&account.DueDate,
		&account.AccountType,
		&account.Status,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return account, nil
}

// GetDebtAccountByID возвращает счёт вместе с его платежами.
func GetDebtAccountByID(pool *pgxpool.Pool, accountID, userID int) (*models.DebtAccount, error) {
	query := `
		SELECT ` + debtAccountColumns + `
		FROM debt_accounts
		WHERE id = $1 AND user_id = $2`
	account, err := scanDebtAccount(pool.QueryRow(context.Background(), query, accountID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("долговой счёт с ID %d не найден: %w", accountID, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении долгового счёта: %v", err)
	}

	payments, err := GetDebtPayments(pool, accountID)
	if err != nil {
		return nil, err
	}
	account.Payments = payments
	return account, nil
}

func GetDebtAccountsByUserID(pool *pgxpool.Pool, userID int) ([]models.DebtAccount, error) {
	query := `
		SELECT ` + debtAccountColumns + `
		FROM debt_accounts
		WHERE user_id = $1
		ORDER BY due_date`
	rows, err := pool.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении долговых счетов: %v", err)
	}
	defer rows.Close()

	accounts := []models.DebtAccount{}
	for rows.Next() {
		account, err := scanDebtAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range accounts {
		payments, err := GetDebtPayments(pool, accounts[i].ID)
		if err != nil {
			return nil, err
		}
		accounts[i].Payments = payments
	}
	return accounts, nil
}

func GetDebtPayments(pool *pgxpool.Pool, accountID int) ([]models.DebtPayment, error) {
	query := `
		SELECT id, debt_account_id, amount, payment_date, transaction_id, notes, created_at
		FROM debt_payments
		WHERE debt_account_id = $1
		ORDER BY payment_date DESC, id DESC`
	rows, err := pool.Query(context.Background(), query, accountID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении платежей: %v", err)
	}
	defer rows.Close()

	payments := []models.DebtPayment{}
	for rows.Next() {
		var payment models.DebtPayment
		if err := rows.Scan(
			&payment.ID,
			&payment.DebtAccountID,
			&payment.Amount,
			&payment.PaymentDate,
			&payment.TransactionID,
			&payment.Notes,
			&payment.CreatedAt,
		); err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}
	return payments, rows.Err()
}

func UpdateDebtAccount(pool *pgxpool.Pool, account *models.DebtAccount) error {
	query := `
		UPDATE debt_accounts
		SET name = $1, balance = $2, interest_rate = $3, minimum_payment = $4,
		    due_date = $5, account_type = $6, status = $7, updated_at = now()
		WHERE id = $8 AND user_id = $9`
	result, err := pool.Exec(context.Background(), query,
		account.Name,
		account.Balance,
		account.InterestRate,
		account.MinimumPayment,
		account.DueDate,
		account.AccountType,
		account.Status,
		account.ID,
		account.UserID)
	if err != nil {
		return fmt.Errorf("ошибка обновления долгового счёта: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("долговой счёт с ID %d не найден: %w", account.ID, ErrNotFound)
	}
	return nil
}

func DeleteDebtAccount(pool *pgxpool.Pool, accountID, userID int) error {
	result, err := pool.Exec(context.Background(),
		`DELETE FROM debt_accounts WHERE id = $1 AND user_id = $2`, accountID, userID)
	if err != nil {
		return fmt.Errorf("ошибка удаления долгового счёта: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("долговой счёт с ID %d не найден: %w", accountID, ErrNotFound)
	}
	return nil
}

// RecordDebtPayment проводит платёж по долговому счёту как единое целое:
// запись платежа, транзакция расхода, связь платежа с транзакцией и
// уменьшение баланса. При балансе <= 0 счёт переходит в paid_off.
// Строка счёта блокируется, частичное применение невозможно.
func RecordDebtPayment(pool *pgxpool.Pool, accountID, userID int, amount decimal.Decimal, notes string) (*models.DebtAccount, error) {
	ctx := context.Background()
	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия транзакции: %v", err)
	}
	defer tx.Rollback(ctx)

	query := `
		SELECT ` + debtAccountColumns + `
		FROM debt_accounts
		WHERE id = $1 AND user_id = $2
		FOR UPDATE`
	account, err := scanDebtAccount(tx.QueryRow(ctx, query, accountID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("долговой счёт с ID %d не найден: %w", accountID, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении долгового счёта: %v", err)
	}

	payment := models.DebtPayment{
		DebtAccountID: account.ID,
		Amount:        amount,
		PaymentDate:   time.Now(),
		Notes:         notes,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO debt_payments (debt_account_id, amount, payment_date, notes)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		payment.DebtAccountID, payment.Amount, payment.PaymentDate, payment.Notes,
	).Scan(&payment.ID, &payment.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("ошибка записи платежа: %v", err)
	}

	ledgerEntry := &models.Transaction{
		UserID:          userID,
		Title:           fmt.Sprintf("Payment for %s", account.Name),
		Amount:          amount,
		TransactionDate: payment.PaymentDate,
	}
	if err := insertExpenseTx(ctx, tx, ledgerEntry); err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx,
		`UPDATE debt_payments SET transaction_id = $1 WHERE id = $2`,
		ledgerEntry.ID, payment.ID)
	if err != nil {
		return nil, fmt.Errorf("ошибка связывания платежа с транзакцией: %v", err)
	}
	payment.TransactionID = &ledgerEntry.ID

	account.Balance = account.Balance.Sub(amount)
	if !account.Balance.IsPositive() {
		account.Status = "paid_off"
	}
	err = tx.QueryRow(ctx, `
		UPDATE debt_accounts
		SET balance = $1, status = $2, updated_at = now()
		WHERE id = $3
		RETURNING updated_at`,
		account.Balance, account.Status, account.ID).Scan(&account.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("ошибка обновления баланса: %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("ошибка фиксации транзакции: %v", err)
	}

	payments, err := GetDebtPayments(pool, account.ID)
	if err != nil {
		return nil, err
	}
	account.Payments = payments
	return account, nil
}
