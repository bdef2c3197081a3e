package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pftapp/pft-backend/models"
)

// CreateInvestment добавляет вложение и в той же транзакции записывает
// первую оценку: цена покупки, умноженная на количество, на дату покупки.
func CreateInvestment(pool *pgxpool.Pool, investment *models.Investment) error {
	ctx := context.Background()
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка открытия транзакции: %v", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO investments (user_id, name, symbol, type, purchase_price, quantity, purchase_date, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`,
		investment.UserID,
		investment.Name,
		investment.Symbol,
		investment.Type,
		investment.PurchasePrice,
		investment.Quantity,
		investment.PurchaseDate,
		investment.Notes,
	).Scan(&investment.ID, &investment.CreatedAt, &investment.UpdatedAt)
	if err != nil {
		return fmt.Errorf("ошибка при добавлении вложения: %v", err)
	}

	seed := models.InvestmentValue{
		InvestmentID: investment.ID,
		Date:         investment.PurchaseDate,
		Value:        investment.Invested(),
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO investment_values (investment_id, date, value)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		seed.InvestmentID, seed.Date, seed.Value,
	).Scan(&seed.ID, &seed.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка записи начальной оценки: %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("ошибка фиксации транзакции: %v", err)
	}

	investment.Values = []models.InvestmentValue{seed}
	investment.CurrentValue = &seed.Value
	return nil
}

const investmentColumns = `
	id, user_id, name, symbol, type, purchase_price, quantity, purchase_date, notes, created_at, updated_at`

func scanInvestment(row pgx.Row) (*models.Investment, error) {
	investment := &models.Investment{}
	err := row.Scan(
		&investment.ID,
		&investment.UserID,
		&investment.Name,
		&investment.Symbol,
		&investment.Type,
		&investment.PurchasePrice,
		&investment.Quantity,
		&investment.PurchaseDate,
		&investment.Notes,
		&investment.CreatedAt,
		&investment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return investment, nil
}

// attachValues подгружает временной ряд оценок: свежие даты первыми,
// при совпадении дат первой идёт вставленная позже.
func attachValues(pool *pgxpool.Pool, investment *models.Investment) error {
	rows, err := pool.Query(context.Background(), `
		SELECT id, investment_id, date, value, created_at
		FROM investment_values
		WHERE investment_id = $1
		ORDER BY date DESC, id DESC`, investment.ID)
	if err != nil {
		return fmt.Errorf("ошибка при получении оценок вложения: %v", err)
	}
	defer rows.Close()

	values := []models.InvestmentValue{}
	for rows.Next() {
		var v models.InvestmentValue
		if err := rows.Scan(&v.ID, &v.InvestmentID, &v.Date, &v.Value, &v.CreatedAt); err != nil {
			return err
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	investment.Values = values
	if len(values) > 0 {
		investment.CurrentValue = &values[0].Value
	}
	return nil
}

func GetInvestmentByID(pool *pgxpool.Pool, investmentID, userID int) (*models.Investment, error) {
	query := `
		SELECT ` + investmentColumns + `
		FROM investments
		WHERE id = $1 AND user_id = $2`
	investment, err := scanInvestment(pool.QueryRow(context.Background(), query, investmentID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("вложение с ID %d не найдено: %w", investmentID, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении вложения: %v", err)
	}
	if err := attachValues(pool, investment); err != nil {
		return nil, err
	}
	return investment, nil
}

func GetInvestmentsByUserID(pool *pgxpool.Pool, userID int) ([]models.Investment, error) {
	query := `
		SELECT ` + investmentColumns + `
		FROM investments
		WHERE user_id = $1
		ORDER BY created_at DESC`
	rows, err := pool.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении вложений: %v", err)
	}
	defer rows.Close()

	investments := []models.Investment{}
	for rows.Next() {
		investment, err := scanInvestment(rows)
		if err != nil {
			return nil, err
		}
		investments = append(investments, *investment)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range investments {
		if err := attachValues(pool, &investments[i]); err != nil {
			return nil, err
		}
	}
	return investments, nil
}

// GetInvestmentsWithCurrentValue — вложения пользователя с последней оценкой
// каждого, без полного временного ряда. Используется сводкой портфеля.
func GetInvestmentsWithCurrentValue(pool *pgxpool.Pool, userID int) ([]models.Investment, error) {
	query := `
		SELECT i.id, i.user_id, i.name, i.symbol, i.type, i.purchase_price, i.quantity,
		       i.purchase_date, i.notes, i.created_at, i.updated_at, v.value
		FROM investments i
		LEFT JOIN LATERAL (
			SELECT value FROM investment_values
			WHERE investment_id = i.id
			ORDER BY date DESC, id DESC
			LIMIT 1
		) v ON TRUE
		WHERE i.user_id = $1`
	rows, err := pool.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении вложений: %v", err)
	}
	defer rows.Close()

	investments := []models.Investment{}
	for rows.Next() {
		var investment models.Investment
		if err := rows.Scan(
			&investment.ID,
			&investment.UserID,
			&investment.Name,
			&investment.Symbol,
			&investment.Type,
			&investment.PurchasePrice,
			&investment.Quantity,
			&investment.PurchaseDate,
			&investment.Notes,
			&investment.CreatedAt,
			&investment.UpdatedAt,
			&investment.CurrentValue,
		); err != nil {
			return nil, err
		}
		investments = append(investments, investment)
	}
	return investments, rows.Err()
}

func UpdateInvestment(pool *pgxpool.Pool, investment *models.Investment) error {
	query := `
		UPDATE investments
		SET name = $1, symbol = $2, type = $3, purchase_price = $4, quantity = $5,
		    purchase_date = $6, notes = $7, updated_at = now()
		WHERE id = $8 AND user_id = $9`
	result, err := pool.Exec(context.Background(), query,
		investment.Name,
		investment.Symbol,
		investment.Type,
		investment.PurchasePrice,
		investment.Quantity,
		investment.PurchaseDate,
		investment.Notes,
		investment.ID,
		investment.UserID)
	if err != nil {
		return fmt.Errorf("ошибка обновления вложения: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("вложение с ID %d не найдено: %w", investment.ID, ErrNotFound)
	}
	return nil
}

func DeleteInvestment(pool *pgxpool.Pool, investmentID, userID int) error {
	result, err := pool.Exec(context.Background(),
		`DELETE FROM investments WHERE id = $1 AND user_id = $2`, investmentID, userID)
	if err != nil {
		return fmt.Errorf("ошибка удаления вложения: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("вложение с ID %d не найдено: %w", investmentID, ErrNotFound)
	}
	return nil
}

// RecordInvestmentValue дописывает новую оценку в ряд. Проверка владения
// и вставка идут в одной транзакции под блокировкой строки вложения, чтобы
// параллельное удаление не оставило оценку без вложения. Дубликаты по дате
// допустимы. Возвращает вложение с обновлённым рядом.
func RecordInvestmentValue(pool *pgxpool.Pool, investmentID, userID int, value *models.InvestmentValue) (*models.Investment, error) {
	ctx := context.Background()
	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия транзакции: %v", err)
	}
	defer tx.Rollback(ctx)

	var ownedID int
	err = tx.QueryRow(ctx, `
		SELECT id FROM investments
		WHERE id = $1 AND user_id = $2
		FOR UPDATE`, investmentID, userID).Scan(&ownedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("вложение с ID %d не найдено: %w", investmentID, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка поиска вложения: %v", err)
	}

	value.InvestmentID = investmentID
	err = tx.QueryRow(ctx, `
		INSERT INTO investment_values (investment_id, date, value)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		value.InvestmentID, value.Date, value.Value,
	).Scan(&value.ID, &value.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("ошибка записи оценки вложения: %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("ошибка фиксации транзакции: %v", err)
	}
	return GetInvestmentByID(pool, investmentID, userID)
}
