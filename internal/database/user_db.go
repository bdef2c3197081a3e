package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pftapp/pft-backend/models"
	"golang.org/x/crypto/bcrypt"
)

// RegisterUser регистрирует пользователя и в той же транзакции создаёт
// две категории по умолчанию. Это явный хук после создания, а не скрытый
// сигнал: обе записи либо появляются вместе, либо не появляются вовсе.
func RegisterUser(pool *pgxpool.Pool, user *models.User) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("ошибка хеширования пароля: %v", err)
	}

	ctx := context.Background()
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка открытия транзакции: %v", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO users (email, password, first_name, last_name, phone_number, location, bio, department)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, role, created_at`
	err = tx.QueryRow(ctx, query,
		user.Email,
		string(hashedPassword),
		user.FirstName,
		user.LastName,
		user.PhoneNumber,
		user.Location,
		user.Bio,
		user.Department,
	).Scan(&user.ID, &user.Role, &user.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка при добавлении пользователя: %v", err)
	}

	if err := createDefaultCategories(ctx, tx, user.ID); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("ошибка фиксации транзакции: %v", err)
	}
	user.Password = ""
	return nil
}

// createDefaultCategories создаёт стартовые категории нового пользователя.
func createDefaultCategories(ctx context.Context, tx pgx.Tx, userID int) error {
	defaults := []struct {
		name, kind string
	}{
		{"Salary", "income"},
		{"Groceries", "expense"},
	}
	for _, d := range defaults {
		_, err := tx.Exec(ctx,
			`INSERT INTO categories (user_id, name, type) VALUES ($1, $2, $3)`,
			userID, d.name, d.kind)
		if err != nil {
			return fmt.Errorf("ошибка создания категории по умолчанию %q: %v", d.name, err)
		}
	}
	return nil
}

func EmailTaken(pool *pgxpool.Pool, email string) (bool, error) {
	var exists bool
	err := pool.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("ошибка проверки email: %v", err)
	}
	return exists, nil
}

func AuthenticateUser(pool *pgxpool.Pool, email, password string) (*models.User, error) {
	var user models.User
	query := `
		SELECT id, email, password, first_name, last_name, phone_number, location, bio, department, role, created_at
		FROM users
		WHERE email = $1`
	err := pool.QueryRow(context.Background(), query, email).Scan(
		&user.ID,
		&user.Email,
		&user.Password,
		&user.FirstName,
		&user.LastName,
		&user.PhoneNumber,
		&user.Location,
		&user.Bio,
		&user.Department,
		&user.Role,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("пользователь не найден: %v", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, fmt.Errorf("неверный пароль")
	}

	user.Password = ""
	return &user, nil
}

func GetUserByID(pool *pgxpool.Pool, id int) (*models.User, error) {
	query := `
		SELECT id, email, first_name, last_name, phone_number, location, bio, department, role, created_at
		FROM users
		WHERE id = $1`

	var user models.User
	err := pool.QueryRow(context.Background(), query, id).Scan(
		&user.ID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.PhoneNumber,
		&user.Location,
		&user.Bio,
		&user.Department,
		&user.Role,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("пользователь с ID %d не найден: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка получения пользователя: %v", err)
	}
	return &user, nil
}

// UpdateUserProfile обновляет изменяемые поля профиля. Email и роль только для чтения.
func UpdateUserProfile(pool *pgxpool.Pool, user *models.User) error {
	query := `
		UPDATE users
		SET first_name = $1, last_name = $2, phone_number = $3, location = $4, bio = $5, department = $6
		WHERE id = $7`
	result, err := pool.Exec(context.Background(), query,
		user.FirstName,
		user.LastName,
		user.PhoneNumber,
		user.Location,
		user.Bio,
		user.Department,
		user.ID)
	if err != nil {
		return fmt.Errorf("ошибка обновления профиля: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("пользователь с ID %d не найден: %w", user.ID, ErrNotFound)
	}
	return nil
}

var ErrWrongPassword = errors.New("неверный текущий пароль")

// ChangeUserPassword проверяет текущий пароль и сохраняет новый хеш.
func ChangeUserPassword(pool *pgxpool.Pool, userID int, currentPassword, newPassword string) error {
	ctx := context.Background()

	var storedHash string
	err := pool.QueryRow(ctx, `SELECT password FROM users WHERE id = $1`, userID).Scan(&storedHash)
	if err != nil {
		return fmt.Errorf("пользователь с ID %d не найден: %w", userID, ErrNotFound)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(currentPassword)); err != nil {
		return ErrWrongPassword
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("ошибка хеширования пароля: %v", err)
	}

	_, err = pool.Exec(ctx, `UPDATE users SET password = $1 WHERE id = $2`, string(newHash), userID)
	if err != nil {
		return fmt.Errorf("ошибка обновления пароля: %v", err)
	}
	return nil
}
