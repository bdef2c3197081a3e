package database_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/pftapp/pft-backend/internal/database"
	"github.com/pftapp/pft-backend/models"
	"github.com/shopspring/decimal"
)

// testPool подключается к БД из .env; без настроенной БД тесты пропускаются.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	_ = godotenv.Load("../../.env")
	if os.Getenv("DB_NAME") == "" {
		t.Skip("БД не настроена, пропускаем интеграционный тест")
	}
	pool, err := database.ConnectDB(context.Background())
	if err != nil {
		t.Fatalf("ошибка подключения к БД: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

// testUser регистрирует отдельного пользователя для изоляции строк теста.
func testUser(t *testing.T, pool *pgxpool.Pool) *models.User {
	t.Helper()
	user := &models.User{
		Email:      fmt.Sprintf("test-%d@example.com", time.Now().UnixNano()),
		Password:   "password123",
		FirstName:  "Test",
		Department: "other",
	}
	if err := database.RegisterUser(pool, user); err != nil {
		t.Fatalf("ошибка регистрации пользователя: %v", err)
	}
	return user
}

func testCategory(t *testing.T, pool *pgxpool.Pool, userID int, name, kind string) *models.Category {
	t.Helper()
	category := &models.Category{UserID: &userID, Name: name, Type: kind}
	if err := database.CreateCategory(pool, category); err != nil {
		t.Fatalf("ошибка создания категории: %v", err)
	}
	return category
}

func money(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("некорректная сумма %q: %v", s, err)
	}
	return d
}
