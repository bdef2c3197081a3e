package database_test

import (
	"errors"
	"testing"

	"github.com/pftapp/pft-backend/internal/database"
)

func TestRegisterUserCreatesDefaultCategories(t *testing.T) {
	pool := testPool(t)
	user := testUser(t, pool)

	categories, err := database.GetCategoriesForUser(pool, user.ID)
	if err != nil {
		t.Fatalf("ошибка получения категорий: %v", err)
	}

	var salary, groceries bool
	for _, c := range categories {
		if c.UserID == nil || *c.UserID != user.ID {
			continue
		}
		if c.Name == "Salary" && c.Type == "income" {
			salary = true
		}
		if c.Name == "Groceries" && c.Type == "expense" {
			groceries = true
		}
	}
	if !salary || !groceries {
		t.Errorf("после регистрации должны появиться категории по умолчанию: %+v", categories)
	}

	taken, err := database.EmailTaken(pool, user.Email)
	if err != nil {
		t.Fatalf("ошибка проверки email: %v", err)
	}
	if !taken {
		t.Error("email зарегистрированного пользователя должен считаться занятым")
	}
}

func TestAuthenticateUser(t *testing.T) {
	pool := testPool(t)
	user := testUser(t, pool)

	authenticated, err := database.AuthenticateUser(pool, user.Email, "password123")
	if err != nil {
		t.Fatalf("ошибка авторизации: %v", err)
	}
	if authenticated.ID != user.ID {
		t.Errorf("авторизован не тот пользователь: %d != %d", authenticated.ID, user.ID)
	}
	if authenticated.Password != "" {
		t.Error("хеш пароля не должен возвращаться")
	}

	if _, err := database.AuthenticateUser(pool, user.Email, "wrong-password"); err == nil {
		t.Error("неверный пароль должен отклоняться")
	}
}

func TestChangeUserPassword(t *testing.T) {
	pool := testPool(t)
	user := testUser(t, pool)

	err := database.ChangeUserPassword(pool, user.ID, "wrong-password", "newpassword1")
	if !errors.Is(err, database.ErrWrongPassword) {
		t.Errorf("смена пароля с неверным текущим должна отклоняться: %v", err)
	}

	if err := database.ChangeUserPassword(pool, user.ID, "password123", "newpassword1"); err != nil {
		t.Fatalf("ошибка смены пароля: %v", err)
	}
	if _, err := database.AuthenticateUser(pool, user.Email, "newpassword1"); err != nil {
		t.Errorf("новый пароль должен подходить: %v", err)
	}
}
