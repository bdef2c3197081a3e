package database_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/pftapp/pft-backend/internal/database"
	"github.com/pftapp/pft-backend/models"
)

func TestUpsertBudgetCreatesThenUpdates(t *testing.T) {
	pool := testPool(t)
	user := testUser(t, pool)
	category := testCategory(t, pool, user.ID, "Restaurants", "expense")

	first := &models.Budget{
		UserID:      user.ID,
		CategoryID:  category.ID,
		Month:       6,
		Year:        2025,
		AmountLimit: money(t, "500.00"),
	}
	created, err := database.UpsertBudget(pool, first)
	if err != nil {
		t.Fatalf("ошибка создания бюджета: %v", err)
	}
	if !created {
		t.Error("первая запись по естественному ключу должна создавать строку")
	}

	second := &models.Budget{
		UserID:      user.ID,
		CategoryID:  category.ID,
		Month:       6,
		Year:        2025,
		AmountLimit: money(t, "700.00"),
	}
	created, err = database.UpsertBudget(pool, second)
	if err != nil {
		t.Fatalf("ошибка повторной записи бюджета: %v", err)
	}
	if created {
		t.Error("повторная запись по тому же ключу не должна создавать строку")
	}
	if second.ID != first.ID {
		t.Errorf("повторная запись должна попасть в существующую строку: %d != %d", second.ID, first.ID)
	}

	budgets, err := database.GetBudgetsByUserID(pool, user.ID)
	if err != nil {
		t.Fatalf("ошибка получения бюджетов: %v", err)
	}
	if len(budgets) != 1 {
		t.Fatalf("по ключу должна остаться ровно одна строка, получили %d", len(budgets))
	}
	if !budgets[0].AmountLimit.Equal(money(t, "700.00")) {
		t.Errorf("должен победить лимит второй записи: %s", budgets[0].AmountLimit)
	}
}

func TestUpsertBudgetConcurrentFirstWrite(t *testing.T) {
	pool := testPool(t)
	user := testUser(t, pool)
	category := testCategory(t, pool, user.ID, "Utilities", "expense")

	// Обе записи стартуют до того, как ключ появится в таблице:
	// ни одна не должна упасть на уникальном индексе.
	limit := money(t, "150.00")
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			budget := &models.Budget{
				UserID: user.ID, CategoryID: category.ID, Month: 9, Year: 2025,
				AmountLimit: limit,
			}
			_, errs[i] = database.UpsertBudget(pool, budget)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("параллельная запись %d не должна падать: %v", i, err)
		}
	}
	budgets, err := database.GetBudgetsByUserID(pool, user.ID)
	if err != nil {
		t.Fatalf("ошибка получения бюджетов: %v", err)
	}
	if len(budgets) != 1 {
		t.Errorf("по ключу должна остаться ровно одна строка, получили %d", len(budgets))
	}
}

func TestGetBudgetByIDMissing(t *testing.T) {
	pool := testPool(t)
	user := testUser(t, pool)

	if _, err := database.GetBudgetByID(pool, 99999999, user.ID); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("отсутствующий бюджет должен давать ErrNotFound: %v", err)
	}
	if err := database.DeleteBudget(pool, 99999999, user.ID); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("удаление отсутствующего бюджета должно давать ErrNotFound: %v", err)
	}
}

func TestUpdateBudgetRedirectsToExistingTuple(t *testing.T) {
	pool := testPool(t)
	user := testUser(t, pool)
	category := testCategory(t, pool, user.ID, "Transport", "expense")

	existing := &models.Budget{
		UserID: user.ID, CategoryID: category.ID, Month: 1, Year: 2025,
		AmountLimit: money(t, "100.00"),
	}
	if _, err := database.UpsertBudget(pool, existing); err != nil {
		t.Fatalf("ошибка создания бюджета: %v", err)
	}

	other := &models.Budget{
		UserID: user.ID, CategoryID: category.ID, Month: 2, Year: 2025,
		AmountLimit: money(t, "200.00"),
	}
	if _, err := database.UpsertBudget(pool, other); err != nil {
		t.Fatalf("ошибка создания второго бюджета: %v", err)
	}

	// Обновление второй строки на кортеж первой должно попасть в первую строку.
	other.Month = 1
	other.AmountLimit = money(t, "300.00")
	if err := database.UpdateBudget(pool, other); err != nil {
		t.Fatalf("ошибка обновления бюджета: %v", err)
	}
	if other.ID != existing.ID {
		t.Errorf("цель записи должна перенаправляться на существующий кортеж: %d != %d", other.ID, existing.ID)
	}

	winner, err := database.GetBudgetByID(pool, existing.ID, user.ID)
	if err != nil {
		t.Fatalf("ошибка получения бюджета: %v", err)
	}
	if !winner.AmountLimit.Equal(money(t, "300.00")) {
		t.Errorf("существующий кортеж должен получить новый лимит: %s", winner.AmountLimit)
	}
}
