package database_test

import (
	"errors"
	"testing"
	"time"

	"github.com/pftapp/pft-backend/internal/database"
	"github.com/pftapp/pft-backend/models"
)

func TestMonthlySummaryOverStoredTransactions(t *testing.T) {
	pool := testPool(t)
	user := testUser(t, pool)
	category := testCategory(t, pool, user.ID, "A", "income")

	now := time.Now()
	entries := []models.Transaction{
		{UserID: user.ID, Title: "salary", Amount: money(t, "100.00"), Type: "income", CategoryID: &category.ID, TransactionDate: now},
		{UserID: user.ID, Title: "dinner", Amount: money(t, "40.00"), Type: "expense", CategoryID: &category.ID, TransactionDate: now},
		{UserID: user.ID, Title: "cash", Amount: money(t, "10.00"), Type: "expense", TransactionDate: now},
	}
	for i := range entries {
		if err := database.CreateTransaction(pool, &entries[i]); err != nil {
			t.Fatalf("ошибка создания транзакции: %v", err)
		}
	}

	start, end := models.MonthBounds(now)
	stored, err := database.GetTransactionsByPeriod(pool, user.ID, start, end)
	if err != nil {
		t.Fatalf("ошибка получения транзакций за период: %v", err)
	}
	if len(stored) != 3 {
		t.Fatalf("за месяц должно быть 3 транзакции, получили %d", len(stored))
	}

	summary := models.BuildMonthlySummary(stored)
	if summary.TotalIncome != "100.00" || summary.TotalExpenses != "50.00" {
		t.Errorf("неверные итоги месяца: %+v", summary)
	}
	if summary.ByCategory["A"].Expense != "40.00" {
		t.Errorf("неверная разбивка по категории A: %+v", summary.ByCategory["A"])
	}
	if summary.ByCategory["Uncategorized"].Expense != "10.00" {
		t.Errorf("неверная разбивка без категории: %+v", summary.ByCategory["Uncategorized"])
	}
}

func TestTransactionOwnershipFilter(t *testing.T) {
	pool := testPool(t)
	owner := testUser(t, pool)
	stranger := testUser(t, pool)

	entry := &models.Transaction{
		UserID:          owner.ID,
		Title:           "private",
		Amount:          money(t, "5.00"),
		Type:            "expense",
		TransactionDate: time.Now(),
	}
	if err := database.CreateTransaction(pool, entry); err != nil {
		t.Fatalf("ошибка создания транзакции: %v", err)
	}

	// Чужая транзакция недоступна ни на чтение, ни на удаление,
	// и в обоих случаях это именно «не найдено», а не сбой БД.
	if _, err := database.GetTransactionByID(pool, entry.ID, stranger.ID); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("чтение чужой транзакции должно давать ErrNotFound: %v", err)
	}
	if err := database.DeleteTransaction(pool, entry.ID, stranger.ID); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("удаление чужой транзакции должно давать ErrNotFound: %v", err)
	}
	if _, err := database.GetTransactionByID(pool, entry.ID, owner.ID); err != nil {
		t.Errorf("владелец должен видеть свою транзакцию: %v", err)
	}
}

func TestCreateCategoryRejectsDuplicateName(t *testing.T) {
	pool := testPool(t)
	user := testUser(t, pool)
	testCategory(t, pool, user.ID, "Books", "expense")

	duplicate := &models.Category{UserID: &user.ID, Name: "Books", Type: "expense"}
	if err := database.CreateCategory(pool, duplicate); !errors.Is(err, database.ErrDuplicateCategory) {
		t.Errorf("повторное имя категории должно отклоняться: %v", err)
	}
}
