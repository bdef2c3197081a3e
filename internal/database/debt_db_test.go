package database_test

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pftapp/pft-backend/internal/database"
	"github.com/pftapp/pft-backend/models"
)

func testDebtAccount(t *testing.T, pool *pgxpool.Pool, userID int, balance string) *models.DebtAccount {
	t.Helper()
	account := &models.DebtAccount{
		UserID:         userID,
		Name:           "Visa",
		Balance:        money(t, balance),
		InterestRate:   money(t, "19.90"),
		MinimumPayment: money(t, "25.00"),
		DueDate:        time.Now().AddDate(0, 0, 14),
		AccountType:    "credit_card",
		Status:         "active",
	}
	if err := database.CreateDebtAccount(pool, account); err != nil {
		t.Fatalf("ошибка создания долгового счёта: %v", err)
	}
	return account
}

func TestRecordDebtPayment(t *testing.T) {
	pool := testPool(t)
	user := testUser(t, pool)
	account := testDebtAccount(t, pool, user.ID, "100.00")

	updated, err := database.RecordDebtPayment(pool, account.ID, user.ID, money(t, "40.00"), "первый взнос")
	if err != nil {
		t.Fatalf("ошибка записи платежа: %v", err)
	}

	if !updated.Balance.Equal(money(t, "60.00")) {
		t.Errorf("баланс должен уменьшиться до 60.00, получили %s", updated.Balance)
	}
	if updated.Status != "active" {
		t.Errorf("счёт с остатком должен остаться активным: %s", updated.Status)
	}
	if len(updated.Payments) != 1 {
		t.Fatalf("должен существовать ровно один платёж, получили %d", len(updated.Payments))
	}
	payment := updated.Payments[0]
	if payment.TransactionID == nil {
		t.Fatal("платёж должен быть связан с транзакцией")
	}

	ledgerEntry, err := database.GetTransactionByID(pool, *payment.TransactionID, user.ID)
	if err != nil {
		t.Fatalf("ошибка получения транзакции платежа: %v", err)
	}
	if ledgerEntry.Type != "expense" || !ledgerEntry.Amount.Equal(money(t, "40.00")) {
		t.Errorf("транзакция платежа неверна: %+v", ledgerEntry)
	}
}

func TestRecordDebtPaymentPaysOffAccount(t *testing.T) {
	pool := testPool(t)
	user := testUser(t, pool)
	account := testDebtAccount(t, pool, user.ID, "50.00")

	updated, err := database.RecordDebtPayment(pool, account.ID, user.ID, money(t, "50.00"), "")
	if err != nil {
		t.Fatalf("ошибка записи платежа: %v", err)
	}
	if updated.Status != "paid_off" {
		t.Errorf("при нулевом балансе счёт должен стать paid_off: %s", updated.Status)
	}
	if !updated.Balance.Equal(money(t, "0.00")) {
		t.Errorf("баланс должен стать нулевым: %s", updated.Balance)
	}
}
