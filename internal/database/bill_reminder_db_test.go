package database_test

import (
	"errors"
	"testing"
	"time"

	"github.com/pftapp/pft-backend/internal/database"
	"github.com/pftapp/pft-backend/models"
)

func TestMarkBillReminderPaidEmitsLedgerEntry(t *testing.T) {
	pool := testPool(t)
	user := testUser(t, pool)

	reminder := &models.BillReminder{
		UserID:     user.ID,
		Title:      "Electricity",
		Amount:     money(t, "45.50"),
		DueDate:    time.Now().AddDate(0, 0, 3),
		Recurrence: "monthly",
		Status:     "pending",
	}
	if err := database.CreateBillReminder(pool, reminder); err != nil {
		t.Fatalf("ошибка создания напоминания: %v", err)
	}

	paid, err := database.MarkBillReminderPaid(pool, reminder.ID, user.ID)
	if err != nil {
		t.Fatalf("ошибка оплаты счёта: %v", err)
	}
	if paid.Status != "paid" {
		t.Errorf("счёт должен стать оплаченным, статус %s", paid.Status)
	}

	transactions, err := database.GetTransactionsByUserID(pool, user.ID)
	if err != nil {
		t.Fatalf("ошибка получения транзакций: %v", err)
	}
	found := 0
	for _, tr := range transactions {
		if tr.Type == "expense" && tr.Amount.Equal(reminder.Amount) && tr.Title == "Payment for Electricity" {
			found++
		}
	}
	if found != 1 {
		t.Errorf("оплата должна породить ровно одну транзакцию расхода, нашли %d", found)
	}

	// Повторная оплата отклоняется и второй транзакции не создаёт.
	if _, err := database.MarkBillReminderPaid(pool, reminder.ID, user.ID); !errors.Is(err, database.ErrBillAlreadyPaid) {
		t.Errorf("повторная оплата должна отклоняться, получили %v", err)
	}
	transactions, _ = database.GetTransactionsByUserID(pool, user.ID)
	if len(transactions) != 1 {
		t.Errorf("после повторной оплаты транзакций должно остаться %d, получили %d", 1, len(transactions))
	}
}

func TestGetUpcomingBillReminders(t *testing.T) {
	pool := testPool(t)
	user := testUser(t, pool)

	soon := &models.BillReminder{
		UserID: user.ID, Title: "Rent", Amount: money(t, "900.00"),
		DueDate: time.Now().AddDate(0, 0, 2), Recurrence: "monthly", Status: "pending",
	}
	far := &models.BillReminder{
		UserID: user.ID, Title: "Insurance", Amount: money(t, "120.00"),
		DueDate: time.Now().AddDate(0, 1, 0), Recurrence: "yearly", Status: "pending",
	}
	for _, r := range []*models.BillReminder{soon, far} {
		if err := database.CreateBillReminder(pool, r); err != nil {
			t.Fatalf("ошибка создания напоминания: %v", err)
		}
	}

	upcoming, err := database.GetUpcomingBillReminders(pool, user.ID, time.Now(), time.Now().AddDate(0, 0, 7))
	if err != nil {
		t.Fatalf("ошибка получения ближайших счетов: %v", err)
	}
	if len(upcoming) != 1 || upcoming[0].Title != "Rent" {
		t.Errorf("в ближайшие должен попасть только Rent: %+v", upcoming)
	}
}

func TestMarkOverdueBillReminders(t *testing.T) {
	pool := testPool(t)
	user := testUser(t, pool)

	missed := &models.BillReminder{
		UserID: user.ID, Title: "Internet", Amount: money(t, "30.00"),
		DueDate: time.Now().AddDate(0, 0, -5), Recurrence: "monthly", Status: "pending",
	}
	settled := &models.BillReminder{
		UserID: user.ID, Title: "Water", Amount: money(t, "18.00"),
		DueDate: time.Now().AddDate(0, 0, -5), Recurrence: "monthly", Status: "paid",
	}
	future := &models.BillReminder{
		UserID: user.ID, Title: "Phone", Amount: money(t, "25.00"),
		DueDate: time.Now().AddDate(0, 0, 5), Recurrence: "monthly", Status: "pending",
	}
	for _, r := range []*models.BillReminder{missed, settled, future} {
		if err := database.CreateBillReminder(pool, r); err != nil {
			t.Fatalf("ошибка создания напоминания: %v", err)
		}
	}

	// Сводка общая для всех пользователей, поэтому проверяем не счётчик,
	// а статусы собственных записей.
	if _, err := database.MarkOverdueBillReminders(pool); err != nil {
		t.Fatalf("ошибка пометки просроченных счетов: %v", err)
	}

	want := map[int]string{missed.ID: "overdue", settled.ID: "paid", future.ID: "pending"}
	for id, status := range want {
		reminder, err := database.GetBillReminderByID(pool, id, user.ID)
		if err != nil {
			t.Fatalf("ошибка получения напоминания %d: %v", id, err)
		}
		if reminder.Status != status {
			t.Errorf("счёт %q должен иметь статус %s, получили %s", reminder.Title, status, reminder.Status)
		}
		if reminder.NotificationSent {
			t.Errorf("пометка просрочки не должна трогать флаг уведомления: %q", reminder.Title)
		}
	}
}
