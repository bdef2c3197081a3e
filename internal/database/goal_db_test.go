package database_test

import (
	"testing"
	"time"

	"github.com/pftapp/pft-backend/internal/database"
	"github.com/pftapp/pft-backend/models"
)

func TestAddGoalProgress(t *testing.T) {
	pool := testPool(t)
	user := testUser(t, pool)

	goal := &models.SavingsGoal{
		UserID:       user.ID,
		Title:        "Vacation",
		TargetAmount: money(t, "1000.00"),
		TargetDate:   time.Now().AddDate(1, 0, 0),
		Status:       "active",
	}
	if err := database.CreateGoal(pool, goal); err != nil {
		t.Fatalf("ошибка создания цели: %v", err)
	}

	updated, err := database.AddGoalProgress(pool, goal.ID, user.ID, money(t, "400.00"))
	if err != nil {
		t.Fatalf("ошибка пополнения цели: %v", err)
	}
	if !updated.CurrentAmount.Equal(money(t, "400.00")) {
		t.Errorf("неверное накопление: %s", updated.CurrentAmount)
	}
	if updated.Status != "active" {
		t.Errorf("недостигнутая цель должна остаться активной: %s", updated.Status)
	}
	if updated.ProgressPercentage != 40 {
		t.Errorf("неверный процент прогресса: %f", updated.ProgressPercentage)
	}

	// Пополнения накапливаются; статус переключается ровно на достигающем вызове.
	updated, err = database.AddGoalProgress(pool, goal.ID, user.ID, money(t, "600.00"))
	if err != nil {
		t.Fatalf("ошибка пополнения цели: %v", err)
	}
	if !updated.CurrentAmount.Equal(money(t, "1000.00")) {
		t.Errorf("накопления должны суммироваться: %s", updated.CurrentAmount)
	}
	if updated.Status != "completed" {
		t.Errorf("достигнутая цель должна стать completed: %s", updated.Status)
	}
}
