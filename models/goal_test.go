package models_test

import (
	"testing"
	"time"

	"github.com/pftapp/pft-backend/models"
)

func amountDate(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func TestGoalProgress(t *testing.T) {
	goal := models.SavingsGoal{
		TargetAmount:  amount("200"),
		CurrentAmount: amount("50"),
	}
	if p := goal.Progress(); p != 25 {
		t.Errorf("неверный процент прогресса: получили %f, хотели 25", p)
	}
	if goal.Achieved() {
		t.Error("цель не должна считаться достигнутой")
	}

	goal.CurrentAmount = amount("200")
	if !goal.Achieved() {
		t.Error("цель должна считаться достигнутой при равенстве сумм")
	}
}

func TestGoalProgressZeroTarget(t *testing.T) {
	goal := models.SavingsGoal{TargetAmount: amount("0"), CurrentAmount: amount("10")}
	if p := goal.Progress(); p != 0 {
		t.Errorf("при нулевой цели прогресс должен быть 0, получили %f", p)
	}
}
