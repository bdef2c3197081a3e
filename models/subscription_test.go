package models_test

import (
	"testing"

	"github.com/pftapp/pft-backend/models"
)

func TestBuildSubscriptionStatistics(t *testing.T) {
	ott := &models.SubscriptionPlan{Type: "ott"}
	tool := &models.SubscriptionPlan{Type: "tool"}
	subscriptions := []models.Subscription{
		{Amount: amount("9.99"), PlanDetails: ott},
		{Amount: amount("5.01"), PlanDetails: ott},
		{Amount: amount("15.00"), PlanDetails: tool},
	}

	stats := models.BuildSubscriptionStatistics(subscriptions)

	if stats.TotalActiveSubscriptions != 3 {
		t.Errorf("неверное число активных подписок: %d", stats.TotalActiveSubscriptions)
	}
	if stats.TotalMonthlyAmount.String() != "30" {
		t.Errorf("неверная общая сумма: %s", stats.TotalMonthlyAmount)
	}
	if stats.ByType["ott"].Count != 2 || stats.ByType["ott"].TotalAmount.String() != "15" {
		t.Errorf("неверная сводка по ott: %+v", stats.ByType["ott"])
	}
	if stats.ByType["tool"].Count != 1 {
		t.Errorf("неверная сводка по tool: %+v", stats.ByType["tool"])
	}
}

func TestSubscriptionValidDates(t *testing.T) {
	start := amountDate(2024, 1, 10)
	before := amountDate(2024, 1, 5)
	after := amountDate(2024, 2, 1)

	sub := models.Subscription{StartDate: start}
	if !sub.ValidDates() {
		t.Error("подписка без даты окончания должна быть валидной")
	}
	sub.EndDate = &after
	if !sub.ValidDates() {
		t.Error("дата окончания позже даты начала должна быть валидной")
	}
	sub.EndDate = &before
	if sub.ValidDates() {
		t.Error("дата окончания раньше даты начала должна отклоняться")
	}
	sub.EndDate = &start
	if !sub.ValidDates() {
		t.Error("совпадающие даты начала и окончания допустимы")
	}
}
