package database_test

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pftapp/pft-backend/internal/database"
	"github.com/pftapp/pft-backend/models"
)

func testSubscription(t *testing.T, pool *pgxpool.Pool, userID, planID int, status string, nextBilling time.Time) *models.Subscription {
	t.Helper()
	sub := &models.Subscription{
		UserID:          userID,
		PlanID:          planID,
		Amount:          money(t, "9.99"),
		StartDate:       time.Now().AddDate(0, -1, 0),
		AutoRenewal:     true,
		Status:          status,
		NextBillingDate: &nextBilling,
	}
	if err := database.CreateSubscription(pool, sub); err != nil {
		t.Fatalf("ошибка создания подписки: %v", err)
	}
	return sub
}

func TestGetUpcomingRenewals(t *testing.T) {
	pool := testPool(t)
	user := testUser(t, pool)

	plan := &models.SubscriptionPlan{
		Name: "Streaming", Type: "entertainment", BillingCycle: "monthly",
	}
	if err := database.CreateSubscriptionPlan(pool, plan); err != nil {
		t.Fatalf("ошибка создания плана: %v", err)
	}

	later := testSubscription(t, pool, user.ID, plan.ID, "active", time.Now().AddDate(0, 0, 20))
	sooner := testSubscription(t, pool, user.ID, plan.ID, "active", time.Now().AddDate(0, 0, 3))
	// Отменённая подписка в окне и активная за его пределами не попадают.
	testSubscription(t, pool, user.ID, plan.ID, "cancelled", time.Now().AddDate(0, 0, 5))
	testSubscription(t, pool, user.ID, plan.ID, "active", time.Now().AddDate(0, 2, 0))

	renewals, err := database.GetUpcomingRenewals(pool, user.ID, time.Now().AddDate(0, 0, 30))
	if err != nil {
		t.Fatalf("ошибка получения ближайших списаний: %v", err)
	}
	if len(renewals) != 2 {
		t.Fatalf("в окно должны попасть две активные подписки, получили %d", len(renewals))
	}
	if renewals[0].ID != sooner.ID || renewals[1].ID != later.ID {
		t.Errorf("списания должны идти по возрастанию даты: %d, %d", renewals[0].ID, renewals[1].ID)
	}
	if renewals[0].PlanDetails == nil || renewals[0].PlanDetails.Name != "Streaming" {
		t.Errorf("к подписке должен подтягиваться её план: %+v", renewals[0].PlanDetails)
	}
}

func TestGetActiveSubscriptions(t *testing.T) {
	pool := testPool(t)
	user := testUser(t, pool)

	plan := &models.SubscriptionPlan{
		Name: "Cloud storage", Type: "productivity", BillingCycle: "monthly",
	}
	if err := database.CreateSubscriptionPlan(pool, plan); err != nil {
		t.Fatalf("ошибка создания плана: %v", err)
	}

	active := testSubscription(t, pool, user.ID, plan.ID, "active", time.Now().AddDate(0, 0, 10))
	testSubscription(t, pool, user.ID, plan.ID, "cancelled", time.Now().AddDate(0, 0, 10))

	subscriptions, err := database.GetActiveSubscriptions(pool, user.ID)
	if err != nil {
		t.Fatalf("ошибка получения активных подписок: %v", err)
	}
	if len(subscriptions) != 1 || subscriptions[0].ID != active.ID {
		t.Errorf("активной должна остаться одна подписка: %+v", subscriptions)
	}
}
