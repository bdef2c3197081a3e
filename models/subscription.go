package models

import (
	"time"

	"github.com/shopspring/decimal"
)

var (
	SubscriptionPlanTypes = []string{"ott", "product", "tool", "other"}
	BillingCycles         = []string{"monthly", "quarterly", "yearly", "custom"}
	SubscriptionStatuses  = []string{"active", "cancelled", "expired", "on_hold"}
)

// SubscriptionPlan — общий шаблон подписки, не привязан к пользователю.
type SubscriptionPlan struct {
	ID           int       `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Description  string    `json:"description" db:"description"`
	Type         string    `json:"type" db:"type"`
	BillingCycle string    `json:"billing_cycle" db:"billing_cycle"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

type Subscription struct {
	ID              int               `json:"id" db:"id"`
	UserID          int               `json:"user_id" db:"user_id"`
	PlanID          int               `json:"plan" db:"plan_id"`
	PlanDetails     *SubscriptionPlan `json:"plan_details,omitempty"`
	Amount          decimal.Decimal   `json:"amount" db:"amount"`
	StartDate       time.Time         `json:"start_date" db:"start_date"`
	EndDate         *time.Time        `json:"end_date" db:"end_date"`
	AutoRenewal     bool              `json:"auto_renewal" db:"auto_renewal"`
	Status          string            `json:"status" db:"status"`
	NextBillingDate *time.Time        `json:"next_billing_date" db:"next_billing_date"`
	Notes           string            `json:"notes" db:"notes"`
	CreatedAt       time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at" db:"updated_at"`
}

// ValidDates проверяет, что дата окончания не раньше даты начала.
func (s *Subscription) ValidDates() bool {
	if s.EndDate == nil {
		return true
	}
	return !s.EndDate.Before(s.StartDate)
}

func ValidSubscriptionStatus(status string) bool {
	for _, s := range SubscriptionStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// TypeStatistics — сводка по активным подпискам одного типа плана.
type TypeStatistics struct {
	Count       int             `json:"count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

type SubscriptionStatistics struct {
	TotalActiveSubscriptions int                        `json:"total_active_subscriptions"`
	TotalMonthlyAmount       decimal.Decimal            `json:"total_monthly_amount"`
	ByType                   map[string]*TypeStatistics `json:"by_type"`
}

// BuildSubscriptionStatistics считает сводку по уже отфильтрованным активным подпискам.
// Подписки без деталей плана попадают в тип "other".
func BuildSubscriptionStatistics(subscriptions []Subscription) *SubscriptionStatistics {
	stats := &SubscriptionStatistics{
		TotalMonthlyAmount: decimal.Zero,
		ByType:             map[string]*TypeStatistics{},
	}
	for _, sub := range subscriptions {
		planType := "other"
		if sub.PlanDetails != nil {
			planType = sub.PlanDetails.Type
		}
		if stats.ByType[planType] == nil {
			stats.ByType[planType] = &TypeStatistics{TotalAmount: decimal.Zero}
		}
		stats.ByType[planType].Count++
		stats.ByType[planType].TotalAmount = stats.ByType[planType].TotalAmount.Add(sub.Amount)
		stats.TotalActiveSubscriptions++
		stats.TotalMonthlyAmount = stats.TotalMonthlyAmount.Add(sub.Amount)
	}
	return stats
}
