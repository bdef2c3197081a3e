package models

import (
	"time"

	"github.com/shopspring/decimal"
)

var BillRecurrences = []string{"once", "weekly", "monthly", "yearly"}

// BillReminder хранит обязательство с отслеживаемым сроком оплаты.
// NotificationSent выставляется только системой, не пользователем.
type BillReminder struct {
	ID               int             `json:"id" db:"id"`
	UserID           int             `json:"user_id" db:"user_id"`
	Title            string          `json:"title" db:"title"`
	Amount           decimal.Decimal `json:"amount" db:"amount"`
	DueDate          time.Time       `json:"due_date" db:"due_date"`
	Recurrence       string          `json:"recurrence" db:"recurrence"`
	Status           string          `json:"status" db:"status"`
	NotificationSent bool            `json:"notification_sent" db:"notification_sent"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at" db:"updated_at"`
}

func ValidRecurrence(recurrence string) bool {
	for _, r := range BillRecurrences {
		if r == recurrence {
			return true
		}
	}
	return false
}

func ValidBillStatus(status string) bool {
	return status == "pending" || status == "paid" || status == "overdue"
}
