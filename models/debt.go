package models

import (
	"time"

	"github.com/shopspring/decimal"
)

var DebtAccountTypes = []string{"credit_card", "loan", "mortgage"}

type DebtAccount struct {
	ID             int             `json:"id" db:"id"`
	UserID         int             `json:"user_id" db:"user_id"`
	Name           string          `json:"name" db:"name"`
	Balance        decimal.Decimal `json:"balance" db:"balance"`
	InterestRate   decimal.Decimal `json:"interest_rate" db:"interest_rate"`
	MinimumPayment decimal.Decimal `json:"minimum_payment" db:"minimum_payment"`
	DueDate        time.Time       `json:"due_date" db:"due_date"`
	AccountType    string          `json:"account_type" db:"account_type"`
	Status         string          `json:"status" db:"status"`
	Payments       []DebtPayment   `json:"payments"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at" db:"updated_at"`
}

// DebtPayment — запись о платеже, только добавляется.
// TransactionID связывает платёж с порождённой им транзакцией расхода.
type DebtPayment struct {
	ID            int             `json:"id" db:"id"`
	DebtAccountID int             `json:"debt_account" db:"debt_account_id"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
	PaymentDate   time.Time       `json:"payment_date" db:"payment_date"`
	TransactionID *int            `json:"transaction" db:"transaction_id"`
	Notes         string          `json:"notes" db:"notes"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}

func ValidDebtAccountType(t string) bool {
	for _, a := range DebtAccountTypes {
		if a == t {
			return true
		}
	}
	return false
}

func ValidDebtStatus(status string) bool {
	return status == "active" || status == "paid_off" || status == "defaulted"
}
