package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Transaction struct {
	ID              int             `json:"id" db:"id"`
	UserID          int             `json:"user_id" db:"user_id"`
	Title           string          `json:"title" db:"title"`
	Amount          decimal.Decimal `json:"amount" db:"amount"`
	Type            string          `json:"type" db:"type"`
	CategoryID      *int            `json:"category_id" db:"category_id"`
	CategoryName    *string         `json:"category_name,omitempty" db:"category_name"`
	TransactionDate time.Time       `json:"transaction_date" db:"transaction_date"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`
}

func ValidTransactionType(t string) bool {
	return t == "income" || t == "expense"
}
