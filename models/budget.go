package models

import "github.com/shopspring/decimal"

// Budget уникален по естественному ключу (user_id, category_id, month, year).
type Budget struct {
	ID          int             `json:"id" db:"id"`
	UserID      int             `json:"user_id" db:"user_id"`
	CategoryID  int             `json:"category_id" db:"category_id"`
	Month       int             `json:"month" db:"month"`
	Year        int             `json:"year" db:"year"`
	AmountLimit decimal.Decimal `json:"amount_limit" db:"amount_limit"`
}

func (b *Budget) ValidPeriod() bool {
	return b.Month >= 1 && b.Month <= 12 && b.Year > 0
}
