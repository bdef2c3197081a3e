package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type SavingsGoal struct {
	ID                 int             `json:"id" db:"id"`
	UserID             int             `json:"user_id" db:"user_id"`
	Title              string          `json:"title" db:"title"`
	TargetAmount       decimal.Decimal `json:"target_amount" db:"target_amount"`
	CurrentAmount      decimal.Decimal `json:"current_amount" db:"current_amount"`
	TargetDate         time.Time       `json:"target_date" db:"target_date"`
	Status             string          `json:"status" db:"status"`
	ProgressPercentage float64         `json:"progress_percentage"`
	CreatedAt          time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at" db:"updated_at"`
}

// Progress возвращает процент накопления; при нулевой цели — 0.
func (g *SavingsGoal) Progress() float64 {
	if !g.TargetAmount.IsPositive() {
		return 0
	}
	percent, _ := g.CurrentAmount.Div(g.TargetAmount).Mul(decimal.NewFromInt(100)).Float64()
	return percent
}

// Achieved — цель достигнута, когда накоплено не меньше целевой суммы.
func (g *SavingsGoal) Achieved() bool {
	return g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount)
}

func ValidGoalStatus(status string) bool {
	return status == "active" || status == "completed" || status == "abandoned"
}
