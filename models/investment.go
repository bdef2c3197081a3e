package models

import (
	"time"

	"github.com/shopspring/decimal"
)

var InvestmentTypes = []string{"stocks", "mutual_funds", "crypto", "bonds", "real_estate", "other"}

type Investment struct {
	ID            int               `json:"id" db:"id"`
	UserID        int               `json:"user_id" db:"user_id"`
	Name          string            `json:"name" db:"name"`
	Symbol        string            `json:"symbol" db:"symbol"`
	Type          string            `json:"type" db:"type"`
	PurchasePrice decimal.Decimal   `json:"purchase_price" db:"purchase_price"`
	Quantity      decimal.Decimal   `json:"quantity" db:"quantity"`
	PurchaseDate  time.Time         `json:"purchase_date" db:"purchase_date"`
	Notes         string            `json:"notes" db:"notes"`
	Values        []InvestmentValue `json:"values"`
	CurrentValue  *decimal.Decimal  `json:"current_value"`
	CreatedAt     time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at" db:"updated_at"`
}

// InvestmentValue — точка временного ряда оценок, только добавляется.
// Несколько значений на одну дату допустимы, новее — то, что вставлено позже.
type InvestmentValue struct {
	ID           int             `json:"id" db:"id"`
	InvestmentID int             `json:"investment_id" db:"investment_id"`
	Date         time.Time       `json:"date" db:"date"`
	Value        decimal.Decimal `json:"value" db:"value"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
}

func ValidInvestmentType(t string) bool {
	for _, i := range InvestmentTypes {
		if i == t {
			return true
		}
	}
	return false
}

// Invested — вложенная сумма: цена покупки, умноженная на количество.
func (i *Investment) Invested() decimal.Decimal {
	return i.PurchasePrice.Mul(i.Quantity)
}

// Latest возвращает текущую оценку: последнее записанное значение,
// а при его отсутствии — вложенную сумму.
func (i *Investment) Latest() decimal.Decimal {
	if i.CurrentValue != nil {
		return *i.CurrentValue
	}
	return i.Invested()
}

type PortfolioSummary struct {
	TotalInvested      string `json:"total_invested"`
	CurrentValue       string `json:"current_value"`
	TotalGainLoss      string `json:"total_gain_loss"`
	GainLossPercentage string `json:"gain_loss_percentage"`
}

// BuildPortfolioSummary сводит портфель: сумма вложений, текущая оценка,
// прибыль/убыток и процент (0 при нулевых вложениях — деления на ноль нет).
// Денежные поля отдаются с двумя знаками после запятой.
func BuildPortfolioSummary(investments []Investment) *PortfolioSummary {
	totalInvested := decimal.Zero
	currentValue := decimal.Zero
	for i := range investments {
		totalInvested = totalInvested.Add(investments[i].Invested())
		currentValue = currentValue.Add(investments[i].Latest())
	}

	gainLoss := currentValue.Sub(totalInvested)
	percentage := decimal.Zero
	if totalInvested.IsPositive() {
		percentage = gainLoss.Div(totalInvested).Mul(decimal.NewFromInt(100))
	}

	return &PortfolioSummary{
		TotalInvested:      totalInvested.StringFixed(2),
		CurrentValue:       currentValue.StringFixed(2),
		TotalGainLoss:      gainLoss.StringFixed(2),
		GainLossPercentage: percentage.String(),
	}
}
