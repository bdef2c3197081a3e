package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

var ReportTypes = []string{"monthly", "category", "trend"}

// AnalyticsReport — неизменяемый снимок посчитанной сводки.
type AnalyticsReport struct {
	ID         int             `json:"id" db:"id"`
	UserID     int             `json:"user_id" db:"user_id"`
	StartDate  time.Time       `json:"start_date" db:"start_date"`
	EndDate    time.Time       `json:"end_date" db:"end_date"`
	ReportType string          `json:"report_type" db:"report_type"`
	Data       json.RawMessage `json:"data" db:"data"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
}

func ValidReportType(t string) bool {
	for _, r := range ReportTypes {
		if r == t {
			return true
		}
	}
	return false
}

// CategoryBreakdown — суммы доходов и расходов по одной категории.
// Неиспользованная сторона остаётся строкой "0", накопленная — с двумя знаками.
type CategoryBreakdown struct {
	Income  string `json:"income"`
	Expense string `json:"expense"`
}

type MonthlySummary struct {
	TotalIncome   string                        `json:"total_income"`
	TotalExpenses string                        `json:"total_expenses"`
	ByCategory    map[string]*CategoryBreakdown `json:"by_category"`
}

// BuildMonthlySummary считает сводку за период по уже отобранным транзакциям
// пользователя. Транзакции без категории попадают в "Uncategorized".
// Вся арифметика — точная десятичная.
func BuildMonthlySummary(transactions []Transaction) *MonthlySummary {
	totalIncome := decimal.Zero
	totalExpenses := decimal.Zero
	byCategory := map[string]*CategoryBreakdown{}

	for i := range transactions {
		t := &transactions[i]

		name := "Uncategorized"
		if t.CategoryName != nil && *t.CategoryName != "" {
			name = *t.CategoryName
		}
		breakdown := byCategory[name]
		if breakdown == nil {
			breakdown = &CategoryBreakdown{Income: "0", Expense: "0"}
			byCategory[name] = breakdown
		}

		switch t.Type {
		case "income":
			totalIncome = totalIncome.Add(t.Amount)
			breakdown.Income = addDecimalString(breakdown.Income, t.Amount)
		case "expense":
			totalExpenses = totalExpenses.Add(t.Amount)
			breakdown.Expense = addDecimalString(breakdown.Expense, t.Amount)
		}
	}

	return &MonthlySummary{
		TotalIncome:   totalIncome.StringFixed(2),
		TotalExpenses: totalExpenses.StringFixed(2),
		ByCategory:    byCategory,
	}
}

func addDecimalString(current string, amount decimal.Decimal) string {
	sum, err := decimal.NewFromString(current)
	if err != nil {
		sum = decimal.Zero
	}
	return sum.Add(amount).StringFixed(2)
}

// MonthBounds возвращает первый и последний день месяца, в который попадает day.
func MonthBounds(day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 1, -1)
	return start, end
}
