package models_test

import (
	"testing"
	"time"

	"github.com/pftapp/pft-backend/models"
	"github.com/shopspring/decimal"
)

func amount(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestBuildMonthlySummary(t *testing.T) {
	catA := "A"
	transactions := []models.Transaction{
		{Type: "income", Amount: amount("100"), CategoryName: &catA},
		{Type: "expense", Amount: amount("40"), CategoryName: &catA},
		{Type: "expense", Amount: amount("10")},
	}

	summary := models.BuildMonthlySummary(transactions)

	if summary.TotalIncome != "100.00" {
		t.Errorf("неверный суммарный доход: получили %s, хотели 100.00", summary.TotalIncome)
	}
	if summary.TotalExpenses != "50.00" {
		t.Errorf("неверный суммарный расход: получили %s, хотели 50.00", summary.TotalExpenses)
	}

	a := summary.ByCategory["A"]
	if a == nil {
		t.Fatal("нет разбивки по категории A")
	}
	if a.Income != "100.00" || a.Expense != "40.00" {
		t.Errorf("неверная разбивка по A: %+v", a)
	}

	uncategorized := summary.ByCategory["Uncategorized"]
	if uncategorized == nil {
		t.Fatal("нет разбивки по Uncategorized")
	}
	if uncategorized.Income != "0" {
		t.Errorf("доход без категории должен остаться строкой 0, получили %s", uncategorized.Income)
	}
	if uncategorized.Expense != "10.00" {
		t.Errorf("неверный расход без категории: %s", uncategorized.Expense)
	}
}

func TestBuildMonthlySummaryEmpty(t *testing.T) {
	summary := models.BuildMonthlySummary(nil)
	if summary.TotalIncome != "0.00" || summary.TotalExpenses != "0.00" {
		t.Errorf("пустой месяц должен давать нулевые итоги: %+v", summary)
	}
	if len(summary.ByCategory) != 0 {
		t.Errorf("пустой месяц не должен содержать категорий: %+v", summary.ByCategory)
	}
}

func TestMonthBounds(t *testing.T) {
	day := time.Date(2024, time.February, 15, 10, 30, 0, 0, time.UTC)
	start, end := models.MonthBounds(day)
	if start.Day() != 1 || start.Month() != time.February {
		t.Errorf("неверное начало месяца: %v", start)
	}
	if end.Day() != 29 || end.Month() != time.February {
		t.Errorf("неверный конец месяца: %v", end)
	}
}
