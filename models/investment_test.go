package models_test

import (
	"testing"

	"github.com/pftapp/pft-backend/models"
)

func TestBuildPortfolioSummary(t *testing.T) {
	current := amount("25")
	investments := []models.Investment{
		{
			PurchasePrice: amount("10"),
			Quantity:      amount("2"),
			CurrentValue:  &current,
		},
	}

	summary := models.BuildPortfolioSummary(investments)

	if summary.TotalInvested != "20.00" {
		t.Errorf("неверная сумма вложений: получили %s, хотели 20.00", summary.TotalInvested)
	}
	if summary.CurrentValue != "25.00" {
		t.Errorf("неверная текущая оценка: получили %s, хотели 25.00", summary.CurrentValue)
	}
	if summary.TotalGainLoss != "5.00" {
		t.Errorf("неверная прибыль: получили %s, хотели 5.00", summary.TotalGainLoss)
	}
	if summary.GainLossPercentage != "25" {
		t.Errorf("неверный процент прибыли: получили %s, хотели 25", summary.GainLossPercentage)
	}
}

func TestBuildPortfolioSummaryWithoutRecordedValue(t *testing.T) {
	// Без записанных оценок текущая стоимость равна вложенной сумме.
	investments := []models.Investment{
		{PurchasePrice: amount("10"), Quantity: amount("2")},
	}
	summary := models.BuildPortfolioSummary(investments)
	if summary.CurrentValue != "20.00" || summary.TotalGainLoss != "0.00" {
		t.Errorf("без оценок прибыль должна быть нулевой: %+v", summary)
	}
}

func TestBuildPortfolioSummaryEmpty(t *testing.T) {
	summary := models.BuildPortfolioSummary(nil)
	if summary.GainLossPercentage != "0" {
		t.Errorf("пустой портфель не должен приводить к делению на ноль: %+v", summary)
	}
	if summary.TotalInvested != "0.00" || summary.CurrentValue != "0.00" {
		t.Errorf("денежные поля пустого портфеля должны быть 0.00: %+v", summary)
	}
}
