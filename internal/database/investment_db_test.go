package database_test

import (
	"errors"
	"testing"
	"time"

	"github.com/pftapp/pft-backend/internal/database"
	"github.com/pftapp/pft-backend/models"
)

func TestCreateInvestmentSeedsInitialValue(t *testing.T) {
	pool := testPool(t)
	user := testUser(t, pool)

	investment := &models.Investment{
		UserID:        user.ID,
		Name:          "Index fund",
		Symbol:        "IDX",
		Type:          "mutual_funds",
		PurchasePrice: money(t, "10.00"),
		Quantity:      money(t, "2"),
		PurchaseDate:  time.Now().AddDate(0, -1, 0),
	}
	if err := database.CreateInvestment(pool, investment); err != nil {
		t.Fatalf("ошибка создания вложения: %v", err)
	}

	stored, err := database.GetInvestmentByID(pool, investment.ID, user.ID)
	if err != nil {
		t.Fatalf("ошибка получения вложения: %v", err)
	}
	if len(stored.Values) != 1 {
		t.Fatalf("при создании должна появиться ровно одна оценка, получили %d", len(stored.Values))
	}
	if !stored.Values[0].Value.Equal(money(t, "20.00")) {
		t.Errorf("начальная оценка должна равняться цене за количество: %s", stored.Values[0].Value)
	}
}

func TestInvestmentCurrentValueUsesLatestEntry(t *testing.T) {
	pool := testPool(t)
	user := testUser(t, pool)

	investment := &models.Investment{
		UserID:        user.ID,
		Name:          "Shares",
		Type:          "stocks",
		PurchasePrice: money(t, "10.00"),
		Quantity:      money(t, "2"),
		PurchaseDate:  time.Now().AddDate(0, -2, 0),
	}
	if err := database.CreateInvestment(pool, investment); err != nil {
		t.Fatalf("ошибка создания вложения: %v", err)
	}

	newer := &models.InvestmentValue{
		Date:  time.Now(),
		Value: money(t, "25.00"),
	}
	if _, err := database.RecordInvestmentValue(pool, investment.ID, user.ID, newer); err != nil {
		t.Fatalf("ошибка записи оценки: %v", err)
	}

	// Дубликат по дате допустим; актуальной становится вставленная позже.
	duplicate := &models.InvestmentValue{
		Date:  newer.Date,
		Value: money(t, "26.00"),
	}
	if _, err := database.RecordInvestmentValue(pool, investment.ID, user.ID, duplicate); err != nil {
		t.Fatalf("ошибка записи повторной оценки: %v", err)
	}

	investments, err := database.GetInvestmentsWithCurrentValue(pool, user.ID)
	if err != nil {
		t.Fatalf("ошибка получения вложений: %v", err)
	}
	if len(investments) != 1 {
		t.Fatalf("должно быть одно вложение, получили %d", len(investments))
	}
	if investments[0].CurrentValue == nil || !investments[0].CurrentValue.Equal(money(t, "26.00")) {
		t.Errorf("текущей должна быть последняя вставленная оценка: %v", investments[0].CurrentValue)
	}

	summary := models.BuildPortfolioSummary(investments)
	if summary.TotalInvested != "20.00" || summary.CurrentValue != "26.00" {
		t.Errorf("неверная сводка портфеля: %+v", summary)
	}
}

func TestRecordInvestmentValueOwnership(t *testing.T) {
	pool := testPool(t)
	user := testUser(t, pool)
	stranger := testUser(t, pool)

	investment := &models.Investment{
		UserID:        user.ID,
		Name:          "Bonds",
		Type:          "bonds",
		PurchasePrice: money(t, "50.00"),
		Quantity:      money(t, "1"),
		PurchaseDate:  time.Now().AddDate(0, -1, 0),
	}
	if err := database.CreateInvestment(pool, investment); err != nil {
		t.Fatalf("ошибка создания вложения: %v", err)
	}

	foreign := &models.InvestmentValue{Date: time.Now(), Value: money(t, "55.00")}
	if _, err := database.RecordInvestmentValue(pool, investment.ID, stranger.ID, foreign); !errors.Is(err, database.ErrNotFound) {
		t.Fatalf("запись оценки в чужое вложение должна давать ErrNotFound, получили %v", err)
	}

	own := &models.InvestmentValue{Date: time.Now(), Value: money(t, "60.00")}
	updated, err := database.RecordInvestmentValue(pool, investment.ID, user.ID, own)
	if err != nil {
		t.Fatalf("ошибка записи оценки: %v", err)
	}
	if len(updated.Values) != 2 {
		t.Fatalf("после записи должно быть две оценки, получили %d", len(updated.Values))
	}
	if !updated.Values[0].Value.Equal(money(t, "60.00")) {
		t.Errorf("ряд должен начинаться с последней оценки: %s", updated.Values[0].Value)
	}
}
