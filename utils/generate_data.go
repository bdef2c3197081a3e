package utils

import (
	"log"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pftapp/pft-backend/internal/database"
	"github.com/pftapp/pft-backend/models"
	"github.com/shopspring/decimal"
)

func randomAmount(min, max float64) decimal.Decimal {
	return decimal.NewFromFloat(gofakeit.Price(min, max)).Round(2)
}

// GenerateTestUsers создаёт пользователей с дефолтными категориями
// и возвращает их идентификаторы.
func GenerateTestUsers(pool *pgxpool.Pool, numUsers int) []int {
	ids := make([]int, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		user := &models.User{
			Email:       gofakeit.Email(),
			Password:    gofakeit.Password(true, true, true, false, false, 10),
			FirstName:   gofakeit.FirstName(),
			LastName:    gofakeit.LastName(),
			PhoneNumber: gofakeit.Phone(),
			Location:    gofakeit.City(),
			Bio:         gofakeit.Sentence(8),
			Department:  models.UserDepartments[rand.Intn(len(models.UserDepartments))],
		}
		if err := database.RegisterUser(pool, user); err != nil {
			log.Fatalf("ошибка при добавлении пользователя: %v", err)
		}
		ids = append(ids, user.ID)
	}
	return ids
}

func GenerateTestTransactions(pool *pgxpool.Pool, userIDs []int, perUser int) {
	for _, userID := range userIDs {
		categories, err := database.GetCategoriesForUser(pool, userID)
		if err != nil {
			log.Fatalf("ошибка при получении категорий: %v", err)
		}
		for i := 0; i < perUser; i++ {
			category := categories[rand.Intn(len(categories))]
			transaction := &models.Transaction{
				UserID:          userID,
				Title:           gofakeit.ProductName(),
				Amount:          randomAmount(1, 1000),
				Type:            category.Type,
				CategoryID:      &category.ID,
				TransactionDate: time.Now().AddDate(0, 0, -rand.Intn(30)),
			}
			if err := database.CreateTransaction(pool, transaction); err != nil {
				log.Fatalf("ошибка при добавлении транзакции: %v", err)
			}
		}
	}
}

func GenerateTestBudgets(pool *pgxpool.Pool, userIDs []int) {
	now := time.Now()
	for _, userID := range userIDs {
		categories, err := database.GetCategoriesForUser(pool, userID)
		if err != nil {
			log.Fatalf("ошибка при получении категорий: %v", err)
		}
		for _, category := range categories {
			if category.Type != "expense" {
				continue
			}
			budget := &models.Budget{
				UserID:      userID,
				CategoryID:  category.ID,
				Month:       int(now.Month()),
				Year:        now.Year(),
				AmountLimit: randomAmount(100, 2000),
			}
			if _, err := database.UpsertBudget(pool, budget); err != nil {
				log.Fatalf("ошибка при добавлении бюджета: %v", err)
			}
		}
	}
}

func GenerateTestBillReminders(pool *pgxpool.Pool, userIDs []int, perUser int) {
	for _, userID := range userIDs {
		for i := 0; i < perUser; i++ {
			reminder := &models.BillReminder{
				UserID:     userID,
				Title:      gofakeit.Company(),
				Amount:     randomAmount(10, 500),
				DueDate:    time.Now().AddDate(0, 0, rand.Intn(30)),
				Recurrence: models.BillRecurrences[rand.Intn(len(models.BillRecurrences))],
				Status:     "pending",
			}
			if err := database.CreateBillReminder(pool, reminder); err != nil {
				log.Fatalf("ошибка при добавлении напоминания: %v", err)
			}
		}
	}
}

func GenerateTestGoals(pool *pgxpool.Pool, userIDs []int, perUser int) {
	for _, userID := range userIDs {
		for i := 0; i < perUser; i++ {
			target := randomAmount(1000, 10000)
			goal := &models.SavingsGoal{
				UserID:        userID,
				Title:         gofakeit.BuzzWord(),
				TargetAmount:  target,
				CurrentAmount: target.Mul(decimal.NewFromFloat(rand.Float64())).Round(2),
				TargetDate:    time.Now().AddDate(1, 0, 0),
				Status:        "active",
			}
			if err := database.CreateGoal(pool, goal); err != nil {
				log.Fatalf("ошибка при добавлении цели: %v", err)
			}
		}
	}
}

func GenerateTestInvestments(pool *pgxpool.Pool, userIDs []int, perUser int) {
	for _, userID := range userIDs {
		for i := 0; i < perUser; i++ {
			investment := &models.Investment{
				UserID:        userID,
				Name:          gofakeit.Company(),
				Symbol:        gofakeit.LetterN(4),
				Type:          models.InvestmentTypes[rand.Intn(len(models.InvestmentTypes))],
				PurchasePrice: randomAmount(10, 500),
				Quantity:      decimal.NewFromInt(int64(rand.Intn(20) + 1)),
				PurchaseDate:  time.Now().AddDate(0, -rand.Intn(12), 0),
			}
			if err := database.CreateInvestment(pool, investment); err != nil {
				log.Fatalf("ошибка при добавлении инвестиции: %v", err)
			}
		}
	}
}

func GenerateTestDebtAccounts(pool *pgxpool.Pool, userIDs []int, perUser int) {
	for _, userID := range userIDs {
		for i := 0; i < perUser; i++ {
			account := &models.DebtAccount{
				UserID:         userID,
				Name:           gofakeit.Company(),
				Balance:        randomAmount(500, 20000),
				InterestRate:   decimal.NewFromFloat(gofakeit.Float64Range(1, 25)).Round(2),
				MinimumPayment: randomAmount(20, 300),
				DueDate:        time.Now().AddDate(0, 0, rand.Intn(28)+1),
				AccountType:    models.DebtAccountTypes[rand.Intn(len(models.DebtAccountTypes))],
				Status:         "active",
			}
			if err := database.CreateDebtAccount(pool, account); err != nil {
				log.Fatalf("ошибка при добавлении долгового счёта: %v", err)
			}
		}
	}
}
