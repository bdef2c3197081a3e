package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/pftapp/pft-backend/internal/database"
	"github.com/pftapp/pft-backend/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Файл .env не найден, используются переменные окружения")
	}

	pool, err := database.ConnectDB(context.Background())
	if err != nil {
		log.Fatalf("Ошибка подключения к БД: %v", err)
	}
	defer pool.Close()

	userIDs := utils.GenerateTestUsers(pool, 5)
	utils.GenerateTestTransactions(pool, userIDs, 20)
	utils.GenerateTestBudgets(pool, userIDs)
	utils.GenerateTestBillReminders(pool, userIDs, 3)
	utils.GenerateTestGoals(pool, userIDs, 2)
	utils.GenerateTestInvestments(pool, userIDs, 3)
	utils.GenerateTestDebtAccounts(pool, userIDs, 2)

	log.Printf("Тестовые данные созданы: %d пользователей", len(userIDs))
}
