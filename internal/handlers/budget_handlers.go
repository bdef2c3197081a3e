package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pftapp/pft-backend/internal/database"
	"github.com/pftapp/pft-backend/models"
)

func validateBudget(c *gin.Context, budget *models.Budget) bool {
	if !budget.ValidPeriod() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Месяц должен быть от 1 до 12, год — положительным"})
		return false
	}
	if !budget.AmountLimit.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Лимит бюджета должен быть положительным"})
		return false
	}
	return true
}

// CreateBudgetHandler работает как upsert по естественному ключу:
// существующая строка обновляется (200), новая создаётся (201).
func CreateBudgetHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var budget models.Budget
		if err := c.ShouldBindJSON(&budget); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный ввод данных"})
			return
		}
		if !validateBudget(c, &budget) {
			return
		}

		budget.UserID = currentUserID(c)
		created, err := database.UpsertBudget(pool, &budget)
		if err != nil {
			log.Printf("Ошибка при сохранении бюджета: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при сохранении бюджета"})
			return
		}
		if created {
			c.JSON(http.StatusCreated, budget)
			return
		}
		c.JSON(http.StatusOK, budget)
	}
}

func GetBudgetsHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		budgets, err := database.GetBudgetsByUserID(pool, currentUserID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при получении списка бюджетов"})
			return
		}
		c.JSON(http.StatusOK, budgets)
	}
}

func GetBudgetHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		budget, err := database.GetBudgetByID(pool, id, currentUserID(c))
		if err != nil {
			respondDBError(c, err, "Бюджет не найден")
			return
		}
		c.JSON(http.StatusOK, budget)
	}
}

func UpdateBudgetHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		var budget models.Budget
		if err := c.ShouldBindJSON(&budget); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный ввод данных"})
			return
		}
		if !validateBudget(c, &budget) {
			return
		}

		budget.ID = id
		budget.UserID = currentUserID(c)
		if err := database.UpdateBudget(pool, &budget); err != nil {
			respondDBError(c, err, "Бюджет не найден")
			return
		}
		c.JSON(http.StatusOK, budget)
	}
}

func DeleteBudgetHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		if err := database.DeleteBudget(pool, id, currentUserID(c)); err != nil {
			respondDBError(c, err, "Бюджет не найден")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Бюджет успешно удалён"})
	}
}
