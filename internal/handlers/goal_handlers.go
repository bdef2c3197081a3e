package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pftapp/pft-backend/internal/database"
	"github.com/pftapp/pft-backend/models"
	"github.com/shopspring/decimal"
)

func CreateGoalHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var goal models.SavingsGoal
		if err := c.ShouldBindJSON(&goal); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат цели"})
			return
		}
		if !goal.TargetAmount.IsPositive() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Целевая сумма должна быть положительной"})
			return
		}
		if goal.CurrentAmount.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Накопленная сумма не может быть отрицательной"})
			return
		}
		if goal.Status == "" {
			goal.Status = "active"
		}
		if !models.ValidGoalStatus(goal.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Недопустимый статус цели"})
			return
		}

		goal.UserID = currentUserID(c)
		if err := database.CreateGoal(pool, &goal); err != nil {
			log.Printf("Ошибка при создании цели: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при создании цели"})
			return
		}
		c.JSON(http.StatusCreated, goal)
	}
}

func GetGoalsHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		goals, err := database.GetGoalsByUserID(pool, currentUserID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при получении целей"})
			return
		}
		c.JSON(http.StatusOK, goals)
	}
}

func GetGoalHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		goal, err := database.GetGoalByID(pool, id, currentUserID(c))
		if err != nil {
			respondDBError(c, err, "Цель не найдена")
			return
		}
		c.JSON(http.StatusOK, goal)
	}
}

func UpdateGoalHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		var goal models.SavingsGoal
		if err := c.ShouldBindJSON(&goal); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат цели"})
			return
		}
		if !goal.TargetAmount.IsPositive() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Целевая сумма должна быть положительной"})
			return
		}
		if !models.ValidGoalStatus(goal.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Недопустимый статус цели"})
			return
		}

		goal.ID = id
		goal.UserID = currentUserID(c)
		if err := database.UpdateGoal(pool, &goal); err != nil {
			respondDBError(c, err, "Цель не найдена")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Цель успешно обновлена"})
	}
}

func DeleteGoalHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		if err := database.DeleteGoal(pool, id, currentUserID(c)); err != nil {
			respondDBError(c, err, "Цель не найдена")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Цель успешно удалена"})
	}
}

// UpdateGoalProgressHandler прибавляет взнос к накопленной сумме.
func UpdateGoalProgressHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		var req struct {
			Amount decimal.Decimal `json:"amount"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат данных"})
			return
		}
		if !req.Amount.IsPositive() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Сумма взноса должна быть положительной"})
			return
		}

		goal, err := database.AddGoalProgress(pool, id, currentUserID(c), req.Amount)
		if err != nil {
			respondDBError(c, err, "Цель не найдена")
			return
		}
		c.JSON(http.StatusOK, goal)
	}
}
