package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pftapp/pft-backend/internal/database"
	"github.com/pftapp/pft-backend/models"
)

func CreateSubscriptionPlanHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var plan models.SubscriptionPlan
		if err := c.ShouldBindJSON(&plan); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат плана"})
			return
		}
		if err := database.CreateSubscriptionPlan(pool, &plan); err != nil {
			log.Printf("Ошибка при создании плана подписки: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при создании плана"})
			return
		}
		c.JSON(http.StatusCreated, plan)
	}
}

func GetSubscriptionPlansHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		plans, err := database.GetAllSubscriptionPlans(pool)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при получении планов"})
			return
		}
		c.JSON(http.StatusOK, plans)
	}
}

func GetSubscriptionPlanHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		plan, err := database.GetSubscriptionPlanByID(pool, id)
		if err != nil {
			respondDBError(c, err, "План не найден")
			return
		}
		c.JSON(http.StatusOK, plan)
	}
}

func UpdateSubscriptionPlanHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		var plan models.SubscriptionPlan
		if err := c.ShouldBindJSON(&plan); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат плана"})
			return
		}
		plan.ID = id
		if err := database.UpdateSubscriptionPlan(pool, &plan); err != nil {
			respondDBError(c, err, "План не найден")
			return
		}
		c.JSON(http.StatusOK, plan)
	}
}

func DeleteSubscriptionPlanHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		if err := database.DeleteSubscriptionPlan(pool, id); err != nil {
			respondDBError(c, err, "План не найден")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "План успешно удалён"})
	}
}

func CreateSubscriptionHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var sub models.Subscription
		if err := c.ShouldBindJSON(&sub); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат подписки"})
			return
		}
		if !sub.ValidDates() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Дата окончания не может быть раньше даты начала"})
			return
		}
		if sub.Status == "" {
			sub.Status = "active"
		}
		if !models.ValidSubscriptionStatus(sub.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Недопустимый статус подписки"})
			return
		}

		sub.UserID = currentUserID(c)
		if err := database.CreateSubscription(pool, &sub); err != nil {
			log.Printf("Ошибка при создании подписки: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при создании подписки"})
			return
		}
		c.JSON(http.StatusCreated, sub)
	}
}

func GetSubscriptionsHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		subscriptions, err := database.GetSubscriptionsByUserID(pool, currentUserID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при получении подписок"})
			return
		}
		c.JSON(http.StatusOK, subscriptions)
	}
}

func GetSubscriptionHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		sub, err := database.GetSubscriptionByID(pool, id, currentUserID(c))
		if err != nil {
			respondDBError(c, err, "Подписка не найдена")
			return
		}
		c.JSON(http.StatusOK, sub)
	}
}

func UpdateSubscriptionHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		var sub models.Subscription
		if err := c.ShouldBindJSON(&sub); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат подписки"})
			return
		}
		if !sub.ValidDates() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Дата окончания не может быть раньше даты начала"})
			return
		}
		if !models.ValidSubscriptionStatus(sub.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Недопустимый статус подписки"})
			return
		}

		sub.ID = id
		sub.UserID = currentUserID(c)
		if err := database.UpdateSubscription(pool, &sub); err != nil {
			respondDBError(c, err, "Подписка не найдена")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Подписка успешно обновлена"})
	}
}

func DeleteSubscriptionHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		if err := database.DeleteSubscription(pool, id, currentUserID(c)); err != nil {
			respondDBError(c, err, "Подписка не найдена")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Подписка успешно удалена"})
	}
}

// UpcomingRenewalsHandler — активные подписки со списанием в ближайшие 30 дней.
func UpcomingRenewalsHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		until := time.Now().AddDate(0, 0, 30)
		subscriptions, err := database.GetUpcomingRenewals(pool, currentUserID(c), until)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при получении продлений"})
			return
		}
		c.JSON(http.StatusOK, subscriptions)
	}
}

func SubscriptionStatisticsHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		active, err := database.GetActiveSubscriptions(pool, currentUserID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при расчёте статистики"})
			return
		}
		c.JSON(http.StatusOK, models.BuildSubscriptionStatistics(active))
	}
}
