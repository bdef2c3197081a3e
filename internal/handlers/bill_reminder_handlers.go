package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pftapp/pft-backend/internal/database"
	"github.com/pftapp/pft-backend/models"
)

func validateBillReminder(c *gin.Context, reminder *models.BillReminder) bool {
	if !reminder.Amount.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Сумма счёта должна быть положительной"})
		return false
	}
	if !models.ValidRecurrence(reminder.Recurrence) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Недопустимая периодичность"})
		return false
	}
	if !models.ValidBillStatus(reminder.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Недопустимый статус счёта"})
		return false
	}
	return true
}

func CreateBillReminderHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var reminder models.BillReminder
		if err := c.ShouldBindJSON(&reminder); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат напоминания"})
			return
		}
		if reminder.Status == "" {
			reminder.Status = "pending"
		}
		if !validateBillReminder(c, &reminder) {
			return
		}

		reminder.UserID = currentUserID(c)
		reminder.NotificationSent = false
		if err := database.CreateBillReminder(pool, &reminder); err != nil {
			log.Printf("Ошибка при создании напоминания: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при создании напоминания"})
			return
		}
		c.JSON(http.StatusCreated, reminder)
	}
}

func GetBillRemindersHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		reminders, err := database.GetBillRemindersByUserID(pool, currentUserID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при получении напоминаний"})
			return
		}
		c.JSON(http.StatusOK, reminders)
	}
}

func GetBillReminderHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		reminder, err := database.GetBillReminderByID(pool, id, currentUserID(c))
		if err != nil {
			respondDBError(c, err, "Напоминание не найдено")
			return
		}
		c.JSON(http.StatusOK, reminder)
	}
}

func UpdateBillReminderHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		var reminder models.BillReminder
		if err := c.ShouldBindJSON(&reminder); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат напоминания"})
			return
		}
		if !validateBillReminder(c, &reminder) {
			return
		}

		// notification_sent через API не меняется, UpdateBillReminder его не трогает.
		reminder.ID = id
		reminder.UserID = currentUserID(c)
		if err := database.UpdateBillReminder(pool, &reminder); err != nil {
			respondDBError(c, err, "Напоминание не найдено")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Напоминание успешно обновлено"})
	}
}

func DeleteBillReminderHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		if err := database.DeleteBillReminder(pool, id, currentUserID(c)); err != nil {
			respondDBError(c, err, "Напоминание не найдено")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Напоминание успешно удалено"})
	}
}

// UpcomingBillRemindersHandler — неоплаченные счета со сроком в ближайшие 7 дней.
func UpcomingBillRemindersHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		now := time.Now()
		reminders, err := database.GetUpcomingBillReminders(pool, currentUserID(c), now, now.AddDate(0, 0, 7))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при получении напоминаний"})
			return
		}
		c.JSON(http.StatusOK, reminders)
	}
}

// MarkBillPaidHandler закрывает счёт и создаёт транзакцию расхода в одной
// транзакции БД. Повторная оплата отклоняется.
func MarkBillPaidHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		reminder, err := database.MarkBillReminderPaid(pool, id, currentUserID(c))
		if err != nil {
			if errors.Is(err, database.ErrBillAlreadyPaid) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Счёт уже оплачен"})
				return
			}
			respondDBError(c, err, "Напоминание не найдено")
			return
		}
		c.JSON(http.StatusOK, reminder)
	}
}
