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

func CreateTransactionHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var transaction models.Transaction
		if err := c.ShouldBindJSON(&transaction); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный ввод", "details": err.Error()})
			return
		}
		if !models.ValidTransactionType(transaction.Type) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Тип транзакции должен быть income или expense"})
			return
		}
		if !transaction.Amount.IsPositive() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Сумма должна быть положительной"})
			return
		}
		if transaction.TransactionDate.IsZero() {
			transaction.TransactionDate = time.Now()
		}

		transaction.UserID = currentUserID(c)
		if err := database.CreateTransaction(pool, &transaction); err != nil {
			log.Printf("Ошибка при создании транзакции: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка создания транзакции"})
			return
		}
		c.JSON(http.StatusCreated, transaction)
	}
}

func GetTransactionsHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		transactions, err := database.GetTransactionsByUserID(pool, currentUserID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка получения транзакций"})
			return
		}
		c.JSON(http.StatusOK, transactions)
	}
}

func GetTransactionHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		transaction, err := database.GetTransactionByID(pool, id, currentUserID(c))
		if err != nil {
			respondDBError(c, err, "Транзакция не найдена")
			return
		}
		c.JSON(http.StatusOK, transaction)
	}
}

func UpdateTransactionHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		var transaction models.Transaction
		if err := c.ShouldBindJSON(&transaction); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный ввод"})
			return
		}
		if !models.ValidTransactionType(transaction.Type) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Тип транзакции должен быть income или expense"})
			return
		}
		if !transaction.Amount.IsPositive() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Сумма должна быть положительной"})
			return
		}

		transaction.ID = id
		transaction.UserID = currentUserID(c)
		if err := database.UpdateTransaction(pool, &transaction); err != nil {
			respondDBError(c, err, "Транзакция не найдена")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Транзакция успешно обновлена"})
	}
}

func DeleteTransactionHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		if err := database.DeleteTransaction(pool, id, currentUserID(c)); err != nil {
			respondDBError(c, err, "Транзакция не найдена")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Транзакция успешно удалена"})
	}
}
