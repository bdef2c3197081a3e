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

func validateDebtAccount(c *gin.Context, account *models.DebtAccount) bool {
	if account.Balance.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Баланс не может быть отрицательным"})
		return false
	}
	if account.InterestRate.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ставка не может быть отрицательной"})
		return false
	}
	if !account.MinimumPayment.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Минимальный платёж должен быть положительным"})
		return false
	}
	if !models.ValidDebtAccountType(account.AccountType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Недопустимый тип долгового счёта"})
		return false
	}
	if !models.ValidDebtStatus(account.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Недопустимый статус долгового счёта"})
		return false
	}
	return true
}

func CreateDebtAccountHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var account models.DebtAccount
		if err := c.ShouldBindJSON(&account); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат долгового счёта"})
			return
		}
		if account.Status == "" {
			account.Status = "active"
		}
		if !validateDebtAccount(c, &account) {
			return
		}

		account.UserID = currentUserID(c)
		if err := database.CreateDebtAccount(pool, &account); err != nil {
			log.Printf("Ошибка при создании долгового счёта: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при создании долгового счёта"})
			return
		}
		c.JSON(http.StatusCreated, account)
	}
}

func GetDebtAccountsHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		accounts, err := database.GetDebtAccountsByUserID(pool, currentUserID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при получении долговых счетов"})
			return
		}
		c.JSON(http.StatusOK, accounts)
	}
}

func GetDebtAccountHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		account, err := database.GetDebtAccountByID(pool, id, currentUserID(c))
		if err != nil {
			respondDBError(c, err, "Долговой счёт не найден")
			return
		}
		c.JSON(http.StatusOK, account)
	}
}

func UpdateDebtAccountHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		var account models.DebtAccount
		if err := c.ShouldBindJSON(&account); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат долгового счёта"})
			return
		}
		if !validateDebtAccount(c, &account) {
			return
		}

		account.ID = id
		account.UserID = currentUserID(c)
		if err := database.UpdateDebtAccount(pool, &account); err != nil {
			respondDBError(c, err, "Долговой счёт не найден")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Долговой счёт успешно обновлён"})
	}
}

func DeleteDebtAccountHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		if err := database.DeleteDebtAccount(pool, id, currentUserID(c)); err != nil {
			respondDBError(c, err, "Долговой счёт не найден")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Долговой счёт успешно удалён"})
	}
}

// RecordDebtPaymentHandler фиксирует платёж: запись платежа, транзакция
// расхода и уменьшение баланса происходят атомарно.
func RecordDebtPaymentHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		var req struct {
			Amount decimal.Decimal `json:"amount"`
			Notes  string          `json:"notes"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат данных"})
			return
		}
		if !req.Amount.IsPositive() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Сумма платежа должна быть положительной"})
			return
		}

		account, err := database.RecordDebtPayment(pool, id, currentUserID(c), req.Amount, req.Notes)
		if err != nil {
			respondDBError(c, err, "Долговой счёт не найден")
			return
		}
		c.JSON(http.StatusOK, account)
	}
}
