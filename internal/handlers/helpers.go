package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pftapp/pft-backend/internal/database"
	"github.com/pftapp/pft-backend/internal/middleware"
)

// pathID разбирает параметр :id; при ошибке сам отвечает 400.
func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный идентификатор"})
		return 0, false
	}
	return id, true
}

func currentUserID(c *gin.Context) int {
	return middleware.UserID(c)
}

// respondDBError разводит ошибки слоя данных: отсутствие записи — 404,
// всё остальное — 500 с записью причины в лог.
func respondDBError(c *gin.Context, err error, notFoundMessage string) {
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMessage})
		return
	}
	log.Printf("Ошибка обращения к БД: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Внутренняя ошибка сервера"})
}
