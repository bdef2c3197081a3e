package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pftapp/pft-backend/internal/database"
	"github.com/pftapp/pft-backend/models"
)

func CreateCategoryHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var category models.Category
		if err := c.ShouldBindJSON(&category); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат категории"})
			return
		}
		if !models.ValidCategoryType(category.Type) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Тип категории должен быть income или expense"})
			return
		}

		userID := currentUserID(c)
		category.UserID = &userID
		if err := database.CreateCategory(pool, &category); err != nil {
			if errors.Is(err, database.ErrDuplicateCategory) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Категория с таким именем уже существует"})
				return
			}
			log.Printf("Ошибка при создании категории: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при создании категории"})
			return
		}
		c.JSON(http.StatusCreated, category)
	}
}

func GetCategoriesHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := database.GetCategoriesForUser(pool, currentUserID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при получении списка категорий"})
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}

func GetCategoryHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		category, err := database.GetCategoryByID(pool, id, currentUserID(c))
		if err != nil {
			respondDBError(c, err, "Категория не найдена")
			return
		}
		c.JSON(http.StatusOK, category)
	}
}

func UpdateCategoryHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		var category models.Category
		if err := c.ShouldBindJSON(&category); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат данных для категории"})
			return
		}
		if !models.ValidCategoryType(category.Type) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Тип категории должен быть income или expense"})
			return
		}

		category.ID = id
		if err := database.UpdateCategory(pool, &category, currentUserID(c)); err != nil {
			respondDBError(c, err, "Категория не найдена")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Категория успешно обновлена"})
	}
}

func DeleteCategoryHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		if err := database.DeleteCategory(pool, id, currentUserID(c)); err != nil {
			respondDBError(c, err, "Категория не найдена")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Категория успешно удалена"})
	}
}
