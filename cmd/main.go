package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/pftapp/pft-backend/internal/database"
	"github.com/pftapp/pft-backend/internal/routes"
	"github.com/robfig/cron/v3"
)

// ScheduleOverdueBillSweep раз в сутки помечает просроченные счета.
func ScheduleOverdueBillSweep(pool *pgxpool.Pool) {
	c := cron.New()
	_, err := c.AddFunc("@daily", func() {
		marked, err := database.MarkOverdueBillReminders(pool)
		if err != nil {
			log.Printf("Ошибка пометки просроченных счетов: %v", err)
			return
		}
		if marked > 0 {
			log.Printf("Просроченных счетов помечено: %d", marked)
		}
	})
	if err != nil {
		log.Fatalf("Ошибка настройки CRON-задачи для просроченных счетов: %v", err)
	}
	c.Start()
}

func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin == "http://localhost:3000" || origin == "http://localhost:3001" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, PATCH, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}

		c.Next()
	}
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Файл .env не найден, используются переменные окружения")
	}

	if err := database.RunMigrations(database.ConnectURL()); err != nil {
		log.Fatalf("Ошибка применения миграций: %v", err)
	}

	pool, err := database.ConnectDB(context.Background())
	if err != nil {
		log.Fatalf("Ошибка подключения к БД: %v", err)
	}
	defer pool.Close()

	ScheduleOverdueBillSweep(pool)

	r := gin.Default()
	r.Use(CORSMiddleware())
	routes.SetupRouter(r, pool)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
