package handlers

import (
	"log"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pftapp/pft-backend/internal/database"
	"github.com/pftapp/pft-backend/models"
	"github.com/pftapp/pft-backend/utils"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type registerRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	PhoneNumber     string `json:"phone_number"`
	Location        string `json:"location"`
	Bio             string `json:"bio"`
	Department      string `json:"department"`
}

func RegisterHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат данных. Проверьте введённые значения."})
			return
		}

		fieldErrors := gin.H{}
		if req.Email == "" || !emailPattern.MatchString(req.Email) {
			fieldErrors["email"] = "Укажите корректный email"
		} else if taken, err := database.EmailTaken(pool, req.Email); err != nil {
			log.Printf("Ошибка проверки email: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка регистрации"})
			return
		} else if taken {
			// Не раскрываем, существует ли аккаунт.
			fieldErrors["email"] = "Регистрация с этим email невозможна"
		}
		if len(req.Password) < 8 {
			fieldErrors["password"] = "Пароль должен содержать не менее 8 символов"
		}
		if req.Password != req.ConfirmPassword {
			fieldErrors["confirm_password"] = "Пароли не совпадают"
		}
		if req.Department != "" && !models.ValidDepartment(req.Department) {
			fieldErrors["department"] = "Недопустимый отдел"
		}
		if len(fieldErrors) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors})
			return
		}

		user := models.User{
			Email:       req.Email,
			Password:    req.Password,
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			PhoneNumber: req.PhoneNumber,
			Location:    req.Location,
			Bio:         req.Bio,
			Department:  req.Department,
		}
		if err := database.RegisterUser(pool, &user); err != nil {
			log.Printf("Ошибка при регистрации пользователя: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка регистрации"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "Пользователь успешно зарегистрирован", "user_id": user.ID})
	}
}

func LoginHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var credentials struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&credentials); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Ошибка ввода данных"})
			return
		}

		user, err := database.AuthenticateUser(pool, credentials.Email, credentials.Password)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Неверный email или пароль"})
			return
		}

		token, err := utils.GenerateToken(user.ID)
		if err != nil {
			log.Printf("Ошибка выпуска токена: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка авторизации"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
	}
}

func MeHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := database.GetUserByID(pool, currentUserID(c))
		if err != nil {
			respondDBError(c, err, "Пользователь не найден")
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

func UpdateProfileHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := database.GetUserByID(pool, currentUserID(c))
		if err != nil {
			respondDBError(c, err, "Пользователь не найден")
			return
		}

		// Частичное обновление: непереданные поля сохраняют текущие значения.
		email, role, id := user.Email, user.Role, user.ID
		if err := c.ShouldBindJSON(user); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат данных"})
			return
		}
		// Email и роль через профиль не меняются.
		user.Email, user.Role, user.ID = email, role, id

		if user.Department != "" && !models.ValidDepartment(user.Department) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Недопустимый отдел"})
			return
		}

		if err := database.UpdateUserProfile(pool, user); err != nil {
			log.Printf("Ошибка обновления профиля: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка обновления профиля"})
			return
		}

		updated, err := database.GetUserByID(pool, user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка обновления профиля"})
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func ChangePasswordHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			CurrentPassword string `json:"current_password"`
			NewPassword     string `json:"new_password"`
			ConfirmPassword string `json:"confirm_password"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат данных"})
			return
		}
		if req.CurrentPassword == "" || req.NewPassword == "" || req.ConfirmPassword == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Заполните все поля"})
			return
		}
		if len(req.NewPassword) < 8 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Новый пароль должен содержать не менее 8 символов"})
			return
		}
		if req.NewPassword != req.ConfirmPassword {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Пароли не совпадают"})
			return
		}

		err := database.ChangeUserPassword(pool, currentUserID(c), req.CurrentPassword, req.NewPassword)
		if err != nil {
			if err == database.ErrWrongPassword {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный текущий пароль"})
				return
			}
			log.Printf("Ошибка смены пароля: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка смены пароля"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Пароль успешно изменён"})
	}
}
