package models

import "time"

// Допустимые значения отделов и ролей пользователя.
var (
	UserDepartments = []string{"engineering", "finance", "hr", "marketing", "sales", "other"}
	UserRoles       = []string{"admin", "manager", "employee"}
)

type User struct {
	ID          int       `json:"id" db:"id"`
	Email       string    `json:"email" db:"email"`
	Password    string    `json:"password,omitempty" db:"password"`
	FirstName   string    `json:"first_name" db:"first_name"`
	LastName    string    `json:"last_name" db:"last_name"`
	PhoneNumber string    `json:"phone_number" db:"phone_number"`
	Location    string    `json:"location" db:"location"`
	Bio         string    `json:"bio" db:"bio"`
	Department  string    `json:"department" db:"department"`
	Role        string    `json:"role" db:"role"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

func ValidDepartment(department string) bool {
	for _, d := range UserDepartments {
		if d == department {
			return true
		}
	}
	return false
}
