package models

// Category может принадлежать пользователю или быть общей (UserID == nil).
type Category struct {
	ID     int    `json:"id" db:"id"`
	UserID *int   `json:"user_id" db:"user_id"`
	Name   string `json:"name" db:"name"`
	Type   string `json:"type" db:"type"`
}

func ValidCategoryType(t string) bool {
	return t == "income" || t == "expense"
}
