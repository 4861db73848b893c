package model

import "time"

type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleTrainer UserRole = "trainer"
	RoleTrainee UserRole = "trainee"
)

// Valid проверяет, что роль входит в закрытый набор.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleTrainer, RoleTrainee:
		return true
	}
	return false
}

type User struct {
	ID                  int64     `json:"id"`
	Username            string    `json:"username"`
	Email               string    `json:"email"`
	PasswordHash        string    `json:"-"`
	Role                UserRole  `json:"role"`
	FirstName           string    `json:"first_name"`
	LastName            string    `json:"last_name"`
	IsTemporaryPassword bool      `json:"is_temporary_password"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// Name возвращает полное имя. Вычисляется, в БД не хранится.
func (u *User) Name() string {
	return u.FirstName + " " + u.LastName
}
