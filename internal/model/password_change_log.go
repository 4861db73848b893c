package model

import "time"

// Действия в журнале смены паролей
const (
	PasswordActionCreated = "created" // Пароль выдан при создании учётной записи
	PasswordActionChanged = "changed" // Пароль сменён владельцем или админом
	PasswordActionReset   = "reset"   // Пароль сброшен админом, выдан временный
)

// PasswordChangeLog — запись аудита. Только добавляется, никогда не меняется.
type PasswordChangeLog struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Action      string    `json:"action"`
	PerformedBy *int64    `json:"performed_by"` // nil означает самостоятельную смену
	Timestamp   time.Time `json:"timestamp"`
	Details     string    `json:"details"`
}
