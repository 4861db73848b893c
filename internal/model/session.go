package model

import "time"

type SessionStatus string

const (
	SessionStatusScheduled SessionStatus = "scheduled" // Запланирована
	SessionStatusCompleted SessionStatus = "completed" // Проведена
	SessionStatusCancelled SessionStatus = "cancelled" // Отменена
)

// Valid проверяет, что статус входит в допустимый набор.
func (s SessionStatus) Valid() bool {
	switch s {
	case SessionStatusScheduled, SessionStatusCompleted, SessionStatusCancelled:
		return true
	}
	return false
}

type Session struct {
	ID              int64         `json:"id"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	TrainerID       int64         `json:"trainer_id"`
	ScheduledDate   time.Time     `json:"scheduled_date"`
	DurationMinutes int           `json:"duration_minutes"`
	Status          SessionStatus `json:"status"`
	ClassLink       string        `json:"class_link"`
	SessionLink     string        `json:"session_link"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`

	// Дополнительные поля для удобства (не из БД)
	Trainees []*User `json:"trainees,omitempty"`
}

// SessionTrainee — запись состава сессии. Пара (session_id, trainee_id) уникальна.
type SessionTrainee struct {
	ID        int64     `json:"id"`
	SessionID int64     `json:"session_id"`
	TraineeID int64     `json:"trainee_id"`
	AddedAt   time.Time `json:"added_at"`
}
