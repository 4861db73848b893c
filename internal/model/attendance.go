package model

import "time"

// Attendance — отметка посещаемости. Одна запись на пару (session_id, trainee_id),
// повторная отметка перезаписывает present и marked_at.
type Attendance struct {
	ID        int64     `json:"id"`
	SessionID int64     `json:"session_id"`
	TraineeID int64     `json:"trainee_id"`
	Present   bool      `json:"present"`
	MarkedAt  time.Time `json:"marked_at"`
}

// TraineeProgress — прогресс ученика по всем сессиям.
type TraineeProgress struct {
	TraineeID          int64   `json:"trainee_id"`
	TotalSessions      int     `json:"total_sessions"`
	AttendedSessions   int     `json:"attended_sessions"`
	ProgressPercentage float64 `json:"progress_percentage"`
}

// TraineeActivity — активность ученика в сессиях конкретного тренера.
type TraineeActivity struct {
	Trainee      *User      `json:"trainee"`
	SessionCount int        `json:"session_count"`
	LastActive   *time.Time `json:"last_active"`
	Status       string     `json:"status"` // "active" или "inactive"
}
