package model

import "time"

// AssignedStudent — связь "ученик — тренер". Пара уникальна.
type AssignedStudent struct {
	ID           int64     `json:"id"`
	StudentID    int64     `json:"student_id"`
	TeacherID    int64     `json:"teacher_id"`
	AssignedDate time.Time `json:"assigned_date"`

	// Дополнительные поля для удобства (не из БД)
	Student *User `json:"student,omitempty"`
	Teacher *User `json:"teacher,omitempty"`
}
