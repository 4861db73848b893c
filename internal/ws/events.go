package ws

import (
	"time"

	"github.com/Yasheenyash33/StacklyHub-main-main/internal/model"
)

// Типы доменных событий, рассылаемых наблюдателям.
const (
	EventUserCreated               = "user_created"
	EventUserUpdated               = "user_updated"
	EventUserDeleted               = "user_deleted"
	EventPasswordChanged           = "password_changed"
	EventPasswordReset             = "password_reset"
	EventStudentAssigned           = "student_assigned"
	EventStudentUnassigned         = "student_unassigned"
	EventSessionCreated            = "session_created"
	EventSessionUpdated            = "session_updated"
	EventTraineeAddedToSession     = "trainee_added_to_session"
	EventTraineeRemovedFromSession = "trainee_removed_from_session"
	EventSessionDeleted            = "session_deleted"
	EventAttendanceMarked          = "attendance_marked"
)

// Event — сообщение наблюдателю: тег типа и полезная нагрузка.
type Event struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data"`
}

func userPayload(u *model.User) map[string]any {
	return map[string]any{
		"id":                    u.ID,
		"username":              u.Username,
		"email":                 u.Email,
		"role":                  u.Role,
		"first_name":            u.FirstName,
		"last_name":             u.LastName,
		"name":                  u.Name(),
		"is_temporary_password": u.IsTemporaryPassword,
		"created_at":            u.CreatedAt.Format(time.RFC3339),
		"updated_at":            u.UpdatedAt.Format(time.RFC3339),
	}
}

func NewUserCreated(user *model.User) Event {
	return Event{Type: EventUserCreated, Data: map[string]any{
		"user_id": user.ID,
		"action":  "created",
		"user":    userPayload(user),
	}}
}

func NewUserUpdated(user *model.User) Event {
	return Event{Type: EventUserUpdated, Data: map[string]any{
		"user_id": user.ID,
		"action":  "updated",
		"user":    userPayload(user),
	}}
}

func NewUserDeleted(userID int64) Event {
	return Event{Type: EventUserDeleted, Data: map[string]any{
		"user_id": userID,
		"action":  "deleted",
	}}
}

func NewPasswordChanged(user *model.User) Event {
	return Event{Type: EventPasswordChanged, Data: map[string]any{
		"user_id": user.ID,
		"action":  "changed",
		"message": "Password changed for user " + user.Name(),
	}}
}

// NewPasswordReset включает новый пароль открытым текстом: подключённые
// панели администратора показывают его для передачи пользователю.
func NewPasswordReset(user *model.User, resetBy int64, newPassword string) Event {
	return Event{Type: EventPasswordReset, Data: map[string]any{
		"user_id":      user.ID,
		"reset_by":     resetBy,
		"new_password": newPassword,
		"message":      "Password reset for user " + user.Name() + ". New temporary password: " + newPassword,
	}}
}

func NewStudentAssigned(a *model.AssignedStudent) Event {
	return Event{Type: EventStudentAssigned, Data: map[string]any{
		"assignment_id": a.ID,
		"student_id":    a.StudentID,
		"teacher_id":    a.TeacherID,
		"assigned_date": a.AssignedDate.Format(time.RFC3339),
	}}
}

func NewStudentUnassigned(studentID, teacherID int64) Event {
	return Event{Type: EventStudentUnassigned, Data: map[string]any{
		"student_id": studentID,
		"teacher_id": teacherID,
	}}
}

func NewSessionCreated(s *model.Session) Event {
	return Event{Type: EventSessionCreated, Data: map[string]any{
		"id":               s.ID,
		"title":            s.Title,
		"description":      s.Description,
		"trainer":          s.TrainerID,
		"trainees":         traineeIDs(s.Trainees),
		"startTime":        s.ScheduledDate.Format(time.RFC3339),
		"duration_minutes": s.DurationMinutes,
		"status":           s.Status,
		"class_link":       s.ClassLink,
		"session_link":     s.SessionLink,
		"created_at":       s.CreatedAt.Format(time.RFC3339),
		"updated_at":       s.UpdatedAt.Format(time.RFC3339),
	}}
}

func NewSessionUpdated(s *model.Session) Event {
	return Event{Type: EventSessionUpdated, Data: map[string]any{
		"session_id": s.ID,
		"status":     s.Status,
		"updated_at": s.UpdatedAt.Format(time.RFC3339),
		"trainees":   traineeIDs(s.Trainees),
		"trainer":    s.TrainerID,
		"startTime":  s.ScheduledDate.Format(time.RFC3339),
	}}
}

func NewTraineeAdded(sessionID, traineeID int64, updatedAt time.Time) Event {
	return Event{Type: EventTraineeAddedToSession, Data: map[string]any{
		"session_id": sessionID,
		"trainee_id": traineeID,
		"updated_at": updatedAt.Format(time.RFC3339),
	}}
}

func NewTraineeRemoved(sessionID, traineeID int64, updatedAt time.Time) Event {
	return Event{Type: EventTraineeRemovedFromSession, Data: map[string]any{
		"session_id": sessionID,
		"trainee_id": traineeID,
		"updated_at": updatedAt.Format(time.RFC3339),
	}}
}

func NewSessionDeleted(sessionID int64) Event {
	return Event{Type: EventSessionDeleted, Data: map[string]any{
		"session_id": sessionID,
	}}
}

func NewAttendanceMarked(a *model.Attendance) Event {
	return Event{Type: EventAttendanceMarked, Data: map[string]any{
		"session_id": a.SessionID,
		"trainee_id": a.TraineeID,
		"present":    a.Present,
		"marked_at":  a.MarkedAt.Format(time.RFC3339),
	}}
}

func traineeIDs(trainees []*model.User) []int64 {
	ids := make([]int64, 0, len(trainees))
	for _, t := range trainees {
		ids = append(ids, t.ID)
	}
	return ids
}
