package ws

import (
	"testing"
	"time"

	"github.com/Yasheenyash33/StacklyHub-main-main/internal/model"
	"github.com/stretchr/testify/assert"
)

func testUser() *model.User {
	return &model.User{
		ID:        7,
		Username:  "petrov",
		Email:     "petrov@example.com",
		Role:      model.RoleTrainee,
		FirstName: "Pyotr",
		LastName:  "Petrov",
		CreatedAt: time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestNewUserCreated(t *testing.T) {
	event := NewUserCreated(testUser())

	assert.Equal(t, EventUserCreated, event.Type)
	assert.Equal(t, int64(7), event.Data["user_id"])
	assert.Equal(t, "created", event.Data["action"])

	user, ok := event.Data["user"].(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, "petrov", user["username"])
	assert.Equal(t, "Pyotr Petrov", user["name"])
}

func TestNewPasswordReset_CarriesNewPassword(t *testing.T) {
	event := NewPasswordReset(testUser(), 1, "Temp#Pass9xyz")

	assert.Equal(t, EventPasswordReset, event.Type)
	assert.Equal(t, int64(7), event.Data["user_id"])
	assert.Equal(t, int64(1), event.Data["reset_by"])
	assert.Equal(t, "Temp#Pass9xyz", event.Data["new_password"])
	assert.Contains(t, event.Data["message"], "Temp#Pass9xyz")
}

func TestNewSessionCreated_PayloadShape(t *testing.T) {
	scheduled := time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)
	session := &model.Session{
		ID:              3,
		Title:           "Go basics",
		TrainerID:       2,
		ScheduledDate:   scheduled,
		DurationMinutes: 60,
		Status:          model.SessionStatusScheduled,
		SessionLink:     "abc-def",
		Trainees:        []*model.User{testUser()},
	}

	event := NewSessionCreated(session)

	assert.Equal(t, EventSessionCreated, event.Type)
	assert.Equal(t, int64(2), event.Data["trainer"])
	assert.Equal(t, []int64{7}, event.Data["trainees"])
	assert.Equal(t, "2026-03-15T14:30:00Z", event.Data["startTime"])
	assert.Equal(t, "abc-def", event.Data["session_link"])
}

func TestNewSessionCreated_EmptyRoster(t *testing.T) {
	event := NewSessionCreated(&model.Session{ID: 1, TrainerID: 2})

	// Пустой состав сериализуется как [], а не null
	assert.Equal(t, []int64{}, event.Data["trainees"])
}

func TestNewAttendanceMarked(t *testing.T) {
	marked := time.Date(2026, 3, 15, 15, 0, 0, 0, time.UTC)
	event := NewAttendanceMarked(&model.Attendance{
		SessionID: 3,
		TraineeID: 7,
		Present:   true,
		MarkedAt:  marked,
	})

	assert.Equal(t, EventAttendanceMarked, event.Type)
	assert.Equal(t, int64(3), event.Data["session_id"])
	assert.Equal(t, int64(7), event.Data["trainee_id"])
	assert.Equal(t, true, event.Data["present"])
	assert.Equal(t, "2026-03-15T15:00:00Z", event.Data["marked_at"])
}

func TestNewUserDeleted(t *testing.T) {
	event := NewUserDeleted(42)

	assert.Equal(t, EventUserDeleted, event.Type)
	assert.Equal(t, int64(42), event.Data["user_id"])
	assert.Equal(t, "deleted", event.Data["action"])
}
