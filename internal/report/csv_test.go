package report

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/Yasheenyash33/StacklyHub-main-main/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCSV_Layout(t *testing.T) {
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	users := []*model.User{
		{
			ID:        1,
			Username:  "admin",
			Email:     "admin@example.com",
			Role:      model.RoleAdmin,
			FirstName: "Main",
			LastName:  "Admin",
			CreatedAt: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC),
		},
	}
	sessions := []*model.Session{
		{
			ID:              5,
			Title:           "Go basics",
			TrainerID:       2,
			ScheduledDate:   time.Date(2026, 4, 10, 14, 0, 0, 0, time.UTC),
			DurationMinutes: 90,
			Status:          model.SessionStatusScheduled,
			Trainees:        []*model.User{{ID: 3}, {ID: 4}},
		},
	}

	data, err := GenerateCSV(users, sessions, now)
	require.NoError(t, err)

	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	require.NoError(t, err)

	// Пустые строки-разделители reader пропускает
	require.Len(t, rows, 7)
	assert.Equal(t, []string{"Users Report"}, rows[0])
	assert.Equal(t, []string{"Generated on", "2026-04-01 12:00:00"}, rows[1])
	assert.Equal(t, "User ID", rows[2][0])
	assert.Equal(t, []string{"1", "admin", "admin@example.com", "admin", "Main", "Admin", "2026-01-01 09:00:00"}, rows[3])

	assert.Equal(t, []string{"Sessions Report"}, rows[4])
	assert.Equal(t, "Session ID", rows[5][0])
	assert.Equal(t, []string{"5", "Go basics", "2", "2", "2026-04-10 14:00:00", "90", "scheduled"}, rows[6])
}

func TestGenerateCSV_Empty(t *testing.T) {
	data, err := GenerateCSV(nil, nil, time.Now())
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, "Users Report")
	assert.Contains(t, text, "Sessions Report")
}
