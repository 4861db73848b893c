// Package report формирует выгрузки данных для администратора.
package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/Yasheenyash33/StacklyHub-main-main/internal/model"
)

const timeLayout = "2006-01-02 15:04:05"

// GenerateCSV собирает сводный CSV-отчёт: секция пользователей,
// пустая строка, секция сессий.
func GenerateCSV(users []*model.User, sessions []*model.Session, now time.Time) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	rows := [][]string{
		{"Users Report"},
		{"Generated on", now.Format(timeLayout)},
		{},
		{"User ID", "Username", "Email", "Role", "First Name", "Last Name", "Created At"},
	}
	for _, u := range users {
		rows = append(rows, []string{
			strconv.FormatInt(u.ID, 10),
			u.Username,
			u.Email,
			string(u.Role),
			u.FirstName,
			u.LastName,
			u.CreatedAt.Format(timeLayout),
		})
	}

	rows = append(rows,
		[]string{},
		[]string{"Sessions Report"},
		[]string{"Session ID", "Title", "Trainer ID", "Trainees", "Scheduled Date", "Duration (min)", "Status"},
	)
	for _, s := range sessions {
		rows = append(rows, []string{
			strconv.FormatInt(s.ID, 10),
			s.Title,
			strconv.FormatInt(s.TrainerID, 10),
			strconv.Itoa(len(s.Trainees)),
			s.ScheduledDate.Format(timeLayout),
			strconv.Itoa(s.DurationMinutes),
			string(s.Status),
		})
	}

	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("write csv report: %w", err)
	}

	return buf.Bytes(), nil
}
