package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Yasheenyash33/StacklyHub-main-main/internal/model"
	"github.com/Yasheenyash33/StacklyHub-main-main/internal/service"
)

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}

type resetPasswordRequest struct {
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

type createUserRequest struct {
	Username  string         `json:"username" validate:"required,min=2,max=50"`
	Email     string         `json:"email" validate:"required,email"`
	Role      model.UserRole `json:"role" validate:"required,oneof=admin trainer trainee"`
	FirstName string         `json:"first_name" validate:"required"`
	LastName  string         `json:"last_name" validate:"required"`
}

type updateUserRequest struct {
	Username  *string         `json:"username" validate:"omitempty,min=2,max=50"`
	Email     *string         `json:"email" validate:"omitempty,email"`
	Role      *model.UserRole `json:"role" validate:"omitempty,oneof=admin trainer trainee"`
	FirstName *string         `json:"first_name"`
	LastName  *string         `json:"last_name"`
	Password  *string         `json:"password" validate:"omitempty,min=6"`
}

type assignStudentRequest struct {
	StudentID int64 `json:"student_id" validate:"required"`
	TeacherID int64 `json:"teacher_id" validate:"required"`
}

type createSessionRequest struct {
	Title           string              `json:"title" validate:"required,max=100"`
	Description     string              `json:"description" validate:"max=500"`
	TrainerID       int64               `json:"trainer_id" validate:"required"`
	ScheduledDate   time.Time           `json:"scheduled_date" validate:"required"`
	DurationMinutes int                 `json:"duration_minutes" validate:"required,gt=0"`
	Status          model.SessionStatus `json:"status" validate:"omitempty,oneof=scheduled completed cancelled"`
	ClassLink       string              `json:"class_link" validate:"max=500"`
	SessionLink     string              `json:"session_link" validate:"max=100"`
	Trainees        []int64             `json:"trainees"`
}

type updateSessionRequest struct {
	Title           *string              `json:"title" validate:"omitempty,max=100"`
	Description     *string              `json:"description" validate:"omitempty,max=500"`
	TrainerID       *int64               `json:"trainer_id"`
	ScheduledDate   *time.Time           `json:"scheduled_date"`
	DurationMinutes *int                 `json:"duration_minutes" validate:"omitempty,gt=0"`
	Status          *model.SessionStatus `json:"status" validate:"omitempty,oneof=scheduled completed cancelled"`
	ClassLink       *string              `json:"class_link" validate:"omitempty,max=500"`
	Trainees        []int64              `json:"trainees"`
}

type markAttendanceRequest struct {
	Present *bool `json:"present" validate:"required"`
}

// decodeValid разбирает тело запроса и прогоняет его через validator
func (c *Controller) decodeValid(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed request body", service.ErrValidation)
	}

	if err := c.validate.Struct(dst); err != nil {
		return fmt.Errorf("%w: %s", service.ErrValidation, err)
	}

	return nil
}
