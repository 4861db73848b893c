package service

import (
	"context"
	"fmt"

	"github.com/Yasheenyash33/StacklyHub-main-main/internal/model"
	"github.com/Yasheenyash33/StacklyHub-main-main/internal/repository"
	"github.com/Yasheenyash33/StacklyHub-main-main/internal/ws"
	"go.uber.org/zap"
)

type AttendanceService struct {
	attendanceRepo *repository.AttendanceRepository
	sessionRepo    *repository.SessionRepository
	userRepo       *repository.UserRepository
	publisher      Publisher
	logger         *zap.Logger
}

func NewAttendanceService(
	attendanceRepo *repository.AttendanceRepository,
	sessionRepo *repository.SessionRepository,
	userRepo *repository.UserRepository,
	publisher Publisher,
	logger *zap.Logger,
) *AttendanceService {
	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		sessionRepo:    sessionRepo,
		userRepo:       userRepo,
		publisher:      publisher,
		logger:         logger,
	}
}

// Mark отмечает посещаемость. Единственный путь мутации: отсутствие
// отмечается явно present=false, отдельного "снятия отметки" нет.
// Повторная отметка той же пары перезаписывает запись (last-write-wins).
func (s *AttendanceService) Mark(ctx context.Context, sessionID, traineeID int64, present bool) (*model.Attendance, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrNotFound
	}

	trainee, err := s.userRepo.GetByID(ctx, traineeID)
	if err != nil {
		return nil, err
	}
	if trainee == nil || trainee.Role != model.RoleTrainee {
		return nil, fmt.Errorf("%w: invalid trainee", ErrValidation)
	}

	attendance, err := s.attendanceRepo.Mark(ctx, sessionID, traineeID, present)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Attendance marked",
		zap.Int64("session_id", sessionID),
		zap.Int64("trainee_id", traineeID),
		zap.Bool("present", present),
	)

	s.publisher.Broadcast(ws.NewAttendanceMarked(attendance))

	return attendance, nil
}

// BySession получает отметки сессии
func (s *AttendanceService) BySession(ctx context.Context, sessionID int64) ([]*model.Attendance, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrNotFound
	}

	return s.attendanceRepo.GetBySession(ctx, sessionID)
}
