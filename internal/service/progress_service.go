package service

import (
	"context"
	"math"
	"time"

	"github.com/Yasheenyash33/StacklyHub-main-main/internal/model"
	"github.com/Yasheenyash33/StacklyHub-main-main/internal/repository"
	"go.uber.org/zap"
)

// activityWindow — скользящее окно активности ученика.
const activityWindow = 30 * 24 * time.Hour

// ProgressService — read-model поверх сессий и посещаемости.
// Своих данных не хранит, всё считается по запросу.
type ProgressService struct {
	sessionRepo    *repository.SessionRepository
	attendanceRepo *repository.AttendanceRepository
	assignmentRepo *repository.AssignmentRepository
	userRepo       *repository.UserRepository
	logger         *zap.Logger
}

func NewProgressService(
	sessionRepo *repository.SessionRepository,
	attendanceRepo *repository.AttendanceRepository,
	assignmentRepo *repository.AssignmentRepository,
	userRepo *repository.UserRepository,
	logger *zap.Logger,
) *ProgressService {
	return &ProgressService{
		sessionRepo:    sessionRepo,
		attendanceRepo: attendanceRepo,
		assignmentRepo: assignmentRepo,
		userRepo:       userRepo,
		logger:         logger,
	}
}

// TraineeProgress считает процент посещённых сессий. Счётчик attended
// не привязан к текущим составам: считаются все отметки present=true
// по ученику, даже если его потом убрали из состава.
func (s *ProgressService) TraineeProgress(ctx context.Context, traineeID int64) (*model.TraineeProgress, error) {
	trainee, err := s.userRepo.GetByID(ctx, traineeID)
	if err != nil {
		return nil, err
	}
	if trainee == nil {
		return nil, ErrNotFound
	}

	total, err := s.sessionRepo.CountRosterByTrainee(ctx, traineeID)
	if err != nil {
		return nil, err
	}

	attended, err := s.attendanceRepo.CountPresentByTrainee(ctx, traineeID)
	if err != nil {
		return nil, err
	}

	return &model.TraineeProgress{
		TraineeID:          traineeID,
		TotalSessions:      total,
		AttendedSessions:   attended,
		ProgressPercentage: progressPercentage(attended, total),
	}, nil
}

// TrainerRosterStatus считает активность каждого закреплённого ученика
// в сессиях тренера.
func (s *ProgressService) TrainerRosterStatus(ctx context.Context, trainerID int64) ([]*model.TraineeActivity, error) {
	trainer, err := s.userRepo.GetByID(ctx, trainerID)
	if err != nil {
		return nil, err
	}
	if trainer == nil {
		return nil, ErrNotFound
	}

	studentIDs, err := s.assignmentRepo.GetStudentIDsByTeacher(ctx, trainerID)
	if err != nil {
		return nil, err
	}

	students, err := s.userRepo.GetByIDs(ctx, studentIDs)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	activities := make([]*model.TraineeActivity, 0, len(students))
	for _, student := range students {
		count, lastCreated, err := s.sessionRepo.TrainerTraineeStats(ctx, trainerID, student.ID)
		if err != nil {
			return nil, err
		}

		lastMarked, err := s.attendanceRepo.LastMarkedForTrainer(ctx, trainerID, student.ID)
		if err != nil {
			return nil, err
		}

		lastActive := latestTime(lastCreated, lastMarked)
		activities = append(activities, &model.TraineeActivity{
			Trainee:      student,
			SessionCount: count,
			LastActive:   lastActive,
			Status:       activityStatus(lastActive, now),
		})
	}

	return activities, nil
}

// progressPercentage округляет долю посещений до двух знаков.
// При нуле сессий возвращает 0, деления на ноль нет.
func progressPercentage(attended, total int) float64 {
	if total == 0 {
		return 0
	}

	return math.Round(float64(attended)/float64(total)*100*100) / 100
}

// activityStatus — "active", если последняя активность попадает в окно.
// Отсутствие активности считается "inactive".
func activityStatus(lastActive *time.Time, now time.Time) string {
	if lastActive == nil || now.Sub(*lastActive) > activityWindow {
		return "inactive"
	}

	return "active"
}

func latestTime(a, b *time.Time) *time.Time {
	if a == nil {
		return b
	}
	if b == nil || a.After(*b) {
		return a
	}

	return b
}
