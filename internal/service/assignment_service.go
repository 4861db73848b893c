package service

import (
	"context"
	"fmt"

	"github.com/Yasheenyash33/StacklyHub-main-main/internal/model"
	"github.com/Yasheenyash33/StacklyHub-main-main/internal/repository"
	"github.com/Yasheenyash33/StacklyHub-main-main/internal/ws"
	"go.uber.org/zap"
)

type AssignmentService struct {
	assignmentRepo *repository.AssignmentRepository
	userRepo       *repository.UserRepository
	publisher      Publisher
	logger         *zap.Logger
}

func NewAssignmentService(
	assignmentRepo *repository.AssignmentRepository,
	userRepo *repository.UserRepository,
	publisher Publisher,
	logger *zap.Logger,
) *AssignmentService {
	return &AssignmentService{
		assignmentRepo: assignmentRepo,
		userRepo:       userRepo,
		publisher:      publisher,
		logger:         logger,
	}
}

// Assign закрепляет ученика за тренером. Повторный вызов возвращает
// существующую связь без ошибки и без события.
func (s *AssignmentService) Assign(ctx context.Context, studentID, teacherID int64) (*model.AssignedStudent, error) {
	student, err := s.userRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student == nil || student.Role != model.RoleTrainee {
		return nil, fmt.Errorf("%w: invalid student", ErrValidation)
	}

	teacher, err := s.userRepo.GetByID(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	if teacher == nil || teacher.Role != model.RoleTrainer {
		return nil, fmt.Errorf("%w: invalid teacher", ErrValidation)
	}

	existing, err := s.assignmentRepo.GetByPair(ctx, studentID, teacherID)
	if err != nil {
		return nil, err
	}

	assignment, err := s.assignmentRepo.Assign(ctx, studentID, teacherID)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		s.logger.Info("Student assigned",
			zap.Int64("student_id", studentID),
			zap.Int64("teacher_id", teacherID),
			zap.Int64("assignment_id", assignment.ID),
		)
		s.publisher.Broadcast(ws.NewStudentAssigned(assignment))
	}

	return assignment, nil
}

// Unassign снимает закрепление. Возвращает ErrNotFound, если связи не было.
func (s *AssignmentService) Unassign(ctx context.Context, studentID, teacherID int64) error {
	removed, err := s.assignmentRepo.Unassign(ctx, studentID, teacherID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotFound
	}

	s.logger.Info("Student unassigned",
		zap.Int64("student_id", studentID),
		zap.Int64("teacher_id", teacherID),
	)

	s.publisher.Broadcast(ws.NewStudentUnassigned(studentID, teacherID))

	return nil
}

// List получает закрепления с фильтрацией по роли: ученик видит только
// свои, тренер — только свои, админ — все.
func (s *AssignmentService) List(ctx context.Context, actor *model.User, skip, limit int) ([]*model.AssignedStudent, error) {
	assignments, err := s.assignmentRepo.List(ctx, skip, limit)
	if err != nil {
		return nil, err
	}

	switch actor.Role {
	case model.RoleTrainee:
		assignments = filterAssignments(assignments, func(a *model.AssignedStudent) bool {
			return a.StudentID == actor.ID
		})
	case model.RoleTrainer:
		assignments = filterAssignments(assignments, func(a *model.AssignedStudent) bool {
			return a.TeacherID == actor.ID
		})
	}

	return assignments, nil
}

func filterAssignments(assignments []*model.AssignedStudent, keep func(*model.AssignedStudent) bool) []*model.AssignedStudent {
	filtered := assignments[:0]
	for _, a := range assignments {
		if keep(a) {
			filtered = append(filtered, a)
		}
	}
	return filtered
}
