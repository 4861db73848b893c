package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Yasheenyash33/StacklyHub-main-main/internal/model"
	"github.com/Yasheenyash33/StacklyHub-main-main/internal/repository"
	"github.com/Yasheenyash33/StacklyHub-main-main/internal/ws"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type SessionService struct {
	pool           *pgxpool.Pool
	sessionRepo    *repository.SessionRepository
	userRepo       *repository.UserRepository
	attendanceRepo *repository.AttendanceRepository
	publisher      Publisher
	logger         *zap.Logger
}

func NewSessionService(
	pool *pgxpool.Pool,
	sessionRepo *repository.SessionRepository,
	userRepo *repository.UserRepository,
	attendanceRepo *repository.AttendanceRepository,
	publisher Publisher,
	logger *zap.Logger,
) *SessionService {
	return &SessionService{
		pool:           pool,
		sessionRepo:    sessionRepo,
		userRepo:       userRepo,
		attendanceRepo: attendanceRepo,
		publisher:      publisher,
		logger:         logger,
	}
}

// CreateSessionSpec — данные для создания сессии.
type CreateSessionSpec struct {
	Title           string
	Description     string
	TrainerID       int64
	ScheduledDate   time.Time
	DurationMinutes int
	Status          model.SessionStatus
	ClassLink       string
	SessionLink     string
	TraineeIDs      []int64
}

// Create создаёт сессию вместе с составом в одной транзакции: частично
// записанный состав не виден никогда. Если токен ссылки не задан,
// генерируется непредсказуемый UUID.
func (s *SessionService) Create(ctx context.Context, spec CreateSessionSpec) (*model.Session, error) {
	trainer, err := s.userRepo.GetByID(ctx, spec.TrainerID)
	if err != nil {
		return nil, err
	}
	if trainer == nil || trainer.Role != model.RoleTrainer {
		return nil, fmt.Errorf("%w: invalid trainer", ErrValidation)
	}

	status := spec.Status
	if status == "" {
		status = model.SessionStatusScheduled
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	sessionLink := spec.SessionLink
	if sessionLink == "" {
		sessionLink = uuid.NewString()
	}

	session := &model.Session{
		Title:           spec.Title,
		Description:     spec.Description,
		TrainerID:       spec.TrainerID,
		ScheduledDate:   spec.ScheduledDate,
		DurationMinutes: spec.DurationMinutes,
		Status:          status,
		ClassLink:       spec.ClassLink,
		SessionLink:     sessionLink,
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.sessionRepo.Create(ctx, tx, session); err != nil {
		return nil, err
	}

	if len(spec.TraineeIDs) > 0 {
		if err := s.sessionRepo.InsertRoster(ctx, tx, session.ID, spec.TraineeIDs); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	session.Trainees, err = s.sessionRepo.GetTrainees(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Session created",
		zap.Int64("session_id", session.ID),
		zap.Int64("trainer_id", session.TrainerID),
		zap.Int("roster_size", len(session.Trainees)),
	)

	s.publisher.Broadcast(ws.NewSessionCreated(session))

	return session, nil
}

// GetByID получает сессию с составом
func (s *SessionService) GetByID(ctx context.Context, id int64) (*model.Session, error) {
	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}

	session.Trainees, err = s.sessionRepo.GetTrainees(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	return session, nil
}

// GetByLink получает сессию по токену ссылки. Вызывается без
// аутентификации: токен сам по себе даёт доступ.
func (s *SessionService) GetByLink(ctx context.Context, link string) (*model.Session, error) {
	session, err := s.sessionRepo.GetByLink(ctx, link)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}

	session.Trainees, err = s.sessionRepo.GetTrainees(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	return session, nil
}

// List получает сессии постранично, с составами
func (s *SessionService) List(ctx context.Context, skip, limit int) ([]*model.Session, error) {
	sessions, err := s.sessionRepo.List(ctx, skip, limit)
	if err != nil {
		return nil, err
	}

	for _, session := range sessions {
		session.Trainees, err = s.sessionRepo.GetTrainees(ctx, session.ID)
		if err != nil {
			return nil, err
		}
	}

	return sessions, nil
}

// ListByTrainer получает сессии тренера, с составами
func (s *SessionService) ListByTrainer(ctx context.Context, trainerID int64) ([]*model.Session, error) {
	sessions, err := s.sessionRepo.GetByTrainer(ctx, trainerID)
	if err != nil {
		return nil, err
	}

	return s.populateTrainees(ctx, sessions)
}

// ListByTrainee получает сессии, в составе которых числится ученик
func (s *SessionService) ListByTrainee(ctx context.Context, traineeID int64) ([]*model.Session, error) {
	sessions, err := s.sessionRepo.GetByTrainee(ctx, traineeID)
	if err != nil {
		return nil, err
	}

	return s.populateTrainees(ctx, sessions)
}

// ListByStatus получает сессии в заданном статусе
func (s *SessionService) ListByStatus(ctx context.Context, status model.SessionStatus) ([]*model.Session, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	sessions, err := s.sessionRepo.GetByStatus(ctx, status)
	if err != nil {
		return nil, err
	}

	return s.populateTrainees(ctx, sessions)
}

func (s *SessionService) populateTrainees(ctx context.Context, sessions []*model.Session) ([]*model.Session, error) {
	for _, session := range sessions {
		trainees, err := s.sessionRepo.GetTrainees(ctx, session.ID)
		if err != nil {
			return nil, err
		}
		session.Trainees = trainees
	}

	return sessions, nil
}

// SessionUpdate — частичное обновление: применяются только присланные поля.
// Присланный список TraineeIDs полностью заменяет состав.
type SessionUpdate struct {
	Title           *string
	Description     *string
	TrainerID       *int64
	ScheduledDate   *time.Time
	DurationMinutes *int
	Status          *model.SessionStatus
	ClassLink       *string
	TraineeIDs      []int64 // nil — состав не трогаем, пустой список — очищаем
}

// Update применяет частичное обновление сессии
func (s *SessionService) Update(ctx context.Context, id int64, upd SessionUpdate) (*model.Session, error) {
	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrNotFound
	}

	if upd.Title != nil {
		session.Title = *upd.Title
	}
	if upd.Description != nil {
		session.Description = *upd.Description
	}
	if upd.TrainerID != nil {
		session.TrainerID = *upd.TrainerID
	}
	if upd.ScheduledDate != nil {
		session.ScheduledDate = *upd.ScheduledDate
	}
	if upd.DurationMinutes != nil {
		session.DurationMinutes = *upd.DurationMinutes
	}
	if upd.Status != nil {
		if !upd.Status.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, *upd.Status)
		}
		session.Status = *upd.Status
	}
	if upd.ClassLink != nil {
		session.ClassLink = *upd.ClassLink
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.sessionRepo.Update(ctx, tx, session); err != nil {
		return nil, err
	}

	if upd.TraineeIDs != nil {
		if err := s.sessionRepo.ReplaceRoster(ctx, tx, session.ID, upd.TraineeIDs); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	session.Trainees, err = s.sessionRepo.GetTrainees(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Session updated", zap.Int64("session_id", session.ID))

	s.publisher.Broadcast(ws.NewSessionUpdated(session))

	return session, nil
}

// AddTrainee добавляет ученика в состав. Повторное добавление — no-op,
// сигнализируется возвращаемым флагом.
func (s *SessionService) AddTrainee(ctx context.Context, sessionID, traineeID int64) (bool, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return false, err
	}
	if session == nil {
		return false, ErrNotFound
	}

	trainee, err := s.userRepo.GetByID(ctx, traineeID)
	if err != nil {
		return false, err
	}
	if trainee == nil || trainee.Role != model.RoleTrainee {
		return false, fmt.Errorf("%w: invalid trainee", ErrValidation)
	}

	added, err := s.sessionRepo.AddTrainee(ctx, sessionID, traineeID)
	if err != nil {
		return false, err
	}

	if added {
		s.logger.Info("Trainee added to session",
			zap.Int64("session_id", sessionID),
			zap.Int64("trainee_id", traineeID),
		)
		s.publisher.Broadcast(ws.NewTraineeAdded(sessionID, traineeID, session.UpdatedAt))
	}

	return added, nil
}

// RemoveTrainee удаляет ученика из состава. Если его там не было — ErrNotFound.
func (s *SessionService) RemoveTrainee(ctx context.Context, sessionID, traineeID int64) error {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return err
	}
	if session == nil {
		return ErrNotFound
	}

	removed, err := s.sessionRepo.RemoveTrainee(ctx, sessionID, traineeID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotFound
	}

	s.logger.Info("Trainee removed from session",
		zap.Int64("session_id", sessionID),
		zap.Int64("trainee_id", traineeID),
	)

	s.publisher.Broadcast(ws.NewTraineeRemoved(sessionID, traineeID, session.UpdatedAt))

	return nil
}

// Delete удаляет сессию вместе с составом и посещаемостью
func (s *SessionService) Delete(ctx context.Context, id int64) (bool, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.sessionRepo.DeleteRoster(ctx, tx, id); err != nil {
		return false, err
	}
	if err := s.attendanceRepo.DeleteBySession(ctx, tx, id); err != nil {
		return false, err
	}

	deleted, err := s.sessionRepo.Delete(ctx, tx, id)
	if err != nil {
		return false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit transaction: %w", err)
	}

	if deleted {
		s.logger.Info("Session deleted", zap.Int64("session_id", id))
		s.publisher.Broadcast(ws.NewSessionDeleted(id))
	}

	return deleted, nil
}

// CountByStatus подсчитывает сессии по статусам
func (s *SessionService) CountByStatus(ctx context.Context) (map[string]int, error) {
	return s.sessionRepo.CountByStatus(ctx)
}
