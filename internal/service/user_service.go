package service

import (
	"context"
	"fmt"

	"github.com/Yasheenyash33/StacklyHub-main-main/internal/auth"
	"github.com/Yasheenyash33/StacklyHub-main-main/internal/model"
	"github.com/Yasheenyash33/StacklyHub-main-main/internal/repository"
	"github.com/Yasheenyash33/StacklyHub-main-main/internal/ws"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type UserService struct {
	pool           *pgxpool.Pool
	userRepo       *repository.UserRepository
	logRepo        *repository.PasswordLogRepository
	assignmentRepo *repository.AssignmentRepository
	sessionRepo    *repository.SessionRepository
	attendanceRepo *repository.AttendanceRepository
	passwordLength int
	publisher      Publisher
	logger         *zap.Logger
}

func NewUserService(
	pool *pgxpool.Pool,
	userRepo *repository.UserRepository,
	logRepo *repository.PasswordLogRepository,
	assignmentRepo *repository.AssignmentRepository,
	sessionRepo *repository.SessionRepository,
	attendanceRepo *repository.AttendanceRepository,
	passwordLength int,
	publisher Publisher,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		pool:           pool,
		userRepo:       userRepo,
		logRepo:        logRepo,
		assignmentRepo: assignmentRepo,
		sessionRepo:    sessionRepo,
		attendanceRepo: attendanceRepo,
		passwordLength: passwordLength,
		publisher:      publisher,
		logger:         logger,
	}
}

// CreateUserSpec — данные для создания учётной записи. Пароль не принимается:
// временный пароль всегда генерирует система.
type CreateUserSpec struct {
	Username  string
	Email     string
	Role      model.UserRole
	FirstName string
	LastName  string
}

// Create создаёт учётную запись с временным паролем. Возвращает пользователя
// и открытый текст пароля — он отдаётся вызывающему ровно один раз.
func (s *UserService) Create(ctx context.Context, spec CreateUserSpec, performedBy int64) (*model.User, string, error) {
	if !spec.Role.Valid() {
		return nil, "", fmt.Errorf("%w: unknown role %q", ErrValidation, spec.Role)
	}

	// Конфликты имени и почты проверяются до вставки
	existing, err := s.userRepo.GetByUsername(ctx, spec.Username)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", fmt.Errorf("%w: username already registered", ErrConflict)
	}

	existing, err = s.userRepo.GetByEmail(ctx, spec.Email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", fmt.Errorf("%w: email already registered", ErrConflict)
	}

	temporaryPassword, err := GeneratePassword(s.passwordLength)
	if err != nil {
		return nil, "", err
	}

	hash, err := auth.HashPassword(temporaryPassword)
	if err != nil {
		return nil, "", err
	}

	user := &model.User{
		Username:            spec.Username,
		Email:               spec.Email,
		PasswordHash:        hash,
		Role:                spec.Role,
		FirstName:           spec.FirstName,
		LastName:            spec.LastName,
		IsTemporaryPassword: true,
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.userRepo.Create(ctx, tx, user); err != nil {
		return nil, "", err
	}

	// Каждая мутация учётных данных пишет ровно одну запись аудита
	logEntry := &model.PasswordChangeLog{
		UserID:      user.ID,
		Action:      model.PasswordActionCreated,
		PerformedBy: &performedBy,
		Details:     "User account created",
	}
	if err := s.logRepo.Insert(ctx, tx, logEntry); err != nil {
		return nil, "", err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, "", fmt.Errorf("commit transaction: %w", err)
	}

	s.logger.Info("User created",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)),
	)

	s.publisher.Broadcast(ws.NewUserCreated(user))

	return user, temporaryPassword, nil
}

// GetByID получает пользователя по ID
func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetByUsername получает пользователя по имени учётной записи
func (s *UserService) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.userRepo.GetByUsername(ctx, username)
}

// List получает пользователей постранично
func (s *UserService) List(ctx context.Context, skip, limit int) ([]*model.User, error) {
	return s.userRepo.List(ctx, skip, limit)
}

// GetByRole получает пользователей с указанной ролью
func (s *UserService) GetByRole(ctx context.Context, role model.UserRole) ([]*model.User, error) {
	return s.userRepo.GetByRole(ctx, role)
}

// UserUpdate — частичное обновление профиля: применяются только непустые поля.
type UserUpdate struct {
	Username  *string
	Email     *string
	Role      *model.UserRole
	FirstName *string
	LastName  *string
	Password  *string
}

// Update применяет частичное обновление профиля
func (s *UserService) Update(ctx context.Context, id int64, upd UserUpdate) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	if upd.Username != nil {
		user.Username = *upd.Username
	}
	if upd.Email != nil {
		user.Email = *upd.Email
	}
	if upd.Role != nil {
		if !upd.Role.Valid() {
			return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, *upd.Role)
		}
		user.Role = *upd.Role
	}
	if upd.FirstName != nil {
		user.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		user.LastName = *upd.LastName
	}
	if upd.Password != nil {
		hash, err := auth.HashPassword(*upd.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User updated", zap.Int64("user_id", user.ID), zap.String("username", user.Username))

	s.publisher.Broadcast(ws.NewUserUpdated(user))

	return user, nil
}

// Authenticate проверяет учётные данные: сначала по имени, затем по email.
// При несовпадении возвращает nil без ошибки.
func (s *UserService) Authenticate(ctx context.Context, identifier, password string) (*model.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if user == nil {
		user, err = s.userRepo.GetByEmail(ctx, identifier)
		if err != nil {
			return nil, err
		}
	}
	if user == nil {
		return nil, nil
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, nil
	}

	return user, nil
}

// ChangePassword меняет пароль и снимает флаг временного пароля
func (s *UserService) ChangePassword(ctx context.Context, userID int64, newPassword string, performedBy int64) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	details := "Password changed by admin"
	if performedBy == userID {
		details = "Password changed by self"
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.userRepo.UpdatePassword(ctx, tx, userID, hash, false); err != nil {
		return err
	}

	logEntry := &model.PasswordChangeLog{
		UserID:      userID,
		Action:      model.PasswordActionChanged,
		PerformedBy: &performedBy,
		Details:     details,
	}
	if err := s.logRepo.Insert(ctx, tx, logEntry); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	s.logger.Info("Password changed", zap.Int64("user_id", userID), zap.Int64("performed_by", performedBy))

	s.publisher.Broadcast(ws.NewPasswordChanged(user))

	return nil
}

// ResetPassword сбрасывает пароль и снова помечает его временным,
// принуждая к смене при следующем входе. Право вызова (только админ)
// проверяет вызывающий слой.
func (s *UserService) ResetPassword(ctx context.Context, userID int64, newPassword string, performedBy int64) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.userRepo.UpdatePassword(ctx, tx, userID, hash, true); err != nil {
		return err
	}

	logEntry := &model.PasswordChangeLog{
		UserID:      userID,
		Action:      model.PasswordActionReset,
		PerformedBy: &performedBy,
		Details:     "Password reset by admin",
	}
	if err := s.logRepo.Insert(ctx, tx, logEntry); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	s.logger.Warn("Password reset broadcast includes the new plaintext password",
		zap.Int64("user_id", userID),
		zap.Int64("performed_by", performedBy),
	)

	s.publisher.Broadcast(ws.NewPasswordReset(user, performedBy, newPassword))

	return nil
}

// Delete каскадно удаляет пользователя: журнал, закрепления, составы,
// посещаемость и сессии, где он тренер, затем сама учётная запись.
// Порядок важен: зависимые строки удаляются раньше родительских.
func (s *UserService) Delete(ctx context.Context, userID int64) (bool, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.logRepo.DeleteByUser(ctx, tx, userID); err != nil {
		return false, err
	}
	if err := s.assignmentRepo.DeleteByUser(ctx, tx, userID); err != nil {
		return false, err
	}
	if err := s.sessionRepo.DeleteRosterByTrainee(ctx, tx, userID); err != nil {
		return false, err
	}
	if err := s.attendanceRepo.DeleteByTrainee(ctx, tx, userID); err != nil {
		return false, err
	}

	// Сессии, где пользователь — тренер, уходят вместе со своими
	// составами и отметками
	sessionIDs, err := s.sessionRepo.GetIDsByTrainer(ctx, tx, userID)
	if err != nil {
		return false, err
	}
	for _, sessionID := range sessionIDs {
		if err := s.sessionRepo.DeleteRoster(ctx, tx, sessionID); err != nil {
			return false, err
		}
		if err := s.attendanceRepo.DeleteBySession(ctx, tx, sessionID); err != nil {
			return false, err
		}
		if _, err := s.sessionRepo.Delete(ctx, tx, sessionID); err != nil {
			return false, err
		}
	}

	deleted, err := s.userRepo.Delete(ctx, tx, userID)
	if err != nil {
		return false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit transaction: %w", err)
	}

	if deleted {
		s.logger.Info("User deleted",
			zap.Int64("user_id", userID),
			zap.Int("cascaded_sessions", len(sessionIDs)),
		)
		s.publisher.Broadcast(ws.NewUserDeleted(userID))
	}

	return deleted, nil
}

// PasswordLogs получает журнал смены паролей пользователя
func (s *UserService) PasswordLogs(ctx context.Context, userID int64) ([]*model.PasswordChangeLog, error) {
	return s.logRepo.ListByUser(ctx, userID)
}

// CountByRole подсчитывает пользователей по ролям
func (s *UserService) CountByRole(ctx context.Context) (map[string]int, error) {
	return s.userRepo.CountByRole(ctx)
}
