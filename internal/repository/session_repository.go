package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Yasheenyash33/StacklyHub-main-main/internal/model"
	"github.com/Yasheenyash33/StacklyHub-main-main/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SessionRepository struct {
	pool *pgxpool.Pool
}

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

const sessionColumns = `id, title, COALESCE(description, ''), trainer_id, scheduled_date, duration_minutes, status, COALESCE(class_link, ''), session_link, created_at, updated_at`

func scanSession(row pgx.Row) (*model.Session, error) {
	var s model.Session
	err := row.Scan(
		&s.ID,
		&s.Title,
		&s.Description,
		&s.TrainerID,
		&s.ScheduledDate,
		&s.DurationMinutes,
		&s.Status,
		&s.ClassLink,
		&s.SessionLink,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create создаёт сессию. Принимает Querier: строка сессии и её состав
// записываются в одной транзакции.
func (r *SessionRepository) Create(ctx context.Context, db base.Querier, s *model.Session) error {
	query := `
		INSERT INTO sessions (title, description, trainer_id, scheduled_date, duration_minutes, status, class_link, session_link)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := db.QueryRow(
		ctx, query,
		s.Title,
		s.Description,
		s.TrainerID,
		s.ScheduledDate,
		s.DurationMinutes,
		s.Status,
		s.ClassLink,
		s.SessionLink,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	return nil
}

// GetByID получает сессию по ID
func (r *SessionRepository) GetByID(ctx context.Context, id int64) (*model.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = $1`

	s, err := scanSession(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Сессия не найдена
		}
		return nil, fmt.Errorf("get session by id: %w", err)
	}

	return s, nil
}

// GetByLink получает сессию по уникальному токену ссылки
func (r *SessionRepository) GetByLink(ctx context.Context, link string) (*model.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE session_link = $1`

	s, err := scanSession(r.pool.QueryRow(ctx, query, link))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session by link: %w", err)
	}

	return s, nil
}

// List получает сессии постранично
func (r *SessionRepository) List(ctx context.Context, skip, limit int) ([]*model.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions ORDER BY id OFFSET $1 LIMIT $2`

	rows, err := r.pool.Query(ctx, query, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	return collectSessions(rows)
}

// GetByTrainer получает сессии тренера
func (r *SessionRepository) GetByTrainer(ctx context.Context, trainerID int64) ([]*model.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE trainer_id = $1 ORDER BY scheduled_date`

	rows, err := r.pool.Query(ctx, query, trainerID)
	if err != nil {
		return nil, fmt.Errorf("get sessions by trainer: %w", err)
	}
	defer rows.Close()

	return collectSessions(rows)
}

// GetByTrainee получает сессии, в состав которых входит ученик
func (r *SessionRepository) GetByTrainee(ctx context.Context, traineeID int64) ([]*model.Session, error) {
	query := `
		SELECT s.id, s.title, COALESCE(s.description, ''), s.trainer_id, s.scheduled_date, s.duration_minutes, s.status, COALESCE(s.class_link, ''), s.session_link, s.created_at, s.updated_at
		FROM sessions s
		JOIN session_trainees st ON st.session_id = s.id
		WHERE st.trainee_id = $1
		ORDER BY s.scheduled_date
	`

	rows, err := r.pool.Query(ctx, query, traineeID)
	if err != nil {
		return nil, fmt.Errorf("get sessions by trainee: %w", err)
	}
	defer rows.Close()

	return collectSessions(rows)
}

// GetByStatus получает сессии с указанным статусом
func (r *SessionRepository) GetByStatus(ctx context.Context, status model.SessionStatus) ([]*model.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE status = $1 ORDER BY scheduled_date`

	rows, err := r.pool.Query(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("get sessions by status: %w", err)
	}
	defer rows.Close()

	return collectSessions(rows)
}

// GetIDsByTrainer получает ID всех сессий тренера.
// Используется при каскадном удалении пользователя.
func (r *SessionRepository) GetIDsByTrainer(ctx context.Context, db base.Querier, trainerID int64) ([]int64, error) {
	rows, err := db.Query(ctx, `SELECT id FROM sessions WHERE trainer_id = $1`, trainerID)
	if err != nil {
		return nil, fmt.Errorf("get session ids by trainer: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan session id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate session ids: %w", err)
	}

	return ids, nil
}

// Update записывает все поля сессии. Частичное обновление собирает
// сервис: читает строку, накладывает присланные поля и пишет целиком.
func (r *SessionRepository) Update(ctx context.Context, db base.Querier, s *model.Session) error {
	query := `
		UPDATE sessions
		SET title = $2, description = $3, trainer_id = $4, scheduled_date = $5,
		    duration_minutes = $6, status = $7, class_link = $8, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`

	err := db.QueryRow(
		ctx, query,
		s.ID,
		s.Title,
		s.Description,
		s.TrainerID,
		s.ScheduledDate,
		s.DurationMinutes,
		s.Status,
		s.ClassLink,
	).Scan(&s.UpdatedAt)

	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}

	return nil
}

// Delete удаляет сессию. Состав и посещаемость должны быть удалены раньше
// в той же транзакции.
func (r *SessionRepository) Delete(ctx context.Context, db base.Querier, id int64) (bool, error) {
	result, err := db.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete session: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// ============ Состав сессии ============

// AddTrainee добавляет ученика в состав. Возвращает false, если он уже там.
func (r *SessionRepository) AddTrainee(ctx context.Context, sessionID, traineeID int64) (bool, error) {
	query := `
		INSERT INTO session_trainees (session_id, trainee_id)
		VALUES ($1, $2)
		ON CONFLICT (session_id, trainee_id) DO NOTHING
	`

	result, err := r.pool.Exec(ctx, query, sessionID, traineeID)
	if err != nil {
		return false, fmt.Errorf("add trainee to session: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// RemoveTrainee удаляет ученика из состава. Возвращает false, если его не было.
func (r *SessionRepository) RemoveTrainee(ctx context.Context, sessionID, traineeID int64) (bool, error) {
	query := `DELETE FROM session_trainees WHERE session_id = $1 AND trainee_id = $2`

	result, err := r.pool.Exec(ctx, query, sessionID, traineeID)
	if err != nil {
		return false, fmt.Errorf("remove trainee from session: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// GetTrainees получает учеников в составе сессии
func (r *SessionRepository) GetTrainees(ctx context.Context, sessionID int64) ([]*model.User, error) {
	query := `
		SELECT u.id, u.username, u.email, u.password_hash, u.role, u.first_name, u.last_name, u.is_temporary_password, u.created_at, u.updated_at
		FROM session_trainees st
		JOIN users u ON u.id = st.trainee_id
		WHERE st.session_id = $1
		ORDER BY st.added_at
	`

	rows, err := r.pool.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session trainees: %w", err)
	}
	defer rows.Close()

	users, err := collectUsers(rows)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []*model.User{}
	}

	return users, nil
}

// InsertRoster записывает состав пакетом в рамках переданной транзакции
func (r *SessionRepository) InsertRoster(ctx context.Context, db base.Querier, sessionID int64, traineeIDs []int64) error {
	for _, traineeID := range traineeIDs {
		query := `
			INSERT INTO session_trainees (session_id, trainee_id)
			VALUES ($1, $2)
			ON CONFLICT (session_id, trainee_id) DO NOTHING
		`
		if _, err := db.Exec(ctx, query, sessionID, traineeID); err != nil {
			return fmt.Errorf("insert roster row: %w", err)
		}
	}

	return nil
}

// ReplaceRoster полностью заменяет состав сессии: сначала удаляет все
// строки, затем вставляет присланный список. Не diff и не merge.
func (r *SessionRepository) ReplaceRoster(ctx context.Context, db base.Querier, sessionID int64, traineeIDs []int64) error {
	if err := r.DeleteRoster(ctx, db, sessionID); err != nil {
		return err
	}

	return r.InsertRoster(ctx, db, sessionID, traineeIDs)
}

// DeleteRoster удаляет весь состав сессии
func (r *SessionRepository) DeleteRoster(ctx context.Context, db base.Querier, sessionID int64) error {
	_, err := db.Exec(ctx, `DELETE FROM session_trainees WHERE session_id = $1`, sessionID)
	if err != nil {
		return fmt.Errorf("delete roster: %w", err)
	}

	return nil
}

// DeleteRosterByTrainee удаляет ученика из составов всех сессий.
// Используется при каскадном удалении пользователя.
func (r *SessionRepository) DeleteRosterByTrainee(ctx context.Context, db base.Querier, traineeID int64) error {
	_, err := db.Exec(ctx, `DELETE FROM session_trainees WHERE trainee_id = $1`, traineeID)
	if err != nil {
		return fmt.Errorf("delete roster by trainee: %w", err)
	}

	return nil
}

// CountRosterByTrainee подсчитывает, в скольких сессиях состоит ученик
func (r *SessionRepository) CountRosterByTrainee(ctx context.Context, traineeID int64) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM session_trainees WHERE trainee_id = $1`, traineeID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count roster by trainee: %w", err)
	}

	return count, nil
}

// TrainerTraineeStats считает сессии тренера, в состав которых входит
// ученик, и дату создания последней из них.
func (r *SessionRepository) TrainerTraineeStats(ctx context.Context, trainerID, traineeID int64) (int, *time.Time, error) {
	query := `
		SELECT COUNT(s.id), MAX(s.created_at)
		FROM sessions s
		JOIN session_trainees st ON st.session_id = s.id
		WHERE s.trainer_id = $1 AND st.trainee_id = $2
	`

	var count int
	var lastCreated *time.Time
	err := r.pool.QueryRow(ctx, query, trainerID, traineeID).Scan(&count, &lastCreated)
	if err != nil {
		return 0, nil, fmt.Errorf("trainer trainee stats: %w", err)
	}

	return count, lastCreated, nil
}

// CountByStatus подсчитывает сессии по статусам
func (r *SessionRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	query := `SELECT status, COUNT(*) FROM sessions GROUP BY status`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("count sessions by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		counts[status] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate status counts: %w", err)
	}

	return counts, nil
}

func collectSessions(rows pgx.Rows) ([]*model.Session, error) {
	var sessions []*model.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}

	return sessions, nil
}
