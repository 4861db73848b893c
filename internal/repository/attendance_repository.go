package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Yasheenyash33/StacklyHub-main-main/internal/model"
	"github.com/Yasheenyash33/StacklyHub-main-main/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AttendanceRepository struct {
	pool *pgxpool.Pool
}

func NewAttendanceRepository(pool *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{pool: pool}
}

// Mark отмечает посещаемость по паре (сессия, ученик). Upsert: повторная
// отметка перезаписывает present и marked_at, дубликат не создаётся.
// Гонки параллельных отметок разрешает уникальное ограничение БД.
func (r *AttendanceRepository) Mark(ctx context.Context, sessionID, traineeID int64, present bool) (*model.Attendance, error) {
	query := `
		INSERT INTO attendance (session_id, trainee_id, present, marked_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (session_id, trainee_id)
		DO UPDATE SET present = EXCLUDED.present, marked_at = EXCLUDED.marked_at
		RETURNING id, session_id, trainee_id, present, marked_at
	`

	var a model.Attendance
	err := r.pool.QueryRow(ctx, query, sessionID, traineeID, present).Scan(
		&a.ID,
		&a.SessionID,
		&a.TraineeID,
		&a.Present,
		&a.MarkedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("mark attendance: %w", err)
	}

	return &a, nil
}

// GetBySession получает все отметки сессии
func (r *AttendanceRepository) GetBySession(ctx context.Context, sessionID int64) ([]*model.Attendance, error) {
	query := `
		SELECT id, session_id, trainee_id, present, marked_at
		FROM attendance
		WHERE session_id = $1
		ORDER BY marked_at
	`

	rows, err := r.pool.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get attendance by session: %w", err)
	}
	defer rows.Close()

	var records []*model.Attendance
	for rows.Next() {
		var a model.Attendance
		err := rows.Scan(&a.ID, &a.SessionID, &a.TraineeID, &a.Present, &a.MarkedAt)
		if err != nil {
			return nil, fmt.Errorf("scan attendance: %w", err)
		}
		records = append(records, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attendance: %w", err)
	}

	return records, nil
}

// CountPresentByTrainee подсчитывает отметки present=true по ученику
// во всех сессиях, без привязки к текущему составу.
func (r *AttendanceRepository) CountPresentByTrainee(ctx context.Context, traineeID int64) (int, error) {
	query := `SELECT COUNT(*) FROM attendance WHERE trainee_id = $1 AND present = TRUE`

	var count int
	err := r.pool.QueryRow(ctx, query, traineeID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count present by trainee: %w", err)
	}

	return count, nil
}

// LastMarkedForTrainer получает время последней отметки ученика
// в сессиях конкретного тренера
func (r *AttendanceRepository) LastMarkedForTrainer(ctx context.Context, trainerID, traineeID int64) (*time.Time, error) {
	query := `
		SELECT MAX(a.marked_at)
		FROM attendance a
		JOIN sessions s ON s.id = a.session_id
		WHERE s.trainer_id = $1 AND a.trainee_id = $2
	`

	var lastMarked *time.Time
	err := r.pool.QueryRow(ctx, query, trainerID, traineeID).Scan(&lastMarked)
	if err != nil {
		return nil, fmt.Errorf("last marked for trainer: %w", err)
	}

	return lastMarked, nil
}

// Delete удаляет отметку. Возвращает false, если отметки не было.
func (r *AttendanceRepository) Delete(ctx context.Context, sessionID, traineeID int64) (bool, error) {
	query := `DELETE FROM attendance WHERE session_id = $1 AND trainee_id = $2`

	result, err := r.pool.Exec(ctx, query, sessionID, traineeID)
	if err != nil {
		return false, fmt.Errorf("delete attendance: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// DeleteBySession удаляет все отметки сессии в рамках переданной транзакции
func (r *AttendanceRepository) DeleteBySession(ctx context.Context, db base.Querier, sessionID int64) error {
	_, err := db.Exec(ctx, `DELETE FROM attendance WHERE session_id = $1`, sessionID)
	if err != nil {
		return fmt.Errorf("delete attendance by session: %w", err)
	}

	return nil
}

// DeleteByTrainee удаляет все отметки ученика.
// Используется при каскадном удалении пользователя.
func (r *AttendanceRepository) DeleteByTrainee(ctx context.Context, db base.Querier, traineeID int64) error {
	_, err := db.Exec(ctx, `DELETE FROM attendance WHERE trainee_id = $1`, traineeID)
	if err != nil {
		return fmt.Errorf("delete attendance by trainee: %w", err)
	}

	return nil
}
