package repository

import (
	"context"
	"fmt"

	"github.com/Yasheenyash33/StacklyHub-main-main/internal/model"
	"github.com/Yasheenyash33/StacklyHub-main-main/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PasswordLogRepository struct {
	pool *pgxpool.Pool
}

func NewPasswordLogRepository(pool *pgxpool.Pool) *PasswordLogRepository {
	return &PasswordLogRepository{pool: pool}
}

// Insert добавляет запись аудита. Журнал только пополняется,
// поэтому других мутаций здесь нет.
func (r *PasswordLogRepository) Insert(ctx context.Context, db base.Querier, log *model.PasswordChangeLog) error {
	query := `
		INSERT INTO password_change_logs (user_id, action, performed_by, details)
		VALUES ($1, $2, $3, $4)
		RETURNING id, timestamp
	`

	err := db.QueryRow(ctx, query, log.UserID, log.Action, log.PerformedBy, log.Details).
		Scan(&log.ID, &log.Timestamp)
	if err != nil {
		return fmt.Errorf("insert password log: %w", err)
	}

	return nil
}

// ListByUser получает журнал по пользователю, новые записи первыми
func (r *PasswordLogRepository) ListByUser(ctx context.Context, userID int64) ([]*model.PasswordChangeLog, error) {
	query := `
		SELECT id, user_id, action, performed_by, timestamp, COALESCE(details, '')
		FROM password_change_logs
		WHERE user_id = $1
		ORDER BY timestamp DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list password logs: %w", err)
	}
	defer rows.Close()

	var logs []*model.PasswordChangeLog
	for rows.Next() {
		var log model.PasswordChangeLog
		err := rows.Scan(&log.ID, &log.UserID, &log.Action, &log.PerformedBy, &log.Timestamp, &log.Details)
		if err != nil {
			return nil, fmt.Errorf("scan password log: %w", err)
		}
		logs = append(logs, &log)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate password logs: %w", err)
	}

	return logs, nil
}

// DeleteByUser удаляет записи, где пользователь — субъект или исполнитель.
// Используется только при каскадном удалении пользователя.
func (r *PasswordLogRepository) DeleteByUser(ctx context.Context, db base.Querier, userID int64) error {
	_, err := db.Exec(ctx, `DELETE FROM password_change_logs WHERE user_id = $1 OR performed_by = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete password logs: %w", err)
	}

	return nil
}
