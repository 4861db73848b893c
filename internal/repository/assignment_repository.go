package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Yasheenyash33/StacklyHub-main-main/internal/model"
	"github.com/Yasheenyash33/StacklyHub-main-main/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AssignmentRepository struct {
	pool *pgxpool.Pool
}

func NewAssignmentRepository(pool *pgxpool.Pool) *AssignmentRepository {
	return &AssignmentRepository{pool: pool}
}

// Assign закрепляет ученика за тренером. Идемпотентно: если связь уже есть,
// возвращается существующая запись без ошибки.
func (r *AssignmentRepository) Assign(ctx context.Context, studentID, teacherID int64) (*model.AssignedStudent, error) {
	query := `
		INSERT INTO assigned_students (student_id, teacher_id)
		VALUES ($1, $2)
		ON CONFLICT (student_id, teacher_id) DO NOTHING
		RETURNING id, assigned_date
	`

	assignment := &model.AssignedStudent{StudentID: studentID, TeacherID: teacherID}
	err := r.pool.QueryRow(ctx, query, studentID, teacherID).Scan(&assignment.ID, &assignment.AssignedDate)
	if err == nil {
		return assignment, nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("assign student: %w", err)
	}

	// Конфликт: связь уже существует, читаем её
	existing, err := r.GetByPair(ctx, studentID, teacherID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		// Гонка с параллельным unassign
		return nil, fmt.Errorf("assign student: assignment vanished after conflict")
	}

	return existing, nil
}

// Unassign удаляет связь. Возвращает false, если связи не было.
func (r *AssignmentRepository) Unassign(ctx context.Context, studentID, teacherID int64) (bool, error) {
	query := `DELETE FROM assigned_students WHERE student_id = $1 AND teacher_id = $2`

	result, err := r.pool.Exec(ctx, query, studentID, teacherID)
	if err != nil {
		return false, fmt.Errorf("unassign student: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// GetByPair получает связь по паре (ученик, тренер)
func (r *AssignmentRepository) GetByPair(ctx context.Context, studentID, teacherID int64) (*model.AssignedStudent, error) {
	query := `
		SELECT id, student_id, teacher_id, assigned_date
		FROM assigned_students
		WHERE student_id = $1 AND teacher_id = $2
	`

	var assignment model.AssignedStudent
	err := r.pool.QueryRow(ctx, query, studentID, teacherID).Scan(
		&assignment.ID,
		&assignment.StudentID,
		&assignment.TeacherID,
		&assignment.AssignedDate,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get assignment: %w", err)
	}

	return &assignment, nil
}

// List получает связи постранично вместе с данными ученика и тренера
func (r *AssignmentRepository) List(ctx context.Context, skip, limit int) ([]*model.AssignedStudent, error) {
	query := `
		SELECT a.id, a.student_id, a.teacher_id, a.assigned_date,
		       s.id, s.username, s.email, s.password_hash, s.role, s.first_name, s.last_name, s.is_temporary_password, s.created_at, s.updated_at,
		       t.id, t.username, t.email, t.password_hash, t.role, t.first_name, t.last_name, t.is_temporary_password, t.created_at, t.updated_at
		FROM assigned_students a
		JOIN users s ON s.id = a.student_id
		JOIN users t ON t.id = a.teacher_id
		ORDER BY a.id
		OFFSET $1 LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	defer rows.Close()

	var assignments []*model.AssignedStudent
	for rows.Next() {
		var a model.AssignedStudent
		var student, teacher model.User
		err := rows.Scan(
			&a.ID, &a.StudentID, &a.TeacherID, &a.AssignedDate,
			&student.ID, &student.Username, &student.Email, &student.PasswordHash, &student.Role,
			&student.FirstName, &student.LastName, &student.IsTemporaryPassword, &student.CreatedAt, &student.UpdatedAt,
			&teacher.ID, &teacher.Username, &teacher.Email, &teacher.PasswordHash, &teacher.Role,
			&teacher.FirstName, &teacher.LastName, &teacher.IsTemporaryPassword, &teacher.CreatedAt, &teacher.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		a.Student = &student
		a.Teacher = &teacher
		assignments = append(assignments, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate assignments: %w", err)
	}

	return assignments, nil
}

// GetStudentIDsByTeacher получает ID всех учеников тренера
func (r *AssignmentRepository) GetStudentIDsByTeacher(ctx context.Context, teacherID int64) ([]int64, error) {
	query := `
		SELECT student_id
		FROM assigned_students
		WHERE teacher_id = $1
		ORDER BY assigned_date DESC
	`

	rows, err := r.pool.Query(ctx, query, teacherID)
	if err != nil {
		return nil, fmt.Errorf("get teacher students: %w", err)
	}
	defer rows.Close()

	var studentIDs []int64
	for rows.Next() {
		var studentID int64
		if err := rows.Scan(&studentID); err != nil {
			return nil, fmt.Errorf("scan student id: %w", err)
		}
		studentIDs = append(studentIDs, studentID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate student ids: %w", err)
	}

	return studentIDs, nil
}

// DeleteByUser удаляет связи, где пользователь выступает любой из сторон.
// Используется только при каскадном удалении пользователя.
func (r *AssignmentRepository) DeleteByUser(ctx context.Context, db base.Querier, userID int64) error {
	_, err := db.Exec(ctx, `DELETE FROM assigned_students WHERE student_id = $1 OR teacher_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete assignments: %w", err)
	}

	return nil
}
