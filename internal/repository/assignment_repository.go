package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sekolahdigital/lms-backend/internal/model"
)

type AssignmentRepository struct {
	pool *pgxpool.Pool
}

func NewAssignmentRepository(pool *pgxpool.Pool) *AssignmentRepository {
	return &AssignmentRepository{pool: pool}
}

func (r *AssignmentRepository) Create(ctx context.Context, a *model.Assignment) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO assignments (teacher_id, class_id, subject_id, title, description, file_path, due_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at`,
		a.TeacherID, a.ClassID, a.SubjectID, a.Title, a.Description, a.FilePath, a.DueDate,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func (r *AssignmentRepository) GetByID(ctx context.Context, id int) (*model.Assignment, error) {
	var a model.Assignment
	err := r.pool.QueryRow(ctx,
		`SELECT id, teacher_id, class_id, subject_id, title, description, file_path, due_date, created_at, updated_at
		 FROM assignments WHERE id = $1`, id,
	).Scan(&a.ID, &a.TeacherID, &a.ClassID, &a.SubjectID, &a.Title, &a.Description, &a.FilePath, &a.DueDate, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListByClass returns a class's assignments newest due date first, with the
// posting teacher's name joined in.
func (r *AssignmentRepository) ListByClass(ctx context.Context, classID int) ([]model.AssignmentWithTeacher, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT a.id, a.teacher_id, a.class_id, a.subject_id, a.title, a.description,
		        a.file_path, a.due_date, a.created_at, a.updated_at, u.name
		 FROM assignments a
		 JOIN users u ON u.id = a.teacher_id
		 WHERE a.class_id = $1
		 ORDER BY a.due_date DESC`, classID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []model.AssignmentWithTeacher
	for rows.Next() {
		var a model.AssignmentWithTeacher
		if err := rows.Scan(&a.ID, &a.TeacherID, &a.ClassID, &a.SubjectID, &a.Title, &a.Description,
			&a.FilePath, &a.DueDate, &a.CreatedAt, &a.UpdatedAt, &a.TeacherName); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}
