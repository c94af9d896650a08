package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sekolahdigital/lms-backend/internal/model"
)

type ClassRepository struct {
	pool *pgxpool.Pool
}

func NewClassRepository(pool *pgxpool.Pool) *ClassRepository {
	return &ClassRepository{pool: pool}
}

func (r *ClassRepository) Create(ctx context.Context, c *model.Class) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO classes (name, teacher, year) VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		c.Name, c.Teacher, c.Year).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *ClassRepository) GetByID(ctx context.Context, id int) (*model.Class, error) {
	var c model.Class
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, teacher, year, created_at, updated_at FROM classes WHERE id = $1`,
		id).Scan(&c.ID, &c.Name, &c.Teacher, &c.Year, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetAllWithSubjects returns every class with the names of its associated
// subjects, for the admin list view.
func (r *ClassRepository) GetAllWithSubjects(ctx context.Context) ([]model.ClassWithSubjects, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT c.id, c.name, c.teacher, c.year, c.created_at, c.updated_at,
		        COALESCE(ARRAY_AGG(s.name ORDER BY s.name) FILTER (WHERE s.id IS NOT NULL), '{}')
		 FROM classes c
		 LEFT JOIN class_subject cs ON cs.class_id = c.id
		 LEFT JOIN subjects s ON s.id = cs.subject_id
		 GROUP BY c.id
		 ORDER BY c.id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var classes []model.ClassWithSubjects
	for rows.Next() {
		var c model.ClassWithSubjects
		if err := rows.Scan(&c.ID, &c.Name, &c.Teacher, &c.Year, &c.CreatedAt, &c.UpdatedAt, &c.Subjects); err != nil {
			return nil, err
		}
		c.SubjectsCount = len(c.Subjects)
		classes = append(classes, c)
	}
	return classes, rows.Err()
}

func (r *ClassRepository) GetAll(ctx context.Context) ([]model.Class, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, teacher, year, created_at, updated_at FROM classes ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var classes []model.Class
	for rows.Next() {
		var c model.Class
		if err := rows.Scan(&c.ID, &c.Name, &c.Teacher, &c.Year, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}

func (r *ClassRepository) Update(ctx context.Context, c *model.Class) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE classes SET name = $1, teacher = $2, year = $3, updated_at = NOW() WHERE id = $4`,
		c.Name, c.Teacher, c.Year, c.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes a class. Attendance, assignments, and memberships cascade
// at the schema level.
func (r *ClassRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM classes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// AddMember enrolls a user into a class with a role-in-class tag.
// Re-enrolling updates the tag.
func (r *ClassRepository) AddMember(ctx context.Context, m *model.ClassMember) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO class_user (class_id, user_id, role_in_class)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (class_id, user_id) DO UPDATE SET role_in_class = EXCLUDED.role_in_class`,
		m.ClassID, m.UserID, m.RoleInClass)
	return err
}

// AddSubject associates a subject with a class (idempotent).
func (r *ClassRepository) AddSubject(ctx context.Context, classID, subjectID int) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO class_subject (class_id, subject_id) VALUES ($1, $2)
		 ON CONFLICT DO NOTHING`,
		classID, subjectID)
	return err
}
