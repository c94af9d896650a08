package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sekolahdigital/lms-backend/internal/model"
)

type AttendanceRepository struct {
	pool *pgxpool.Pool
}

func NewAttendanceRepository(pool *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{pool: pool}
}

// UpsertCheckin records status for (user, class, date). Checking in twice
// the same day updates the existing row; the unique constraint prevents
// duplicates even when two check-ins race.
func (r *AttendanceRepository) UpsertCheckin(ctx context.Context, a *model.Attendance) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO attendances (user_id, class_id, date, status)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id, class_id, date) DO UPDATE
		   SET status = EXCLUDED.status,
		       updated_at = NOW()
		 RETURNING id, created_at, updated_at`,
		a.UserID, a.ClassID, a.Date, a.Status,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

// ListByUser returns a user's rows newest first.
func (r *AttendanceRepository) ListByUser(ctx context.Context, userID int) ([]model.Attendance, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, class_id, date, status, created_at, updated_at
		 FROM attendances WHERE user_id = $1 ORDER BY date DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attendances []model.Attendance
	for rows.Next() {
		var a model.Attendance
		if err := rows.Scan(&a.ID, &a.UserID, &a.ClassID, &a.Date, &a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		attendances = append(attendances, a)
	}
	return attendances, rows.Err()
}

// ClassExists reports whether a class row exists, for check-in validation.
func (r *AttendanceRepository) ClassExists(ctx context.Context, classID int) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM classes WHERE id = $1)`, classID).Scan(&exists)
	return exists, err
}

// ExportRow is one attendance line of the admin CSV export.
type ExportRow struct {
	ID          int
	StudentName string
	Date        time.Time
	Status      model.AttendanceStatus
}

// ListAllWithUser returns every attendance row joined to the user's name,
// in insertion order, for CSV export.
func (r *AttendanceRepository) ListAllWithUser(ctx context.Context) ([]ExportRow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT a.id, u.name, a.date, a.status
		 FROM attendances a
		 JOIN users u ON u.id = a.user_id
		 ORDER BY a.id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ExportRow
	for rows.Next() {
		var e ExportRow
		if err := rows.Scan(&e.ID, &e.StudentName, &e.Date, &e.Status); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
