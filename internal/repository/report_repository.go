package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sekolahdigital/lms-backend/internal/model"
)

// ReportRepository handles the read-side aggregation queries. These are
// synchronous, unpaginated reads sized for a single school's data.
type ReportRepository struct {
	pool *pgxpool.Pool
}

func NewReportRepository(pool *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{pool: pool}
}

// AttendanceReport groups matching attendance rows per user and counts
// totals and presents. Rate is computed by the service layer.
func (r *ReportRepository) AttendanceReport(ctx context.Context, f model.AttendanceReportFilter) ([]model.AttendanceReportRow, error) {
	query := `
		SELECT a.user_id, u.name,
		       COUNT(*),
		       COUNT(*) FILTER (WHERE a.status = 'present')
		FROM attendances a
		JOIN users u ON u.id = a.user_id
		WHERE ($1 = 0 OR a.class_id = $1)
		  AND ($2::date IS NULL OR a.date >= $2)
		  AND ($3::date IS NULL OR a.date <= $3)
		GROUP BY a.user_id, u.name
		ORDER BY u.name ASC`

	var from, to *time.Time
	if !f.From.IsZero() {
		from = &f.From
	}
	if !f.To.IsZero() {
		to = &f.To
	}

	rows, err := r.pool.Query(ctx, query, f.ClassID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var report []model.AttendanceReportRow
	for rows.Next() {
		var row model.AttendanceReportRow
		if err := rows.Scan(&row.UserID, &row.StudentName, &row.TotalRecords, &row.Present); err != nil {
			return nil, err
		}
		report = append(report, row)
	}
	return report, rows.Err()
}

// ClassAttendance aggregates one class's attendance per student.
func (r *ReportRepository) ClassAttendance(ctx context.Context, classID int) ([]model.ClassAttendanceRow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT u.name,
		        COUNT(*),
		        COUNT(*) FILTER (WHERE a.status = 'present')
		 FROM attendances a
		 JOIN users u ON u.id = a.user_id
		 WHERE a.class_id = $1
		 GROUP BY a.user_id, u.name
		 ORDER BY u.name ASC`, classID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var report []model.ClassAttendanceRow
	for rows.Next() {
		var row model.ClassAttendanceRow
		if err := rows.Scan(&row.StudentName, &row.Total, &row.Present); err != nil {
			return nil, err
		}
		report = append(report, row)
	}
	return report, rows.Err()
}

// GradeRowDetail is one grade joined to its student and assignment.
type GradeRowDetail struct {
	UserID      int
	StudentName string
	Assignment  string
	Score       int
	GradedAt    time.Time
}

// GradeRows returns every grade with student and assignment context, in a
// stable per-student order. The service groups and averages them.
func (r *ReportRepository) GradeRows(ctx context.Context) ([]GradeRowDetail, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT s.student_id, u.name, a.title, g.score, g.graded_at
		 FROM grades g
		 JOIN submissions s ON s.id = g.submission_id
		 JOIN assignments a ON a.id = s.assignment_id
		 JOIN users u ON u.id = s.student_id
		 ORDER BY u.name ASC, g.graded_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []GradeRowDetail
	for rows.Next() {
		var d GradeRowDetail
		if err := rows.Scan(&d.UserID, &d.StudentName, &d.Assignment, &d.Score, &d.GradedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// GradeExportRow is one line of the admin grades CSV.
type GradeExportRow struct {
	ID          int
	StudentName string
	Assignment  string
	Grade       int
	GradedAt    time.Time
}

// GradeExportRows returns every grade in insertion order for CSV export.
func (r *ReportRepository) GradeExportRows(ctx context.Context) ([]GradeExportRow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT g.id, u.name, a.title, g.score, g.graded_at
		 FROM grades g
		 JOIN submissions s ON s.id = g.submission_id
		 JOIN assignments a ON a.id = s.assignment_id
		 JOIN users u ON u.id = s.student_id
		 ORDER BY g.id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []GradeExportRow
	for rows.Next() {
		var e GradeExportRow
		if err := rows.Scan(&e.ID, &e.StudentName, &e.Assignment, &e.Grade, &e.GradedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// DashboardStats retrieves the admin dashboard counters in one round trip.
func (r *ReportRepository) DashboardStats(ctx context.Context) (*model.DashboardStats, error) {
	var s model.DashboardStats
	err := r.pool.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM classes),
			(SELECT COUNT(*) FROM users WHERE role = 'student'),
			(SELECT COUNT(*) FROM users WHERE role = 'teacher')`,
	).Scan(&s.TotalUsers, &s.TotalClasses, &s.TotalStudents, &s.TotalTeachers)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
