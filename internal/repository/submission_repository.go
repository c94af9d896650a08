package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sekolahdigital/lms-backend/internal/model"
)

type SubmissionRepository struct {
	pool *pgxpool.Pool
}

func NewSubmissionRepository(pool *pgxpool.Pool) *SubmissionRepository {
	return &SubmissionRepository{pool: pool}
}

// Upsert records a submission keyed by (assignment_id, student_id).
// Resubmitting overwrites the file and timestamp but keeps any existing
// score and feedback; the unique constraint guarantees a single row even
// under concurrent submits.
func (r *SubmissionRepository) Upsert(ctx context.Context, s *model.Submission) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO submissions (assignment_id, student_id, file_path, submitted_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (assignment_id, student_id) DO UPDATE
		   SET file_path = EXCLUDED.file_path,
		       submitted_at = EXCLUDED.submitted_at,
		       updated_at = NOW()
		 RETURNING id, score, feedback, created_at, updated_at`,
		s.AssignmentID, s.StudentID, s.FilePath, s.SubmittedAt,
	).Scan(&s.ID, &s.Score, &s.Feedback, &s.CreatedAt, &s.UpdatedAt)
}

func (r *SubmissionRepository) GetByID(ctx context.Context, id int) (*model.Submission, error) {
	var s model.Submission
	err := r.pool.QueryRow(ctx,
		`SELECT id, assignment_id, student_id, file_path, submitted_at, score, feedback, created_at, updated_at
		 FROM submissions WHERE id = $1`, id,
	).Scan(&s.ID, &s.AssignmentID, &s.StudentID, &s.FilePath, &s.SubmittedAt, &s.Score, &s.Feedback, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// SetGrade writes the score and feedback on the submission and mirrors
// them into the grades table (one row per submission, upserted) in a
// single transaction. The denormalization keeps reporting reads simple.
func (r *SubmissionRepository) SetGrade(ctx context.Context, submissionID, score int, feedback *string, gradedBy int, gradedAt time.Time) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`UPDATE submissions SET score = $1, feedback = $2, updated_at = NOW() WHERE id = $3`,
		score, feedback, submissionID)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO grades (submission_id, score, graded_by, graded_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (submission_id) DO UPDATE
		   SET score = EXCLUDED.score,
		       graded_by = EXCLUDED.graded_by,
		       graded_at = EXCLUDED.graded_at`,
		submissionID, score, gradedBy, gradedAt)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// ListByStudent returns a student's submissions with assignment titles,
// for the score analytics view.
func (r *SubmissionRepository) ListByStudent(ctx context.Context, studentID int) ([]model.StudentScore, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT a.title, s.score, s.submitted_at
		 FROM submissions s
		 JOIN assignments a ON a.id = s.assignment_id
		 WHERE s.student_id = $1
		 ORDER BY s.submitted_at DESC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scores []model.StudentScore
	for rows.Next() {
		var sc model.StudentScore
		if err := rows.Scan(&sc.Assignment, &sc.Score, &sc.SubmittedAt); err != nil {
			return nil, err
		}
		scores = append(scores, sc)
	}
	return scores, rows.Err()
}

// AverageScore returns the mean of a student's non-null scores, or 0 when
// none are graded yet.
func (r *SubmissionRepository) AverageScore(ctx context.Context, studentID int) (float64, error) {
	var avg float64
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(AVG(score), 0) FROM submissions WHERE student_id = $1 AND score IS NOT NULL`,
		studentID).Scan(&avg)
	return avg, err
}
