package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/sekolahdigital/lms-backend/internal/model"
)

// AssignmentStore is the slice of the assignment repository the workflow
// needs; the concrete repository satisfies it, tests inject a double.
type AssignmentStore interface {
	Create(ctx context.Context, a *model.Assignment) error
	GetByID(ctx context.Context, id int) (*model.Assignment, error)
	ListByClass(ctx context.Context, classID int) ([]model.AssignmentWithTeacher, error)
}

// SubmissionStore is the submission/grade side of the workflow.
type SubmissionStore interface {
	Upsert(ctx context.Context, s *model.Submission) error
	GetByID(ctx context.Context, id int) (*model.Submission, error)
	SetGrade(ctx context.Context, submissionID, score int, feedback *string, gradedBy int, gradedAt time.Time) error
}

// AssignmentService implements the assignment → submission → grade
// workflow. Role restrictions (teacher posts and grades, student submits)
// are enforced at the route level.
type AssignmentService struct {
	assignments AssignmentStore
	submissions SubmissionStore
	log         zerolog.Logger
}

func NewAssignmentService(assignments AssignmentStore, submissions SubmissionStore, log zerolog.Logger) *AssignmentService {
	return &AssignmentService{
		assignments: assignments,
		submissions: submissions,
		log:         log.With().Str("component", "assignment_service").Logger(),
	}
}

func (s *AssignmentService) ListByClass(ctx context.Context, classID int) ([]model.AssignmentWithTeacher, error) {
	return s.assignments.ListByClass(ctx, classID)
}

// Create posts an assignment for a class. filePath is the stored
// attachment path, empty when the teacher attached nothing.
func (s *AssignmentService) Create(ctx context.Context, teacherID, classID int, req *model.CreateAssignmentRequest, filePath string) (*model.Assignment, error) {
	a := &model.Assignment{
		TeacherID:   teacherID,
		ClassID:     classID,
		SubjectID:   req.SubjectID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	}
	if filePath != "" {
		a.FilePath = &filePath
	}
	if err := s.assignments.Create(ctx, a); err != nil {
		return nil, err
	}

	s.log.Info().Int("assignment_id", a.ID).Int("class_id", classID).Msg("Assignment posted")
	return a, nil
}

// Submit records a student's submission. Resubmitting overwrites the file
// and timestamp on the existing row; the state never moves back to
// unsubmitted.
func (s *AssignmentService) Submit(ctx context.Context, assignmentID, studentID int, filePath string) (*model.Submission, error) {
	if _, err := s.assignments.GetByID(ctx, assignmentID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	sub := &model.Submission{
		AssignmentID: assignmentID,
		StudentID:    studentID,
		FilePath:     filePath,
		SubmittedAt:  time.Now(),
	}
	if err := s.submissions.Upsert(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// Grade scores a submission and mirrors the result into its grade record.
// Re-grading overwrites both in place, any number of times.
func (s *AssignmentService) Grade(ctx context.Context, submissionID, score int, feedback *string, teacherID int) (*model.Submission, error) {
	sub, err := s.submissions.GetByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.submissions.SetGrade(ctx, sub.ID, score, feedback, teacherID, time.Now()); err != nil {
		return nil, err
	}

	sub.Score = &score
	sub.Feedback = feedback

	s.log.Info().
		Int("submission_id", sub.ID).
		Int("score", score).
		Int("graded_by", teacherID).
		Msg("Submission graded")
	return sub, nil
}
