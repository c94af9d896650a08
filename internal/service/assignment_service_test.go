package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/sekolahdigital/lms-backend/internal/model"
)

type fakeAssignments struct {
	byID map[int]*model.Assignment
}

func (f *fakeAssignments) Create(_ context.Context, a *model.Assignment) error {
	a.ID = len(f.byID) + 1
	f.byID[a.ID] = a
	return nil
}

func (f *fakeAssignments) GetByID(_ context.Context, id int) (*model.Assignment, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return a, nil
}

func (f *fakeAssignments) ListByClass(_ context.Context, classID int) ([]model.AssignmentWithTeacher, error) {
	var out []model.AssignmentWithTeacher
	for _, a := range f.byID {
		if a.ClassID == classID {
			out = append(out, model.AssignmentWithTeacher{Assignment: *a})
		}
	}
	return out, nil
}

// fakeSubmissions keys rows by (assignment, student) the way the unique
// constraint does, so upsert semantics are observable.
type fakeSubmissions struct {
	rows   map[[2]int]*model.Submission
	grades map[int]*model.Grade
	nextID int
}

func newFakeSubmissions() *fakeSubmissions {
	return &fakeSubmissions{
		rows:   make(map[[2]int]*model.Submission),
		grades: make(map[int]*model.Grade),
	}
}

func (f *fakeSubmissions) Upsert(_ context.Context, s *model.Submission) error {
	key := [2]int{s.AssignmentID, s.StudentID}
	if existing, ok := f.rows[key]; ok {
		existing.FilePath = s.FilePath
		existing.SubmittedAt = s.SubmittedAt
		*s = *existing
		return nil
	}
	f.nextID++
	s.ID = f.nextID
	cp := *s
	f.rows[key] = &cp
	return nil
}

func (f *fakeSubmissions) GetByID(_ context.Context, id int) (*model.Submission, error) {
	for _, s := range f.rows {
		if s.ID == id {
			cp := *s
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeSubmissions) SetGrade(_ context.Context, submissionID, score int, feedback *string, gradedBy int, gradedAt time.Time) error {
	for _, s := range f.rows {
		if s.ID == submissionID {
			s.Score = &score
			s.Feedback = feedback
			f.grades[submissionID] = &model.Grade{
				SubmissionID: submissionID,
				Score:        score,
				GradedBy:     gradedBy,
				GradedAt:     gradedAt,
			}
			return nil
		}
	}
	return pgx.ErrNoRows
}

func workflowFixture() (*AssignmentService, *fakeAssignments, *fakeSubmissions) {
	assignments := &fakeAssignments{byID: make(map[int]*model.Assignment)}
	submissions := newFakeSubmissions()
	return NewAssignmentService(assignments, submissions, zerolog.Nop()), assignments, submissions
}

func TestSubmitUnknownAssignment(t *testing.T) {
	svc, _, _ := workflowFixture()

	_, err := svc.Submit(context.Background(), 99, 1, "/uploads/submissions/a.pdf")
	if err != ErrNotFound {
		t.Fatalf("Submit() error = %v, want ErrNotFound", err)
	}
}

func TestResubmitOverwritesRow(t *testing.T) {
	svc, _, subs := workflowFixture()
	ctx := context.Background()

	a, err := svc.Create(ctx, 10, 1, &model.CreateAssignmentRequest{
		SubjectID: 1,
		Title:     "Essay",
		DueDate:   time.Now().Add(24 * time.Hour),
	}, "")
	if err != nil {
		t.Fatal(err)
	}

	first, err := svc.Submit(ctx, a.ID, 7, "/uploads/submissions/v1.pdf")
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.Submit(ctx, a.ID, 7, "/uploads/submissions/v2.pdf")
	if err != nil {
		t.Fatal(err)
	}

	if second.ID != first.ID {
		t.Errorf("resubmit created new row: ids %d and %d", first.ID, second.ID)
	}
	if len(subs.rows) != 1 {
		t.Errorf("rows = %d, want 1", len(subs.rows))
	}
	if second.FilePath != "/uploads/submissions/v2.pdf" {
		t.Errorf("file_path = %s, want overwritten", second.FilePath)
	}
}

func TestGradeMirrorsAndOverwrites(t *testing.T) {
	svc, _, subs := workflowFixture()
	ctx := context.Background()

	a, err := svc.Create(ctx, 10, 1, &model.CreateAssignmentRequest{
		SubjectID: 1,
		Title:     "Quiz",
		DueDate:   time.Now().Add(24 * time.Hour),
	}, "")
	if err != nil {
		t.Fatal(err)
	}
	sub, err := svc.Submit(ctx, a.ID, 7, "/uploads/submissions/quiz.pdf")
	if err != nil {
		t.Fatal(err)
	}

	feedback := "good work"
	graded, err := svc.Grade(ctx, sub.ID, 85, &feedback, 10)
	if err != nil {
		t.Fatal(err)
	}
	if graded.Score == nil || *graded.Score != 85 {
		t.Fatalf("score = %v, want 85", graded.Score)
	}

	g := subs.grades[sub.ID]
	if g == nil {
		t.Fatal("no grade row mirrored")
	}
	if g.Score != 85 || g.GradedBy != 10 {
		t.Errorf("grade row = %+v", g)
	}

	// Re-grade overwrites in place.
	if _, err := svc.Grade(ctx, sub.ID, 40, nil, 10); err != nil {
		t.Fatal(err)
	}
	if len(subs.grades) != 1 {
		t.Errorf("grade rows = %d, want 1", len(subs.grades))
	}
	if subs.grades[sub.ID].Score != 40 {
		t.Errorf("re-graded score = %d, want 40", subs.grades[sub.ID].Score)
	}
}

func TestGradeUnknownSubmission(t *testing.T) {
	svc, _, _ := workflowFixture()

	_, err := svc.Grade(context.Background(), 404, 50, nil, 10)
	if err != ErrNotFound {
		t.Fatalf("Grade() error = %v, want ErrNotFound", err)
	}
}

// TestGradeZeroScore verifies 0 is a legitimate grade.
func TestGradeZeroScore(t *testing.T) {
	svc, _, subs := workflowFixture()
	ctx := context.Background()

	a, _ := svc.Create(ctx, 10, 1, &model.CreateAssignmentRequest{
		SubjectID: 1,
		Title:     "Test",
		DueDate:   time.Now().Add(time.Hour),
	}, "")
	sub, _ := svc.Submit(ctx, a.ID, 7, "/uploads/submissions/x.pdf")

	graded, err := svc.Grade(ctx, sub.ID, 0, nil, 10)
	if err != nil {
		t.Fatal(err)
	}
	if graded.Score == nil || *graded.Score != 0 {
		t.Errorf("score = %v, want 0", graded.Score)
	}
	if subs.grades[sub.ID].Score != 0 {
		t.Errorf("mirrored score = %d, want 0", subs.grades[sub.ID].Score)
	}
}
