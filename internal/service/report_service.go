package service

import (
	"context"
	"errors"
	"math"

	"github.com/jackc/pgx/v5"
	"github.com/sekolahdigital/lms-backend/internal/model"
	"github.com/sekolahdigital/lms-backend/internal/repository"
)

// Round2 rounds to 2 decimal places, the precision of every rate and
// average the API reports.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// ReportStore is the aggregation slice of the persistence layer.
type ReportStore interface {
	AttendanceReport(ctx context.Context, f model.AttendanceReportFilter) ([]model.AttendanceReportRow, error)
	ClassAttendance(ctx context.Context, classID int) ([]model.ClassAttendanceRow, error)
	GradeRows(ctx context.Context) ([]repository.GradeRowDetail, error)
	DashboardStats(ctx context.Context) (*model.DashboardStats, error)
}

// StudentScoreStore is the per-student analytics slice.
type StudentScoreStore interface {
	ListByStudent(ctx context.Context, studentID int) ([]model.StudentScore, error)
	AverageScore(ctx context.Context, studentID int) (float64, error)
}

// ReportService implements the read-side aggregation endpoints. No
// caching: every call is a fresh query, acceptable at single-school size.
type ReportService struct {
	reports  ReportStore
	scores   StudentScoreStore
	userRepo *repository.UserRepository
}

func NewReportService(reports ReportStore, scores StudentScoreStore, userRepo *repository.UserRepository) *ReportService {
	return &ReportService{reports: reports, scores: scores, userRepo: userRepo}
}

// AttendanceReport aggregates attendance per student under the filter.
func (s *ReportService) AttendanceReport(ctx context.Context, f model.AttendanceReportFilter) ([]model.AttendanceReportRow, error) {
	rows, err := s.reports.AttendanceReport(ctx, f)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		if rows[i].TotalRecords > 0 {
			rows[i].Rate = Round2(float64(rows[i].Present) / float64(rows[i].TotalRecords) * 100)
		}
	}
	if rows == nil {
		rows = []model.AttendanceReportRow{}
	}
	return rows, nil
}

// ClassAttendance aggregates one class's attendance per student.
func (s *ReportService) ClassAttendance(ctx context.Context, classID int) ([]model.ClassAttendanceRow, error) {
	rows, err := s.reports.ClassAttendance(ctx, classID)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		if rows[i].Total > 0 {
			rows[i].Rate = Round2(float64(rows[i].Present) / float64(rows[i].Total) * 100)
		}
	}
	if rows == nil {
		rows = []model.ClassAttendanceRow{}
	}
	return rows, nil
}

// GradeReport groups every grade by student and averages the scores.
func (s *ReportService) GradeReport(ctx context.Context) ([]model.GradeReportRow, error) {
	details, err := s.reports.GradeRows(ctx)
	if err != nil {
		return nil, err
	}
	return GroupGrades(details), nil
}

// GroupGrades folds per-grade rows into per-student report rows. Input is
// expected pre-sorted by student; averages round to 2 decimals.
func GroupGrades(details []repository.GradeRowDetail) []model.GradeReportRow {
	report := []model.GradeReportRow{}
	index := map[int]int{} // user id → position in report

	for _, d := range details {
		pos, ok := index[d.UserID]
		if !ok {
			pos = len(report)
			index[d.UserID] = pos
			report = append(report, model.GradeReportRow{
				UserID:      d.UserID,
				StudentName: d.StudentName,
			})
		}
		report[pos].Grades = append(report[pos].Grades, model.GradeDetail{
			Assignment: d.Assignment,
			Grade:      d.Score,
			Date:       d.GradedAt.Format("2006-01-02"),
		})
	}

	for i := range report {
		total := len(report[i].Grades)
		report[i].TotalAssignments = total
		if total == 0 {
			continue
		}
		sum := 0
		for _, g := range report[i].Grades {
			sum += g.Grade
		}
		report[i].AverageGrade = Round2(float64(sum) / float64(total))
	}
	return report
}

// StudentScores returns one student's submissions with the average of the
// graded ones (0 when none are graded).
func (s *ReportService) StudentScores(ctx context.Context, studentID int) (*model.User, []model.StudentScore, float64, error) {
	student, err := s.userRepo.GetByID(ctx, studentID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, 0, ErrNotFound
	}
	if err != nil {
		return nil, nil, 0, err
	}
	if student.Role != model.RoleStudent {
		return nil, nil, 0, ErrNotStudent
	}

	scores, err := s.scores.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, nil, 0, err
	}
	if scores == nil {
		scores = []model.StudentScore{}
	}

	avg, err := s.scores.AverageScore(ctx, studentID)
	if err != nil {
		return nil, nil, 0, err
	}
	return student, scores, Round2(avg), nil
}

// DashboardStats returns the admin dashboard counters.
func (s *ReportService) DashboardStats(ctx context.Context) (*model.DashboardStats, error) {
	return s.reports.DashboardStats(ctx)
}

// ErrNotStudent rejects score analytics for non-student users.
var ErrNotStudent = errors.New("user is not a student")
