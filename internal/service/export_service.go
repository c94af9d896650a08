package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"strconv"

	"github.com/sekolahdigital/lms-backend/internal/model"
	"github.com/sekolahdigital/lms-backend/internal/repository"
)

// UserLister and friends are the read slices the exporter needs.
type UserLister interface {
	GetAll(ctx context.Context) ([]model.User, error)
}

type ClassLister interface {
	GetAll(ctx context.Context) ([]model.Class, error)
}

type AttendanceExportLister interface {
	ListAllWithUser(ctx context.Context) ([]repository.ExportRow, error)
}

type GradeExportLister interface {
	GradeExportRows(ctx context.Context) ([]repository.GradeExportRow, error)
}

// ExportService renders the admin CSV downloads: a fixed header row then
// one row per record in query order. Fields pass through encoding/csv, so
// embedded commas and quotes are escaped correctly.
type ExportService struct {
	users       UserLister
	classes     ClassLister
	attendances AttendanceExportLister
	grades      GradeExportLister
}

func NewExportService(users UserLister, classes ClassLister, attendances AttendanceExportLister, grades GradeExportLister) *ExportService {
	return &ExportService{users: users, classes: classes, attendances: attendances, grades: grades}
}

func (s *ExportService) Users(ctx context.Context) ([]byte, error) {
	users, err := s.users.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	records := [][]string{{"ID", "Name", "Email", "Role", "Student ID"}}
	for _, u := range users {
		sid := ""
		if u.StudentID != nil {
			sid = *u.StudentID
		}
		records = append(records, []string{
			strconv.Itoa(u.ID), u.Name, u.Email, string(u.Role), sid,
		})
	}
	return writeCSV(records)
}

func (s *ExportService) Classes(ctx context.Context) ([]byte, error) {
	classes, err := s.classes.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	records := [][]string{{"ID", "Name", "Teacher"}}
	for _, c := range classes {
		records = append(records, []string{strconv.Itoa(c.ID), c.Name, c.Teacher})
	}
	return writeCSV(records)
}

func (s *ExportService) Attendance(ctx context.Context) ([]byte, error) {
	rows, err := s.attendances.ListAllWithUser(ctx)
	if err != nil {
		return nil, err
	}

	records := [][]string{{"ID", "Student Name", "Date", "Status"}}
	for _, r := range rows {
		records = append(records, []string{
			strconv.Itoa(r.ID), r.StudentName, r.Date.Format("2006-01-02"), string(r.Status),
		})
	}
	return writeCSV(records)
}

func (s *ExportService) Grades(ctx context.Context) ([]byte, error) {
	rows, err := s.grades.GradeExportRows(ctx)
	if err != nil {
		return nil, err
	}

	records := [][]string{{"ID", "Student Name", "Assignment", "Grade", "Date"}}
	for _, r := range rows {
		records = append(records, []string{
			strconv.Itoa(r.ID), r.StudentName, r.Assignment,
			strconv.Itoa(r.Grade), r.GradedAt.Format("2006-01-02"),
		})
	}
	return writeCSV(records)
}

func writeCSV(records [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
