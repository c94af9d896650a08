package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sekolahdigital/lms-backend/internal/model"
	"github.com/sekolahdigital/lms-backend/internal/repository"
)

type fakeUserLister struct{ users []model.User }

func (f *fakeUserLister) GetAll(context.Context) ([]model.User, error) { return f.users, nil }

type fakeClassLister struct{ classes []model.Class }

func (f *fakeClassLister) GetAll(context.Context) ([]model.Class, error) { return f.classes, nil }

type fakeAttendanceLister struct{ rows []repository.ExportRow }

func (f *fakeAttendanceLister) ListAllWithUser(context.Context) ([]repository.ExportRow, error) {
	return f.rows, nil
}

type fakeGradeLister struct{ rows []repository.GradeExportRow }

func (f *fakeGradeLister) GradeExportRows(context.Context) ([]repository.GradeExportRow, error) {
	return f.rows, nil
}

func TestExportUsersCSV(t *testing.T) {
	sid := "S-2026-0001"
	svc := NewExportService(&fakeUserLister{users: []model.User{
		{ID: 1, Name: "Admin Sekolah", Email: "admin@sekolah.test", Role: model.RoleAdmin},
		{ID: 2, Name: "Budi Santoso", Email: "budi@sekolah.test", Role: model.RoleStudent, StudentID: &sid},
	}}, nil, nil, nil)

	out, err := svc.Users(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(lines))
	}
	if lines[0] != "ID,Name,Email,Role,Student ID" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[2] != "2,Budi Santoso,budi@sekolah.test,student,S-2026-0001" {
		t.Errorf("student row = %q", lines[2])
	}
}

// TestExportQuotesEmbeddedDelimiters covers the values that would break a
// naive join: commas and double quotes inside names.
func TestExportQuotesEmbeddedDelimiters(t *testing.T) {
	svc := NewExportService(&fakeUserLister{users: []model.User{
		{ID: 1, Name: `Budi "The Comma" Santoso, Jr.`, Email: "budi@sekolah.test", Role: model.RoleStudent},
	}}, nil, nil, nil)

	out, err := svc.Users(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	want := `1,"Budi ""The Comma"" Santoso, Jr.",budi@sekolah.test,student,`
	if lines[1] != want {
		t.Errorf("row = %q, want %q", lines[1], want)
	}
}

func TestExportAttendanceCSV(t *testing.T) {
	svc := NewExportService(nil, nil, &fakeAttendanceLister{rows: []repository.ExportRow{
		{ID: 5, StudentName: "Siti Aminah", Date: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), Status: model.StatusPresent},
	}}, nil)

	out, err := svc.Attendance(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if lines[0] != "ID,Student Name,Date,Status" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "5,Siti Aminah,2026-03-02,present" {
		t.Errorf("row = %q", lines[1])
	}
}

func TestExportGradesCSV(t *testing.T) {
	svc := NewExportService(nil, nil, nil, &fakeGradeLister{rows: []repository.GradeExportRow{
		{ID: 9, StudentName: "Budi Santoso", Assignment: "Essay", Grade: 85, GradedAt: time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC)},
	}})

	out, err := svc.Grades(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if lines[0] != "ID,Student Name,Assignment,Grade,Date" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "9,Budi Santoso,Essay,85,2026-03-03" {
		t.Errorf("row = %q", lines[1])
	}
}
