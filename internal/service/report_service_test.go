package service

import (
	"testing"
	"time"

	"github.com/sekolahdigital/lms-backend/internal/model"
	"github.com/sekolahdigital/lms-backend/internal/repository"
)

func TestRound2(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{80, 80},
		{66.666666, 66.67},
		{33.333333, 33.33},
		{79.995, 80},
		{100, 100},
	}
	for _, tc := range cases {
		if got := Round2(tc.in); got != tc.want {
			t.Errorf("Round2(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestSummarizeAttendance(t *testing.T) {
	rows := make([]model.Attendance, 0, 10)
	for i := 0; i < 8; i++ {
		rows = append(rows, model.Attendance{Status: model.StatusPresent})
	}
	rows = append(rows, model.Attendance{Status: model.StatusAbsent})
	rows = append(rows, model.Attendance{Status: model.StatusLate})

	stats := SummarizeAttendance(rows)
	if stats.Total != 10 || stats.Present != 8 || stats.Absent != 1 || stats.Late != 1 {
		t.Fatalf("stats = %+v", stats)
	}
	// Late counts toward total but not present.
	if stats.AttendanceRate != 80.00 {
		t.Errorf("rate = %v, want 80.00", stats.AttendanceRate)
	}
}

func TestSummarizeAttendanceEmpty(t *testing.T) {
	stats := SummarizeAttendance(nil)
	if stats.Total != 0 || stats.AttendanceRate != 0 {
		t.Errorf("empty stats = %+v", stats)
	}
}

func TestGroupGrades(t *testing.T) {
	day := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	details := []repository.GradeRowDetail{
		{UserID: 1, StudentName: "Budi", Assignment: "Essay", Score: 80, GradedAt: day},
		{UserID: 1, StudentName: "Budi", Assignment: "Quiz", Score: 70, GradedAt: day.AddDate(0, 0, 7)},
		{UserID: 2, StudentName: "Siti", Assignment: "Essay", Score: 95, GradedAt: day},
	}

	rows := GroupGrades(details)
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}

	byName := map[string]model.GradeReportRow{}
	for _, r := range rows {
		byName[r.StudentName] = r
	}

	budi := byName["Budi"]
	if budi.TotalAssignments != 2 || budi.AverageGrade != 75 {
		t.Errorf("Budi row = %+v", budi)
	}
	if len(budi.Grades) != 2 || budi.Grades[0].Assignment != "Essay" {
		t.Errorf("Budi grades = %+v", budi.Grades)
	}

	siti := byName["Siti"]
	if siti.TotalAssignments != 1 || siti.AverageGrade != 95 {
		t.Errorf("Siti row = %+v", siti)
	}
}

func TestGroupGradesEmpty(t *testing.T) {
	rows := GroupGrades(nil)
	if len(rows) != 0 {
		t.Errorf("rows = %d, want 0", len(rows))
	}
}
