package model

import "time"

// AttendanceReportRow is one student's aggregate in the admin attendance
// report. Rate is present/total as a percentage rounded to 2 decimals,
// 0 when the student has no records.
type AttendanceReportRow struct {
	UserID       int     `json:"user_id"`
	StudentName  string  `json:"student_name"`
	TotalRecords int     `json:"total_records"`
	Present      int     `json:"present"`
	Rate         float64 `json:"rate"`
}

// AttendanceReportFilter narrows the attendance report. Zero values mean
// no restriction.
type AttendanceReportFilter struct {
	ClassID int
	From    time.Time
	To      time.Time
}

// GradeDetail is one graded assignment inside a grade report row.
type GradeDetail struct {
	Assignment string `json:"assignment"`
	Grade      int    `json:"grade"`
	Date       string `json:"date"`
}

// GradeReportRow is one student's aggregate in the admin grade report.
type GradeReportRow struct {
	UserID           int           `json:"user_id"`
	StudentName      string        `json:"student_name"`
	TotalAssignments int           `json:"total_assignments"`
	AverageGrade     float64       `json:"average_grade"`
	Grades           []GradeDetail `json:"grades"`
}

// DashboardStats is the admin dashboard counters block.
type DashboardStats struct {
	TotalUsers    int `json:"total_users"`
	TotalClasses  int `json:"total_classes"`
	TotalStudents int `json:"total_students"`
	TotalTeachers int `json:"total_teachers"`
}

// ClassAttendanceRow is one student's aggregate in the per-class
// attendance analytics.
type ClassAttendanceRow struct {
	StudentName string  `json:"student_name"`
	Total       int     `json:"total"`
	Present     int     `json:"present"`
	Rate        float64 `json:"rate"`
}
