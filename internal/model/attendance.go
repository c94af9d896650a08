package model

import "time"

// AttendanceStatus is the recorded state for one user/class/day.
type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "present"
	StatusAbsent  AttendanceStatus = "absent"
	StatusLate    AttendanceStatus = "late"
)

// Attendance is one recorded day. Days with no row are implicitly absent;
// one row per (user, class, date), upserted on check-in.
type Attendance struct {
	ID        int              `json:"id"`
	UserID    int              `json:"user_id"`
	ClassID   int              `json:"class_id"`
	Date      time.Time        `json:"date"`
	Status    AttendanceStatus `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// CheckinRequest is the payload for self check-in.
type CheckinRequest struct {
	ClassID int `json:"class_id" binding:"required"`
}

// AttendanceStats summarizes a user's own attendance history. late counts
// toward Total but not Present.
type AttendanceStats struct {
	Total          int     `json:"total"`
	Present        int     `json:"present"`
	Absent         int     `json:"absent"`
	Late           int     `json:"late"`
	AttendanceRate float64 `json:"attendance_rate"`
}
