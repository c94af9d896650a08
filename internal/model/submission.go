package model

import "time"

// Submission is a student's handed-in work for an assignment. One row per
// (assignment, student); resubmission overwrites the file and timestamp.
// Score and Feedback are set by grading and mirrored into a Grade row.
type Submission struct {
	ID           int        `json:"id"`
	AssignmentID int        `json:"assignment_id"`
	StudentID    int        `json:"student_id"`
	FilePath     string     `json:"file_path"`
	SubmittedAt  time.Time  `json:"submitted_at"`
	Score        *int       `json:"score"`
	Feedback     *string    `json:"feedback"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Grade mirrors a graded submission's score for reporting. Exactly one row
// per submission, upserted on every (re)grade.
type Grade struct {
	ID           int       `json:"id"`
	SubmissionID int       `json:"submission_id"`
	Score        int       `json:"score"`
	GradedBy     int       `json:"graded_by"`
	GradedAt     time.Time `json:"graded_at"`
}

// GradeRequest is the payload for grading a submission. Score is a pointer
// so that a legitimate 0 passes the required check.
type GradeRequest struct {
	Score    *int    `json:"score" binding:"required,min=0,max=100"`
	Feedback *string `json:"feedback" binding:"omitempty,max=2000"`
}

// StudentScore is one entry of the per-student score analytics.
type StudentScore struct {
	Assignment  string    `json:"assignment"`
	Score       *int      `json:"score"`
	SubmittedAt time.Time `json:"submitted_at"`
}
