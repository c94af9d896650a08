package model

import "time"

// Assignment is homework posted by a teacher for a class and subject.
type Assignment struct {
	ID          int       `json:"id"`
	TeacherID   int       `json:"teacher_id"`
	ClassID     int       `json:"class_id"`
	SubjectID   int       `json:"subject_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	FilePath    *string   `json:"file_path"`
	DueDate     time.Time `json:"due_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AssignmentWithTeacher is the list view including the posting teacher.
type AssignmentWithTeacher struct {
	Assignment
	TeacherName string `json:"teacher_name"`
}

// CreateAssignmentRequest is the multipart form payload for posting an
// assignment. The attachment file, when present, is read from the form
// separately.
type CreateAssignmentRequest struct {
	SubjectID   int       `form:"subject_id" binding:"required"`
	Title       string    `form:"title" binding:"required,max=255"`
	Description string    `form:"description" binding:"omitempty"`
	DueDate     time.Time `form:"due_date" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
}
