package model

import "time"

// RoleInClass tags a user's membership in a class, independent of the
// user's global role (a teacher can be enrolled as a student elsewhere).
type RoleInClass string

const (
	InClassTeacher RoleInClass = "teacher"
	InClassStudent RoleInClass = "student"
)

// Class represents a classroom. Teacher is a display label, not a foreign
// key; actual teaching membership lives in the class_user join table.
type Class struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Teacher   string    `json:"teacher"`
	Year      int       `json:"year"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ClassWithSubjects is the admin list view of a class.
type ClassWithSubjects struct {
	Class
	SubjectsCount int      `json:"subjects_count"`
	Subjects      []string `json:"subjects"`
}

// ClassMember is a row of the class_user join table.
type ClassMember struct {
	ClassID     int         `json:"class_id"`
	UserID      int         `json:"user_id"`
	RoleInClass RoleInClass `json:"role_in_class"`
}

// CreateClassRequest is the payload for creating a class.
type CreateClassRequest struct {
	Name    string `json:"name" binding:"required,max=255"`
	Teacher string `json:"teacher" binding:"required,max=255"`
	Year    int    `json:"year" binding:"omitempty,min=2000,max=2100"`
}

// UpdateClassRequest is the payload for updating a class. Empty fields are
// left unchanged.
type UpdateClassRequest struct {
	Name    string `json:"name" binding:"omitempty,max=255"`
	Teacher string `json:"teacher" binding:"omitempty,max=255"`
	Year    int    `json:"year" binding:"omitempty,min=2000,max=2100"`
}
