package model

import "time"

// Role is a user's global role. Authorization is an exact match per route;
// there is no inheritance between roles.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return true
	}
	return false
}

// User represents an account. StudentID is assigned only when Role is
// student, sequential per year (S-<year>-<NNNN>).
type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	StudentID    *string   `json:"student_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile is the sanitized view of a user returned by the API. It never
// carries the password hash.
type Profile struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Role      Role    `json:"role"`
	StudentID *string `json:"student_id"`
}

// Profile returns the sanitized view of u.
func (u *User) Profile() Profile {
	return Profile{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		StudentID: u.StudentID,
	}
}

// LoginRequest is the payload for authentication.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=255"`
}

// LoginResponse is returned after successful login.
type LoginResponse struct {
	User  Profile `json:"user"`
	Token string  `json:"token"`
}

// CreateUserRequest is the admin payload for creating an account.
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=255"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=255"`
	Role     Role   `json:"role" binding:"required,oneof=admin teacher student"`
}

// UpdateUserRequest is the admin payload for updating an account. Empty
// fields are left unchanged.
type UpdateUserRequest struct {
	Name  string `json:"name" binding:"omitempty,min=2,max=255"`
	Email string `json:"email" binding:"omitempty,email,max=255"`
	Role  Role   `json:"role" binding:"omitempty,oneof=admin teacher student"`
}
