package model

import (
	"encoding/json"
	"time"
)

// Announcement is a school-wide notice, visible only while the current
// time falls within [StartAt, EndAt].
type Announcement struct {
	ID        int             `json:"id"`
	Title     string          `json:"title"`
	Body      string          `json:"body"`
	StartAt   time.Time       `json:"start_at"`
	EndAt     time.Time       `json:"end_at"`
	Type      string          `json:"type"`
	Meta      json.RawMessage `json:"meta,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CreateAnnouncementRequest is the payload for posting an announcement.
// Handlers additionally verify end_at > start_at.
type CreateAnnouncementRequest struct {
	Title   string          `json:"title" binding:"required,max=255"`
	Body    string          `json:"body" binding:"required"`
	StartAt time.Time       `json:"start_at" binding:"required"`
	EndAt   time.Time       `json:"end_at" binding:"required"`
	Type    string          `json:"type" binding:"required,max=50"`
	Meta    json.RawMessage `json:"meta" binding:"omitempty"`
}

// UpdateAnnouncementRequest is the payload for updating an announcement.
type UpdateAnnouncementRequest struct {
	Title   string          `json:"title" binding:"omitempty,max=255"`
	Body    string          `json:"body" binding:"omitempty"`
	StartAt *time.Time      `json:"start_at" binding:"omitempty"`
	EndAt   *time.Time      `json:"end_at" binding:"omitempty"`
	Type    string          `json:"type" binding:"omitempty,max=50"`
	Meta    json.RawMessage `json:"meta" binding:"omitempty"`
}
