package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/sekolahdigital/lms-backend/internal/model"
)

// AttendanceStore is the slice of the attendance repository the check-in
// flow needs.
type AttendanceStore interface {
	UpsertCheckin(ctx context.Context, a *model.Attendance) error
	ListByUser(ctx context.Context, userID int) ([]model.Attendance, error)
	ClassExists(ctx context.Context, classID int) (bool, error)
}

// AttendanceService implements self check-in and the personal history
// view. Absent is never written by check-in; it is the implicit default
// for days with no row, or an explicit admin-entered status.
type AttendanceService struct {
	store AttendanceStore
	log   zerolog.Logger
}

func NewAttendanceService(store AttendanceStore, log zerolog.Logger) *AttendanceService {
	return &AttendanceService{
		store: store,
		log:   log.With().Str("component", "attendance_service").Logger(),
	}
}

// Checkin upserts today's row for (user, class) with status present.
// Calling it again the same day is idempotent.
func (s *AttendanceService) Checkin(ctx context.Context, userID, classID int) (*model.Attendance, error) {
	exists, err := s.store.ClassExists(ctx, classID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound
	}

	now := time.Now()
	a := &model.Attendance{
		UserID:  userID,
		ClassID: classID,
		Date:    time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		Status:  model.StatusPresent,
	}
	if err := s.store.UpsertCheckin(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// MyAttendance returns a user's rows newest first plus summary stats.
func (s *AttendanceService) MyAttendance(ctx context.Context, userID int) ([]model.Attendance, *model.AttendanceStats, error) {
	rows, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return rows, SummarizeAttendance(rows), nil
}

// SummarizeAttendance computes the stats block over a set of rows. The
// rate is present/total as a percentage rounded to 2 decimals, 0 when
// there are no rows.
func SummarizeAttendance(rows []model.Attendance) *model.AttendanceStats {
	stats := &model.AttendanceStats{Total: len(rows)}
	for _, r := range rows {
		switch r.Status {
		case model.StatusPresent:
			stats.Present++
		case model.StatusAbsent:
			stats.Absent++
		case model.StatusLate:
			stats.Late++
		}
	}
	if stats.Total > 0 {
		stats.AttendanceRate = Round2(float64(stats.Present) / float64(stats.Total) * 100)
	}
	return stats
}
