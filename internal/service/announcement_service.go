package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/sekolahdigital/lms-backend/internal/model"
	"github.com/sekolahdigital/lms-backend/internal/repository"
)

// ErrInvalidWindow rejects announcements whose end does not follow their start.
var ErrInvalidWindow = errors.New("end_at must be after start_at")

type AnnouncementService struct {
	repo *repository.AnnouncementRepository
}

func NewAnnouncementService(repo *repository.AnnouncementRepository) *AnnouncementService {
	return &AnnouncementService{repo: repo}
}

// ListActive returns announcements currently inside their visibility window.
func (s *AnnouncementService) ListActive(ctx context.Context) ([]model.Announcement, error) {
	out, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.Announcement{}
	}
	return out, nil
}

func (s *AnnouncementService) Create(ctx context.Context, req *model.CreateAnnouncementRequest) (*model.Announcement, error) {
	if !req.EndAt.After(req.StartAt) {
		return nil, ErrInvalidWindow
	}

	a := &model.Announcement{
		Title:   req.Title,
		Body:    req.Body,
		StartAt: req.StartAt,
		EndAt:   req.EndAt,
		Type:    req.Type,
		Meta:    req.Meta,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AnnouncementService) Update(ctx context.Context, id int, req *model.UpdateAnnouncementRequest) (*model.Announcement, error) {
	a, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		a.Title = req.Title
	}
	if req.Body != "" {
		a.Body = req.Body
	}
	if req.StartAt != nil {
		a.StartAt = *req.StartAt
	}
	if req.EndAt != nil {
		a.EndAt = *req.EndAt
	}
	if req.Type != "" {
		a.Type = req.Type
	}
	if req.Meta != nil {
		a.Meta = req.Meta
	}

	if !a.EndAt.After(a.StartAt) {
		return nil, ErrInvalidWindow
	}

	if err := s.repo.Update(ctx, a); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (s *AnnouncementService) Delete(ctx context.Context, id int) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
