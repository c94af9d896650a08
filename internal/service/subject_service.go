package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/sekolahdigital/lms-backend/internal/model"
	"github.com/sekolahdigital/lms-backend/internal/repository"
)

// ErrSubjectNameTaken reports a uniqueness conflict on subjects.name.
var ErrSubjectNameTaken = errors.New("subject name already exists")

type SubjectService struct {
	subjectRepo *repository.SubjectRepository
	log         zerolog.Logger
}

func NewSubjectService(subjectRepo *repository.SubjectRepository, log zerolog.Logger) *SubjectService {
	return &SubjectService{
		subjectRepo: subjectRepo,
		log:         log.With().Str("component", "subject_service").Logger(),
	}
}

func (s *SubjectService) GetAll(ctx context.Context) ([]model.Subject, error) {
	return s.subjectRepo.GetAll(ctx)
}

func (s *SubjectService) Create(ctx context.Context, name string) (*model.Subject, error) {
	sub := &model.Subject{Name: name}
	if err := s.subjectRepo.Create(ctx, sub); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSubjectNameTaken
		}
		return nil, err
	}
	return sub, nil
}

func (s *SubjectService) Update(ctx context.Context, id int, name string) error {
	err := s.subjectRepo.Update(ctx, &model.Subject{ID: id, Name: name})
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if isUniqueViolation(err) {
		return ErrSubjectNameTaken
	}
	return err
}

func (s *SubjectService) Delete(ctx context.Context, id int) error {
	err := s.subjectRepo.Delete(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
