package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sekolahdigital/lms-backend/internal/model"
	"github.com/sekolahdigital/lms-backend/internal/repository"
)

// ClassService implements the admin class management operations.
type ClassService struct {
	classRepo *repository.ClassRepository
}

func NewClassService(classRepo *repository.ClassRepository) *ClassService {
	return &ClassService{classRepo: classRepo}
}

func (s *ClassService) List(ctx context.Context) ([]model.ClassWithSubjects, error) {
	return s.classRepo.GetAllWithSubjects(ctx)
}

func (s *ClassService) Create(ctx context.Context, req *model.CreateClassRequest) (*model.Class, error) {
	year := req.Year
	if year == 0 {
		year = time.Now().Year()
	}
	c := &model.Class{Name: req.Name, Teacher: req.Teacher, Year: year}
	if err := s.classRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ClassService) Update(ctx context.Context, id int, req *model.UpdateClassRequest) (*model.Class, error) {
	c, err := s.classRepo.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		c.Name = req.Name
	}
	if req.Teacher != "" {
		c.Teacher = req.Teacher
	}
	if req.Year != 0 {
		c.Year = req.Year
	}

	if err := s.classRepo.Update(ctx, c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

// Delete removes a class and, via schema cascades, its attendance,
// assignments, and memberships.
func (s *ClassService) Delete(ctx context.Context, id int) error {
	err := s.classRepo.Delete(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// Enroll adds a user to a class with a role-in-class tag.
func (s *ClassService) Enroll(ctx context.Context, classID, userID int, roleInClass model.RoleInClass) error {
	return s.classRepo.AddMember(ctx, &model.ClassMember{
		ClassID:     classID,
		UserID:      userID,
		RoleInClass: roleInClass,
	})
}
