package course

import (
	"context"
	"errors"
	"fmt"
)

type Service interface {
	List(ctx context.Context) ([]CourseWithOwner, error)
	GetByID(ctx context.Context, id int64) (*CourseWithOwner, error)
	Create(ctx context.Context, course *Course, ownerID int64) (*Course, error)
	Update(ctx context.Context, course *Course, ownerID int64) error
	Delete(ctx context.Context, id int64, ownerID int64) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]CourseWithOwner, error) {
	courses, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	return courses, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*CourseWithOwner, error) {
	course, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get course by id %d: %w", id, err)
	}

	return course, nil
}

// Create stores a new course for ownerID. A payload naming a different owner
// is rejected, so nobody can create courses on another user's behalf.
func (s *service) Create(ctx context.Context, course *Course, ownerID int64) (*Course, error) {
	if course.UserID != ownerID {
		return nil, ErrOwnerMismatch
	}

	createdID, err := s.repo.Create(ctx, course)
	if err != nil {
		return nil, fmt.Errorf("failed to save course: %w", err)
	}

	course.ID = createdID

	return course, nil
}

// Update applies new field values to an existing course. Existence is
// established first, then ownership; the owner itself never changes.
func (s *service) Update(ctx context.Context, course *Course, ownerID int64) error {
	existing, err := s.repo.GetByID(ctx, course.ID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get course by id %d: %w", course.ID, err)
	}

	if existing.UserID != ownerID {
		return ErrForbidden
	}

	course.UserID = existing.UserID
	if course.EstimatedTime == nil {
		course.EstimatedTime = existing.EstimatedTime
	}
	if course.MaterialsNeeded == nil {
		course.MaterialsNeeded = existing.MaterialsNeeded
	}

	if err := s.repo.Update(ctx, course); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update course %d: %w", course.ID, err)
	}

	return nil
}

func (s *service) Delete(ctx context.Context, id int64, ownerID int64) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get course by id %d: %w", id, err)
	}

	if existing.UserID != ownerID {
		return ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete course %d: %w", id, err)
	}

	return nil
}
