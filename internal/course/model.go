package course

import (
	"time"

	"github.com/vasiliy-maslov/courses-api/internal/user"
)

type Course struct {
	ID              int64     `json:"id" db:"id"`
	UserID          int64     `json:"userId" db:"user_id"`
	Title           string    `json:"title" db:"title"`
	Description     string    `json:"description" db:"description"`
	EstimatedTime   *string   `json:"estimatedTime,omitempty" db:"estimated_time"`
	MaterialsNeeded *string   `json:"materialsNeeded,omitempty" db:"materials_needed"`
	CreatedAt       time.Time `json:"-" db:"created_at"`
	UpdatedAt       time.Time `json:"-" db:"updated_at"`
}

// CourseWithOwner is a course joined with its owning user for read endpoints.
type CourseWithOwner struct {
	Course
	Owner user.User `json:"user" db:"-"`
}
