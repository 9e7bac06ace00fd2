package course

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	List(ctx context.Context) ([]CourseWithOwner, error)
	GetByID(ctx context.Context, id int64) (*CourseWithOwner, error)
	Create(ctx context.Context, course *Course) (int64, error)
	Update(ctx context.Context, course *Course) error
	Delete(ctx context.Context, id int64) error
}

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &postgresRepository{db: db}
}

const selectWithOwner = `
	SELECT c.id, c.user_id, c.title, c.description, c.estimated_time, c.materials_needed,
	       c.created_at, c.updated_at,
	       u.id, u.first_name, u.last_name, u.email
	FROM courses c
	JOIN users u ON u.id = c.user_id
`

func scanCourseWithOwner(row pgx.Row, c *CourseWithOwner) error {
	return row.Scan(
		&c.ID,
		&c.UserID,
		&c.Title,
		&c.Description,
		&c.EstimatedTime,
		&c.MaterialsNeeded,
		&c.CreatedAt,
		&c.UpdatedAt,
		&c.Owner.ID,
		&c.Owner.FirstName,
		&c.Owner.LastName,
		&c.Owner.EmailAddress,
	)
}

func (r *postgresRepository) List(ctx context.Context) ([]CourseWithOwner, error) {
	rows, err := r.db.Query(ctx, selectWithOwner+` ORDER BY c.id`)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query courses: %w", err)
	}
	defer rows.Close()

	courses := make([]CourseWithOwner, 0)
	for rows.Next() {
		var course CourseWithOwner
		if err := scanCourseWithOwner(rows, &course); err != nil {
			return nil, fmt.Errorf("repository: failed to scan course: %w", err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating courses: %w", err)
	}

	return courses, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*CourseWithOwner, error) {
	var course CourseWithOwner
	err := scanCourseWithOwner(r.db.QueryRow(ctx, selectWithOwner+` WHERE c.id = $1`, id), &course)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("repository: failed to select course by id %d: %w", id, err)
	}

	return &course, nil
}

func (r *postgresRepository) Create(ctx context.Context, course *Course) (int64, error) {
	now := time.Now().UTC()
	course.CreatedAt = now
	course.UpdatedAt = now

	query := `
		INSERT INTO courses (user_id, title, description, estimated_time, materials_needed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query,
		course.UserID,
		course.Title,
		course.Description,
		course.EstimatedTime,
		course.MaterialsNeeded,
		course.CreatedAt,
		course.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("repository: failed to insert course: %w", err)
	}

	course.ID = id
	return id, nil
}

func (r *postgresRepository) Update(ctx context.Context, course *Course) error {
	query := `
		UPDATE courses
		SET title = $1, description = $2, estimated_time = $3, materials_needed = $4, updated_at = $5
		WHERE id = $6
	`

	tag, err := r.db.Exec(ctx, query,
		course.Title,
		course.Description,
		course.EstimatedTime,
		course.MaterialsNeeded,
		time.Now().UTC(),
		course.ID,
	)
	if err != nil {
		return fmt.Errorf("repository: failed to update course %d: %w", course.ID, err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("repository: failed to delete course %d: %w", id, err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
