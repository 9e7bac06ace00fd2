package user_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/vasiliy-maslov/courses-api/internal/user"
)

// setupTestDB connects to the database described by the DB_*_TEST variables.
// Tests depending on it are skipped when DB_HOST_TEST is not set.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dbHost := os.Getenv("DB_HOST_TEST")
	if dbHost == "" {
		t.Skip("DB_HOST_TEST is not set, skipping repository tests")
	}

	getenv := func(key, fallback string) string {
		if value := os.Getenv(key); value != "" {
			return value
		}
		return fallback
	}

	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		dbHost,
		getenv("DB_PORT_TEST", "5432"),
		getenv("DB_USER_TEST", "postgres"),
		getenv("DB_PASSWORD_TEST", "postgres"),
		getenv("DB_NAME_TEST", "courses_test"),
		getenv("DB_SSLMODE_TEST", "disable"),
	)

	connectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(connectCtx, connStr)
	require.NoError(t, err, "failed to connect to test database")
	require.NoError(t, pool.Ping(connectCtx), "failed to ping test database")

	t.Cleanup(pool.Close)
	return pool
}

func uniqueEmail(t *testing.T) string {
	return fmt.Sprintf("%s-%d@example.com", t.Name(), time.Now().UnixNano())
}

func TestUserRepository_CreateAndGetByEmail(t *testing.T) {
	pool := setupTestDB(t)
	repo := user.NewRepository(pool)

	email := uniqueEmail(t)
	newUser := &user.User{
		FirstName:    "Repo",
		LastName:     "Test",
		EmailAddress: email,
		Password:     "$2a$10$somestoredbcrypthashvalue",
	}

	id, err := repo.Create(context.Background(), newUser)
	require.NoError(t, err)
	require.NotZero(t, id)

	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, id)
	})

	found, err := repo.GetByEmail(context.Background(), email)
	require.NoError(t, err)
	require.Equal(t, id, found.ID)
	require.Equal(t, "Repo", found.FirstName)
	require.Equal(t, newUser.Password, found.Password)
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	pool := setupTestDB(t)
	repo := user.NewRepository(pool)

	email := uniqueEmail(t)
	first := &user.User{FirstName: "Repo", LastName: "Test", EmailAddress: email, Password: "hash"}

	id, err := repo.Create(context.Background(), first)
	require.NoError(t, err)

	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, id)
	})

	second := &user.User{FirstName: "Other", LastName: "Test", EmailAddress: email, Password: "hash"}
	_, err = repo.Create(context.Background(), second)
	require.ErrorIs(t, err, user.ErrEmailExists)
}

func TestUserRepository_GetByEmail_NotFound(t *testing.T) {
	pool := setupTestDB(t)
	repo := user.NewRepository(pool)

	_, err := repo.GetByEmail(context.Background(), uniqueEmail(t))
	require.ErrorIs(t, err, user.ErrNotFound)
}
