// Command seed loads development fixture data: two users and a few courses
// owned by them. Safe to run repeatedly, existing rows are left alone.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"github.com/vasiliy-maslov/courses-api/internal/config"
)

type seedUser struct {
	FirstName    string `db:"first_name"`
	LastName     string `db:"last_name"`
	EmailAddress string `db:"email"`
	Password     string `db:"password"`
}

type seedCourse struct {
	OwnerEmail      string  `db:"owner_email"`
	Title           string  `db:"title"`
	Description     string  `db:"description"`
	EstimatedTime   *string `db:"estimated_time"`
	MaterialsNeeded *string `db:"materials_needed"`
}

func strPtr(s string) *string { return &s }

var users = []seedUser{
	{FirstName: "Joe", LastName: "Smith", EmailAddress: "joe@smith.com", Password: "joepassword"},
	{FirstName: "Sally", LastName: "Jones", EmailAddress: "sally@jones.com", Password: "sallypassword"},
}

var courses = []seedCourse{
	{
		OwnerEmail:    "joe@smith.com",
		Title:         "Build a Basic Bookcase",
		Description:   "High-end furniture projects are great to dream about, but unless you have a well-equipped shop you can get stuck. Not everyone can afford a full shop, so start small.",
		EstimatedTime: strPtr("12 hours"),
		MaterialsNeeded: strPtr(
			"* 1/2 x 3/4 inch parting strip\n* 1 x 2 common pine\n* 3/4 inch plywood"),
	},
	{
		OwnerEmail:  "joe@smith.com",
		Title:       "Learn How to Program",
		Description: "In this course, you'll learn how to write code like a pro!",
	},
	{
		OwnerEmail:    "sally@jones.com",
		Title:         "Learn How to Test Programs",
		Description:   "In this course, you'll learn how to test programs.",
		EstimatedTime: strPtr("6 hours"),
	},
}

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.User, cfg.Postgres.Password,
		cfg.Postgres.DBName, cfg.Postgres.SSLMode)

	dbConn, err := sqlx.Connect("postgres", connStr)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer dbConn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := seed(ctx, dbConn); err != nil {
		log.Fatalf("failed to seed database: %v", err)
	}

	log.Println("Seed data loaded")
}

func seed(ctx context.Context, dbConn *sqlx.DB) error {
	for _, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password for %s: %w", u.EmailAddress, err)
		}
		u.Password = string(hash)

		query := `
			INSERT INTO users (first_name, last_name, email, password)
			VALUES (:first_name, :last_name, :email, :password)
			ON CONFLICT (email) DO NOTHING`
		if _, err := dbConn.NamedExecContext(ctx, query, u); err != nil {
			return fmt.Errorf("failed to insert user %s: %w", u.EmailAddress, err)
		}
	}

	for _, c := range courses {
		query := `
			INSERT INTO courses (user_id, title, description, estimated_time, materials_needed)
			SELECT u.id, :title, :description, :estimated_time, :materials_needed
			FROM users u
			WHERE u.email = :owner_email
			AND NOT EXISTS (SELECT 1 FROM courses WHERE title = :title)`
		if _, err := dbConn.NamedExecContext(ctx, query, c); err != nil {
			return fmt.Errorf("failed to insert course %q: %w", c.Title, err)
		}
	}

	return nil
}
