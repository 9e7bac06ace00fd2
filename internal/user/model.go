package user

import "time"

// User is the stored identity record. Password holds the bcrypt hash and is
// never serialized.
type User struct {
	ID           int64     `json:"id" db:"id"`
	FirstName    string    `json:"firstName" db:"first_name"`
	LastName     string    `json:"lastName" db:"last_name"`
	EmailAddress string    `json:"emailAddress" db:"email"`
	Password     string    `json:"-" db:"password"`
	CreatedAt    time.Time `json:"-" db:"created_at"`
	UpdatedAt    time.Time `json:"-" db:"updated_at"`
}
