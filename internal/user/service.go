package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

type Service interface {
	Register(ctx context.Context, user *User) (*User, error)
	Authenticate(ctx context.Context, email, password string) (*User, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, user *User) (*User, error) {
	if user.Password == "" {
		return nil, errors.New("password cannot be empty")
	}

	hashBytes, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("internal error hashing password: %w", err)
	}
	user.Password = string(hashBytes)

	createdID, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	user.ID = createdID

	return user, nil
}

// Authenticate verifies an email/password pair against the stored hash. Every
// failure collapses to ErrInvalidCredentials so the caller cannot tell an
// unknown email from a wrong password; the distinction is only logged.
func (s *service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn().Str("email", email).Msg("authentication failed: user not found")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user by email '%s': %w", email, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		log.Warn().Str("email", email).Msg("authentication failed: password mismatch")
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
