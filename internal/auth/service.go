// Package auth turns raw credentials into user records and verified sessions.
package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"blogapi/internal/apperr"
	"blogapi/internal/logging"
	"blogapi/internal/users"
)

// Notifier delivers account emails. Delivery is best effort and never fails a
// registration.
type Notifier interface {
	WelcomeEmail(ctx context.Context, userID, email, name string) error
}

type Service struct {
	users    users.Repository
	secret   []byte
	cost     int
	notifier Notifier
	log      logging.Logger
}

func NewService(repo users.Repository, secret string, bcryptCost int, notifier Notifier, log logging.Logger) *Service {
	return &Service{
		users:    repo,
		secret:   []byte(secret),
		cost:     bcryptCost,
		notifier: notifier,
		log:      log,
	}
}

// Register creates a user with a bcrypt-hashed password. Emails are stored
// lowercased so the uniqueness check is case-insensitive.
func (s *Service) Register(ctx context.Context, firstname, lastname, email, password, confirmPassword string) (*users.User, error) {
	if password != confirmPassword {
		return nil, apperr.New(apperr.ErrValidation, "passwords do not match")
	}
	email = strings.ToLower(strings.TrimSpace(email))

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperr.New(apperr.ErrConflict, "user already exists")
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, &users.User{
		ID:        uuid.New().String(),
		Firstname: firstname,
		Lastname:  lastname,
		Email:     email,
		Password:  string(hashed),
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if err := s.notifier.WelcomeEmail(ctx, user.ID, user.Email, user.FullName()); err != nil {
			s.log.Warn(ctx, "welcome email enqueue failed", "user_id", user.ID, "error", err.Error())
		}
	}
	return user, nil
}

// Login verifies credentials and issues a signed token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (string, *users.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return "", nil, apperr.New(apperr.ErrInvalidCredentials, "invalid credentials")
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, apperr.New(apperr.ErrInvalidCredentials, "invalid credentials")
	}

	token, err := GenerateToken(user, s.secret, TokenValidity)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}
