package userRepo

import (
	"context"
	"errors"

	"sitecms/models"
)

// ErrDuplicateEmail is returned by Create when a user with the same email exists.
var ErrDuplicateEmail = errors.New("user with this email already exists")

// UserRepository defines methods for user data access.
type UserRepository interface {
	// GetByEmail retrieves a user by its email address. It returns nil, nil when no user matches.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Create inserts a new user record.
	Create(ctx context.Context, user *models.User) error
}
