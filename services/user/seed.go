package user

import (
	"context"
	"errors"
	"fmt"

	userRepo "sitecms/database/repository/user"
	"sitecms/models"

	"golang.org/x/crypto/bcrypt"
)

func (s *DefaultUserService) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	existing, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("seed admin: %w", err)
	}
	if existing != nil {
		return false, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("seed admin: failed to hash password: %w", err)
	}
	err = s.Repo.Create(ctx, &models.User{Email: email, PasswordHash: string(hash)})
	if errors.Is(err, userRepo.ErrDuplicateEmail) {
		// another process seeded first
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("seed admin: %w", err)
	}
	return true, nil
}
