package user

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

func (s *DefaultUserService) AuthenticateUser(ctx context.Context, email, password string) (*AuthResponse, error) {
	userRec, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("authentication failed: %w", err)
	}
	// The existence check must come before anything derived from the record.
	if userRec == nil {
		return nil, ErrInvalidEmail
	}

	// A record whose password is not a bcrypt hash (legacy plaintext) can never match.
	if err := bcrypt.CompareHashAndPassword([]byte(userRec.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidPassword
	}

	token, err := s.Tokens.GenerateToken(userRec.ID.Hex(), userRec.Email)
	if err != nil {
		return nil, fmt.Errorf("authentication failed: %w", err)
	}
	return &AuthResponse{User: userRec, Token: token}, nil
}
