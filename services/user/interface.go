package user

import (
	"context"

	userRepo "sitecms/database/repository/user"
	"sitecms/models"
	"sitecms/utils"
)

type UserService interface {
	// AuthenticateUser checks credentials and issues a token.
	AuthenticateUser(ctx context.Context, email, password string) (*AuthResponse, error)
	// EnsureAdmin creates the admin account unless a user with that email exists.
	// It reports whether a user was created.
	EnsureAdmin(ctx context.Context, email, password string) (bool, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo   userRepo.UserRepository
	Tokens *utils.TokenIssuer
}

func NewUserService(repo userRepo.UserRepository, tokens *utils.TokenIssuer) *DefaultUserService {
	return &DefaultUserService{Repo: repo, Tokens: tokens}
}

// AuthResponse is returned by a successful login.
type AuthResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}
