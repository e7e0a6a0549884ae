package service

import (
	"context"

	"cardbot/internal/domain"
	"cardbot/internal/repository"
)

// UserService keeps the users table in sync with chat senders
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// EnsureUser creates user record if doesn't exist
func (s *UserService) EnsureUser(ctx context.Context, user domain.User) error {
	return s.userRepo.EnsureUser(ctx, user)
}
