package service

import (
	"context"
	"fmt"

	"nomad-nest/internal/models"
	"nomad-nest/internal/repository"

	"go.uber.org/zap"
)

type UserService struct {
	users  UserStore
	logger *zap.Logger
}

func NewUserService(users UserStore, logger *zap.Logger) *UserService {
	return &UserService{
		users:  users,
		logger: logger,
	}
}

func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *UserService) Search(ctx context.Context, filter repository.UserFilter) ([]*models.User, error) {
	if !filter.HasAny() {
		return nil, ErrNoFilter
	}

	users, err := s.users.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	return users, nil
}
