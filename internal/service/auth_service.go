package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nomad-nest/internal/models"
	"nomad-nest/internal/repository"
	"nomad-nest/pkg/auth"
	"nomad-nest/pkg/blobstore"

	"go.uber.org/zap"
)

type RegisterInput struct {
	Email    string
	Password string
	FullName string

	// Optional profile picture; a failed upload degrades to a user without
	// one rather than failing registration.
	ProfilePic *PhotoUpload
}

type LoginResult struct {
	Token     string
	TokenType string
	ExpiresIn int64
	User      *models.User
}

type AuthService struct {
	users      UserStore
	allocator  Allocator
	blob       BlobStore
	jwtManager *auth.JWTManager
	logger     *zap.Logger
}

func NewAuthService(users UserStore, allocator Allocator, blob BlobStore, jwtManager *auth.JWTManager, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:      users,
		allocator:  allocator,
		blob:       blob,
		jwtManager: jwtManager,
		logger:     logger,
	}
}

func (s *AuthService) Register(ctx context.Context, in *RegisterInput) (*models.User, error) {
	if in.Email == "" || in.Password == "" || in.FullName == "" {
		return nil, ErrMissingFields
	}

	existing, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	// Every identifier goes through the same collision-checked allocator,
	// users included.
	userID, err := s.allocator.Allocate(ctx, "users", "user_id")
	if err != nil {
		return nil, fmt.Errorf("failed to allocate user id: %w", err)
	}

	var profilePicURL *string
	if pic := in.ProfilePic; pic != nil && pic.FileName != "" && blobstore.AllowedImage(pic.FileName) {
		url, err := s.blob.Upload(ctx, pic.Data, pic.FileName, blobstore.ProfilePicPrefix, userID)
		if err != nil {
			s.logger.Warn("Profile picture upload failed, registering without one",
				zap.String("user_id", userID),
				zap.Error(err),
			)
		} else {
			profilePicURL = &url
		}
	}

	passwordHash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:            userID,
		Email:         in.Email,
		PasswordHash:  passwordHash,
		FullName:      in.FullName,
		ProfilePicURL: profilePicURL,
		CreatedAt:     time.Now().UTC().Truncate(time.Second),
	}

	if err := s.users.Insert(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !auth.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtManager.GenerateToken(user.ID, user.Email, user.FullName)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &LoginResult{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int64(s.jwtManager.GetTokenDuration().Seconds()),
		User:      user,
	}, nil
}
