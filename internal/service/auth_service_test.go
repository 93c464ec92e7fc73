package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"nomad-nest/internal/models"
	"nomad-nest/pkg/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthService(users *fakeUserStore, blob *fakeBlobStore) *AuthService {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	return NewAuthService(users, &fakeAllocator{}, blob, jwtManager, zap.NewNop())
}

func TestRegister_MissingFields(t *testing.T) {
	svc := newAuthService(&fakeUserStore{}, &fakeBlobStore{})

	for _, in := range []*RegisterInput{
		{Password: "secret", FullName: "Ada"},
		{Email: "ada@example.com", FullName: "Ada"},
		{Email: "ada@example.com", Password: "secret"},
	} {
		_, err := svc.Register(context.Background(), in)
		assert.ErrorIs(t, err, ErrMissingFields)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	users := &fakeUserStore{byEmail: map[string]*models.User{
		"ada@example.com": {ID: "user-0", Email: "ada@example.com"},
	}}
	svc := newAuthService(users, &fakeBlobStore{})

	_, err := svc.Register(context.Background(), &RegisterInput{
		Email:    "ada@example.com",
		Password: "secret",
		FullName: "Ada",
	})
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestRegister_HashesPassword(t *testing.T) {
	users := &fakeUserStore{}
	svc := newAuthService(users, &fakeBlobStore{})

	user, err := svc.Register(context.Background(), &RegisterInput{
		Email:    "ada@example.com",
		Password: "secret",
		FullName: "Ada",
	})
	require.NoError(t, err)

	require.Len(t, users.inserted, 1)
	assert.NotEqual(t, "secret", user.PasswordHash)
	assert.True(t, auth.CheckPasswordHash("secret", user.PasswordHash))
	assert.Nil(t, user.ProfilePicURL)
}

func TestRegister_WithProfilePicture(t *testing.T) {
	users := &fakeUserStore{}
	blob := &fakeBlobStore{}
	svc := newAuthService(users, blob)

	user, err := svc.Register(context.Background(), &RegisterInput{
		Email:      "ada@example.com",
		Password:   "secret",
		FullName:   "Ada",
		ProfilePic: &PhotoUpload{FileName: "me.png"},
	})
	require.NoError(t, err)

	require.NotNil(t, user.ProfilePicURL)
	assert.Contains(t, *user.ProfilePicURL, "profile_pics/")
	assert.Len(t, blob.uploads, 1)
}

func TestRegister_ProfilePictureUploadFailureDegrades(t *testing.T) {
	users := &fakeUserStore{}
	blob := &fakeBlobStore{uploadFails: map[string]error{"me.png": errors.New("timeout")}}
	svc := newAuthService(users, blob)

	user, err := svc.Register(context.Background(), &RegisterInput{
		Email:      "ada@example.com",
		Password:   "secret",
		FullName:   "Ada",
		ProfilePic: &PhotoUpload{FileName: "me.png"},
	})
	require.NoError(t, err)
	assert.Nil(t, user.ProfilePicURL)
	require.Len(t, users.inserted, 1)
}

func TestLogin_UnknownUser(t *testing.T) {
	svc := newAuthService(&fakeUserStore{}, &fakeBlobStore{})

	_, err := svc.Login(context.Background(), "ghost@example.com", "secret")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestLogin_WrongPassword(t *testing.T) {
	hash, err := auth.HashPassword("right")
	require.NoError(t, err)

	users := &fakeUserStore{byEmail: map[string]*models.User{
		"ada@example.com": {ID: "user-1", Email: "ada@example.com", PasswordHash: hash},
	}}
	svc := newAuthService(users, &fakeBlobStore{})

	_, err = svc.Login(context.Background(), "ada@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_TokenRoundTrip(t *testing.T) {
	hash, err := auth.HashPassword("secret")
	require.NoError(t, err)

	users := &fakeUserStore{byEmail: map[string]*models.User{
		"ada@example.com": {ID: "user-1", Email: "ada@example.com", FullName: "Ada", PasswordHash: hash},
	}}
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	svc := NewAuthService(users, &fakeAllocator{}, &fakeBlobStore{}, jwtManager, zap.NewNop())

	result, err := svc.Login(context.Background(), "ada@example.com", "secret")
	require.NoError(t, err)

	assert.Equal(t, "Bearer", result.TokenType)
	assert.Equal(t, int64(3600), result.ExpiresIn)

	claims, err := jwtManager.ValidateToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, "Ada", claims.FullName)
}
