package service

import (
	"context"
	"io"

	"nomad-nest/internal/models"
	"nomad-nest/internal/repository"
)

// Store interfaces let the services be exercised against fakes; the
// repository package provides the PostgreSQL implementations.

type UserStore interface {
	Insert(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Search(ctx context.Context, filter repository.UserFilter) ([]*models.User, error)
}

type EntryStore interface {
	Insert(ctx context.Context, entry *models.TextEntry) error
	Exists(ctx context.Context, entryID string) (bool, error)
	List(ctx context.Context, filter repository.EntryFilter) ([]*models.EntryDetails, error)
}

type PhotoStore interface {
	Insert(ctx context.Context, photo *models.Photo) error
	List(ctx context.Context, filter repository.PhotoFilter) ([]*models.Photo, error)
	Delete(ctx context.Context, filter repository.PhotoFilter) error
}

type ExpenseStore interface {
	Insert(ctx context.Context, expense *models.Expense) error
	Update(ctx context.Context, entryID, expenseID string, upd repository.ExpenseUpdate) error
	DeleteByID(ctx context.Context, expenseID string) error
	DeleteByEntry(ctx context.Context, entryID string) error
	Search(ctx context.Context, filter repository.ExpenseFilter) ([]*models.ExpenseDetails, error)
}

// Allocator hands out collision-checked record identifiers.
type Allocator interface {
	Allocate(ctx context.Context, table, column string) (string, error)
}

// BlobStore uploads images and deletes them by key. Upload failures are
// recoverable from the caller's point of view: a photo without a URL is
// skipped, not fatal.
type BlobStore interface {
	Upload(ctx context.Context, r io.Reader, fileName, keyPrefix, keyBaseName string) (string, error)
	Delete(ctx context.Context, key string) error
}
