package service

import (
	"context"
	"fmt"
	"io"

	"nomad-nest/internal/models"
	"nomad-nest/internal/repository"
)

// ---- fakes ----

type fakeUserStore struct {
	inserted []*models.User

	insertErr error

	byEmail    map[string]*models.User
	byEmailErr error

	listResp []*models.User
	listErr  error

	searchFilter repository.UserFilter
	searchResp   []*models.User
	searchErr    error
}

func (f *fakeUserStore) Insert(ctx context.Context, user *models.User) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, user)
	return nil
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.byEmailErr != nil {
		return nil, f.byEmailErr
	}
	if user, ok := f.byEmail[email]; ok {
		return user, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserStore) List(ctx context.Context) ([]*models.User, error) {
	return f.listResp, f.listErr
}

func (f *fakeUserStore) Search(ctx context.Context, filter repository.UserFilter) ([]*models.User, error) {
	f.searchFilter = filter
	return f.searchResp, f.searchErr
}

type fakeEntryStore struct {
	inserted  []*models.TextEntry
	insertErr error

	existsResp bool
	existsErr  error

	listFilter repository.EntryFilter
	listResp   []*models.EntryDetails
	listErr    error
}

func (f *fakeEntryStore) Insert(ctx context.Context, entry *models.TextEntry) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, entry)
	return nil
}

func (f *fakeEntryStore) Exists(ctx context.Context, entryID string) (bool, error) {
	return f.existsResp, f.existsErr
}

func (f *fakeEntryStore) List(ctx context.Context, filter repository.EntryFilter) ([]*models.EntryDetails, error) {
	f.listFilter = filter
	return f.listResp, f.listErr
}

type fakePhotoStore struct {
	inserted  []*models.Photo
	insertErr error

	listResp []*models.Photo
	listErr  error

	deleteFilter *repository.PhotoFilter
	deleteErr    error
}

func (f *fakePhotoStore) Insert(ctx context.Context, photo *models.Photo) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, photo)
	return nil
}

func (f *fakePhotoStore) List(ctx context.Context, filter repository.PhotoFilter) ([]*models.Photo, error) {
	return f.listResp, f.listErr
}

func (f *fakePhotoStore) Delete(ctx context.Context, filter repository.PhotoFilter) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleteFilter = &filter
	return nil
}

type fakeExpenseStore struct {
	inserted  []*models.Expense
	insertErr error

	updateErr error

	deletedIDs    []string
	deleteErr     error
	deletedEntry  string
	deleteAllErr  error
	searchFilter  repository.ExpenseFilter
	searchResp    []*models.ExpenseDetails
	searchErr     error
	lastUpdate    repository.ExpenseUpdate
	lastExpenseID string
}

func (f *fakeExpenseStore) Insert(ctx context.Context, expense *models.Expense) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, expense)
	return nil
}

func (f *fakeExpenseStore) Update(ctx context.Context, entryID, expenseID string, upd repository.ExpenseUpdate) error {
	f.lastExpenseID = expenseID
	f.lastUpdate = upd
	return f.updateErr
}

func (f *fakeExpenseStore) DeleteByID(ctx context.Context, expenseID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedIDs = append(f.deletedIDs, expenseID)
	return nil
}

func (f *fakeExpenseStore) DeleteByEntry(ctx context.Context, entryID string) error {
	if f.deleteAllErr != nil {
		return f.deleteAllErr
	}
	f.deletedEntry = entryID
	return nil
}

func (f *fakeExpenseStore) Search(ctx context.Context, filter repository.ExpenseFilter) ([]*models.ExpenseDetails, error) {
	f.searchFilter = filter
	return f.searchResp, f.searchErr
}

// fakeAllocator hands out sequential ids per table.
type fakeAllocator struct {
	counters map[string]int
	err      error
}

func (f *fakeAllocator) Allocate(ctx context.Context, table, column string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if f.counters == nil {
		f.counters = make(map[string]int)
	}
	f.counters[table]++
	return fmt.Sprintf("%s-%d", table, f.counters[table]), nil
}

// fakeBlobStore records uploads and deletions; failures are armed per file
// name or per key.
type fakeBlobStore struct {
	uploads     []string
	uploadFails map[string]error

	deletedKeys []string
	deleteFails map[string]error
}

func (f *fakeBlobStore) Upload(ctx context.Context, r io.Reader, fileName, keyPrefix, keyBaseName string) (string, error) {
	if err, ok := f.uploadFails[fileName]; ok {
		return "", err
	}
	url := fmt.Sprintf("http://blob.local/travel/%s/%s", keyPrefix, keyBaseName)
	f.uploads = append(f.uploads, url)
	return url, nil
}

func (f *fakeBlobStore) Delete(ctx context.Context, key string) error {
	if err, ok := f.deleteFails[key]; ok {
		return err
	}
	f.deletedKeys = append(f.deletedKeys, key)
	return nil
}
