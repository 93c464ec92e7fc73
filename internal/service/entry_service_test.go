package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"nomad-nest/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newEntryService(entries *fakeEntryStore, photos *fakePhotoStore, expenses *fakeExpenseStore, blob *fakeBlobStore) *EntryService {
	return NewEntryService(entries, photos, expenses, &fakeAllocator{}, blob, zap.NewNop())
}

func upload(name string) PhotoUpload {
	return PhotoUpload{FileName: name, Data: bytes.NewBufferString("img")}
}

func TestCreateEntry_FullAssembly(t *testing.T) {
	entries := &fakeEntryStore{}
	photos := &fakePhotoStore{}
	expenses := &fakeExpenseStore{}
	blob := &fakeBlobStore{}
	svc := newEntryService(entries, photos, expenses, blob)

	out, err := svc.CreateEntry(context.Background(), &CreateEntryInput{
		UserID:    "user-1",
		Title:     "Lisbon day one",
		Content:   "Tram 28 and pasteis",
		Location:  "Lisbon",
		Latitude:  "38.7223",
		Longitude: "-9.1393",
		Photos:    []PhotoUpload{upload("tram.jpg"), upload("tart.png")},
		Expenses:  []string{"Food:12.50", "Transport:3"},
	})
	require.NoError(t, err)

	require.Len(t, entries.inserted, 1)
	entry := entries.inserted[0]
	assert.Equal(t, out.EntryID, entry.ID)
	assert.Equal(t, "user-1", entry.UserID)
	assert.InDelta(t, 38.7223, entry.Latitude, 1e-9)
	assert.InDelta(t, -9.1393, entry.Longitude, 1e-9)

	require.Len(t, photos.inserted, 2)
	for _, p := range photos.inserted {
		assert.Equal(t, entry.ID, p.EntryID)
		assert.Equal(t, "user-1", p.UserID)
	}
	assert.Len(t, out.PhotoURLs, 2)

	require.Len(t, expenses.inserted, 2)
	assert.Equal(t, "Food", expenses.inserted[0].Category)
	assert.InDelta(t, 12.50, expenses.inserted[0].Amount, 1e-9)
	assert.Equal(t, "USD", expenses.inserted[0].Currency)
	assert.Equal(t, "Transport", expenses.inserted[1].Category)

	assert.Equal(t, []string{"Food:12.50", "Transport:3"}, out.Expenses)
	assert.Empty(t, out.Warnings)
}

func TestCreateEntry_MissingCoordinatesDefaultToZero(t *testing.T) {
	entries := &fakeEntryStore{}
	svc := newEntryService(entries, &fakePhotoStore{}, &fakeExpenseStore{}, &fakeBlobStore{})

	_, err := svc.CreateEntry(context.Background(), &CreateEntryInput{
		UserID: "user-1",
		Title:  "No map today",
	})
	require.NoError(t, err)

	require.Len(t, entries.inserted, 1)
	assert.Zero(t, entries.inserted[0].Latitude)
	assert.Zero(t, entries.inserted[0].Longitude)
}

func TestCreateEntry_MalformedCoordinate(t *testing.T) {
	svc := newEntryService(&fakeEntryStore{}, &fakePhotoStore{}, &fakeExpenseStore{}, &fakeBlobStore{})

	_, err := svc.CreateEntry(context.Background(), &CreateEntryInput{
		UserID:   "user-1",
		Latitude: "north-ish",
	})
	assert.ErrorIs(t, err, ErrBadCoordinate)
}

func TestCreateEntry_AnchorInsertFailureAbortsAssembly(t *testing.T) {
	entries := &fakeEntryStore{insertErr: errors.New("connection reset")}
	photos := &fakePhotoStore{}
	expenses := &fakeExpenseStore{}
	blob := &fakeBlobStore{}
	svc := newEntryService(entries, photos, expenses, blob)

	_, err := svc.CreateEntry(context.Background(), &CreateEntryInput{
		UserID:   "user-1",
		Photos:   []PhotoUpload{upload("tram.jpg")},
		Expenses: []string{"Food:10"},
	})
	require.Error(t, err)

	assert.Empty(t, blob.uploads)
	assert.Empty(t, photos.inserted)
	assert.Empty(t, expenses.inserted)
}

func TestCreateEntry_MalformedExpenseToken(t *testing.T) {
	for _, token := range []string{"no-separator", "Food:ten"} {
		svc := newEntryService(&fakeEntryStore{}, &fakePhotoStore{}, &fakeExpenseStore{}, &fakeBlobStore{})
		_, err := svc.CreateEntry(context.Background(), &CreateEntryInput{
			UserID:   "user-1",
			Expenses: []string{token},
		})
		assert.ErrorIs(t, err, ErrMalformedExpense, "token %q", token)
	}
}

func TestCreateEntry_EmptyExpenseTokensSkipped(t *testing.T) {
	expenses := &fakeExpenseStore{}
	svc := newEntryService(&fakeEntryStore{}, &fakePhotoStore{}, expenses, &fakeBlobStore{})

	out, err := svc.CreateEntry(context.Background(), &CreateEntryInput{
		UserID:   "user-1",
		Expenses: []string{"", "Food:5", ""},
	})
	require.NoError(t, err)
	require.Len(t, expenses.inserted, 1)
	assert.Equal(t, "Food", expenses.inserted[0].Category)
	assert.Empty(t, out.Warnings)
}

func TestCreateEntry_ExpenseInsertFailureBecomesWarning(t *testing.T) {
	expenses := &fakeExpenseStore{insertErr: errors.New("disk full")}
	svc := newEntryService(&fakeEntryStore{}, &fakePhotoStore{}, expenses, &fakeBlobStore{})

	out, err := svc.CreateEntry(context.Background(), &CreateEntryInput{
		UserID:   "user-1",
		Expenses: []string{"Food:5"},
	})
	require.NoError(t, err)
	require.Len(t, out.Warnings, 1)
	assert.Contains(t, out.Warnings[0], "Food:5")
}

func TestCreateEntry_PhotoUploadFailureSkipsPhoto(t *testing.T) {
	blob := &fakeBlobStore{uploadFails: map[string]error{"broken.jpg": errors.New("timeout")}}
	photos := &fakePhotoStore{}
	svc := newEntryService(&fakeEntryStore{}, photos, &fakeExpenseStore{}, blob)

	out, err := svc.CreateEntry(context.Background(), &CreateEntryInput{
		UserID: "user-1",
		Photos: []PhotoUpload{upload("first.jpg"), upload("broken.jpg"), upload("third.png")},
	})
	require.NoError(t, err)

	assert.Len(t, out.PhotoURLs, 2)
	assert.Len(t, photos.inserted, 2)
	require.Len(t, out.Warnings, 1)
	assert.Contains(t, out.Warnings[0], "broken.jpg")
}

func TestCreateEntry_UnsupportedExtensionWarns(t *testing.T) {
	photos := &fakePhotoStore{}
	svc := newEntryService(&fakeEntryStore{}, photos, &fakeExpenseStore{}, &fakeBlobStore{})

	out, err := svc.CreateEntry(context.Background(), &CreateEntryInput{
		UserID: "user-1",
		Photos: []PhotoUpload{upload("notes.pdf"), upload("fine.jpeg")},
	})
	require.NoError(t, err)

	assert.Len(t, photos.inserted, 1)
	require.Len(t, out.Warnings, 1)
	assert.Contains(t, out.Warnings[0], "notes.pdf")
}

func TestCreateEntry_PhotoMetadataInsertFailureKeepsURL(t *testing.T) {
	photos := &fakePhotoStore{insertErr: errors.New("constraint violation")}
	svc := newEntryService(&fakeEntryStore{}, photos, &fakeExpenseStore{}, &fakeBlobStore{})

	out, err := svc.CreateEntry(context.Background(), &CreateEntryInput{
		UserID: "user-1",
		Photos: []PhotoUpload{upload("tram.jpg")},
	})
	require.NoError(t, err)

	// The object made it to the blob store, so its URL is still reported.
	assert.Len(t, out.PhotoURLs, 1)
	require.Len(t, out.Warnings, 1)
	assert.Contains(t, out.Warnings[0], "tram.jpg")
}

func TestCreateEntry_ValuesRoundTripThroughListing(t *testing.T) {
	entries := &fakeEntryStore{}
	photos := &fakePhotoStore{}
	expenses := &fakeExpenseStore{}
	svc := newEntryService(entries, photos, expenses, &fakeBlobStore{})

	created, err := svc.CreateEntry(context.Background(), &CreateEntryInput{
		UserID:    "user-1",
		Title:     "Kyoto",
		Latitude:  "35.0116",
		Longitude: "135.7681",
		Photos:    []PhotoUpload{upload("temple.jpg")},
		Expenses:  []string{"Food:7.25"},
	})
	require.NoError(t, err)

	// Reflect the stored rows back out the listing path.
	entry := entries.inserted[0]
	details := &models.EntryDetails{TextEntry: *entry}
	for _, p := range photos.inserted {
		details.PhotoURLs = append(details.PhotoURLs, p.URL)
	}
	for _, e := range expenses.inserted {
		details.Expenses = append(details.Expenses, models.ExpenseLine{
			Category: e.Category, Amount: e.Amount, Currency: e.Currency,
		})
	}
	entries.listResp = []*models.EntryDetails{details}

	queries := NewQueryService(entries, expenses, zap.NewNop())
	listed, err := queries.ListEntries(context.Background())
	require.NoError(t, err)
	require.Len(t, listed, 1)

	got := listed[0]
	assert.Equal(t, created.EntryID, got.ID)
	assert.InDelta(t, 35.0116, got.Latitude, 1e-9)
	assert.InDelta(t, 135.7681, got.Longitude, 1e-9)
	assert.Equal(t, created.PhotoURLs, got.PhotoURLs)
	require.Len(t, got.Expenses, 1)
	assert.Equal(t, "Food", got.Expenses[0].Category)
	assert.InDelta(t, 7.25, got.Expenses[0].Amount, 1e-9)
}

func TestAttachPhotos_EntryMissing(t *testing.T) {
	entries := &fakeEntryStore{existsResp: false}
	svc := newEntryService(entries, &fakePhotoStore{}, &fakeExpenseStore{}, &fakeBlobStore{})

	_, err := svc.AttachPhotos(context.Background(), "missing", "user-1", []PhotoUpload{upload("a.jpg")})
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestAttachPhotos_NoFiles(t *testing.T) {
	entries := &fakeEntryStore{existsResp: true}
	svc := newEntryService(entries, &fakePhotoStore{}, &fakeExpenseStore{}, &fakeBlobStore{})

	_, err := svc.AttachPhotos(context.Background(), "entry-1", "user-1", nil)
	assert.ErrorIs(t, err, ErrNoPhoto)
}

func TestAttachPhotos_NoUsableFiles(t *testing.T) {
	entries := &fakeEntryStore{existsResp: true}
	svc := newEntryService(entries, &fakePhotoStore{}, &fakeExpenseStore{}, &fakeBlobStore{})

	_, err := svc.AttachPhotos(context.Background(), "entry-1", "user-1", []PhotoUpload{upload("doc.gif")})
	assert.ErrorIs(t, err, ErrNoValidPhoto)
}

func TestAttachPhotos_MixedBatch(t *testing.T) {
	entries := &fakeEntryStore{existsResp: true}
	photos := &fakePhotoStore{}
	svc := newEntryService(entries, photos, &fakeExpenseStore{}, &fakeBlobStore{})

	out, err := svc.AttachPhotos(context.Background(), "entry-1", "user-1", []PhotoUpload{
		upload("a.jpg"),
		upload("skip.txt"),
		upload("b.png"),
	})
	require.NoError(t, err)

	assert.Len(t, out.URLs, 2)
	assert.Len(t, photos.inserted, 2)
	require.Len(t, out.Warnings, 1)
	assert.Contains(t, out.Warnings[0], "skip.txt")
}
