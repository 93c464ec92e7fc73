package service

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"nomad-nest/internal/models"
	"nomad-nest/pkg/blobstore"

	"go.uber.org/zap"
)

// PhotoUpload is one submitted photo file. An empty FileName marks the
// placeholder part browsers send for an unselected file input.
type PhotoUpload struct {
	FileName string
	Data     io.Reader
}

type CreateEntryInput struct {
	UserID   string
	Title    string
	Content  string
	Location string

	// Raw form values; absent means 0.0, malformed is a client error.
	Latitude  string
	Longitude string

	Photos []PhotoUpload

	// Expenses are "category:amount" tokens in submission order.
	Expenses []string
}

// EntryCreated reports the outcome of entry assembly. Warnings list the
// attachments that degraded without failing the entry.
type EntryCreated struct {
	EntryID   string
	PhotoURLs []string
	Expenses  []string
	Warnings  []string
}

// PhotosAttached reports a standalone photo-attach batch.
type PhotosAttached struct {
	URLs     []string
	Warnings []string
}

// EntryService assembles journal entries: one text anchor plus best-effort
// photo and expense attachments.
type EntryService struct {
	entries   EntryStore
	photos    PhotoStore
	expenses  ExpenseStore
	allocator Allocator
	blob      BlobStore
	logger    *zap.Logger
}

func NewEntryService(
	entries EntryStore,
	photos PhotoStore,
	expenses ExpenseStore,
	allocator Allocator,
	blob BlobStore,
	logger *zap.Logger,
) *EntryService {
	return &EntryService{
		entries:   entries,
		photos:    photos,
		expenses:  expenses,
		allocator: allocator,
		blob:      blob,
		logger:    logger,
	}
}

// CreateEntry runs the assembly workflow. The text entry is the required
// anchor: if its insert fails nothing else is attempted. Photos and expenses
// are attached afterwards in submission order; an individual photo failure
// becomes a warning, a malformed expense token fails the whole call.
func (s *EntryService) CreateEntry(ctx context.Context, in *CreateEntryInput) (*EntryCreated, error) {
	latitude, err := parseCoordinate(in.Latitude)
	if err != nil {
		return nil, err
	}
	longitude, err := parseCoordinate(in.Longitude)
	if err != nil {
		return nil, err
	}

	entryID, err := s.allocator.Allocate(ctx, "text_entries", "entry_id")
	if err != nil {
		return nil, fmt.Errorf("failed to allocate entry id: %w", err)
	}

	entry := &models.TextEntry{
		ID:        entryID,
		UserID:    in.UserID,
		Title:     in.Title,
		Content:   in.Content,
		Location:  in.Location,
		Latitude:  latitude,
		Longitude: longitude,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}

	if err := s.entries.Insert(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to insert text entry: %w", err)
	}

	photoURLs, warnings, err := s.attachBatch(ctx, entryID, in.UserID, in.Photos)
	if err != nil {
		return nil, err
	}

	for _, token := range in.Expenses {
		if token == "" {
			continue
		}

		category, amount, err := parseExpenseToken(token)
		if err != nil {
			return nil, err
		}

		expenseID, err := s.allocator.Allocate(ctx, "expenses", "expense_id")
		if err != nil {
			return nil, fmt.Errorf("failed to allocate expense id: %w", err)
		}

		expense := &models.Expense{
			ID:        expenseID,
			EntryID:   entryID,
			UserID:    in.UserID,
			Category:  category,
			Amount:    amount,
			Currency:  "USD",
			CreatedAt: time.Now().UTC().Truncate(time.Second),
		}
		if err := s.expenses.Insert(ctx, expense); err != nil {
			s.logger.Error("Failed to insert expense",
				zap.String("entry_id", entryID),
				zap.String("expense_id", expenseID),
				zap.Error(err),
			)
			warnings = append(warnings, fmt.Sprintf("expense %q was not recorded", token))
		}
	}

	return &EntryCreated{
		EntryID:   entryID,
		PhotoURLs: photoURLs,
		Expenses:  in.Expenses,
		Warnings:  warnings,
	}, nil
}

// AttachPhotos adds photos to an existing entry. Unlike assembly, the entry
// must exist and at least one usable file must be submitted.
func (s *EntryService) AttachPhotos(ctx context.Context, entryID, userID string, uploads []PhotoUpload) (*PhotosAttached, error) {
	exists, err := s.entries.Exists(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to check entry: %w", err)
	}
	if !exists {
		return nil, ErrEntryNotFound
	}

	if len(uploads) == 0 {
		return nil, ErrNoPhoto
	}

	usable := false
	for _, up := range uploads {
		if up.FileName != "" && blobstore.AllowedImage(up.FileName) {
			usable = true
			break
		}
	}
	if !usable {
		return nil, ErrNoValidPhoto
	}

	urls, warnings, err := s.attachBatch(ctx, entryID, userID, uploads)
	if err != nil {
		return nil, err
	}

	return &PhotosAttached{URLs: urls, Warnings: warnings}, nil
}

// attachBatch uploads photos and records their metadata, best effort. A
// failed upload skips that photo; a failed metadata insert keeps the URL in
// the result and leaves a warning. Allocation errors are fatal.
func (s *EntryService) attachBatch(ctx context.Context, entryID, userID string, uploads []PhotoUpload) ([]string, []string, error) {
	var urls, warnings []string

	for _, up := range uploads {
		if up.FileName == "" || up.Data == nil {
			continue
		}
		if !blobstore.AllowedImage(up.FileName) {
			warnings = append(warnings, fmt.Sprintf("photo %q skipped: unsupported file type", up.FileName))
			continue
		}

		photoID, err := s.allocator.Allocate(ctx, "photos", "photo_id")
		if err != nil {
			return nil, nil, fmt.Errorf("failed to allocate photo id: %w", err)
		}

		url, err := s.blob.Upload(ctx, up.Data, up.FileName, blobstore.EntryPhotoPrefix, photoID)
		if err != nil {
			s.logger.Warn("Photo upload failed, skipping",
				zap.String("entry_id", entryID),
				zap.String("file", up.FileName),
				zap.Error(err),
			)
			warnings = append(warnings, fmt.Sprintf("photo %q could not be uploaded", up.FileName))
			continue
		}

		photo := &models.Photo{
			ID:         photoID,
			EntryID:    entryID,
			URL:        url,
			UserID:     userID,
			UploadedAt: time.Now().UTC().Truncate(time.Second),
		}
		if err := s.photos.Insert(ctx, photo); err != nil {
			s.logger.Error("Failed to insert photo metadata",
				zap.String("photo_id", photoID),
				zap.String("entry_id", entryID),
				zap.Error(err),
			)
			warnings = append(warnings, fmt.Sprintf("photo %q uploaded but its metadata was not recorded", up.FileName))
		}

		// The object is in the blob store either way, so the URL counts.
		urls = append(urls, url)
	}

	return urls, warnings, nil
}

func parseCoordinate(raw string) (float64, error) {
	if raw == "" {
		return 0.0, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadCoordinate, raw)
	}
	return value, nil
}

func parseExpenseToken(token string) (string, float64, error) {
	parts := strings.SplitN(token, ":", 2)
	if len(parts) != 2 {
		return "", 0, fmt.Errorf("%w: %q", ErrMalformedExpense, token)
	}

	amount, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %q", ErrMalformedExpense, token)
	}

	return parts[0], amount, nil
}
