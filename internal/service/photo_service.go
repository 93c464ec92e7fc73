package service

import (
	"context"
	"fmt"

	"nomad-nest/internal/models"
	"nomad-nest/internal/repository"
	"nomad-nest/pkg/blobstore"

	"go.uber.org/zap"
)

// PhotosDeleted reports a cascading deletion batch. DeletedIDs lists every
// photo whose metadata row was removed; Errors lists the blob deletions that
// failed along the way. Both can be populated at once: that is the partial
// success case.
type PhotosDeleted struct {
	DeletedIDs []string
	Errors     []string
}

func (r *PhotosDeleted) Partial() bool {
	return len(r.Errors) > 0
}

// PhotoService lists photos and removes them from both stores.
type PhotoService struct {
	photos PhotoStore
	blob   BlobStore
	logger *zap.Logger
}

func NewPhotoService(photos PhotoStore, blob BlobStore, logger *zap.Logger) *PhotoService {
	return &PhotoService{
		photos: photos,
		blob:   blob,
		logger: logger,
	}
}

func (s *PhotoService) ListPhotos(ctx context.Context, filter repository.PhotoFilter) ([]*models.Photo, error) {
	if !filter.HasAny() {
		return nil, ErrNoFilter
	}

	photos, err := s.photos.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}
	return photos, nil
}

// DeletePhotos removes every photo matching the filter from the blob store
// and then drops the metadata rows in one sweep. A failed blob deletion is
// recorded and never blocks the remaining photos or the metadata delete:
// the result enumerates what succeeded and what did not.
func (s *PhotoService) DeletePhotos(ctx context.Context, filter repository.PhotoFilter) (*PhotosDeleted, error) {
	if !filter.HasAny() {
		return nil, ErrNoFilter
	}

	photos, err := s.photos.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find photos: %w", err)
	}

	result := &PhotosDeleted{}
	for _, photo := range photos {
		key := blobstore.KeyFromURL(photo.URL, blobstore.EntryPhotoPrefix)
		if err := s.blob.Delete(ctx, key); err != nil {
			s.logger.Warn("Blob deletion failed",
				zap.String("photo_id", photo.ID),
				zap.String("key", key),
				zap.Error(err),
			)
			result.Errors = append(result.Errors, fmt.Sprintf("photo %s: %v", photo.ID, err))
		}
	}

	if len(photos) > 0 {
		if err := s.photos.Delete(ctx, filter); err != nil {
			return nil, fmt.Errorf("failed to delete photo records: %w", err)
		}
		for _, photo := range photos {
			result.DeletedIDs = append(result.DeletedIDs, photo.ID)
		}
	}

	return result, nil
}
