package repository

import (
	"context"

	"nomad-nest/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// PhotoFilter selects photo rows by any combination of photo, entry and
// user identifiers, AND-combined.
type PhotoFilter struct {
	PhotoID *string
	EntryID *string
	UserID  *string
}

func (f PhotoFilter) HasAny() bool {
	return f.PhotoID != nil || f.EntryID != nil || f.UserID != nil
}

func (f PhotoFilter) conditions() squirrel.And {
	conditions := squirrel.And{}
	if f.PhotoID != nil {
		conditions = append(conditions, squirrel.Eq{"photo_id": *f.PhotoID})
	}
	if f.EntryID != nil {
		conditions = append(conditions, squirrel.Eq{"entry_id": *f.EntryID})
	}
	if f.UserID != nil {
		conditions = append(conditions, squirrel.Eq{"user_id": *f.UserID})
	}
	return conditions
}

type PhotoRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewPhotoRepository(db *pgxpool.Pool, logger *zap.Logger) *PhotoRepository {
	return &PhotoRepository{
		db:     db,
		logger: logger,
	}
}

func (r *PhotoRepository) Insert(ctx context.Context, photo *models.Photo) error {
	query := squirrel.Insert("photos").
		Columns("photo_id", "entry_id", "photo_url", "user_id", "uploaded_at").
		Values(photo.ID, photo.EntryID, photo.URL, photo.UserID, photo.UploadedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *PhotoRepository) List(ctx context.Context, filter PhotoFilter) ([]*models.Photo, error) {
	query := squirrel.Select("photo_id", "entry_id", "photo_url", "user_id", "uploaded_at").
		From("photos").
		Where(filter.conditions()).
		OrderBy("uploaded_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var photos []*models.Photo
	for rows.Next() {
		var photo models.Photo
		if err := rows.Scan(
			&photo.ID, &photo.EntryID, &photo.URL, &photo.UserID, &photo.UploadedAt,
		); err != nil {
			return nil, err
		}
		photos = append(photos, &photo)
	}

	return photos, rows.Err()
}

// Delete removes every photo row matching the filter in one statement.
func (r *PhotoRepository) Delete(ctx context.Context, filter PhotoFilter) error {
	query := squirrel.Delete("photos").
		Where(filter.conditions()).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}
