package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"nomad-nest/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// EntryFilter carries the optional entry search parameters, AND-combined.
type EntryFilter struct {
	UserID    *string
	EntryID   *string
	Location  *string
	Title     *string
	Latitude  *float64
	Longitude *float64
}

func (f EntryFilter) HasAny() bool {
	return f.UserID != nil || f.EntryID != nil || f.Location != nil ||
		f.Title != nil || f.Latitude != nil || f.Longitude != nil
}

type EntryRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewEntryRepository(db *pgxpool.Pool, logger *zap.Logger) *EntryRepository {
	return &EntryRepository{
		db:     db,
		logger: logger,
	}
}

func (r *EntryRepository) Insert(ctx context.Context, entry *models.TextEntry) error {
	query := squirrel.Insert("text_entries").
		Columns("entry_id", "user_id", "title", "content", "location", "latitude", "longitude", "created_at").
		Values(entry.ID, entry.UserID, entry.Title, entry.Content, entry.Location, entry.Latitude, entry.Longitude, entry.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *EntryRepository) Exists(ctx context.Context, entryID string) (bool, error) {
	query := squirrel.Select("COUNT(*)").
		From("text_entries").
		Where(squirrel.Eq{"entry_id": entryID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return false, err
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return false, err
	}

	return count > 0, nil
}

// List returns entries newest first, each aggregated with its photo URLs,
// expense lines and an author snapshot. Child rows are collected through
// lateral subqueries so photos and expenses do not cross-multiply, and the
// left joins never produce placeholder nulls inside the aggregates.
func (r *EntryRepository) List(ctx context.Context, filter EntryFilter) ([]*models.EntryDetails, error) {
	query := squirrel.Select(
		"t.entry_id", "t.user_id", "t.title", "t.content", "t.location",
		"t.latitude", "t.longitude", "t.created_at",
		"u.full_name", "u.profile_pic_url",
		"COALESCE(ph.urls, '{}') AS photo_urls",
		"COALESCE(ex.items, '[]'::jsonb) AS expense_items",
	).
		From("text_entries t").
		LeftJoin("users u ON u.user_id = t.user_id").
		LeftJoin(`LATERAL (
			SELECT array_agg(p.photo_url ORDER BY p.uploaded_at) AS urls
			FROM photos p WHERE p.entry_id = t.entry_id
		) ph ON true`).
		LeftJoin(`LATERAL (
			SELECT jsonb_agg(jsonb_build_object(
				'category', e.category,
				'amount', e.amount,
				'currency', e.currency
			) ORDER BY e.created_at) AS items
			FROM expenses e WHERE e.entry_id = t.entry_id
		) ex ON true`).
		OrderBy("t.created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if filter.UserID != nil {
		query = query.Where(squirrel.Eq{"t.user_id": *filter.UserID})
	}
	if filter.EntryID != nil {
		query = query.Where(squirrel.Eq{"t.entry_id": *filter.EntryID})
	}
	if filter.Location != nil {
		query = query.Where(squirrel.ILike{"t.location": "%" + *filter.Location + "%"})
	}
	if filter.Title != nil {
		query = query.Where(squirrel.ILike{"t.title": "%" + *filter.Title + "%"})
	}
	if filter.Latitude != nil {
		query = query.Where(squirrel.Eq{"t.latitude": *filter.Latitude})
	}
	if filter.Longitude != nil {
		query = query.Where(squirrel.Eq{"t.longitude": *filter.Longitude})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.EntryDetails
	for rows.Next() {
		var entry models.EntryDetails
		var expenseItems []byte
		if err := rows.Scan(
			&entry.ID, &entry.UserID, &entry.Title, &entry.Content, &entry.Location,
			&entry.Latitude, &entry.Longitude, &entry.CreatedAt,
			&entry.AuthorName, &entry.AuthorPic,
			&entry.PhotoURLs, &expenseItems,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(expenseItems, &entry.Expenses); err != nil {
			return nil, fmt.Errorf("failed to decode expense lines for entry %s: %w", entry.ID, err)
		}
		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}
