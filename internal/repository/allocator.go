package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// allocatorColumns whitelists the table/column pairs identifiers may be
// allocated for. Table and column names end up in SQL text, so anything
// outside this map is rejected.
var allocatorColumns = map[string]string{
	"users":        "user_id",
	"text_entries": "entry_id",
	"photos":       "photo_id",
	"expenses":     "expense_id",
}

// IDAllocator hands out random 128-bit identifiers, probing the target table
// for collisions before accepting one. The schema's primary keys close the
// residual check-then-insert race.
type IDAllocator struct {
	db     *pgxpool.Pool
	logger *zap.Logger

	// seams for tests
	newID  func() string
	exists func(ctx context.Context, table, column, value string) (bool, error)
}

func NewIDAllocator(db *pgxpool.Pool, logger *zap.Logger) *IDAllocator {
	a := &IDAllocator{
		db:     db,
		logger: logger,
		newID:  uuid.NewString,
	}
	a.exists = a.idExists
	return a
}

// Allocate returns an identifier that does not yet exist in table.column.
// Store errors abort allocation; nothing is reserved until the caller
// inserts the row.
func (a *IDAllocator) Allocate(ctx context.Context, table, column string) (string, error) {
	if allocatorColumns[table] != column {
		return "", fmt.Errorf("id allocation not supported for %s.%s", table, column)
	}

	for {
		id := a.newID()
		taken, err := a.exists(ctx, table, column, id)
		if err != nil {
			return "", fmt.Errorf("failed to check %s.%s for %q: %w", table, column, id, err)
		}
		if !taken {
			return id, nil
		}
		a.logger.Warn("Identifier collision, regenerating",
			zap.String("table", table),
			zap.String("id", id),
		)
	}
}

func (a *IDAllocator) idExists(ctx context.Context, table, column, value string) (bool, error) {
	query := squirrel.Select("COUNT(*)").
		From(table).
		Where(squirrel.Eq{column: value}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return false, err
	}

	var count int
	if err := a.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return false, err
	}

	return count > 0, nil
}
