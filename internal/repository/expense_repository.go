package repository

import (
	"context"
	"errors"
	"time"

	"nomad-nest/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// ExpenseUpdate lists the fields an update may change; nil fields are left
// untouched.
type ExpenseUpdate struct {
	Amount   *float64
	Category *string
	Currency *string
}

func (u ExpenseUpdate) HasAny() bool {
	return u.Amount != nil || u.Category != nil || u.Currency != nil
}

// ExpenseFilter carries the optional expense search parameters, AND-combined.
type ExpenseFilter struct {
	EntryID  *string
	UserID   *string
	Category *string
}

func (f ExpenseFilter) HasAny() bool {
	return f.EntryID != nil || f.UserID != nil || f.Category != nil
}

// ExpenseRepository persists expense line items. Updates and deletes honor
// the store's write-settle window: rows younger than settleWindow are
// reported as ErrWriteBuffered instead of being silently skipped.
type ExpenseRepository struct {
	db           *pgxpool.Pool
	settleWindow time.Duration
	logger       *zap.Logger
}

func NewExpenseRepository(db *pgxpool.Pool, settleWindow time.Duration, logger *zap.Logger) *ExpenseRepository {
	return &ExpenseRepository{
		db:           db,
		settleWindow: settleWindow,
		logger:       logger,
	}
}

func (r *ExpenseRepository) Insert(ctx context.Context, expense *models.Expense) error {
	query := squirrel.Insert("expenses").
		Columns("expense_id", "entry_id", "user_id", "category", "amount", "currency", "created_at").
		Values(expense.ID, expense.EntryID, expense.UserID, expense.Category, expense.Amount, expense.Currency, expense.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// Update changes the given fields of one expense, scoped to its owning
// entry. All values travel as bound parameters.
func (r *ExpenseRepository) Update(ctx context.Context, entryID, expenseID string, upd ExpenseUpdate) error {
	query := squirrel.Update("expenses").
		Where(squirrel.Eq{"expense_id": expenseID, "entry_id": entryID}).
		PlaceholderFormat(squirrel.Dollar)

	if upd.Amount != nil {
		query = query.Set("amount", *upd.Amount)
	}
	if upd.Category != nil {
		query = query.Set("category", *upd.Category)
	}
	if upd.Currency != nil {
		query = query.Set("currency", *upd.Currency)
	}
	query = r.settled(query)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return r.missOutcome(ctx, squirrel.Eq{"expense_id": expenseID, "entry_id": entryID})
	}

	return nil
}

func (r *ExpenseRepository) DeleteByID(ctx context.Context, expenseID string) error {
	query := r.settledDelete(squirrel.Eq{"expense_id": expenseID})

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return r.missOutcome(ctx, squirrel.Eq{"expense_id": expenseID})
	}

	return nil
}

// DeleteByEntry removes every expense of an entry. Having nothing to delete
// is not an error, but leaving rows behind because they are still buffered is.
func (r *ExpenseRepository) DeleteByEntry(ctx context.Context, entryID string) error {
	query := r.settledDelete(squirrel.Eq{"entry_id": entryID})

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return err
	}

	if r.settleWindow > 0 {
		remaining, err := r.countBuffered(ctx, squirrel.Eq{"entry_id": entryID})
		if err != nil {
			return err
		}
		if remaining > 0 {
			return ErrWriteBuffered
		}
	}

	return nil
}

// Search returns expenses joined with their owning entry and its author,
// newest entry first.
func (r *ExpenseRepository) Search(ctx context.Context, filter ExpenseFilter) ([]*models.ExpenseDetails, error) {
	query := squirrel.Select(
		"e.expense_id", "e.entry_id", "e.user_id", "e.category", "e.amount", "e.currency", "e.created_at",
		"t.title", "t.location", "t.created_at",
		"u.full_name", "u.profile_pic_url",
	).
		From("expenses e").
		Join("text_entries t ON e.entry_id = t.entry_id").
		LeftJoin("users u ON t.user_id = u.user_id").
		OrderBy("t.created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if filter.EntryID != nil {
		query = query.Where(squirrel.Eq{"e.entry_id": *filter.EntryID})
	}
	if filter.UserID != nil {
		query = query.Where(squirrel.Eq{"e.user_id": *filter.UserID})
	}
	if filter.Category != nil {
		query = query.Where(squirrel.Eq{"e.category": *filter.Category})
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

	var expenses []*models.ExpenseDetails
	for rows.Next() {
		var exp models.ExpenseDetails
		if err := rows.Scan(
			&exp.ID, &exp.EntryID, &exp.UserID, &exp.Category, &exp.Amount, &exp.Currency, &exp.CreatedAt,
			&exp.EntryTitle, &exp.EntryLocation, &exp.EntryCreatedAt,
			&exp.AuthorName, &exp.AuthorPic,
		); err != nil {
			return nil, err
		}
		expenses = append(expenses, &exp)
	}

	return expenses, rows.Err()
}

func (r *ExpenseRepository) settled(query squirrel.UpdateBuilder) squirrel.UpdateBuilder {
	if r.settleWindow > 0 {
		query = query.Where(squirrel.Expr(
			"created_at <= now() - make_interval(secs => ?)", r.settleWindow.Seconds(),
		))
	}
	return query
}

func (r *ExpenseRepository) settledDelete(where squirrel.Eq) squirrel.DeleteBuilder {
	query := squirrel.Delete("expenses").
		Where(where).
		PlaceholderFormat(squirrel.Dollar)
	if r.settleWindow > 0 {
		query = query.Where(squirrel.Expr(
			"created_at <= now() - make_interval(secs => ?)", r.settleWindow.Seconds(),
		))
	}
	return query
}

// missOutcome decides why a settle-window-guarded write touched zero rows:
// the row does not exist, or it is still inside the window.
func (r *ExpenseRepository) missOutcome(ctx context.Context, where squirrel.Eq) error {
	query := squirrel.Select("created_at").
		From("expenses").
		Where(where).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	var createdAt time.Time
	err = r.db.QueryRow(ctx, sql, args...).Scan(&createdAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if r.settleWindow > 0 && time.Since(createdAt) < r.settleWindow {
		return ErrWriteBuffered
	}
	return ErrNotFound
}

func (r *ExpenseRepository) countBuffered(ctx context.Context, where squirrel.Eq) (int, error) {
	query := squirrel.Select("COUNT(*)").
		From("expenses").
		Where(where).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
