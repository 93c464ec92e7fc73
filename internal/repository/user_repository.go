package repository

import (
	"context"
	"errors"

	"nomad-nest/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// UserFilter carries the optional user search parameters. Conditions are
// OR-combined: a match on any of them returns the user.
type UserFilter struct {
	ID    *string
	Email *string
	Name  *string
}

func (f UserFilter) HasAny() bool {
	return f.ID != nil || f.Email != nil || f.Name != nil
}

type UserRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewUserRepository(db *pgxpool.Pool, logger *zap.Logger) *UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

func (r *UserRepository) Insert(ctx context.Context, user *models.User) error {
	query := squirrel.Insert("users").
		Columns("user_id", "email", "password_hash", "full_name", "profile_pic_url", "created_at").
		Values(user.ID, user.Email, user.PasswordHash, user.FullName, user.ProfilePicURL, user.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := squirrel.Select("user_id", "email", "password_hash", "full_name", "profile_pic_url", "created_at").
		From("users").
		Where(squirrel.Eq{"email": email}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var user models.User
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.FullName, &user.ProfilePicURL, &user.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *UserRepository) List(ctx context.Context) ([]*models.User, error) {
	query := squirrel.Select("user_id", "email", "password_hash", "full_name", "profile_pic_url", "created_at").
		From("users").
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	return r.scanUsers(ctx, sql, args...)
}

func (r *UserRepository) Search(ctx context.Context, filter UserFilter) ([]*models.User, error) {
	conditions := squirrel.Or{}
	if filter.ID != nil {
		conditions = append(conditions, squirrel.Eq{"user_id": *filter.ID})
	}
	if filter.Email != nil {
		conditions = append(conditions, squirrel.Eq{"email": *filter.Email})
	}
	if filter.Name != nil {
		conditions = append(conditions, squirrel.ILike{"full_name": "%" + *filter.Name + "%"})
	}

	query := squirrel.Select("user_id", "email", "password_hash", "full_name", "profile_pic_url", "created_at").
		From("users").
		Where(conditions).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	return r.scanUsers(ctx, sql, args...)
}

func (r *UserRepository) scanUsers(ctx context.Context, sql string, args ...any) ([]*models.User, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.ID, &user.Email, &user.PasswordHash, &user.FullName, &user.ProfilePicURL, &user.CreatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, &user)
	}

	return users, rows.Err()
}
