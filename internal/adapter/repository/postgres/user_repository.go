package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/api-sage/core-banking/internal/commons"
	"github.com/api-sage/core-banking/internal/domain"
)

type UserRepository struct {
	db querier
}

func NewUserRepository(db querier) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, username, password_hash, first_name, last_name, is_active, created_at, updated_at`

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	const query = `
INSERT INTO users (
	email,
	username,
	password_hash,
	first_name,
	last_name,
	is_active
) VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, created_at, updated_at`

	if err := r.db.QueryRowContext(
		ctx,
		query,
		strings.ToLower(user.Email),
		user.Username,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.IsActive,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, fmt.Errorf("email or username already in use: %w", commons.ErrValidation)
		}
		return domain.User{}, fmt.Errorf("create user: %w", classifyError(err))
	}

	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, strings.ToLower(email)))
}

func (r *UserRepository) scanUser(row *sql.Row) (domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, commons.ErrRecordNotFound
		}
		return domain.User{}, fmt.Errorf("scan user: %w", classifyError(err))
	}
	return user, nil
}
