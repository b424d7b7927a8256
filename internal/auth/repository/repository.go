package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"estatehub_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// User is an account row. Role is one of admin, buyer, seller, field_agent.
type User struct {
	ID           uuid.UUID
	FirstName    string
	LastName     string
	Email        string
	Phone        *string
	Role         string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const userSelect = `
	SELECT id, first_name, last_name, email, phone, role, password_hash, created_at, updated_at
	FROM users`

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Phone, &u.Role, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, userSelect+` WHERE lower(email) = lower($1)`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, apperr.NotFound("user not found")
		}
		return User{}, apperr.Internal(fmt.Sprintf("get user by email failed: %v", err))
	}
	return u, nil
}

func (r *Repository) GetUserByID(ctx context.Context, id uuid.UUID) (User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, userSelect+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, apperr.NotFound("user not found")
		}
		return User{}, apperr.Internal(fmt.Sprintf("get user by id failed: %v", err))
	}
	return u, nil
}

func (r *Repository) CreateRefreshToken(ctx context.Context, userID uuid.UUID, fingerprint string, expiresAt time.Time) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO refresh_tokens (user_id, token_hash, expires_at)
		VALUES ($1, $2, $3)
	`, userID, fingerprint, expiresAt)
	if err != nil {
		return apperr.Internal(fmt.Sprintf("create refresh token failed: %v", err))
	}
	return nil
}

func (r *Repository) GetRefreshToken(ctx context.Context, fingerprint string) (uuid.UUID, time.Time, error) {
	var userID uuid.UUID
	var expiresAt time.Time
	err := r.pool.QueryRow(ctx, `
		SELECT user_id, expires_at
		FROM refresh_tokens
		WHERE token_hash = $1
	`, fingerprint).Scan(&userID, &expiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, time.Time{}, apperr.NotFound("refresh token not found")
		}
		return uuid.Nil, time.Time{}, apperr.Internal(fmt.Sprintf("get refresh token failed: %v", err))
	}
	return userID, expiresAt, nil
}

func (r *Repository) RevokeRefreshToken(ctx context.Context, fingerprint string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM refresh_tokens WHERE token_hash = $1`, fingerprint)
	if err != nil {
		return apperr.Internal(fmt.Sprintf("revoke refresh token failed: %v", err))
	}
	return nil
}

func (r *Repository) RevokeAllRefreshTokens(ctx context.Context, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM refresh_tokens WHERE user_id = $1`, userID)
	if err != nil {
		return apperr.Internal(fmt.Sprintf("revoke all refresh tokens failed: %v", err))
	}
	return nil
}
