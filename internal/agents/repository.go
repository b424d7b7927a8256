package agents

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

// Profile is a field agent's operational record. The user row carries
// identity; the profile carries dispatch eligibility.
type Profile struct {
	UserID          uuid.UUID `json:"userId"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	Email           string    `json:"email"`
	Phone           *string   `json:"phone,omitempty"`
	OperatingCity   *string   `json:"operatingCity,omitempty"`
	AccountApproved bool      `json:"accountApproved"`
	CreatedAt       time.Time `json:"createdAt"`
}

// FullName renders "First Last" for emails and activity messages.
func (p Profile) FullName() string {
	return p.FirstName + " " + p.LastName
}

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const profileSelect = `
	SELECT p.user_id, u.first_name, u.last_name, u.email, u.phone, p.operating_city, p.account_approved, p.created_at
	FROM field_agent_profiles p
	JOIN users u ON u.id = p.user_id`

type profileRowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(s profileRowScanner) (Profile, error) {
	var p Profile
	err := s.Scan(&p.UserID, &p.FirstName, &p.LastName, &p.Email, &p.Phone, &p.OperatingCity, &p.AccountApproved, &p.CreatedAt)
	return p, err
}

func (r *Repository) GetByUserID(ctx context.Context, userID uuid.UUID) (Profile, error) {
	row := r.pool.QueryRow(ctx, profileSelect+` WHERE p.user_id = $1`, userID)
	p, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Profile{}, apperr.NotFound("field agent profile not found")
		}
		return Profile{}, apperr.Internal(fmt.Sprintf("get field agent profile failed: %v", err))
	}
	return p, nil
}

func (r *Repository) List(ctx context.Context, approvedOnly bool) ([]Profile, error) {
	query := profileSelect
	if approvedOnly {
		query += ` WHERE p.account_approved = TRUE`
	}
	query += ` ORDER BY u.first_name, u.last_name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, apperr.Internal(fmt.Sprintf("list field agent profiles failed: %v", err))
	}
	defer rows.Close()

	items := make([]Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, apperr.Internal(fmt.Sprintf("scan field agent profile failed: %v", err))
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Internal(fmt.Sprintf("iterate field agent profiles failed: %v", err))
	}
	return items, nil
}

func (r *Repository) SetApproved(ctx context.Context, userID uuid.UUID, approved bool) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE field_agent_profiles
		SET account_approved = $2, updated_at = now()
		WHERE user_id = $1
	`, userID, approved)
	if err != nil {
		return apperr.Internal(fmt.Sprintf("update field agent approval failed: %v", err))
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("field agent profile not found")
	}
	return nil
}
