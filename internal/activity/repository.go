package activity

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Entry is a single append-only record of something that happened on an
// inspection request. Entries are never updated or deleted.
type Entry struct {
	ID           uuid.UUID      `json:"id"`
	InspectionID uuid.UUID      `json:"inspectionId"`
	PropertyID   uuid.UUID      `json:"propertyId"`
	SenderID     *uuid.UUID     `json:"senderId,omitempty"`
	SenderRole   string         `json:"senderRole"`
	Message      string         `json:"message"`
	Status       string         `json:"status"`
	Stage        string         `json:"stage"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
}

// CreateParams carries the fields for one new activity entry.
type CreateParams struct {
	InspectionID uuid.UUID  `validate:"required"`
	PropertyID   uuid.UUID  `validate:"required"`
	SenderID     *uuid.UUID `validate:"omitempty"`
	SenderRole   string     `validate:"required,oneof=admin field_agent buyer seller system"`
	Message      string     `validate:"required"`
	Status       string     `validate:"required"`
	Stage        string     `validate:"required"`
	Metadata     map[string]any
}

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Create(ctx context.Context, p CreateParams) (Entry, error) {
	metadataJSON, err := json.Marshal(p.Metadata)
	if err != nil {
		return Entry{}, err
	}

	var e Entry
	// metadata is excluded from RETURNING: we already hold p.Metadata as a Go
	// value and re-scanning the stored JSONB would be a redundant roundtrip.
	err = r.pool.QueryRow(ctx, `
		INSERT INTO inspection_activity_logs (
			inspection_id,
			property_id,
			sender_id,
			sender_role,
			message,
			status,
			stage,
			metadata
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, inspection_id, property_id, sender_id, sender_role, message, status, stage, created_at
	`, p.InspectionID, p.PropertyID, p.SenderID, p.SenderRole, p.Message, p.Status, p.Stage, metadataJSON).Scan(
		&e.ID,
		&e.InspectionID,
		&e.PropertyID,
		&e.SenderID,
		&e.SenderRole,
		&e.Message,
		&e.Status,
		&e.Stage,
		&e.CreatedAt,
	)
	if err != nil {
		return Entry{}, err
	}

	e.Metadata = p.Metadata
	return e, nil
}

type entryRowScanner interface {
	Scan(dest ...any) error
}

// scanEntry populates an Entry from a standard SELECT row. Column order must
// be: id, inspection_id, property_id, sender_id, sender_role, message, status,
// stage, metadata, created_at.
func scanEntry(s entryRowScanner) (Entry, error) {
	var e Entry
	var rawMetadata []byte
	if err := s.Scan(
		&e.ID,
		&e.InspectionID,
		&e.PropertyID,
		&e.SenderID,
		&e.SenderRole,
		&e.Message,
		&e.Status,
		&e.Stage,
		&rawMetadata,
		&e.CreatedAt,
	); err != nil {
		return Entry{}, err
	}
	if len(rawMetadata) > 0 {
		_ = json.Unmarshal(rawMetadata, &e.Metadata)
	}
	return e, nil
}

const entrySelectCols = `
	id, inspection_id, property_id, sender_id, sender_role, message, status, stage, metadata, created_at`

// ListByInspection returns the full history for one inspection request,
// oldest first so the log reads top to bottom.
func (r *Repository) ListByInspection(ctx context.Context, inspectionID uuid.UUID) ([]Entry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT`+entrySelectCols+`
		FROM inspection_activity_logs
		WHERE inspection_id = $1
		ORDER BY created_at ASC
	`, inspectionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]Entry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
