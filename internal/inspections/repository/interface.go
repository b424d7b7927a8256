package repository

import (
	"context"
	"time"

	"estatehub_backend/internal/inspections/domain"

	"github.com/google/uuid"
)

// UserSummary is the hydrated view of a participant on an inspection request.
type UserSummary struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone,omitempty"`
}

// FullName renders "First Last" for email templates.
func (u UserSummary) FullName() string {
	return u.FirstName + " " + u.LastName
}

// PropertySummary is the hydrated view of the property under inspection.
type PropertySummary struct {
	ID      uuid.UUID `json:"id"`
	Title   string    `json:"title"`
	Address string    `json:"address"`
	City    string    `json:"city"`
}

// TransactionSummary is the hydrated view of the linked payment transaction.
type TransactionSummary struct {
	ID        uuid.UUID `json:"id"`
	Reference string    `json:"reference"`
	Status    string    `json:"status"`
}

// ReportPhoto is a field-agent photo attached to the inspection report.
type ReportPhoto struct {
	ID           uuid.UUID  `json:"id"`
	InspectionID uuid.UUID  `json:"inspectionId"`
	URL          string     `json:"url"`
	CapturedAt   *time.Time `json:"capturedAt,omitempty"`
	UploadedAt   time.Time  `json:"uploadedAt"`
}

// InspectionRecord is the fully hydrated aggregate returned by reads.
// Ownership stays with the inspection request holding foreign keys; the
// summaries are read-time joins.
type InspectionRecord struct {
	domain.InspectionRequest

	Buyer       UserSummary
	Seller      UserSummary
	Agent       *UserSummary
	Property    PropertySummary
	Transaction *TransactionSummary

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ListParams filters the admin inspection listing.
type ListParams struct {
	Status   *domain.Status
	Stage    *domain.Stage
	Page     int
	PageSize int
}

// Reader provides read operations on inspection requests.
type Reader interface {
	GetByID(ctx context.Context, id uuid.UUID) (InspectionRecord, error)
	List(ctx context.Context, params ListParams) ([]InspectionRecord, int, error)
	ListByAgent(ctx context.Context, agentUserID uuid.UUID) ([]InspectionRecord, error)
	ListReportPhotos(ctx context.Context, inspectionID uuid.UUID) ([]ReportPhoto, error)
}

// Writer provides write operations on inspection requests.
type Writer interface {
	// Save persists the mutable transition state of the aggregate in a single
	// statement (all-or-nothing per call).
	Save(ctx context.Context, r domain.InspectionRequest) error

	// AttachAgent sets the forward reference and inserts the agent's
	// back-reference row in one database transaction.
	AttachAgent(ctx context.Context, inspectionID, agentUserID uuid.UUID) error

	// DetachAgent clears the forward reference and deletes the agent's
	// back-reference row in one database transaction.
	DetachAgent(ctx context.Context, inspectionID, agentUserID uuid.UUID) error

	// DeleteCascade removes the agent back-reference (if any), the linked
	// transaction row (if any), and the request itself in one database
	// transaction. No orphans survive a successful call.
	DeleteCascade(ctx context.Context, inspectionID uuid.UUID, transactionID *uuid.UUID) error

	SetLetterOfIntention(ctx context.Context, inspectionID uuid.UUID, url string) error
	AddReportPhoto(ctx context.Context, inspectionID uuid.UUID, url string, capturedAt *time.Time) (ReportPhoto, error)
}

// Repository combines all inspection request persistence operations.
type Repository interface {
	Reader
	Writer
}
