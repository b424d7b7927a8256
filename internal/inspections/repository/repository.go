package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"estatehub_backend/internal/inspections/domain"
	"estatehub_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const inspectionNotFoundMessage = "inspection request not found"

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new inspection request repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

const selectRecordColumns = `
	i.id, i.property_id, i.buyer_id, i.seller_id, i.transaction_id,
	i.status, i.stage, i.pending_response_from,
	i.inspection_type, i.is_negotiating, i.negotiation_price,
	i.is_loi, i.letter_of_intention_url, i.approve_loi,
	i.assigned_field_agent,
	i.inspection_date, i.inspection_time, i.inspection_mode,
	i.report_status, i.report_buyer_present, i.report_seller_present,
	i.report_buyer_interest, i.report_notes, i.report_was_successful,
	i.report_started_at, i.report_completed_at, i.report_submitted_at,
	i.created_at, i.updated_at,
	bu.id, bu.first_name, bu.last_name, bu.email, bu.phone,
	se.id, se.first_name, se.last_name, se.email, se.phone,
	ag.id, ag.first_name, ag.last_name, ag.email, ag.phone,
	p.id, p.title, p.address, p.city,
	t.id, t.reference, t.status`

const selectRecordJoins = `
	FROM inspection_requests i
	JOIN users bu ON bu.id = i.buyer_id
	JOIN users se ON se.id = i.seller_id
	LEFT JOIN users ag ON ag.id = i.assigned_field_agent
	JOIN properties p ON p.id = i.property_id
	LEFT JOIN transactions t ON t.id = i.transaction_id`

// rowScanner is satisfied by pgx.Rows and pgx.Row so scanRecord can be shared
// between single-row and multi-row queries.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(s rowScanner) (InspectionRecord, error) {
	var rec InspectionRecord
	var agentID *uuid.UUID
	var agentFirst, agentLast, agentEmail *string
	var agentPhone *string
	var txID *uuid.UUID
	var txRef, txStatus *string

	err := s.Scan(
		&rec.ID, &rec.PropertyID, &rec.BuyerID, &rec.SellerID, &rec.TransactionID,
		&rec.Status, &rec.Stage, &rec.PendingResponseFrom,
		&rec.InspectionType, &rec.IsNegotiating, &rec.NegotiationPrice,
		&rec.IsLOI, &rec.LetterOfIntentionURL, &rec.ApproveLOI,
		&rec.AssignedFieldAgentID,
		&rec.InspectionDate, &rec.InspectionTime, &rec.InspectionMode,
		&rec.Report.Status, &rec.Report.BuyerPresent, &rec.Report.SellerPresent,
		&rec.Report.BuyerInterest, &rec.Report.Notes, &rec.Report.WasSuccessful,
		&rec.Report.InspectionStartedAt, &rec.Report.InspectionCompletedAt, &rec.Report.SubmittedAt,
		&rec.CreatedAt, &rec.UpdatedAt,
		&rec.Buyer.ID, &rec.Buyer.FirstName, &rec.Buyer.LastName, &rec.Buyer.Email, &rec.Buyer.Phone,
		&rec.Seller.ID, &rec.Seller.FirstName, &rec.Seller.LastName, &rec.Seller.Email, &rec.Seller.Phone,
		&agentID, &agentFirst, &agentLast, &agentEmail, &agentPhone,
		&rec.Property.ID, &rec.Property.Title, &rec.Property.Address, &rec.Property.City,
		&txID, &txRef, &txStatus,
	)
	if err != nil {
		return InspectionRecord{}, err
	}

	if agentID != nil {
		rec.Agent = &UserSummary{
			ID:    *agentID,
			Email: deref(agentEmail),
			Phone: agentPhone,
		}
		rec.Agent.FirstName = deref(agentFirst)
		rec.Agent.LastName = deref(agentLast)
	}
	if txID != nil {
		rec.Transaction = &TransactionSummary{
			ID:        *txID,
			Reference: deref(txRef),
			Status:    deref(txStatus),
		}
	}

	return rec, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// GetByID retrieves a fully hydrated inspection request.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (InspectionRecord, error) {
	query := `SELECT ` + selectRecordColumns + selectRecordJoins + ` WHERE i.id = $1`

	rec, err := scanRecord(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return InspectionRecord{}, apperr.NotFound(inspectionNotFoundMessage)
		}
		return InspectionRecord{}, fmt.Errorf("get inspection request by id: %w", err)
	}
	return rec, nil
}

// List retrieves inspection requests with optional status/stage filters.
func (r *Repo) List(ctx context.Context, params ListParams) ([]InspectionRecord, int, error) {
	page := params.Page
	if page < 1 {
		page = 1
	}
	pageSize := params.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	var statusParam, stageParam interface{}
	if params.Status != nil {
		statusParam = string(*params.Status)
	}
	if params.Stage != nil {
		stageParam = string(*params.Stage)
	}

	var total int
	countQuery := `
		SELECT COUNT(*) FROM inspection_requests i
		WHERE ($1::text IS NULL OR i.status = $1)
			AND ($2::text IS NULL OR i.stage = $2)`
	if err := r.pool.QueryRow(ctx, countQuery, statusParam, stageParam).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count inspection requests: %w", err)
	}

	query := `SELECT ` + selectRecordColumns + selectRecordJoins + `
		WHERE ($1::text IS NULL OR i.status = $1)
			AND ($2::text IS NULL OR i.stage = $2)
		ORDER BY i.created_at DESC
		LIMIT $3 OFFSET $4`

	rows, err := r.pool.Query(ctx, query, statusParam, stageParam, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("list inspection requests: %w", err)
	}
	defer rows.Close()

	records, err := collectRecords(rows)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// ListByAgent retrieves the inspection requests assigned to a field agent.
func (r *Repo) ListByAgent(ctx context.Context, agentUserID uuid.UUID) ([]InspectionRecord, error) {
	query := `SELECT ` + selectRecordColumns + selectRecordJoins + `
		WHERE i.assigned_field_agent = $1
		ORDER BY i.inspection_date ASC NULLS LAST, i.created_at DESC`

	rows, err := r.pool.Query(ctx, query, agentUserID)
	if err != nil {
		return nil, fmt.Errorf("list inspection requests by agent: %w", err)
	}
	defer rows.Close()

	return collectRecords(rows)
}

func collectRecords(rows pgx.Rows) ([]InspectionRecord, error) {
	records := make([]InspectionRecord, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inspection request: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate inspection requests: %w", err)
	}
	return records, nil
}

// Save persists the mutable transition state of the aggregate.
func (r *Repo) Save(ctx context.Context, req domain.InspectionRequest) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE inspection_requests SET
			status = $2,
			stage = $3,
			pending_response_from = $4,
			is_negotiating = $5,
			is_loi = $6,
			approve_loi = $7,
			report_status = $8,
			report_buyer_present = $9,
			report_seller_present = $10,
			report_buyer_interest = $11,
			report_notes = $12,
			report_was_successful = $13,
			report_started_at = $14,
			report_completed_at = $15,
			report_submitted_at = $16,
			updated_at = now()
		WHERE id = $1`,
		req.ID,
		req.Status, req.Stage, req.PendingResponseFrom,
		req.IsNegotiating, req.IsLOI, req.ApproveLOI,
		req.Report.Status, req.Report.BuyerPresent, req.Report.SellerPresent,
		req.Report.BuyerInterest, req.Report.Notes, req.Report.WasSuccessful,
		req.Report.InspectionStartedAt, req.Report.InspectionCompletedAt, req.Report.SubmittedAt,
	)
	if err != nil {
		return fmt.Errorf("save inspection request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(inspectionNotFoundMessage)
	}
	return nil
}

// AttachAgent sets the forward reference and the agent back-reference atomically.
func (r *Repo) AttachAgent(ctx context.Context, inspectionID, agentUserID uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("attach agent begin: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE inspection_requests
		SET assigned_field_agent = $2, updated_at = now()
		WHERE id = $1 AND assigned_field_agent IS NULL`,
		inspectionID, agentUserID,
	)
	if err != nil {
		return fmt.Errorf("attach agent update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.Conflict("a field agent is already assigned to the inspection")
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO field_agent_assignments (agent_user_id, inspection_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`,
		agentUserID, inspectionID,
	); err != nil {
		return fmt.Errorf("attach agent back-reference: %w", err)
	}

	return tx.Commit(ctx)
}

// DetachAgent clears the forward reference and the agent back-reference atomically.
func (r *Repo) DetachAgent(ctx context.Context, inspectionID, agentUserID uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("detach agent begin: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE inspection_requests
		SET assigned_field_agent = NULL, updated_at = now()
		WHERE id = $1 AND assigned_field_agent = $2`,
		inspectionID, agentUserID,
	)
	if err != nil {
		return fmt.Errorf("detach agent update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.Conflict("no field agent is assigned to the inspection")
	}

	if _, err := tx.Exec(ctx, `
		DELETE FROM field_agent_assignments
		WHERE agent_user_id = $1 AND inspection_id = $2`,
		agentUserID, inspectionID,
	); err != nil {
		return fmt.Errorf("detach agent back-reference: %w", err)
	}

	return tx.Commit(ctx)
}

// DeleteCascade hard-deletes the request, its agent back-reference rows, and
// the linked transaction in one transaction.
func (r *Repo) DeleteCascade(ctx context.Context, inspectionID uuid.UUID, transactionID *uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("delete inspection begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		DELETE FROM field_agent_assignments WHERE inspection_id = $1`,
		inspectionID,
	); err != nil {
		return fmt.Errorf("delete agent back-references: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM inspection_requests WHERE id = $1`, inspectionID)
	if err != nil {
		return fmt.Errorf("delete inspection request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(inspectionNotFoundMessage)
	}

	if transactionID != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, *transactionID); err != nil {
			return fmt.Errorf("delete linked transaction: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// SetLetterOfIntention stores the uploaded LOI document URL.
func (r *Repo) SetLetterOfIntention(ctx context.Context, inspectionID uuid.UUID, url string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE inspection_requests
		SET letter_of_intention_url = $2, updated_at = now()
		WHERE id = $1`,
		inspectionID, url,
	)
	if err != nil {
		return fmt.Errorf("set letter of intention: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(inspectionNotFoundMessage)
	}
	return nil
}

// AddReportPhoto attaches a report photo to the inspection.
func (r *Repo) AddReportPhoto(ctx context.Context, inspectionID uuid.UUID, url string, capturedAt *time.Time) (ReportPhoto, error) {
	var photo ReportPhoto
	err := r.pool.QueryRow(ctx, `
		INSERT INTO inspection_report_photos (inspection_id, url, captured_at)
		VALUES ($1, $2, $3)
		RETURNING id, inspection_id, url, captured_at, uploaded_at`,
		inspectionID, url, capturedAt,
	).Scan(&photo.ID, &photo.InspectionID, &photo.URL, &photo.CapturedAt, &photo.UploadedAt)
	if err != nil {
		return ReportPhoto{}, fmt.Errorf("add report photo: %w", err)
	}
	return photo, nil
}

// ListReportPhotos returns the photos attached to an inspection report.
func (r *Repo) ListReportPhotos(ctx context.Context, inspectionID uuid.UUID) ([]ReportPhoto, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, inspection_id, url, captured_at, uploaded_at
		FROM inspection_report_photos
		WHERE inspection_id = $1
		ORDER BY uploaded_at ASC`,
		inspectionID,
	)
	if err != nil {
		return nil, fmt.Errorf("list report photos: %w", err)
	}
	defer rows.Close()

	photos := make([]ReportPhoto, 0)
	for rows.Next() {
		var photo ReportPhoto
		if err := rows.Scan(&photo.ID, &photo.InspectionID, &photo.URL, &photo.CapturedAt, &photo.UploadedAt); err != nil {
			return nil, fmt.Errorf("scan report photo: %w", err)
		}
		photos = append(photos, photo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate report photos: %w", err)
	}
	return photos, nil
}
