package service

import (
	"bytes"
	"context"
	"io"

	"estatehub_backend/internal/email"
	"estatehub_backend/internal/events"
	"estatehub_backend/internal/inspections/domain"
	"estatehub_backend/internal/inspections/repository"
	"estatehub_backend/internal/notification/inapp"
	"estatehub_backend/internal/storage"
	"estatehub_backend/platform/apperr"
	"estatehub_backend/platform/phone"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ObjectStore is the slice of the storage service the workflow uses.
type ObjectStore interface {
	UploadLOIDocument(ctx context.Context, inspectionID uuid.UUID, fileName, contentType string, reader io.Reader, size int64) (string, error)
	UploadReportPhoto(ctx context.Context, inspectionID uuid.UUID, fileName, contentType string, reader io.Reader, size int64) (string, error)
}

// DetailDirection says whose contact details go to whom.
type DetailDirection string

const (
	DetailBuyerToSeller DetailDirection = "buyer-to-seller"
	DetailSellerToBuyer DetailDirection = "seller-to-buyer"
	DetailSendBoth      DetailDirection = "send-both"
)

// loadAssigned fetches the record and verifies the caller is its assigned
// field agent. Every field-agent operation goes through this gate.
func (s *Service) loadAssigned(ctx context.Context, agentUserID, id uuid.UUID) (repository.InspectionRecord, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return repository.InspectionRecord{}, err
	}
	if rec.AssignedFieldAgentID == nil || *rec.AssignedFieldAgentID != agentUserID {
		return repository.InspectionRecord{}, apperr.Forbidden("you are not assigned to this inspection")
	}
	return rec, nil
}

// StartReport begins the on-site visit.
func (s *Service) StartReport(ctx context.Context, agentUserID, id uuid.UUID) (repository.InspectionRecord, error) {
	rec, err := s.loadAssigned(ctx, agentUserID, id)
	if err != nil {
		return repository.InspectionRecord{}, err
	}

	updated, effects, err := domain.StartReport(rec.InspectionRequest, s.now())
	if err != nil {
		return repository.InspectionRecord{}, err
	}

	if err := s.repo.Save(ctx, updated); err != nil {
		return repository.InspectionRecord{}, err
	}

	rec.InspectionRequest = updated
	if err := s.runEffects(ctx, rec, agentUserID, "field_agent", effects); err != nil {
		return repository.InspectionRecord{}, err
	}
	return rec, nil
}

// CompleteReport ends the on-site visit; the written report is still due.
func (s *Service) CompleteReport(ctx context.Context, agentUserID, id uuid.UUID) (repository.InspectionRecord, error) {
	rec, err := s.loadAssigned(ctx, agentUserID, id)
	if err != nil {
		return repository.InspectionRecord{}, err
	}

	updated, effects, err := domain.CompleteReport(rec.InspectionRequest, s.now())
	if err != nil {
		return repository.InspectionRecord{}, err
	}

	if err := s.repo.Save(ctx, updated); err != nil {
		return repository.InspectionRecord{}, err
	}

	rec.InspectionRequest = updated
	if err := s.runEffects(ctx, rec, agentUserID, "field_agent", effects); err != nil {
		return repository.InspectionRecord{}, err
	}
	return rec, nil
}

// SubmitReport records the agent's findings. Both parties present completes
// the whole request; anyone absent marks the report absent and leaves the
// request open for rescheduling.
func (s *Service) SubmitReport(ctx context.Context, agentUserID, id uuid.UUID, p domain.SubmitReportParams) (repository.InspectionRecord, error) {
	rec, err := s.loadAssigned(ctx, agentUserID, id)
	if err != nil {
		return repository.InspectionRecord{}, err
	}

	updated, effects, err := domain.SubmitReport(rec.InspectionRequest, p, s.now())
	if err != nil {
		return repository.InspectionRecord{}, err
	}

	if err := s.repo.Save(ctx, updated); err != nil {
		return repository.InspectionRecord{}, err
	}
	s.log.StateTransition(id.String(), "submit-report", string(rec.Status), string(updated.Status))

	rec.InspectionRequest = updated
	if err := s.runEffects(ctx, rec, agentUserID, "field_agent", effects); err != nil {
		return repository.InspectionRecord{}, err
	}

	if updated.Report.WasSuccessful {
		if err := s.notifyReportOutcome(ctx, rec); err != nil {
			return repository.InspectionRecord{}, err
		}
	}

	s.bus.Publish(ctx, events.InspectionReportSubmitted{
		BaseEvent:     events.NewBaseEvent(),
		InspectionID:  id,
		AgentUserID:   agentUserID,
		WasSuccessful: updated.Report.WasSuccessful,
	})
	return rec, nil
}

func (s *Service) notifyReportOutcome(ctx context.Context, rec repository.InspectionRecord) error {
	for _, userID := range []uuid.UUID{rec.BuyerID, rec.SellerID} {
		if err := s.notifier.Send(ctx, inapp.SendParams{
			UserID:       userID,
			Title:        "Inspection completed",
			Content:      "The inspection for " + rec.Property.Title + " was completed successfully.",
			ResourceID:   &rec.ID,
			ResourceType: resourceTypeInspection,
			Category:     "success",
		}); err != nil {
			return err
		}
	}
	return nil
}

// SendDetails shares contact details between the two parties. send-both
// dispatches the two emails concurrently; one failing does not stop or roll
// back the other, the call reports the first error after both finish.
func (s *Service) SendDetails(ctx context.Context, agentUserID, id uuid.UUID, direction DetailDirection) error {
	rec, err := s.loadAssigned(ctx, agentUserID, id)
	if err != nil {
		return err
	}

	toSeller := func() error { return s.sendDetailsEmail(ctx, rec, rec.Seller, rec.Buyer, "buyer") }
	toBuyer := func() error { return s.sendDetailsEmail(ctx, rec, rec.Buyer, rec.Seller, "seller") }

	switch direction {
	case DetailBuyerToSeller:
		return toSeller()
	case DetailSellerToBuyer:
		return toBuyer()
	case DetailSendBoth:
		var g errgroup.Group
		g.Go(toSeller)
		g.Go(toBuyer)
		return g.Wait()
	default:
		return apperr.Validation("send must be buyer-to-seller, seller-to-buyer or send-both")
	}
}

func (s *Service) sendDetailsEmail(ctx context.Context, rec repository.InspectionRecord, recipient, counterpart repository.UserSummary, counterpartRole string) error {
	phoneText := ""
	if counterpart.Phone != nil {
		phoneText = phone.FormatInternational(*counterpart.Phone)
	}

	return s.mail.SendParticipantDetailsEmail(ctx, recipient.Email, email.ParticipantDetails{
		RecipientName:   recipient.FullName(),
		CounterpartRole: counterpartRole,
		CounterpartName: counterpart.FullName(),
		Email:           counterpart.Email,
		Phone:           phoneText,
		PropertyTitle:   rec.Property.Title,
	})
}

// UploadLetterOfIntention stores the buyer's LOI document and stamps its key
// on the request. Only the requesting buyer may upload, and only before the
// admin decision.
func (s *Service) UploadLetterOfIntention(ctx context.Context, buyerID, id uuid.UUID, fileName, contentType string, data []byte) (repository.InspectionRecord, error) {
	if s.store == nil {
		return repository.InspectionRecord{}, apperr.Internal("document storage is not configured")
	}

	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return repository.InspectionRecord{}, err
	}
	if rec.BuyerID != buyerID {
		return repository.InspectionRecord{}, apperr.Forbidden("only the requesting buyer can upload a letter of intention")
	}
	if rec.InspectionType != domain.TypeLOI {
		return repository.InspectionRecord{}, apperr.BadRequest("inspection request is not a letter of intention request")
	}
	if rec.Stage.IsTerminal() {
		return repository.InspectionRecord{}, apperr.BadRequest("inspection request is already completed or cancelled")
	}
	if rec.ApproveLOI != nil {
		return repository.InspectionRecord{}, apperr.Conflict("the letter of intention has already been decided")
	}

	key, err := s.store.UploadLOIDocument(ctx, id, fileName, contentType, bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return repository.InspectionRecord{}, err
	}

	if err := s.repo.SetLetterOfIntention(ctx, id, key); err != nil {
		return repository.InspectionRecord{}, err
	}
	return s.repo.GetByID(ctx, id)
}

// UploadReportPhoto stores a field agent's photo and records it with the
// EXIF capture time when the image carries one.
func (s *Service) UploadReportPhoto(ctx context.Context, agentUserID, id uuid.UUID, fileName, contentType string, data []byte) (repository.ReportPhoto, error) {
	if s.store == nil {
		return repository.ReportPhoto{}, apperr.Internal("photo storage is not configured")
	}

	rec, err := s.loadAssigned(ctx, agentUserID, id)
	if err != nil {
		return repository.ReportPhoto{}, err
	}
	if rec.Stage == domain.StageCancelled {
		return repository.ReportPhoto{}, apperr.BadRequest("inspection request is already completed or cancelled")
	}

	key, err := s.store.UploadReportPhoto(ctx, id, fileName, contentType, bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return repository.ReportPhoto{}, err
	}

	capturedAt := storage.CaptureTime(data)
	return s.repo.AddReportPhoto(ctx, id, key, capturedAt)
}

// ListReportPhotos returns the photos attached to an inspection's report.
func (s *Service) ListReportPhotos(ctx context.Context, id uuid.UUID) ([]repository.ReportPhoto, error) {
	return s.repo.ListReportPhotos(ctx, id)
}
