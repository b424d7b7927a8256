package service

import (
	"context"

	"estatehub_backend/internal/activity"
	"estatehub_backend/internal/email"
	"estatehub_backend/internal/events"
	"estatehub_backend/internal/inspections/domain"
	"estatehub_backend/internal/inspections/repository"
	"estatehub_backend/internal/notification/inapp"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
)

// AttachFieldAgent dispatches a field agent to an inspection. Preconditions:
// approved agent profile, settled payment, non-terminal stage, seat free.
func (s *Service) AttachFieldAgent(ctx context.Context, adminID, id, agentUserID uuid.UUID) (repository.InspectionRecord, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return repository.InspectionRecord{}, err
	}

	profile, err := s.agents.EnsureDispatchable(ctx, agentUserID)
	if err != nil {
		return repository.InspectionRecord{}, err
	}

	if err := s.payments.EnsurePaid(ctx, rec.TransactionID); err != nil {
		return repository.InspectionRecord{}, err
	}

	if err := domain.CanAttachAgent(rec.InspectionRequest, agentUserID.String()); err != nil {
		return repository.InspectionRecord{}, err
	}

	// Forward reference and back-reference move together in one database
	// transaction; the repository re-checks the free-seat guard under it.
	if err := s.repo.AttachAgent(ctx, id, agentUserID); err != nil {
		return repository.InspectionRecord{}, err
	}

	if err := s.notifyAgentAssigned(ctx, rec, profile.FullName(), profile.Email, agentUserID); err != nil {
		return repository.InspectionRecord{}, err
	}

	if err := s.activity.Log(ctx, activity.CreateParams{
		InspectionID: rec.ID,
		PropertyID:   rec.PropertyID,
		SenderID:     &adminID,
		SenderRole:   "admin",
		Message:      "Field agent " + profile.FullName() + " assigned to the inspection",
		Status:       string(rec.Status),
		Stage:        string(rec.Stage),
	}); err != nil {
		return repository.InspectionRecord{}, err
	}

	s.bus.Publish(ctx, events.FieldAgentAssigned{
		BaseEvent:      events.NewBaseEvent(),
		InspectionID:   id,
		AgentUserID:    agentUserID,
		InspectionDate: rec.InspectionDate,
	})

	return s.repo.GetByID(ctx, id)
}

// RemoveFieldAgent detaches the currently assigned field agent.
func (s *Service) RemoveFieldAgent(ctx context.Context, adminID, id uuid.UUID) (repository.InspectionRecord, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return repository.InspectionRecord{}, err
	}

	if err := domain.CanRemoveAgent(rec.InspectionRequest); err != nil {
		return repository.InspectionRecord{}, err
	}
	agentUserID := *rec.AssignedFieldAgentID

	if err := s.repo.DetachAgent(ctx, id, agentUserID); err != nil {
		return repository.InspectionRecord{}, err
	}

	if rec.Agent != nil {
		if err := s.mail.SendAgentRemovedEmail(ctx, rec.Agent.Email, rec.Agent.FullName(), rec.Property.Title); err != nil {
			return repository.InspectionRecord{}, err
		}
		if err := s.notifier.Send(ctx, inapp.SendParams{
			UserID:       agentUserID,
			Title:        "Removed from inspection",
			Content:      "You have been removed from the inspection for " + rec.Property.Title + ".",
			ResourceID:   &rec.ID,
			ResourceType: resourceTypeInspection,
			Category:     "warning",
		}); err != nil {
			return repository.InspectionRecord{}, err
		}
	}

	if err := s.activity.Log(ctx, activity.CreateParams{
		InspectionID: rec.ID,
		PropertyID:   rec.PropertyID,
		SenderID:     &adminID,
		SenderRole:   "admin",
		Message:      "Field agent removed from the inspection",
		Status:       string(rec.Status),
		Stage:        string(rec.Stage),
	}); err != nil {
		return repository.InspectionRecord{}, err
	}

	s.bus.Publish(ctx, events.FieldAgentRemoved{
		BaseEvent:    events.NewBaseEvent(),
		InspectionID: id,
		AgentUserID:  agentUserID,
	})

	return s.repo.GetByID(ctx, id)
}

// Delete hard-deletes the request with cascading cleanup: the agent's
// back-reference and the linked transaction go with it. The assigned agent,
// if any, is told first.
func (s *Service) Delete(ctx context.Context, adminID, id uuid.UUID) error {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := domain.CanDelete(rec.InspectionRequest); err != nil {
		return err
	}

	if rec.Agent != nil {
		if err := s.mail.SendAssignmentRevokedEmail(ctx, rec.Agent.Email, rec.Agent.FullName(), rec.Property.Title); err != nil {
			return err
		}
		if err := s.notifier.Send(ctx, inapp.SendParams{
			UserID:       rec.Agent.ID,
			Title:        "Inspection assignment cancelled",
			Content:      "The inspection for " + rec.Property.Title + " was deleted; your assignment is no longer active.",
			ResourceID:   &rec.ID,
			ResourceType: resourceTypeInspection,
			Category:     "warning",
		}); err != nil {
			return err
		}
	}

	if err := s.repo.DeleteCascade(ctx, id, rec.TransactionID); err != nil {
		return err
	}

	s.log.Info("inspection request deleted", "inspectionId", id, "adminId", adminID)
	s.bus.Publish(ctx, events.InspectionDeleted{
		BaseEvent:    events.NewBaseEvent(),
		InspectionID: id,
	})
	return nil
}

func (s *Service) notifyAgentAssigned(ctx context.Context, rec repository.InspectionRecord, agentName, agentEmail string, agentUserID uuid.UUID) error {
	dateText := ""
	if rec.InspectionDate != nil {
		dateText = rec.InspectionDate.Format("Monday, 2 January 2006")
		if rec.InspectionTime != "" {
			dateText += " at " + rec.InspectionTime
		}
	}

	attachments := s.checkInQR(rec.ID)
	if err := s.mail.SendAgentAssignedEmail(ctx, agentEmail, agentName, rec.Property.Title, rec.Property.Address, dateText, attachments...); err != nil {
		return err
	}

	return s.notifier.Send(ctx, inapp.SendParams{
		UserID:       agentUserID,
		Title:        "New inspection assignment",
		Content:      "You have been assigned to inspect " + rec.Property.Title + ".",
		ResourceID:   &rec.ID,
		ResourceType: resourceTypeInspection,
		Category:     "success",
	})
}

// checkInQR renders the inspection deep link as a PNG the agent can present
// on arrival. Encoding failure just drops the attachment.
func (s *Service) checkInQR(id uuid.UUID) []email.Attachment {
	png, err := qrcode.Encode(s.inspectionURL(id), qrcode.Medium, 256)
	if err != nil {
		s.log.Error("failed to encode check-in QR", "error", err, "inspectionId", id)
		return nil
	}
	return []email.Attachment{{
		Content:  png,
		FileName: "check-in.png",
		MIMEType: "image/png",
	}}
}
