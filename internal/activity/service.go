package activity

import (
	"context"

	"estatehub_backend/platform/apperr"
	"estatehub_backend/platform/logger"
	"estatehub_backend/platform/validator"

	"github.com/google/uuid"
)

// Service records and reads inspection activity. Logging is best-effort:
// a failed append is reported to the caller but must never abort the state
// change it documents, so callers log the error and move on.
type Service struct {
	repo *Repository
	val  *validator.Validator
	log  *logger.Logger
}

func NewService(repo *Repository, val *validator.Validator, log *logger.Logger) *Service {
	return &Service{repo: repo, val: val, log: log}
}

// Log appends one activity entry.
func (s *Service) Log(ctx context.Context, p CreateParams) error {
	if err := s.val.Struct(p); err != nil {
		return apperr.Validation("invalid activity entry: " + err.Error())
	}
	if _, err := s.repo.Create(ctx, p); err != nil {
		s.log.Error("failed to append inspection activity",
			"error", err,
			"inspectionId", p.InspectionID,
			"message", p.Message,
		)
		return err
	}
	return nil
}

// History returns all entries for an inspection, oldest first.
func (s *Service) History(ctx context.Context, inspectionID uuid.UUID) ([]Entry, error) {
	return s.repo.ListByInspection(ctx, inspectionID)
}
