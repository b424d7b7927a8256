package payments

import (
	"context"

	"estatehub_backend/platform/apperr"
	"estatehub_backend/platform/config"
	"estatehub_backend/platform/logger"

	"github.com/google/uuid"
)

// Service answers the payment questions the inspection workflow asks. It is
// the only place that talks to the gateway, so callers get uniform errors.
type Service struct {
	repo    *Repository
	gateway Gateway
	cfg     config.PaymentConfig
	log     *logger.Logger
}

func NewService(repo *Repository, gateway Gateway, cfg config.PaymentConfig, log *logger.Logger) *Service {
	return &Service{repo: repo, gateway: gateway, cfg: cfg, log: log}
}

// EnsurePaid verifies that the linked transaction settled successfully.
// Dispatching a field agent is blocked until the buyer's payment clears.
//
// When verification is disabled in configuration (local development and some
// staging environments) every request passes.
func (s *Service) EnsurePaid(ctx context.Context, transactionID *uuid.UUID) error {
	if !s.cfg.IsPaymentVerificationEnabled() {
		return nil
	}

	if transactionID == nil {
		return apperr.BadRequest("inspection request has no linked payment transaction")
	}

	tx, err := s.repo.GetByID(ctx, *transactionID)
	if err != nil {
		return err
	}

	status, err := s.gateway.GetStatus(ctx, tx.Reference)
	if err != nil {
		s.log.Error("payment verification failed", "error", err, "reference", tx.Reference)
		return apperr.Internal("unable to verify payment status")
	}

	if string(status) != tx.Status {
		if err := s.repo.UpdateStatus(ctx, tx.ID, string(status)); err != nil {
			s.log.Error("failed to record payment status", "error", err, "transactionId", tx.ID)
		}
	}

	if status != StatusSuccess {
		return apperr.BadRequest("payment for this inspection has not been completed").
			WithDetails(map[string]any{"paymentStatus": string(status)})
	}
	return nil
}
