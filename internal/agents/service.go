package agents

import (
	"context"

	"estatehub_backend/platform/apperr"
	"estatehub_backend/platform/logger"

	"github.com/google/uuid"
)

type Service struct {
	repo *Repository
	log  *logger.Logger
}

func NewService(repo *Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// EnsureDispatchable checks that the user can be assigned to inspections:
// they must hold a field agent profile and the profile must be approved.
func (s *Service) EnsureDispatchable(ctx context.Context, userID uuid.UUID) (Profile, error) {
	profile, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if apperr.GetKind(err) == apperr.KindNotFound {
			return Profile{}, apperr.BadRequest("user is not a registered field agent")
		}
		return Profile{}, err
	}
	if !profile.AccountApproved {
		return Profile{}, apperr.Forbidden("field agent account has not been approved")
	}
	return profile, nil
}

func (s *Service) Get(ctx context.Context, userID uuid.UUID) (Profile, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *Service) List(ctx context.Context, approvedOnly bool) ([]Profile, error) {
	return s.repo.List(ctx, approvedOnly)
}

// Approve flips the agent's dispatch eligibility on.
func (s *Service) Approve(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.SetApproved(ctx, userID, true); err != nil {
		return err
	}
	s.log.Info("field agent approved", "userId", userID)
	return nil
}

// Suspend flips the agent's dispatch eligibility off. Existing assignments
// are untouched; the agent just cannot receive new ones.
func (s *Service) Suspend(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.SetApproved(ctx, userID, false); err != nil {
		return err
	}
	s.log.Info("field agent suspended", "userId", userID)
	return nil
}
