// Package service orchestrates the inspection workflow: it loads the
// aggregate, runs the pure transition, persists the new state, and then
// executes the transition's effects (email, in-app, activity log).
package service

import (
	"context"
	"fmt"
	"time"

	"estatehub_backend/internal/activity"
	"estatehub_backend/internal/agents"
	"estatehub_backend/internal/email"
	"estatehub_backend/internal/events"
	"estatehub_backend/internal/inspections/domain"
	"estatehub_backend/internal/inspections/repository"
	"estatehub_backend/internal/notification/inapp"
	"estatehub_backend/internal/scheduler"
	"estatehub_backend/platform/config"
	"estatehub_backend/platform/logger"

	"github.com/google/uuid"
)

// reminderLead is how long before the inspection date the reminder fires.
const reminderLead = 24 * time.Hour

// Notifier persists in-app notifications.
type Notifier interface {
	Send(ctx context.Context, p inapp.SendParams) error
}

// ActivityLogger appends to the inspection audit trail.
type ActivityLogger interface {
	Log(ctx context.Context, p activity.CreateParams) error
}

// PaymentVerifier gates field-agent dispatch on a settled payment.
type PaymentVerifier interface {
	EnsurePaid(ctx context.Context, transactionID *uuid.UUID) error
}

// AgentDirectory answers whether a user may be dispatched as a field agent.
type AgentDirectory interface {
	EnsureDispatchable(ctx context.Context, userID uuid.UUID) (agents.Profile, error)
}

// Deps carries the service's collaborators. Reminders and Store may be nil
// when Redis or MinIO are not configured.
type Deps struct {
	Repo      repository.Repository
	Mail      email.Sender
	Notifier  Notifier
	Activity  ActivityLogger
	Payments  PaymentVerifier
	Agents    AgentDirectory
	Store     ObjectStore
	Reminders scheduler.ReminderScheduler
	Bus       events.Bus
	Cfg       config.NotificationConfig
	Log       *logger.Logger
}

type Service struct {
	repo      repository.Repository
	mail      email.Sender
	notifier  Notifier
	activity  ActivityLogger
	payments  PaymentVerifier
	agents    AgentDirectory
	store     ObjectStore
	reminders scheduler.ReminderScheduler
	bus       events.Bus
	cfg       config.NotificationConfig
	log       *logger.Logger
	now       func() time.Time
}

func New(d Deps) *Service {
	return &Service{
		repo:      d.Repo,
		mail:      d.Mail,
		notifier:  d.Notifier,
		activity:  d.Activity,
		payments:  d.Payments,
		agents:    d.Agents,
		store:     d.Store,
		reminders: d.Reminders,
		bus:       d.Bus,
		cfg:       d.Cfg,
		log:       d.Log,
		now:       time.Now,
	}
}

// Get returns the hydrated aggregate.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (repository.InspectionRecord, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns inspection requests for the admin browsing view.
func (s *Service) List(ctx context.Context, params repository.ListParams) ([]repository.InspectionRecord, int, error) {
	return s.repo.List(ctx, params)
}

// ListForAgent returns the inspections assigned to one field agent.
func (s *Service) ListForAgent(ctx context.Context, agentUserID uuid.UUID) ([]repository.InspectionRecord, error) {
	return s.repo.ListByAgent(ctx, agentUserID)
}

// Approve applies the admin approval transition and dispatches its effects.
func (s *Service) Approve(ctx context.Context, adminID, id uuid.UUID) (repository.InspectionRecord, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return repository.InspectionRecord{}, err
	}

	updated, effects, err := domain.Approve(rec.InspectionRequest)
	if err != nil {
		return repository.InspectionRecord{}, err
	}

	if err := s.repo.Save(ctx, updated); err != nil {
		return repository.InspectionRecord{}, err
	}
	s.log.StateTransition(id.String(), "approve", string(rec.Status), string(updated.Status))

	rec.InspectionRequest = updated
	if err := s.runEffects(ctx, rec, adminID, "admin", effects); err != nil {
		return repository.InspectionRecord{}, err
	}

	s.bus.Publish(ctx, events.InspectionApproved{
		BaseEvent:      events.NewBaseEvent(),
		InspectionID:   id,
		PropertyID:     updated.PropertyID,
		BuyerID:        updated.BuyerID,
		IsNegotiating:  updated.IsNegotiating,
		InspectionDate: updated.InspectionDate,
	})
	s.scheduleReminder(ctx, rec)

	return rec, nil
}

// Reject applies the admin rejection transition and dispatches its effects.
func (s *Service) Reject(ctx context.Context, adminID, id uuid.UUID, reason string) (repository.InspectionRecord, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return repository.InspectionRecord{}, err
	}

	updated, effects, err := domain.Reject(rec.InspectionRequest, reason)
	if err != nil {
		return repository.InspectionRecord{}, err
	}

	if err := s.repo.Save(ctx, updated); err != nil {
		return repository.InspectionRecord{}, err
	}
	s.log.StateTransition(id.String(), "reject", string(rec.Status), string(updated.Status))

	rec.InspectionRequest = updated
	if err := s.runEffects(ctx, rec, adminID, "admin", effects); err != nil {
		return repository.InspectionRecord{}, err
	}

	s.bus.Publish(ctx, events.InspectionRejected{
		BaseEvent:    events.NewBaseEvent(),
		InspectionID: id,
		BuyerID:      updated.BuyerID,
	})
	return rec, nil
}

// DecideLOI applies an admin decision on the letter of intention.
func (s *Service) DecideLOI(ctx context.Context, adminID, id uuid.UUID, decision domain.LOIDecision, reason string) (repository.InspectionRecord, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return repository.InspectionRecord{}, err
	}

	updated, effects, err := domain.DecideLOI(rec.InspectionRequest, decision, reason)
	if err != nil {
		return repository.InspectionRecord{}, err
	}

	if err := s.repo.Save(ctx, updated); err != nil {
		return repository.InspectionRecord{}, err
	}
	s.log.StateTransition(id.String(), "loi:"+string(decision), string(rec.Status), string(updated.Status))

	rec.InspectionRequest = updated
	if err := s.runEffects(ctx, rec, adminID, "admin", effects); err != nil {
		return repository.InspectionRecord{}, err
	}
	return rec, nil
}

// scheduleReminder enqueues the inspection reminder task. Enqueue failures
// are logged, never surfaced: a missing reminder must not undo an approval.
func (s *Service) scheduleReminder(ctx context.Context, rec repository.InspectionRecord) {
	if s.reminders == nil || rec.InspectionDate == nil {
		return
	}

	runAt := rec.InspectionDate.Add(-reminderLead)
	if runAt.Before(s.now()) {
		return
	}

	err := s.reminders.ScheduleInspectionReminder(ctx, scheduler.InspectionReminderPayload{
		InspectionID: rec.ID.String(),
	}, runAt)
	if err != nil {
		s.log.Error("failed to schedule inspection reminder", "error", err, "inspectionId", rec.ID)
	}
}

func (s *Service) responseURL(id uuid.UUID) string {
	return fmt.Sprintf("%s/inspections/%s/respond", s.cfg.GetAppBaseURL(), id)
}

func (s *Service) inspectionURL(id uuid.UUID) string {
	return fmt.Sprintf("%s/inspections/%s", s.cfg.GetAppBaseURL(), id)
}
