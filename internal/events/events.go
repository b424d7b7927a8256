// Package events defines the domain events exchanged between modules and
// re-exports the platform event bus so modules have a single import.
package events

import (
	"time"

	platformevents "estatehub_backend/platform/events"
	"estatehub_backend/platform/logger"

	"github.com/google/uuid"
)

// Re-exports from platform/events.
type (
	Event       = platformevents.Event
	BaseEvent   = platformevents.BaseEvent
	Bus         = platformevents.Bus
	Handler     = platformevents.Handler
	HandlerFunc = platformevents.HandlerFunc
	InMemoryBus = platformevents.InMemoryBus
)

// NewInMemoryBus creates a new in-memory event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return platformevents.NewInMemoryBus(log)
}

// NewBaseEvent creates a new base event with the current timestamp.
func NewBaseEvent() BaseEvent {
	return platformevents.NewBaseEvent()
}

// InspectionApproved fires when an admin approves an inspection request.
type InspectionApproved struct {
	BaseEvent
	InspectionID   uuid.UUID  `json:"inspectionId"`
	PropertyID     uuid.UUID  `json:"propertyId"`
	BuyerID        uuid.UUID  `json:"buyerId"`
	IsNegotiating  bool       `json:"isNegotiating"`
	InspectionDate *time.Time `json:"inspectionDate,omitempty"`
}

// EventName returns the unique event identifier.
func (InspectionApproved) EventName() string { return "inspections.approved" }

// InspectionRejected fires when an admin rejects an inspection request.
type InspectionRejected struct {
	BaseEvent
	InspectionID uuid.UUID `json:"inspectionId"`
	BuyerID      uuid.UUID `json:"buyerId"`
}

// EventName returns the unique event identifier.
func (InspectionRejected) EventName() string { return "inspections.rejected" }

// FieldAgentAssigned fires when a field agent is attached to an inspection.
type FieldAgentAssigned struct {
	BaseEvent
	InspectionID   uuid.UUID  `json:"inspectionId"`
	AgentUserID    uuid.UUID  `json:"agentUserId"`
	InspectionDate *time.Time `json:"inspectionDate,omitempty"`
}

// EventName returns the unique event identifier.
func (FieldAgentAssigned) EventName() string { return "inspections.agent_assigned" }

// FieldAgentRemoved fires when a field agent is detached from an inspection.
type FieldAgentRemoved struct {
	BaseEvent
	InspectionID uuid.UUID `json:"inspectionId"`
	AgentUserID  uuid.UUID `json:"agentUserId"`
}

// EventName returns the unique event identifier.
func (FieldAgentRemoved) EventName() string { return "inspections.agent_removed" }

// InspectionReportSubmitted fires when a field agent submits the on-site report.
type InspectionReportSubmitted struct {
	BaseEvent
	InspectionID  uuid.UUID `json:"inspectionId"`
	AgentUserID   uuid.UUID `json:"agentUserId"`
	WasSuccessful bool      `json:"wasSuccessful"`
}

// EventName returns the unique event identifier.
func (InspectionReportSubmitted) EventName() string { return "inspections.report_submitted" }

// InspectionDeleted fires when an inspection request is hard-deleted.
type InspectionDeleted struct {
	BaseEvent
	InspectionID uuid.UUID `json:"inspectionId"`
}

// EventName returns the unique event identifier.
func (InspectionDeleted) EventName() string { return "inspections.deleted" }
