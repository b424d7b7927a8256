// Package domain contains the inspection request aggregate and its pure
// transition logic. Nothing in this package touches the database, email, or
// logging; transitions return effect descriptions that the service layer
// executes.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Status is the fine-grained state-machine value of an inspection request.
type Status string

const (
	StatusPendingTransaction    Status = "pending_transaction"
	StatusTransactionFailed     Status = "transaction_failed"
	StatusActiveNegotiation     Status = "active_negotiation"
	StatusNegotiationCountered  Status = "negotiation_countered"
	StatusNegotiationAccepted   Status = "negotiation_accepted"
	StatusNegotiationRejected   Status = "negotiation_rejected"
	StatusNegotiationCancelled  Status = "negotiation_cancelled"
	StatusInspectionApproved    Status = "inspection_approved"
	StatusInspectionRescheduled Status = "inspection_rescheduled"
	StatusCompleted             Status = "completed"
	StatusCancelled             Status = "cancelled"
)

// IsValid returns true if the status is a recognized value.
func (s Status) IsValid() bool {
	switch s {
	case StatusPendingTransaction, StatusTransactionFailed, StatusActiveNegotiation,
		StatusNegotiationCountered, StatusNegotiationAccepted, StatusNegotiationRejected,
		StatusNegotiationCancelled, StatusInspectionApproved, StatusInspectionRescheduled,
		StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Stage is the coarse phase used for cross-cutting guard checks.
type Stage string

const (
	StageNegotiation Stage = "negotiation"
	StageInspection  Stage = "inspection"
	StageCompleted   Stage = "completed"
	StageCancelled   Stage = "cancelled"
)

// IsTerminal reports whether the stage forbids further mutation.
func (s Stage) IsTerminal() bool {
	return s == StageCompleted || s == StageCancelled
}

// Party identifies whose turn it is to act next in the negotiation protocol.
// It is always exactly one value; never "buyer and seller" simultaneously.
type Party string

const (
	PartyBuyer  Party = "buyer"
	PartySeller Party = "seller"
	PartyAdmin  Party = "admin"
	PartyNone   Party = "none"
)

// IsValid returns true if the party is a recognized value.
func (p Party) IsValid() bool {
	switch p {
	case PartyBuyer, PartySeller, PartyAdmin, PartyNone:
		return true
	}
	return false
}

// InspectionType distinguishes a price negotiation from a Letter-of-Intention one.
type InspectionType string

const (
	TypePrice InspectionType = "price"
	TypeLOI   InspectionType = "loi"
)

// Mode is how the inspection is carried out.
type Mode string

const (
	ModeInPerson Mode = "in_person"
	ModeVirtual  Mode = "virtual"
)

// ReportStatus is the sub-state of the field agent's on-site report.
// It only advances forward: not-started -> in-progress -> awaiting-report
// -> completed|absent.
type ReportStatus string

const (
	ReportNotStarted     ReportStatus = "not-started"
	ReportInProgress     ReportStatus = "in-progress"
	ReportAwaitingReport ReportStatus = "awaiting-report"
	ReportCompleted      ReportStatus = "completed"
	ReportAbsent         ReportStatus = "absent"
)

// Report is the field agent's on-site execution record.
type Report struct {
	Status                ReportStatus
	BuyerPresent          bool
	SellerPresent         bool
	BuyerInterest         *string
	Notes                 *string
	WasSuccessful         bool
	InspectionStartedAt   *time.Time
	InspectionCompletedAt *time.Time
	SubmittedAt           *time.Time
}

// InspectionRequest is the aggregate root governed by the transition engine.
type InspectionRequest struct {
	ID            uuid.UUID
	PropertyID    uuid.UUID
	BuyerID       uuid.UUID
	SellerID      uuid.UUID
	TransactionID *uuid.UUID

	Status              Status
	Stage               Stage
	PendingResponseFrom Party

	InspectionType InspectionType
	IsNegotiating  bool
	// NegotiationPrice is the buyer's offer in minor currency units.
	NegotiationPrice     int64
	IsLOI                bool
	LetterOfIntentionURL *string
	// ApproveLOI is tri-state: nil until an admin decides the LOI.
	ApproveLOI *bool

	AssignedFieldAgentID *uuid.UUID

	InspectionDate *time.Time
	InspectionTime string
	InspectionMode Mode

	Report Report
}

// HasLetterOfIntention reports whether a non-empty LOI document URL is present.
func (r InspectionRequest) HasLetterOfIntention() bool {
	return r.LetterOfIntentionURL != nil && *r.LetterOfIntentionURL != ""
}
