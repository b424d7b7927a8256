package domain

import (
	"fmt"
	"time"

	"estatehub_backend/platform/apperr"
)

// LOIDecision is an admin's verdict on a Letter of Intention.
type LOIDecision string

const (
	LOIApprove LOIDecision = "approve"
	LOIReject  LOIDecision = "reject"
)

const (
	msgAlreadyApproved  = "inspection request has already been approved"
	msgStageTerminal    = "inspection request is already completed or cancelled"
	msgNotLOIRequest    = "inspection request is not a letter of intention request"
	msgReportInProgress = "inspection has already been started"
	msgReportNotStarted = "inspection has not been started"
	msgParentCompleted  = "inspection request is already completed"
)

// Approve applies the admin approval transition.
//
// Not reentrant: approving a request that is already in active_negotiation or
// negotiation_countered is a conflict and leaves the state unchanged.
func Approve(r InspectionRequest) (InspectionRequest, []Effect, error) {
	if r.Stage.IsTerminal() {
		return r, nil, apperr.BadRequest(msgStageTerminal)
	}
	if r.Status == StatusActiveNegotiation || r.Status == StatusNegotiationCountered {
		return r, nil, apperr.Conflict(msgAlreadyApproved)
	}

	switch r.InspectionType {
	case TypeLOI:
		r.IsLOI = r.HasLetterOfIntention()
		if r.IsLOI {
			r.Stage = StageNegotiation
		} else {
			r.Stage = StageInspection
		}
	default: // price
		r.IsNegotiating = r.NegotiationPrice > 0
		if r.IsNegotiating {
			r.Stage = StageNegotiation
		} else {
			r.Stage = StageInspection
		}
	}

	r.PendingResponseFrom = PartySeller
	if r.IsNegotiating {
		r.Status = StatusNegotiationCountered
	} else {
		r.Status = StatusActiveNegotiation
	}

	effects := []Effect{
		NotifyBuyerNewOffer{},
		NotifySellerRequestSubmitted{},
		AppendActivity{
			Message: "Admin approved the inspection request",
			Status:  r.Status,
			Stage:   r.Stage,
		},
	}
	return r, effects, nil
}

// Reject applies the admin rejection transition. The request becomes terminal.
func Reject(r InspectionRequest, reason string) (InspectionRequest, []Effect, error) {
	if r.Stage.IsTerminal() {
		return r, nil, apperr.BadRequest(msgStageTerminal)
	}

	r.Status = StatusTransactionFailed
	r.Stage = StageCancelled
	r.PendingResponseFrom = PartyAdmin

	effects := []Effect{
		NotifyBuyerRejected{Reason: reason},
		AppendActivity{
			Message: "Admin rejected the inspection request",
			Status:  r.Status,
			Stage:   r.Stage,
		},
	}
	return r, effects, nil
}

// DecideLOI applies an admin decision on the buyer's Letter of Intention.
//
// On reject the request is cancelled outright, which blocks all further
// field-agent operations. On approve only the ApproveLOI flag flips; the
// status and stage are left for the downstream negotiation-response step.
func DecideLOI(r InspectionRequest, decision LOIDecision, reason string) (InspectionRequest, []Effect, error) {
	if r.InspectionType != TypeLOI {
		return r, nil, apperr.BadRequest(msgNotLOIRequest)
	}
	if r.Stage.IsTerminal() {
		return r, nil, apperr.BadRequest(msgStageTerminal)
	}

	approved := decision == LOIApprove
	r.ApproveLOI = &approved

	var effects []Effect
	if approved {
		effects = append(effects, AppendActivity{
			Message: "Admin approved the letter of intention",
			Status:  r.Status,
			Stage:   r.Stage,
		})
		return r, effects, nil
	}

	r.Status = StatusNegotiationCancelled
	r.Stage = StageCancelled

	effects = append(effects,
		NotifyBuyerLOIRejected{Reason: reason},
		AppendActivity{
			Message: "Admin rejected the letter of intention",
			Status:  r.Status,
			Stage:   r.Stage,
		},
	)
	return r, effects, nil
}

// StartReport begins the field agent's on-site inspection.
func StartReport(r InspectionRequest, now time.Time) (InspectionRequest, []Effect, error) {
	if r.Status == StatusCompleted {
		return r, nil, apperr.BadRequest(msgParentCompleted)
	}
	if r.Report.Status == ReportInProgress {
		return r, nil, apperr.Conflict(msgReportInProgress)
	}

	r.Report.Status = ReportInProgress
	r.Report.InspectionStartedAt = &now

	effects := []Effect{
		AppendActivity{
			Message: "Field agent started the inspection",
			Status:  r.Status,
			Stage:   r.Stage,
		},
	}
	return r, effects, nil
}

// CompleteReport marks the on-site visit as finished and awaiting the report.
func CompleteReport(r InspectionRequest, now time.Time) (InspectionRequest, []Effect, error) {
	if r.Report.Status != ReportInProgress {
		return r, nil, apperr.BadRequest(msgReportNotStarted)
	}

	r.Report.Status = ReportAwaitingReport
	r.Report.InspectionCompletedAt = &now

	effects := []Effect{
		AppendActivity{
			Message: "Field agent completed the inspection visit",
			Status:  r.Status,
			Stage:   r.Stage,
		},
	}
	return r, effects, nil
}

// SubmitReportParams carries the field agent's findings.
type SubmitReportParams struct {
	BuyerPresent  bool
	SellerPresent bool
	BuyerInterest *string
	Notes         *string
}

// SubmitReport records the field agent's findings. The report is deliberately
// not gated on having reached awaiting-report first; any report state may
// receive a submission.
func SubmitReport(r InspectionRequest, p SubmitReportParams, now time.Time) (InspectionRequest, []Effect, error) {
	if r.Stage == StageCancelled {
		return r, nil, apperr.BadRequest(msgStageTerminal)
	}

	r.Report.BuyerPresent = p.BuyerPresent
	r.Report.SellerPresent = p.SellerPresent
	r.Report.BuyerInterest = p.BuyerInterest
	r.Report.Notes = p.Notes
	r.Report.WasSuccessful = p.BuyerPresent && p.SellerPresent
	r.Report.SubmittedAt = &now

	var outcome string
	if r.Report.WasSuccessful {
		r.Report.Status = ReportCompleted
		r.Status = StatusCompleted
		r.Stage = StageCompleted
		r.PendingResponseFrom = PartyNone
		outcome = "successful"
	} else {
		r.Report.Status = ReportAbsent
		outcome = "unsuccessful (participant absent)"
	}

	effects := []Effect{
		AppendActivity{
			Message: fmt.Sprintf("Field agent submitted the inspection report: %s", outcome),
			Status:  r.Status,
			Stage:   r.Stage,
		},
	}
	return r, effects, nil
}

// CanAttachAgent checks the aggregate-level preconditions for attaching a
// field agent. Payment and agent-profile checks live in the service layer.
func CanAttachAgent(r InspectionRequest, agentUserID string) error {
	if r.Stage.IsTerminal() {
		return apperr.BadRequest(msgStageTerminal)
	}
	if r.AssignedFieldAgentID != nil {
		if r.AssignedFieldAgentID.String() == agentUserID {
			return apperr.Conflict("this field agent is already assigned to the inspection")
		}
		return apperr.Conflict("another field agent is already assigned to the inspection")
	}
	return nil
}

// CanRemoveAgent checks the aggregate-level preconditions for detaching the
// assigned field agent.
func CanRemoveAgent(r InspectionRequest) error {
	if r.Stage.IsTerminal() {
		return apperr.BadRequest(msgStageTerminal)
	}
	if r.AssignedFieldAgentID == nil {
		return apperr.Conflict("no field agent is assigned to the inspection")
	}
	return nil
}

// CanDelete checks the guard for hard deletion.
func CanDelete(r InspectionRequest) error {
	if r.Stage == StageCompleted {
		return apperr.BadRequest("a completed inspection request cannot be deleted")
	}
	return nil
}
