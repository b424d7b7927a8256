package domain

import (
	"testing"
	"time"

	"estatehub_backend/platform/apperr"

	"github.com/google/uuid"
)

func newRequest() InspectionRequest {
	return InspectionRequest{
		ID:                  uuid.New(),
		PropertyID:          uuid.New(),
		BuyerID:             uuid.New(),
		SellerID:            uuid.New(),
		Status:              StatusPendingTransaction,
		Stage:               StageNegotiation,
		PendingResponseFrom: PartyAdmin,
		InspectionType:      TypePrice,
		InspectionMode:      ModeInPerson,
		Report:              Report{Status: ReportNotStarted},
	}
}

func strPtr(s string) *string { return &s }

func TestApprove_PriceWithOffer(t *testing.T) {
	r := newRequest()
	r.NegotiationPrice = 50000

	got, effects, err := Approve(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.IsNegotiating {
		t.Errorf("expected isNegotiating=true")
	}
	if got.Stage != StageNegotiation {
		t.Errorf("expected stage %q, got %q", StageNegotiation, got.Stage)
	}
	if got.Status != StatusNegotiationCountered {
		t.Errorf("expected status %q, got %q", StatusNegotiationCountered, got.Status)
	}
	if got.PendingResponseFrom != PartySeller {
		t.Errorf("expected pendingResponseFrom %q, got %q", PartySeller, got.PendingResponseFrom)
	}
	assertEffectKinds(t, effects, NotifyBuyerNewOffer{}, NotifySellerRequestSubmitted{}, AppendActivity{})
}

func TestApprove_PriceWithoutOffer(t *testing.T) {
	r := newRequest()
	r.NegotiationPrice = 0

	got, _, err := Approve(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.IsNegotiating {
		t.Errorf("expected isNegotiating=false")
	}
	if got.Stage != StageInspection {
		t.Errorf("expected stage %q, got %q", StageInspection, got.Stage)
	}
	if got.Status != StatusActiveNegotiation {
		t.Errorf("expected status %q, got %q", StatusActiveNegotiation, got.Status)
	}
}

func TestApprove_LOIWithDocument(t *testing.T) {
	r := newRequest()
	r.InspectionType = TypeLOI
	r.LetterOfIntentionURL = strPtr("https://doc")

	got, _, err := Approve(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.IsLOI {
		t.Errorf("expected isLOI=true")
	}
	if got.Stage != StageNegotiation {
		t.Errorf("expected stage %q, got %q", StageNegotiation, got.Stage)
	}
	if got.PendingResponseFrom != PartySeller {
		t.Errorf("expected pendingResponseFrom %q, got %q", PartySeller, got.PendingResponseFrom)
	}
}

func TestApprove_LOIWithoutDocument(t *testing.T) {
	r := newRequest()
	r.InspectionType = TypeLOI

	got, _, err := Approve(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.IsLOI {
		t.Errorf("expected isLOI=false")
	}
	if got.Stage != StageInspection {
		t.Errorf("expected stage %q, got %q", StageInspection, got.Stage)
	}
}

func TestApprove_NotReentrant(t *testing.T) {
	for _, status := range []Status{StatusActiveNegotiation, StatusNegotiationCountered} {
		r := newRequest()
		r.Status = status

		got, effects, err := Approve(r)
		if !apperr.Is(err, apperr.KindConflict) {
			t.Errorf("status %q: expected conflict, got %v", status, err)
		}
		if len(effects) != 0 {
			t.Errorf("status %q: expected no effects on guard failure", status)
		}
		if got != r {
			t.Errorf("status %q: state must be unchanged on guard failure", status)
		}
	}
}

func TestApprove_TerminalStageRejected(t *testing.T) {
	for _, stage := range []Stage{StageCompleted, StageCancelled} {
		r := newRequest()
		r.Stage = stage

		_, _, err := Approve(r)
		if !apperr.Is(err, apperr.KindBadRequest) {
			t.Errorf("stage %q: expected bad request, got %v", stage, err)
		}
	}
}

func TestReject_Terminal(t *testing.T) {
	r := newRequest()

	got, effects, err := Reject(r, "documents incomplete")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != StatusTransactionFailed {
		t.Errorf("expected status %q, got %q", StatusTransactionFailed, got.Status)
	}
	if got.Stage != StageCancelled {
		t.Errorf("expected stage %q, got %q", StageCancelled, got.Stage)
	}
	if got.PendingResponseFrom != PartyAdmin {
		t.Errorf("expected pendingResponseFrom %q, got %q", PartyAdmin, got.PendingResponseFrom)
	}

	// Rejection notifies the buyer only.
	for _, e := range effects {
		switch e.(type) {
		case NotifySellerRequestSubmitted, NotifyBuyerNewOffer:
			t.Errorf("unexpected effect %T on reject", e)
		}
	}
}

func TestDecideLOI_RejectCancelsRequest(t *testing.T) {
	r := newRequest()
	r.InspectionType = TypeLOI
	r.LetterOfIntentionURL = strPtr("https://doc")

	approved, _, err := Approve(r)
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	got, effects, err := DecideLOI(approved, LOIReject, "terms unacceptable")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ApproveLOI == nil || *got.ApproveLOI {
		t.Errorf("expected approveLOI=false")
	}
	if got.Status != StatusNegotiationCancelled {
		t.Errorf("expected status %q, got %q", StatusNegotiationCancelled, got.Status)
	}
	if got.Stage != StageCancelled {
		t.Errorf("expected stage %q, got %q", StageCancelled, got.Stage)
	}
	assertEffectKinds(t, effects, NotifyBuyerLOIRejected{}, AppendActivity{})

	// A later attach on this request must fail on the stage guard.
	if err := CanAttachAgent(got, uuid.NewString()); !apperr.Is(err, apperr.KindBadRequest) {
		t.Errorf("expected bad request from attach guard after LOI rejection, got %v", err)
	}
}

func TestDecideLOI_ApproveOnlyFlipsFlag(t *testing.T) {
	r := newRequest()
	r.InspectionType = TypeLOI
	r.LetterOfIntentionURL = strPtr("https://doc")
	r.Status = StatusActiveNegotiation
	r.Stage = StageNegotiation

	got, _, err := DecideLOI(r, LOIApprove, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ApproveLOI == nil || !*got.ApproveLOI {
		t.Errorf("expected approveLOI=true")
	}
	// Status and stage are left for the downstream negotiation-response step.
	if got.Status != r.Status || got.Stage != r.Stage {
		t.Errorf("approve must not change status/stage, got %q/%q", got.Status, got.Stage)
	}
}

func TestDecideLOI_NonLOIRequestRejected(t *testing.T) {
	r := newRequest()

	_, _, err := DecideLOI(r, LOIApprove, "")
	if !apperr.Is(err, apperr.KindBadRequest) {
		t.Errorf("expected bad request, got %v", err)
	}
}

func TestReportLifecycle_OrderDependent(t *testing.T) {
	now := time.Now()
	r := newRequest()

	// Completing before starting fails with BadRequest.
	if _, _, err := CompleteReport(r, now); !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected bad request completing an unstarted inspection, got %v", err)
	}

	started, _, err := StartReport(r, now)
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if started.Report.Status != ReportInProgress {
		t.Errorf("expected report status %q, got %q", ReportInProgress, started.Report.Status)
	}
	if started.Report.InspectionStartedAt == nil {
		t.Errorf("expected inspectionStartedAt to be stamped")
	}

	// Starting twice is a conflict, not a silent no-op.
	if _, _, err := StartReport(started, now); !apperr.Is(err, apperr.KindConflict) {
		t.Errorf("expected conflict starting twice, got %v", err)
	}

	completed, _, err := CompleteReport(started, now)
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if completed.Report.Status != ReportAwaitingReport {
		t.Errorf("expected report status %q, got %q", ReportAwaitingReport, completed.Report.Status)
	}
	if completed.Report.InspectionCompletedAt == nil {
		t.Errorf("expected inspectionCompletedAt to be stamped")
	}
}

func TestStartReport_ParentCompletedRejected(t *testing.T) {
	r := newRequest()
	r.Status = StatusCompleted

	if _, _, err := StartReport(r, time.Now()); !apperr.Is(err, apperr.KindBadRequest) {
		t.Errorf("expected bad request, got %v", err)
	}
}

func TestSubmitReport_PresenceMatrix(t *testing.T) {
	cases := []struct {
		buyer, seller  bool
		wantSuccessful bool
		wantStatus     ReportStatus
	}{
		{true, true, true, ReportCompleted},
		{true, false, false, ReportAbsent},
		{false, true, false, ReportAbsent},
		{false, false, false, ReportAbsent},
	}

	for _, tc := range cases {
		r := newRequest()
		got, _, err := SubmitReport(r, SubmitReportParams{
			BuyerPresent:  tc.buyer,
			SellerPresent: tc.seller,
			Notes:         strPtr("n"),
		}, time.Now())
		if err != nil {
			t.Fatalf("buyer=%v seller=%v: unexpected error: %v", tc.buyer, tc.seller, err)
		}
		if got.Report.WasSuccessful != tc.wantSuccessful {
			t.Errorf("buyer=%v seller=%v: wasSuccessful=%v, want %v",
				tc.buyer, tc.seller, got.Report.WasSuccessful, tc.wantSuccessful)
		}
		if got.Report.Status != tc.wantStatus {
			t.Errorf("buyer=%v seller=%v: report status=%q, want %q",
				tc.buyer, tc.seller, got.Report.Status, tc.wantStatus)
		}
		if got.Report.SubmittedAt == nil {
			t.Errorf("buyer=%v seller=%v: expected submittedAt stamped", tc.buyer, tc.seller)
		}
	}
}

func TestSubmitReport_SuccessCompletesRequest(t *testing.T) {
	r := newRequest()

	got, _, err := SubmitReport(r, SubmitReportParams{BuyerPresent: true, SellerPresent: true}, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != StatusCompleted || got.Stage != StageCompleted {
		t.Errorf("expected completed status/stage, got %q/%q", got.Status, got.Stage)
	}
	if got.PendingResponseFrom != PartyNone {
		t.Errorf("expected pendingResponseFrom %q, got %q", PartyNone, got.PendingResponseFrom)
	}

	// Deletion is forbidden once the request is completed.
	if err := CanDelete(got); !apperr.Is(err, apperr.KindBadRequest) {
		t.Errorf("expected delete guard to reject a completed request, got %v", err)
	}
}

func TestSubmitReport_NotGatedOnAwaitingReport(t *testing.T) {
	// Submission is accepted from any report state; the original behaviour is
	// deliberately loose here.
	r := newRequest()
	if _, _, err := SubmitReport(r, SubmitReportParams{}, time.Now()); err != nil {
		t.Errorf("expected submit from not-started to be accepted, got %v", err)
	}
}

func TestCanAttachAgent_Guards(t *testing.T) {
	agentID := uuid.New()
	otherID := uuid.New()

	r := newRequest()
	if err := CanAttachAgent(r, agentID.String()); err != nil {
		t.Errorf("expected attach to pass on an unassigned request, got %v", err)
	}

	r.AssignedFieldAgentID = &agentID
	if err := CanAttachAgent(r, agentID.String()); !apperr.Is(err, apperr.KindConflict) {
		t.Errorf("expected conflict attaching the same agent twice, got %v", err)
	}
	if err := CanAttachAgent(r, otherID.String()); !apperr.Is(err, apperr.KindConflict) {
		t.Errorf("expected conflict attaching a second agent, got %v", err)
	}

	r.AssignedFieldAgentID = nil
	r.Stage = StageCompleted
	if err := CanAttachAgent(r, agentID.String()); !apperr.Is(err, apperr.KindBadRequest) {
		t.Errorf("expected bad request on terminal stage, got %v", err)
	}
}

func TestCanRemoveAgent_Guards(t *testing.T) {
	r := newRequest()
	if err := CanRemoveAgent(r); !apperr.Is(err, apperr.KindConflict) {
		t.Errorf("expected conflict removing from an unassigned request, got %v", err)
	}

	agentID := uuid.New()
	r.AssignedFieldAgentID = &agentID
	if err := CanRemoveAgent(r); err != nil {
		t.Errorf("expected remove to pass, got %v", err)
	}

	r.Stage = StageCompleted
	if err := CanRemoveAgent(r); !apperr.Is(err, apperr.KindBadRequest) {
		t.Errorf("expected bad request on completed stage, got %v", err)
	}
}

func TestPendingResponseFrom_AlwaysSingleValued(t *testing.T) {
	r := newRequest()

	states := []InspectionRequest{r}
	if s, _, err := Approve(r); err == nil {
		states = append(states, s)
	}
	if s, _, err := Reject(r, "x"); err == nil {
		states = append(states, s)
	}
	if s, _, err := SubmitReport(r, SubmitReportParams{BuyerPresent: true, SellerPresent: true}, time.Now()); err == nil {
		states = append(states, s)
	}

	for i, s := range states {
		if !s.PendingResponseFrom.IsValid() {
			t.Errorf("state %d: invalid pendingResponseFrom %q", i, s.PendingResponseFrom)
		}
	}
}

// assertEffectKinds checks that effects contains exactly one effect of each
// expected concrete type, in order.
func assertEffectKinds(t *testing.T, effects []Effect, want ...Effect) {
	t.Helper()
	if len(effects) != len(want) {
		t.Fatalf("expected %d effects, got %d (%#v)", len(want), len(effects), effects)
	}
	for i := range want {
		if wantType, gotType := typeName(want[i]), typeName(effects[i]); wantType != gotType {
			t.Errorf("effect %d: expected %s, got %s", i, wantType, gotType)
		}
	}
}

func typeName(e Effect) string {
	switch e.(type) {
	case NotifyBuyerNewOffer:
		return "NotifyBuyerNewOffer"
	case NotifySellerRequestSubmitted:
		return "NotifySellerRequestSubmitted"
	case NotifyBuyerRejected:
		return "NotifyBuyerRejected"
	case NotifyBuyerLOIRejected:
		return "NotifyBuyerLOIRejected"
	case AppendActivity:
		return "AppendActivity"
	default:
		return "unknown"
	}
}
