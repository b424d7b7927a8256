package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"estatehub_backend/internal/activity"
	"estatehub_backend/internal/agents"
	"estatehub_backend/internal/email"
	"estatehub_backend/internal/events"
	"estatehub_backend/internal/inspections/domain"
	"estatehub_backend/internal/inspections/repository"
	"estatehub_backend/internal/notification/inapp"
	"estatehub_backend/internal/scheduler"
	"estatehub_backend/platform/apperr"
	"estatehub_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeRepo struct {
	records  map[uuid.UUID]repository.InspectionRecord
	saves    int
	attached []uuid.UUID
	detached []uuid.UUID
	deleted  []uuid.UUID
}

func newFakeRepo(recs ...repository.InspectionRecord) *fakeRepo {
	r := &fakeRepo{records: make(map[uuid.UUID]repository.InspectionRecord)}
	for _, rec := range recs {
		r.records[rec.ID] = rec
	}
	return r
}

func (r *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (repository.InspectionRecord, error) {
	rec, ok := r.records[id]
	if !ok {
		return repository.InspectionRecord{}, apperr.NotFound("inspection request not found")
	}
	return rec, nil
}

func (r *fakeRepo) List(_ context.Context, _ repository.ListParams) ([]repository.InspectionRecord, int, error) {
	out := make([]repository.InspectionRecord, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, rec)
	}
	return out, len(out), nil
}

func (r *fakeRepo) ListByAgent(_ context.Context, agentUserID uuid.UUID) ([]repository.InspectionRecord, error) {
	var out []repository.InspectionRecord
	for _, rec := range r.records {
		if rec.AssignedFieldAgentID != nil && *rec.AssignedFieldAgentID == agentUserID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListReportPhotos(_ context.Context, _ uuid.UUID) ([]repository.ReportPhoto, error) {
	return nil, nil
}

func (r *fakeRepo) Save(_ context.Context, req domain.InspectionRequest) error {
	rec, ok := r.records[req.ID]
	if !ok {
		return apperr.NotFound("inspection request not found")
	}
	rec.InspectionRequest = req
	r.records[req.ID] = rec
	r.saves++
	return nil
}

func (r *fakeRepo) AttachAgent(_ context.Context, inspectionID, agentUserID uuid.UUID) error {
	rec := r.records[inspectionID]
	if rec.AssignedFieldAgentID != nil {
		return apperr.Conflict("another field agent is already assigned to the inspection")
	}
	rec.AssignedFieldAgentID = &agentUserID
	r.records[inspectionID] = rec
	r.attached = append(r.attached, agentUserID)
	return nil
}

func (r *fakeRepo) DetachAgent(_ context.Context, inspectionID, agentUserID uuid.UUID) error {
	rec := r.records[inspectionID]
	rec.AssignedFieldAgentID = nil
	rec.Agent = nil
	r.records[inspectionID] = rec
	r.detached = append(r.detached, agentUserID)
	return nil
}

func (r *fakeRepo) DeleteCascade(_ context.Context, inspectionID uuid.UUID, _ *uuid.UUID) error {
	delete(r.records, inspectionID)
	r.deleted = append(r.deleted, inspectionID)
	return nil
}

func (r *fakeRepo) SetLetterOfIntention(_ context.Context, inspectionID uuid.UUID, url string) error {
	rec := r.records[inspectionID]
	rec.LetterOfIntentionURL = &url
	r.records[inspectionID] = rec
	return nil
}

func (r *fakeRepo) AddReportPhoto(_ context.Context, inspectionID uuid.UUID, url string, capturedAt *time.Time) (repository.ReportPhoto, error) {
	return repository.ReportPhoto{
		ID:           uuid.New(),
		InspectionID: inspectionID,
		URL:          url,
		CapturedAt:   capturedAt,
		UploadedAt:   time.Now(),
	}, nil
}

type fakeMail struct {
	email.NoopSender
	sent    []string
	failOn  string
	failErr error
}

func (m *fakeMail) record(name string) error {
	m.sent = append(m.sent, name)
	if m.failOn == name {
		return m.failErr
	}
	return nil
}

func (m *fakeMail) SendNewOfferEmail(_ context.Context, _, _, _, _, _ string) error {
	return m.record("new_offer")
}

func (m *fakeMail) SendRequestSubmittedEmail(_ context.Context, _, _, _, _ string) error {
	return m.record("request_submitted")
}

func (m *fakeMail) SendRequestRejectedEmail(_ context.Context, _, _, _, _ string) error {
	return m.record("request_rejected")
}

func (m *fakeMail) SendLOIRejectedEmail(_ context.Context, _, _, _, _ string) error {
	return m.record("loi_rejected")
}

func (m *fakeMail) SendAgentAssignedEmail(_ context.Context, _, _, _, _, _ string, attachments ...email.Attachment) error {
	if err := m.record("agent_assigned"); err != nil {
		return err
	}
	if len(attachments) != 1 || attachments[0].MIMEType != "image/png" {
		return errors.New("expected one png attachment")
	}
	return nil
}

func (m *fakeMail) SendAgentRemovedEmail(_ context.Context, _, _, _ string) error {
	return m.record("agent_removed")
}

func (m *fakeMail) SendAssignmentRevokedEmail(_ context.Context, _, _, _ string) error {
	return m.record("assignment_revoked")
}

func (m *fakeMail) SendParticipantDetailsEmail(_ context.Context, to string, _ email.ParticipantDetails) error {
	return m.record("participant_details:" + to)
}

type fakeNotifier struct {
	sent []inapp.SendParams
	err  error
}

func (n *fakeNotifier) Send(_ context.Context, p inapp.SendParams) error {
	n.sent = append(n.sent, p)
	return n.err
}

type fakeActivity struct {
	entries []activity.CreateParams
}

func (a *fakeActivity) Log(_ context.Context, p activity.CreateParams) error {
	a.entries = append(a.entries, p)
	return nil
}

type fakePayments struct{ err error }

func (p *fakePayments) EnsurePaid(_ context.Context, _ *uuid.UUID) error { return p.err }

type fakeAgents struct {
	profile agents.Profile
	err     error
}

func (a *fakeAgents) EnsureDispatchable(_ context.Context, _ uuid.UUID) (agents.Profile, error) {
	return a.profile, a.err
}

type fakeBus struct {
	published []events.Event
}

func (b *fakeBus) Publish(_ context.Context, e events.Event) { b.published = append(b.published, e) }

func (b *fakeBus) PublishSync(_ context.Context, e events.Event) error {
	b.published = append(b.published, e)
	return nil
}

func (b *fakeBus) Subscribe(string, events.Handler) {}

type fakeReminders struct {
	scheduled []time.Time
	err       error
}

func (r *fakeReminders) ScheduleInspectionReminder(_ context.Context, _ scheduler.InspectionReminderPayload, runAt time.Time) error {
	r.scheduled = append(r.scheduled, runAt)
	return r.err
}

type staticConfig struct{}

func (staticConfig) GetAppBaseURL() string { return "https://app.example.com" }

type fixture struct {
	svc       *Service
	repo      *fakeRepo
	mail      *fakeMail
	notifier  *fakeNotifier
	activity  *fakeActivity
	payments  *fakePayments
	agents    *fakeAgents
	bus       *fakeBus
	reminders *fakeReminders
}

func newFixture(recs ...repository.InspectionRecord) *fixture {
	f := &fixture{
		repo:     newFakeRepo(recs...),
		mail:     &fakeMail{},
		notifier: &fakeNotifier{},
		activity: &fakeActivity{},
		payments: &fakePayments{},
		agents: &fakeAgents{profile: agents.Profile{
			UserID:          uuid.New(),
			FirstName:       "Ada",
			LastName:        "Obi",
			Email:           "ada@example.com",
			AccountApproved: true,
		}},
		bus:       &fakeBus{},
		reminders: &fakeReminders{},
	}
	f.svc = New(Deps{
		Repo:      f.repo,
		Mail:      f.mail,
		Notifier:  f.notifier,
		Activity:  f.activity,
		Payments:  f.payments,
		Agents:    f.agents,
		Reminders: f.reminders,
		Bus:       f.bus,
		Cfg:       staticConfig{},
		Log:       logger.New("test"),
	})
	return f
}

func pendingRecord() repository.InspectionRecord {
	buyerID := uuid.New()
	sellerID := uuid.New()
	txID := uuid.New()
	date := time.Now().Add(72 * time.Hour)
	return repository.InspectionRecord{
		InspectionRequest: domain.InspectionRequest{
			ID:                  uuid.New(),
			PropertyID:          uuid.New(),
			BuyerID:             buyerID,
			SellerID:            sellerID,
			TransactionID:       &txID,
			Status:              domain.StatusPendingTransaction,
			Stage:               domain.StageNegotiation,
			PendingResponseFrom: domain.PartyAdmin,
			InspectionType:      domain.TypePrice,
			NegotiationPrice:    4500000,
			InspectionDate:      &date,
			InspectionTime:      "10:00 AM",
			InspectionMode:      domain.ModeInPerson,
		},
		Buyer:    repository.UserSummary{ID: buyerID, FirstName: "Bola", LastName: "Ade", Email: "bola@example.com"},
		Seller:   repository.UserSummary{ID: sellerID, FirstName: "Seyi", LastName: "Oke", Email: "seyi@example.com"},
		Property: repository.PropertySummary{ID: uuid.New(), Title: "3 Bedroom Duplex, Lekki", Address: "12 Admiralty Way"},
	}
}

func TestApproveDispatchesNotificationsAndSchedulesReminder(t *testing.T) {
	rec := pendingRecord()
	f := newFixture(rec)

	got, err := f.svc.Approve(context.Background(), uuid.New(), rec.ID)
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}

	if got.Status != domain.StatusNegotiationCountered {
		t.Errorf("status = %q, want %q", got.Status, domain.StatusNegotiationCountered)
	}
	if got.PendingResponseFrom != domain.PartySeller {
		t.Errorf("pendingResponseFrom = %q, want seller", got.PendingResponseFrom)
	}
	if f.repo.saves != 1 {
		t.Errorf("saves = %d, want 1", f.repo.saves)
	}

	wantMail := []string{"new_offer", "request_submitted"}
	if len(f.mail.sent) != len(wantMail) {
		t.Fatalf("emails sent = %v, want %v", f.mail.sent, wantMail)
	}
	for i, name := range wantMail {
		if f.mail.sent[i] != name {
			t.Errorf("email[%d] = %q, want %q", i, f.mail.sent[i], name)
		}
	}

	if len(f.notifier.sent) != 2 {
		t.Fatalf("in-app notifications = %d, want 2", len(f.notifier.sent))
	}
	if f.notifier.sent[0].UserID != rec.BuyerID {
		t.Errorf("first in-app went to %s, want buyer %s", f.notifier.sent[0].UserID, rec.BuyerID)
	}
	if f.notifier.sent[1].UserID != rec.SellerID {
		t.Errorf("second in-app went to %s, want seller %s", f.notifier.sent[1].UserID, rec.SellerID)
	}

	if len(f.activity.entries) != 1 {
		t.Fatalf("activity entries = %d, want 1", len(f.activity.entries))
	}
	if f.activity.entries[0].SenderRole != "admin" {
		t.Errorf("activity sender role = %q, want admin", f.activity.entries[0].SenderRole)
	}

	if len(f.reminders.scheduled) != 1 {
		t.Fatalf("reminders scheduled = %d, want 1", len(f.reminders.scheduled))
	}
	wantRunAt := rec.InspectionDate.Add(-24 * time.Hour)
	if !f.reminders.scheduled[0].Equal(wantRunAt) {
		t.Errorf("reminder runAt = %v, want %v", f.reminders.scheduled[0], wantRunAt)
	}
}

func TestApproveNotificationFailureSurfacesAfterPersist(t *testing.T) {
	rec := pendingRecord()
	f := newFixture(rec)
	f.mail.failOn = "new_offer"
	f.mail.failErr = errors.New("smtp unavailable")

	_, err := f.svc.Approve(context.Background(), uuid.New(), rec.ID)
	if err == nil {
		t.Fatal("expected notification failure to surface")
	}

	// The state change is already committed when the notification fails.
	stored, _ := f.repo.GetByID(context.Background(), rec.ID)
	if stored.Status != domain.StatusNegotiationCountered {
		t.Errorf("stored status = %q, want %q (no rollback)", stored.Status, domain.StatusNegotiationCountered)
	}
}

func TestApproveReminderFailureDoesNotFailTheCall(t *testing.T) {
	rec := pendingRecord()
	f := newFixture(rec)
	f.reminders.err = errors.New("redis down")

	if _, err := f.svc.Approve(context.Background(), uuid.New(), rec.ID); err != nil {
		t.Fatalf("Approve: %v", err)
	}
}

func TestApproveAlreadyApprovedConflicts(t *testing.T) {
	rec := pendingRecord()
	rec.Status = domain.StatusActiveNegotiation
	f := newFixture(rec)

	_, err := f.svc.Approve(context.Background(), uuid.New(), rec.ID)
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("err = %v, want conflict", err)
	}
	if f.repo.saves != 0 {
		t.Errorf("saves = %d, want 0", f.repo.saves)
	}
}

func TestRejectCancelsAndNotifiesBuyer(t *testing.T) {
	rec := pendingRecord()
	f := newFixture(rec)

	got, err := f.svc.Reject(context.Background(), uuid.New(), rec.ID, "incomplete documents")
	if err != nil {
		t.Fatalf("Reject: %v", err)
	}

	if got.Status != domain.StatusTransactionFailed {
		t.Errorf("status = %q, want %q", got.Status, domain.StatusTransactionFailed)
	}
	if got.Stage != domain.StageCancelled {
		t.Errorf("stage = %q, want cancelled", got.Stage)
	}
	if len(f.mail.sent) != 1 || f.mail.sent[0] != "request_rejected" {
		t.Errorf("emails sent = %v, want [request_rejected]", f.mail.sent)
	}
	if len(f.reminders.scheduled) != 0 {
		t.Errorf("reminders scheduled = %d, want 0", len(f.reminders.scheduled))
	}
}

func TestDecideLOIRejectCancelsRequest(t *testing.T) {
	rec := pendingRecord()
	rec.InspectionType = domain.TypeLOI
	url := "inspections/loi.pdf"
	rec.LetterOfIntentionURL = &url
	f := newFixture(rec)

	got, err := f.svc.DecideLOI(context.Background(), uuid.New(), rec.ID, domain.LOIReject, "terms unacceptable")
	if err != nil {
		t.Fatalf("DecideLOI: %v", err)
	}

	if got.ApproveLOI == nil || *got.ApproveLOI {
		t.Error("approveLOI should be false")
	}
	if got.Stage != domain.StageCancelled {
		t.Errorf("stage = %q, want cancelled", got.Stage)
	}
	if len(f.mail.sent) != 1 || f.mail.sent[0] != "loi_rejected" {
		t.Errorf("emails sent = %v, want [loi_rejected]", f.mail.sent)
	}
}

func TestDecideLOIOnPriceRequestFails(t *testing.T) {
	rec := pendingRecord()
	f := newFixture(rec)

	_, err := f.svc.DecideLOI(context.Background(), uuid.New(), rec.ID, domain.LOIApprove, "")
	if !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("err = %v, want bad request", err)
	}
}

func TestAttachFieldAgentHappyPath(t *testing.T) {
	rec := pendingRecord()
	f := newFixture(rec)
	agentID := f.agents.profile.UserID

	got, err := f.svc.AttachFieldAgent(context.Background(), uuid.New(), rec.ID, agentID)
	if err != nil {
		t.Fatalf("AttachFieldAgent: %v", err)
	}

	if got.AssignedFieldAgentID == nil || *got.AssignedFieldAgentID != agentID {
		t.Error("agent not attached on the returned record")
	}
	if len(f.repo.attached) != 1 {
		t.Errorf("repo attach calls = %d, want 1", len(f.repo.attached))
	}
	if len(f.mail.sent) != 1 || f.mail.sent[0] != "agent_assigned" {
		t.Errorf("emails sent = %v, want [agent_assigned]", f.mail.sent)
	}
	if len(f.notifier.sent) != 1 || f.notifier.sent[0].UserID != agentID {
		t.Error("expected one in-app notification to the agent")
	}
}

func TestAttachFieldAgentPaymentGate(t *testing.T) {
	rec := pendingRecord()
	f := newFixture(rec)
	f.payments.err = apperr.BadRequest("payment for this inspection has not been completed")

	_, err := f.svc.AttachFieldAgent(context.Background(), uuid.New(), rec.ID, f.agents.profile.UserID)
	if !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("err = %v, want bad request", err)
	}
	if len(f.repo.attached) != 0 {
		t.Error("agent must not be attached when payment is unsettled")
	}
	if len(f.mail.sent) != 0 {
		t.Error("no email should go out when the gate fails")
	}
}

func TestAttachFieldAgentUnapprovedProfile(t *testing.T) {
	rec := pendingRecord()
	f := newFixture(rec)
	f.agents.err = apperr.Forbidden("field agent account is not approved")

	_, err := f.svc.AttachFieldAgent(context.Background(), uuid.New(), rec.ID, uuid.New())
	if !apperr.Is(err, apperr.KindForbidden) {
		t.Fatalf("err = %v, want forbidden", err)
	}
}

func TestAttachFieldAgentSeatTaken(t *testing.T) {
	rec := pendingRecord()
	other := uuid.New()
	rec.AssignedFieldAgentID = &other
	f := newFixture(rec)

	_, err := f.svc.AttachFieldAgent(context.Background(), uuid.New(), rec.ID, f.agents.profile.UserID)
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("err = %v, want conflict", err)
	}
}

func TestRemoveFieldAgentNotifiesAgent(t *testing.T) {
	rec := pendingRecord()
	agentID := uuid.New()
	rec.AssignedFieldAgentID = &agentID
	rec.Agent = &repository.UserSummary{ID: agentID, FirstName: "Ada", LastName: "Obi", Email: "ada@example.com"}
	f := newFixture(rec)

	got, err := f.svc.RemoveFieldAgent(context.Background(), uuid.New(), rec.ID)
	if err != nil {
		t.Fatalf("RemoveFieldAgent: %v", err)
	}

	if got.AssignedFieldAgentID != nil {
		t.Error("agent still attached after removal")
	}
	if len(f.repo.detached) != 1 || f.repo.detached[0] != agentID {
		t.Error("repo detach not called for the agent")
	}
	if len(f.mail.sent) != 1 || f.mail.sent[0] != "agent_removed" {
		t.Errorf("emails sent = %v, want [agent_removed]", f.mail.sent)
	}
}

func TestRemoveFieldAgentNoneAssigned(t *testing.T) {
	rec := pendingRecord()
	f := newFixture(rec)

	_, err := f.svc.RemoveFieldAgent(context.Background(), uuid.New(), rec.ID)
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("err = %v, want conflict", err)
	}
}

func TestDeleteNotifiesAgentBeforeCascade(t *testing.T) {
	rec := pendingRecord()
	agentID := uuid.New()
	rec.AssignedFieldAgentID = &agentID
	rec.Agent = &repository.UserSummary{ID: agentID, FirstName: "Ada", LastName: "Obi", Email: "ada@example.com"}
	f := newFixture(rec)

	if err := f.svc.Delete(context.Background(), uuid.New(), rec.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if len(f.mail.sent) != 1 || f.mail.sent[0] != "assignment_revoked" {
		t.Errorf("emails sent = %v, want [assignment_revoked]", f.mail.sent)
	}
	if len(f.repo.deleted) != 1 {
		t.Errorf("cascade deletes = %d, want 1", len(f.repo.deleted))
	}
	if _, err := f.repo.GetByID(context.Background(), rec.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Error("record should be gone after delete")
	}
}

func TestDeleteCompletedRequestBlocked(t *testing.T) {
	rec := pendingRecord()
	rec.Status = domain.StatusCompleted
	rec.Stage = domain.StageCompleted
	f := newFixture(rec)

	err := f.svc.Delete(context.Background(), uuid.New(), rec.ID)
	if !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("err = %v, want bad request", err)
	}
	if len(f.repo.deleted) != 0 {
		t.Error("completed request must not be deleted")
	}
}

func TestSubmitReportBothPresentCompletes(t *testing.T) {
	rec := pendingRecord()
	agentID := uuid.New()
	rec.AssignedFieldAgentID = &agentID
	rec.Report.Status = domain.ReportAwaitingReport
	f := newFixture(rec)

	interest := "very interested"
	got, err := f.svc.SubmitReport(context.Background(), agentID, rec.ID, domain.SubmitReportParams{
		BuyerPresent:  true,
		SellerPresent: true,
		BuyerInterest: &interest,
	})
	if err != nil {
		t.Fatalf("SubmitReport: %v", err)
	}

	if got.Status != domain.StatusCompleted || got.Stage != domain.StageCompleted {
		t.Errorf("status/stage = %q/%q, want completed/completed", got.Status, got.Stage)
	}
	if got.Report.Status != domain.ReportCompleted {
		t.Errorf("report status = %q, want completed", got.Report.Status)
	}

	// Buyer and seller each get a completion notice.
	if len(f.notifier.sent) != 2 {
		t.Fatalf("in-app notifications = %d, want 2", len(f.notifier.sent))
	}
	if len(f.activity.entries) != 1 || f.activity.entries[0].SenderRole != "field_agent" {
		t.Error("expected one activity entry logged as field_agent")
	}
}

func TestSubmitReportAbsentKeepsRequestOpen(t *testing.T) {
	rec := pendingRecord()
	agentID := uuid.New()
	rec.AssignedFieldAgentID = &agentID
	f := newFixture(rec)

	got, err := f.svc.SubmitReport(context.Background(), agentID, rec.ID, domain.SubmitReportParams{
		BuyerPresent:  true,
		SellerPresent: false,
	})
	if err != nil {
		t.Fatalf("SubmitReport: %v", err)
	}

	if got.Report.Status != domain.ReportAbsent {
		t.Errorf("report status = %q, want absent", got.Report.Status)
	}
	if got.Stage == domain.StageCompleted {
		t.Error("absent report must not complete the request")
	}
	if len(f.notifier.sent) != 0 {
		t.Error("no completion notices for an absent report")
	}
}

func TestSubmitReportRequiresAssignment(t *testing.T) {
	rec := pendingRecord()
	agentID := uuid.New()
	rec.AssignedFieldAgentID = &agentID
	f := newFixture(rec)

	_, err := f.svc.SubmitReport(context.Background(), uuid.New(), rec.ID, domain.SubmitReportParams{})
	if !apperr.Is(err, apperr.KindForbidden) {
		t.Fatalf("err = %v, want forbidden", err)
	}
}

func TestSendDetailsDirections(t *testing.T) {
	agentID := uuid.New()
	phoneDigits := "08031234567"

	tests := []struct {
		name      string
		direction DetailDirection
		want      []string
	}{
		{"buyer to seller", DetailBuyerToSeller, []string{"participant_details:seyi@example.com"}},
		{"seller to buyer", DetailSellerToBuyer, []string{"participant_details:bola@example.com"}},
		{"send both", DetailSendBoth, []string{
			"participant_details:bola@example.com",
			"participant_details:seyi@example.com",
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := pendingRecord()
			rec.AssignedFieldAgentID = &agentID
			rec.Buyer.Phone = &phoneDigits
			rec.Seller.Phone = &phoneDigits
			f := newFixture(rec)

			if err := f.svc.SendDetails(context.Background(), agentID, rec.ID, tc.direction); err != nil {
				t.Fatalf("SendDetails: %v", err)
			}

			if len(f.mail.sent) != len(tc.want) {
				t.Fatalf("emails sent = %v, want %d", f.mail.sent, len(tc.want))
			}
			got := make(map[string]bool, len(f.mail.sent))
			for _, s := range f.mail.sent {
				got[s] = true
			}
			for _, w := range tc.want {
				if !got[w] {
					t.Errorf("missing email %q in %v", w, f.mail.sent)
				}
			}
		})
	}
}

func TestSendDetailsInvalidDirection(t *testing.T) {
	agentID := uuid.New()
	rec := pendingRecord()
	rec.AssignedFieldAgentID = &agentID
	f := newFixture(rec)

	err := f.svc.SendDetails(context.Background(), agentID, rec.ID, DetailDirection("sideways"))
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("err = %v, want validation", err)
	}
}

func TestFormatNaira(t *testing.T) {
	tests := []struct {
		minor int64
		want  string
	}{
		{0, "₦0.00"},
		{4500000, "₦45,000.00"},
		{123456789, "₦1,234,567.89"},
		{99, "₦0.99"},
	}
	for _, tc := range tests {
		if got := formatNaira(tc.minor); got != tc.want {
			t.Errorf("formatNaira(%d) = %q, want %q", tc.minor, got, tc.want)
		}
	}
}
