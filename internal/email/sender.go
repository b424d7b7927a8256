package email

import "context"

// Attachment is a file attached to an outgoing email.
type Attachment struct {
	Content  []byte
	FileName string
	MIMEType string
}

// Sender delivers transactional emails for the inspection workflow. Every
// method is best-effort from the caller's point of view; failures are returned
// so the caller can log them, but they never roll back the state change that
// triggered the email.
type Sender interface {
	// SendNewOfferEmail tells the buyer a new offer awaits their response.
	SendNewOfferEmail(ctx context.Context, to, buyerName, propertyTitle, offerAmount, responseURL string) error

	// SendRequestSubmittedEmail tells the seller an inspection request was
	// submitted for their property, with a link to respond.
	SendRequestSubmittedEmail(ctx context.Context, to, sellerName, propertyTitle, responseURL string) error

	// SendRequestRejectedEmail tells the buyer the admin rejected the request.
	SendRequestRejectedEmail(ctx context.Context, to, buyerName, propertyTitle, reason string) error

	// SendLOIRejectedEmail tells the buyer their letter of intention was
	// rejected and the request cancelled.
	SendLOIRejectedEmail(ctx context.Context, to, buyerName, propertyTitle, reason string) error

	// SendAgentAssignedEmail tells a field agent they have been dispatched to
	// an inspection. Attachments carry the check-in QR code.
	SendAgentAssignedEmail(ctx context.Context, to, agentName, propertyTitle, propertyAddress, inspectionDate string, attachments ...Attachment) error

	// SendAgentRemovedEmail tells a field agent they were taken off an
	// inspection.
	SendAgentRemovedEmail(ctx context.Context, to, agentName, propertyTitle string) error

	// SendAssignmentRevokedEmail tells a field agent their assignment ended
	// because the inspection request was deleted.
	SendAssignmentRevokedEmail(ctx context.Context, to, agentName, propertyTitle string) error

	// SendParticipantDetailsEmail shares the counterpart's contact details
	// with one side of a concluded negotiation.
	SendParticipantDetailsEmail(ctx context.Context, to string, d ParticipantDetails) error

	// SendInspectionReminderEmail reminds a participant of an upcoming
	// inspection visit.
	SendInspectionReminderEmail(ctx context.Context, to, recipientName, propertyTitle, inspectionDate string) error
}

// ParticipantDetails is the contact card shared between buyer and seller once
// a negotiation concludes.
type ParticipantDetails struct {
	RecipientName   string
	CounterpartRole string
	CounterpartName string
	Email           string
	Phone           string
	PropertyTitle   string
}

// NoopSender satisfies Sender without sending anything. Used when email is
// disabled in configuration and in tests.
type NoopSender struct{}

func (NoopSender) SendNewOfferEmail(context.Context, string, string, string, string, string) error {
	return nil
}

func (NoopSender) SendRequestSubmittedEmail(context.Context, string, string, string, string) error {
	return nil
}

func (NoopSender) SendRequestRejectedEmail(context.Context, string, string, string, string) error {
	return nil
}

func (NoopSender) SendLOIRejectedEmail(context.Context, string, string, string, string) error {
	return nil
}

func (NoopSender) SendAgentAssignedEmail(context.Context, string, string, string, string, string, ...Attachment) error {
	return nil
}

func (NoopSender) SendAgentRemovedEmail(context.Context, string, string, string) error { return nil }

func (NoopSender) SendAssignmentRevokedEmail(context.Context, string, string, string) error {
	return nil
}

func (NoopSender) SendParticipantDetailsEmail(context.Context, string, ParticipantDetails) error {
	return nil
}

func (NoopSender) SendInspectionReminderEmail(context.Context, string, string, string, string) error {
	return nil
}

var _ Sender = NoopSender{}
