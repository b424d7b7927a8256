package email

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"time"

	"estatehub_backend/platform/config"
	"estatehub_backend/platform/logger"

	gomail "github.com/wneessen/go-mail"
)

// SMTPSender delivers emails over SMTP using the configured relay.
type SMTPSender struct {
	client      *gomail.Client
	fromName    string
	fromAddress string
	log         *logger.Logger
}

var _ Sender = (*SMTPSender)(nil)

// NewSender returns an SMTP-backed sender, or a NoopSender when email is
// disabled in configuration.
func NewSender(cfg config.EmailConfig, log *logger.Logger) (Sender, error) {
	if !cfg.GetEmailEnabled() {
		log.Info("email sending disabled, using noop sender")
		return NoopSender{}, nil
	}
	return NewSMTPSender(cfg, log)
}

// NewSMTPSender builds the go-mail client for the configured relay.
func NewSMTPSender(cfg config.EmailConfig, log *logger.Logger) (*SMTPSender, error) {
	client, err := gomail.NewClient(cfg.GetSMTPHost(),
		gomail.WithPort(cfg.GetSMTPPort()),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.GetSMTPUsername()),
		gomail.WithPassword(cfg.GetSMTPPassword()),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
		// Some relays resolve to unroutable IPv6 addresses; force IPv4.
		gomail.WithDialContextFunc(func(ctx context.Context, _, addr string) (net.Conn, error) {
			d := net.Dialer{Timeout: 15 * time.Second}
			return d.DialContext(ctx, "tcp4", addr)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}

	return &SMTPSender{
		client:      client,
		fromName:    cfg.GetEmailFromName(),
		fromAddress: cfg.GetEmailFromAddress(),
		log:         log,
	}, nil
}

func (s *SMTPSender) send(ctx context.Context, to, subject, htmlBody string, attachments ...Attachment) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromAddress); err != nil {
		return fmt.Errorf("set from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("set to address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlBody)

	for _, a := range attachments {
		if err := msg.AttachReader(a.FileName, bytes.NewReader(a.Content), gomail.WithFileContentType(gomail.ContentType(a.MIMEType))); err != nil {
			return fmt.Errorf("attach %s: %w", a.FileName, err)
		}
	}

	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send email to %s: %w", to, err)
	}
	s.log.Info("email sent", "to", to, "subject", subject)
	return nil
}

func (s *SMTPSender) SendNewOfferEmail(ctx context.Context, to, buyerName, propertyTitle, offerAmount, responseURL string) error {
	body, err := renderEmailTemplate("new_offer.html", newOfferData{
		BuyerName:     buyerName,
		PropertyTitle: propertyTitle,
		OfferAmount:   offerAmount,
		ResponseURL:   responseURL,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, to, subjectNewOffer, body)
}

func (s *SMTPSender) SendRequestSubmittedEmail(ctx context.Context, to, sellerName, propertyTitle, responseURL string) error {
	body, err := renderEmailTemplate("request_submitted.html", requestSubmittedData{
		SellerName:    sellerName,
		PropertyTitle: propertyTitle,
		ResponseURL:   responseURL,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, to, subjectRequestSubmitted, body)
}

func (s *SMTPSender) SendRequestRejectedEmail(ctx context.Context, to, buyerName, propertyTitle, reason string) error {
	body, err := renderEmailTemplate("request_rejected.html", rejectionData{
		BuyerName:     buyerName,
		PropertyTitle: propertyTitle,
		Reason:        reason,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, to, subjectRequestRejected, body)
}

func (s *SMTPSender) SendLOIRejectedEmail(ctx context.Context, to, buyerName, propertyTitle, reason string) error {
	body, err := renderEmailTemplate("loi_rejected.html", rejectionData{
		BuyerName:     buyerName,
		PropertyTitle: propertyTitle,
		Reason:        reason,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, to, subjectLOIRejected, body)
}

func (s *SMTPSender) SendAgentAssignedEmail(ctx context.Context, to, agentName, propertyTitle, propertyAddress, inspectionDate string, attachments ...Attachment) error {
	body, err := renderEmailTemplate("agent_assigned.html", agentAssignedData{
		AgentName:       agentName,
		PropertyTitle:   propertyTitle,
		PropertyAddress: propertyAddress,
		InspectionDate:  inspectionDate,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, to, subjectAgentAssigned, body, attachments...)
}

func (s *SMTPSender) SendAgentRemovedEmail(ctx context.Context, to, agentName, propertyTitle string) error {
	body, err := renderEmailTemplate("agent_removed.html", agentRemovedData{
		AgentName:     agentName,
		PropertyTitle: propertyTitle,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, to, subjectAgentRemoved, body)
}

func (s *SMTPSender) SendAssignmentRevokedEmail(ctx context.Context, to, agentName, propertyTitle string) error {
	body, err := renderEmailTemplate("agent_removed.html", agentRemovedData{
		AgentName:     agentName,
		PropertyTitle: propertyTitle,
		Revoked:       true,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, to, subjectAssignmentRevoked, body)
}

func (s *SMTPSender) SendParticipantDetailsEmail(ctx context.Context, to string, d ParticipantDetails) error {
	body, err := renderEmailTemplate("participant_details.html", d)
	if err != nil {
		return err
	}
	return s.send(ctx, to, subjectParticipantDetails, body)
}

func (s *SMTPSender) SendInspectionReminderEmail(ctx context.Context, to, recipientName, propertyTitle, inspectionDate string) error {
	body, err := renderEmailTemplate("inspection_reminder.html", reminderData{
		RecipientName:  recipientName,
		PropertyTitle:  propertyTitle,
		InspectionDate: inspectionDate,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, to, subjectInspectionReminder, body)
}
