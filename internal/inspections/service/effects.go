package service

import (
	"context"
	"fmt"
	"strconv"

	"estatehub_backend/internal/activity"
	"estatehub_backend/internal/inspections/domain"
	"estatehub_backend/internal/inspections/repository"
	"estatehub_backend/internal/notification/inapp"

	"github.com/google/uuid"
)

const resourceTypeInspection = "inspection"

// runEffects executes the side effects a transition asked for. The new state
// is already persisted when this runs; a failed notification surfaces as the
// call's own failure, it does not roll the state back.
func (s *Service) runEffects(ctx context.Context, rec repository.InspectionRecord, actorID uuid.UUID, actorRole string, effects []domain.Effect) error {
	for _, effect := range effects {
		var err error
		switch e := effect.(type) {
		case domain.NotifyBuyerNewOffer:
			err = s.notifyBuyerNewOffer(ctx, rec)
		case domain.NotifySellerRequestSubmitted:
			err = s.notifySellerRequestSubmitted(ctx, rec)
		case domain.NotifyBuyerRejected:
			err = s.notifyBuyerRejected(ctx, rec, e.Reason)
		case domain.NotifyBuyerLOIRejected:
			err = s.notifyBuyerLOIRejected(ctx, rec, e.Reason)
		case domain.AppendActivity:
			err = s.appendActivity(ctx, rec, actorID, actorRole, e)
		default:
			s.log.Error("unknown transition effect", "effect", fmt.Sprintf("%T", effect), "inspectionId", rec.ID)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) notifyBuyerNewOffer(ctx context.Context, rec repository.InspectionRecord) error {
	offer := ""
	if rec.IsNegotiating {
		offer = formatNaira(rec.NegotiationPrice)
	}

	if err := s.mail.SendNewOfferEmail(ctx, rec.Buyer.Email, rec.Buyer.FullName(), rec.Property.Title, offer, s.responseURL(rec.ID)); err != nil {
		return err
	}

	return s.notifier.Send(ctx, inapp.SendParams{
		UserID:       rec.BuyerID,
		Title:        "New offer on your inspection request",
		Content:      fmt.Sprintf("You have a new offer on %s. Your response is required.", rec.Property.Title),
		ResourceID:   &rec.ID,
		ResourceType: resourceTypeInspection,
	})
}

func (s *Service) notifySellerRequestSubmitted(ctx context.Context, rec repository.InspectionRecord) error {
	if err := s.mail.SendRequestSubmittedEmail(ctx, rec.Seller.Email, rec.Seller.FullName(), rec.Property.Title, s.responseURL(rec.ID)); err != nil {
		return err
	}

	return s.notifier.Send(ctx, inapp.SendParams{
		UserID:       rec.SellerID,
		Title:        "New inspection request",
		Content:      fmt.Sprintf("An inspection request was submitted for %s.", rec.Property.Title),
		ResourceID:   &rec.ID,
		ResourceType: resourceTypeInspection,
	})
}

func (s *Service) notifyBuyerRejected(ctx context.Context, rec repository.InspectionRecord, reason string) error {
	if err := s.mail.SendRequestRejectedEmail(ctx, rec.Buyer.Email, rec.Buyer.FullName(), rec.Property.Title, reason); err != nil {
		return err
	}

	return s.notifier.Send(ctx, inapp.SendParams{
		UserID:       rec.BuyerID,
		Title:        "Inspection request not approved",
		Content:      fmt.Sprintf("Your inspection request for %s was not approved.", rec.Property.Title),
		ResourceID:   &rec.ID,
		ResourceType: resourceTypeInspection,
		Category:     "warning",
	})
}

func (s *Service) notifyBuyerLOIRejected(ctx context.Context, rec repository.InspectionRecord, reason string) error {
	if err := s.mail.SendLOIRejectedEmail(ctx, rec.Buyer.Email, rec.Buyer.FullName(), rec.Property.Title, reason); err != nil {
		return err
	}

	return s.notifier.Send(ctx, inapp.SendParams{
		UserID:       rec.BuyerID,
		Title:        "Letter of intention not approved",
		Content:      fmt.Sprintf("Your letter of intention for %s was not approved.", rec.Property.Title),
		ResourceID:   &rec.ID,
		ResourceType: resourceTypeInspection,
		Category:     "warning",
	})
}

func (s *Service) appendActivity(ctx context.Context, rec repository.InspectionRecord, actorID uuid.UUID, actorRole string, e domain.AppendActivity) error {
	actor := actorID
	return s.activity.Log(ctx, activity.CreateParams{
		InspectionID: rec.ID,
		PropertyID:   rec.PropertyID,
		SenderID:     &actor,
		SenderRole:   actorRole,
		Message:      e.Message,
		Status:       string(e.Status),
		Stage:        string(e.Stage),
	})
}

// formatNaira renders a minor-unit (kobo) amount as a display string,
// e.g. 4500000 -> "₦45,000.00".
func formatNaira(minor int64) string {
	naira := minor / 100
	kobo := minor % 100
	if kobo < 0 {
		kobo = -kobo
	}
	return "₦" + groupThousands(naira) + "." + fmt.Sprintf("%02d", kobo)
}

func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := false
	if s[0] == '-' {
		neg = true
		s = s[1:]
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		return "-" + s
	}
	return s
}
