package email

import (
	"strings"
	"testing"
)

func TestRenderEmailTemplates(t *testing.T) {
	tests := []struct {
		name     string
		template string
		data     any
		want     []string
	}{
		{
			name:     "new offer",
			template: "new_offer.html",
			data: newOfferData{
				BuyerName:     "Ada Obi",
				PropertyTitle: "3 Bedroom Duplex, Lekki",
				OfferAmount:   "₦45,000,000",
				ResponseURL:   "https://app.example.com/inspections/abc/respond",
			},
			want: []string{"Ada Obi", "3 Bedroom Duplex, Lekki", "₦45,000,000", "https://app.example.com/inspections/abc/respond"},
		},
		{
			name:     "request submitted",
			template: "request_submitted.html",
			data: requestSubmittedData{
				SellerName:    "Chidi Eze",
				PropertyTitle: "Land at Epe",
				ResponseURL:   "https://app.example.com/inspections/abc/respond",
			},
			want: []string{"Chidi Eze", "Land at Epe", "Respond to request"},
		},
		{
			name:     "rejection with reason",
			template: "request_rejected.html",
			data: rejectionData{
				BuyerName:     "Ada Obi",
				PropertyTitle: "Land at Epe",
				Reason:        "Payment could not be verified",
			},
			want: []string{"was not approved", "Payment could not be verified"},
		},
		{
			name:     "agent assigned",
			template: "agent_assigned.html",
			data: agentAssignedData{
				AgentName:       "Tunde Bello",
				PropertyTitle:   "Land at Epe",
				PropertyAddress: "12 Marina Road, Epe",
				InspectionDate:  "Tuesday, 2 September 2026 at 10:00",
			},
			want: []string{"Tunde Bello", "12 Marina Road, Epe", "QR code"},
		},
		{
			name:     "assignment revoked variant",
			template: "agent_removed.html",
			data:     agentRemovedData{AgentName: "Tunde Bello", PropertyTitle: "Land at Epe", Revoked: true},
			want:     []string{"has been deleted", "no longer active"},
		},
		{
			name:     "participant details",
			template: "participant_details.html",
			data: ParticipantDetails{
				RecipientName:   "Ada Obi",
				CounterpartRole: "seller",
				CounterpartName: "Chidi Eze",
				Email:           "chidi@example.com",
				Phone:           "+234 801 234 5678",
				PropertyTitle:   "Land at Epe",
			},
			want: []string{"seller", "Chidi Eze", "chidi@example.com", "+234 801 234 5678"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html, err := renderEmailTemplate(tt.template, tt.data)
			if err != nil {
				t.Fatalf("renderEmailTemplate(%s) error: %v", tt.template, err)
			}
			if !strings.Contains(html, "<!DOCTYPE html>") {
				t.Errorf("rendered output missing base layout")
			}
			for _, w := range tt.want {
				if !strings.Contains(html, w) {
					t.Errorf("rendered %s missing %q", tt.template, w)
				}
			}
		})
	}
}

func TestRenderEmailTemplate_EscapesHTML(t *testing.T) {
	html, err := renderEmailTemplate("request_rejected.html", rejectionData{
		BuyerName:     "Ada",
		PropertyTitle: "Land",
		Reason:        "<script>alert(1)</script>",
	})
	if err != nil {
		t.Fatalf("renderEmailTemplate error: %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Errorf("reason was not escaped: %s", html)
	}
}
