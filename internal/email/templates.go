package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// renderEmailTemplate parses the shared base layout together with one named
// template and executes the "email" template it defines.
func renderEmailTemplate(name string, data any) (string, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/base.html", "templates/"+name)
	if err != nil {
		return "", fmt.Errorf("parse email template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "email", data); err != nil {
		return "", fmt.Errorf("render email template %s: %w", name, err)
	}
	return buf.String(), nil
}

type newOfferData struct {
	BuyerName     string
	PropertyTitle string
	OfferAmount   string
	ResponseURL   string
}

type requestSubmittedData struct {
	SellerName    string
	PropertyTitle string
	ResponseURL   string
}

type rejectionData struct {
	BuyerName     string
	PropertyTitle string
	Reason        string
}

type agentAssignedData struct {
	AgentName       string
	PropertyTitle   string
	PropertyAddress string
	InspectionDate  string
}

type agentRemovedData struct {
	AgentName     string
	PropertyTitle string
	Revoked       bool
}

type reminderData struct {
	RecipientName  string
	PropertyTitle  string
	InspectionDate string
}
