package transport

import (
	"time"

	"estatehub_backend/internal/inspections/repository"

	"github.com/google/uuid"
)

type StatusUpdateRequest struct {
	Status string `json:"status" binding:"required,oneof=approve reject"`
	Reason string `json:"reason"`
}

type LOIDecisionRequest struct {
	Status string `json:"status" binding:"required,oneof=approve reject"`
	Reason string `json:"reason"`
}

type AttachFieldAgentRequest struct {
	FieldAgentID string `json:"fieldAgentId" binding:"required,uuid"`
}

type SubmitReportRequest struct {
	BuyerPresent  *bool   `json:"buyerPresent" binding:"required"`
	SellerPresent *bool   `json:"sellerPresent" binding:"required"`
	BuyerInterest *string `json:"buyerInterest"`
	Notes         *string `json:"notes"`
}

type SendDetailsRequest struct {
	Send string `json:"send" binding:"required,oneof=buyer-to-seller seller-to-buyer send-both"`
}

type ReportView struct {
	Status                string     `json:"status"`
	BuyerPresent          bool       `json:"buyerPresent"`
	SellerPresent         bool       `json:"sellerPresent"`
	BuyerInterest         *string    `json:"buyerInterest,omitempty"`
	Notes                 *string    `json:"notes,omitempty"`
	WasSuccessful         bool       `json:"wasSuccessful"`
	InspectionStartedAt   *time.Time `json:"inspectionStartedAt,omitempty"`
	InspectionCompletedAt *time.Time `json:"inspectionCompletedAt,omitempty"`
	SubmittedAt           *time.Time `json:"submittedAt,omitempty"`
}

// InspectionResponse is the hydrated aggregate as the API renders it.
type InspectionResponse struct {
	ID                   uuid.UUID                      `json:"id"`
	Status               string                         `json:"status"`
	Stage                string                         `json:"stage"`
	PendingResponseFrom  string                         `json:"pendingResponseFrom"`
	InspectionType       string                         `json:"inspectionType"`
	IsNegotiating        bool                           `json:"isNegotiating"`
	NegotiationPrice     int64                          `json:"negotiationPrice"`
	IsLOI                bool                           `json:"isLOI"`
	LetterOfIntentionURL *string                        `json:"letterOfIntentionUrl,omitempty"`
	ApproveLOI           *bool                          `json:"approveLOI,omitempty"`
	InspectionDate       *time.Time                     `json:"inspectionDate,omitempty"`
	InspectionTime       string                         `json:"inspectionTime,omitempty"`
	InspectionMode       string                         `json:"inspectionMode,omitempty"`
	Property             repository.PropertySummary     `json:"property"`
	Buyer                repository.UserSummary         `json:"buyer"`
	Seller               repository.UserSummary         `json:"seller"`
	FieldAgent           *repository.UserSummary        `json:"fieldAgent,omitempty"`
	Transaction          *repository.TransactionSummary `json:"transaction,omitempty"`
	Report               ReportView                     `json:"report"`
	CreatedAt            time.Time                      `json:"createdAt"`
	UpdatedAt            time.Time                      `json:"updatedAt"`
}

// FromRecord maps the repository aggregate to its API shape.
func FromRecord(rec repository.InspectionRecord) InspectionResponse {
	return InspectionResponse{
		ID:                   rec.ID,
		Status:               string(rec.Status),
		Stage:                string(rec.Stage),
		PendingResponseFrom:  string(rec.PendingResponseFrom),
		InspectionType:       string(rec.InspectionType),
		IsNegotiating:        rec.IsNegotiating,
		NegotiationPrice:     rec.NegotiationPrice,
		IsLOI:                rec.IsLOI,
		LetterOfIntentionURL: rec.LetterOfIntentionURL,
		ApproveLOI:           rec.ApproveLOI,
		InspectionDate:       rec.InspectionDate,
		InspectionTime:       rec.InspectionTime,
		InspectionMode:       string(rec.InspectionMode),
		Property:             rec.Property,
		Buyer:                rec.Buyer,
		Seller:               rec.Seller,
		FieldAgent:           rec.Agent,
		Transaction:          rec.Transaction,
		Report: ReportView{
			Status:                string(rec.Report.Status),
			BuyerPresent:          rec.Report.BuyerPresent,
			SellerPresent:         rec.Report.SellerPresent,
			BuyerInterest:         rec.Report.BuyerInterest,
			Notes:                 rec.Report.Notes,
			WasSuccessful:         rec.Report.WasSuccessful,
			InspectionStartedAt:   rec.Report.InspectionStartedAt,
			InspectionCompletedAt: rec.Report.InspectionCompletedAt,
			SubmittedAt:           rec.Report.SubmittedAt,
		},
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}

// FromRecords maps a page of aggregates.
func FromRecords(recs []repository.InspectionRecord) []InspectionResponse {
	out := make([]InspectionResponse, 0, len(recs))
	for _, rec := range recs {
		out = append(out, FromRecord(rec))
	}
	return out
}
