package handler

import (
	"io"
	"net/http"

	"estatehub_backend/internal/inspections/domain"
	"estatehub_backend/internal/inspections/service"
	"estatehub_backend/internal/inspections/transport"
	"estatehub_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// maxUploadBytes caps multipart uploads (LOI documents and report photos).
const maxUploadBytes = 10 << 20

// FieldAgentHandler exposes the operations available to an assigned field
// agent, plus the buyer's letter-of-intention upload.
type FieldAgentHandler struct {
	svc *service.Service
}

func NewFieldAgentHandler(svc *service.Service) *FieldAgentHandler {
	return &FieldAgentHandler{svc: svc}
}

func (h *FieldAgentHandler) ListAssigned(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	recs, err := h.svc.ListForAgent(c.Request.Context(), identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, gin.H{"items": transport.FromRecords(recs), "total": len(recs)})
}

func (h *FieldAgentHandler) StartInspection(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	rec, err := h.svc.StartReport(c.Request.Context(), identity.UserID(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.FromRecord(rec))
}

func (h *FieldAgentHandler) StopInspection(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	rec, err := h.svc.CompleteReport(c.Request.Context(), identity.UserID(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.FromRecord(rec))
}

func (h *FieldAgentHandler) SubmitReport(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req transport.SubmitReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}

	rec, err := h.svc.SubmitReport(c.Request.Context(), identity.UserID(), id, domain.SubmitReportParams{
		BuyerPresent:  *req.BuyerPresent,
		SellerPresent: *req.SellerPresent,
		BuyerInterest: req.BuyerInterest,
		Notes:         req.Notes,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.FromRecord(rec))
}

func (h *FieldAgentHandler) SendDetails(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req transport.SendDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}

	err := h.svc.SendDetails(c.Request.Context(), identity.UserID(), id, service.DetailDirection(req.Send))
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, gin.H{"status": "sent"})
}

func (h *FieldAgentHandler) UploadReportPhoto(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	fileName, contentType, data, ok := readUpload(c, "photo")
	if !ok {
		return
	}

	photo, err := h.svc.UploadReportPhoto(c.Request.Context(), identity.UserID(), id, fileName, contentType, data)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, photo)
}

func (h *FieldAgentHandler) ListReportPhotos(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	photos, err := h.svc.ListReportPhotos(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, gin.H{"items": photos, "total": len(photos)})
}

// UploadLetterOfIntention handles the buyer's LOI document upload.
func (h *FieldAgentHandler) UploadLetterOfIntention(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	fileName, contentType, data, ok := readUpload(c, "document")
	if !ok {
		return
	}

	rec, err := h.svc.UploadLetterOfIntention(c.Request.Context(), identity.UserID(), id, fileName, contentType, data)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.FromRecord(rec))
}

// readUpload pulls one multipart file into memory. A false return means the
// response has already been written.
func readUpload(c *gin.Context, field string) (fileName, contentType string, data []byte, ok bool) {
	header, err := c.FormFile(field)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "missing "+field+" file", nil)
		return "", "", nil, false
	}
	if header.Size > maxUploadBytes {
		httpkit.Error(c, http.StatusBadRequest, "file exceeds the 10MB limit", nil)
		return "", "", nil, false
	}

	f, err := header.Open()
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "could not read "+field+" file", nil)
		return "", "", nil, false
	}
	defer f.Close()

	data, err = io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "could not read "+field+" file", nil)
		return "", "", nil, false
	}

	return header.Filename, header.Header.Get("Content-Type"), data, true
}
