package handler

import (
	"net/http"
	"strconv"

	"estatehub_backend/internal/activity"
	"estatehub_backend/internal/inspections/domain"
	"estatehub_backend/internal/inspections/repository"
	"estatehub_backend/internal/inspections/service"
	"estatehub_backend/internal/inspections/transport"
	"estatehub_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const msgInvalidRequest = "invalid request"

// AdminHandler exposes the admin-scoped inspection operations.
type AdminHandler struct {
	svc      *service.Service
	activity *activity.Service
}

func NewAdminHandler(svc *service.Service, act *activity.Service) *AdminHandler {
	return &AdminHandler{svc: svc, activity: act}
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid inspection id", nil)
		return uuid.Nil, false
	}
	return id, true
}

func (h *AdminHandler) List(c *gin.Context) {
	params := repository.ListParams{Page: 1, PageSize: 20}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil && page > 0 {
		params.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("pageSize", "20")); err == nil && size > 0 && size <= 100 {
		params.PageSize = size
	}
	if raw := c.Query("status"); raw != "" {
		status := domain.Status(raw)
		if !status.IsValid() {
			httpkit.Error(c, http.StatusBadRequest, "invalid status filter", nil)
			return
		}
		params.Status = &status
	}
	if raw := c.Query("stage"); raw != "" {
		stage := domain.Stage(raw)
		params.Stage = &stage
	}

	recs, total, err := h.svc.List(c.Request.Context(), params)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, gin.H{
		"items":    transport.FromRecords(recs),
		"total":    total,
		"page":     params.Page,
		"pageSize": params.PageSize,
	})
}

func (h *AdminHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	rec, err := h.svc.Get(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.FromRecord(rec))
}

// UpdateStatus handles the admin approve/reject decision.
func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req transport.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}

	var rec repository.InspectionRecord
	var err error
	if req.Status == "approve" {
		rec, err = h.svc.Approve(c.Request.Context(), identity.UserID(), id)
	} else {
		rec, err = h.svc.Reject(c.Request.Context(), identity.UserID(), id, req.Reason)
	}
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.FromRecord(rec))
}

// DecideLOI handles the admin letter-of-intention decision.
func (h *AdminHandler) DecideLOI(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req transport.LOIDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}

	decision := domain.LOIApprove
	if req.Status == "reject" {
		decision = domain.LOIReject
	}

	rec, err := h.svc.DecideLOI(c.Request.Context(), identity.UserID(), id, decision, req.Reason)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.FromRecord(rec))
}

func (h *AdminHandler) AttachFieldAgent(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req transport.AttachFieldAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	agentUserID, err := uuid.Parse(req.FieldAgentID)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid field agent id", nil)
		return
	}

	rec, err := h.svc.AttachFieldAgent(c.Request.Context(), identity.UserID(), id, agentUserID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.FromRecord(rec))
}

func (h *AdminHandler) RemoveFieldAgent(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	rec, err := h.svc.RemoveFieldAgent(c.Request.Context(), identity.UserID(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.FromRecord(rec))
}

func (h *AdminHandler) Delete(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), identity.UserID(), id); httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, gin.H{"status": "deleted"})
}

// Activity returns the append-only history for one inspection.
func (h *AdminHandler) Activity(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	entries, err := h.activity.History(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, gin.H{"items": entries, "total": len(entries)})
}
