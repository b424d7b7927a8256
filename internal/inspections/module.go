// Package inspections wires the inspection request workflow: admin
// negotiation decisions, field-agent dispatch, and the on-site reporting
// cycle.
package inspections

import (
	"estatehub_backend/internal/activity"
	"estatehub_backend/internal/http"
	"estatehub_backend/internal/inspections/handler"
	"estatehub_backend/internal/inspections/repository"
	"estatehub_backend/internal/inspections/service"
)

// Module bundles the inspection workflow's HTTP surface.
type Module struct {
	Service *service.Service
	Repo    repository.Repository
	admin   *handler.AdminHandler
	agent   *handler.FieldAgentHandler
}

// NewModule builds the inspection module from pre-wired collaborators. The
// composition root owns construction of repo, mail, storage and scheduler so
// their lifecycles are shared across modules.
func NewModule(deps service.Deps, act *activity.Service) *Module {
	svc := service.New(deps)
	return &Module{
		Service: svc,
		Repo:    deps.Repo,
		admin:   handler.NewAdminHandler(svc, act),
		agent:   handler.NewFieldAgentHandler(svc),
	}
}

func (m *Module) Name() string { return "inspections" }

func (m *Module) RegisterRoutes(rc *http.RouterContext) {
	admin := rc.Admin.Group("/inspections")
	admin.GET("", m.admin.List)
	admin.GET("/:id", m.admin.Get)
	admin.GET("/:id/activity", m.admin.Activity)
	admin.PATCH("/:id/status", m.admin.UpdateStatus)
	admin.PATCH("/:id/approveOrRejectLOI", m.admin.DecideLOI)
	admin.POST("/:id/attachFieldAgent", m.admin.AttachFieldAgent)
	admin.DELETE("/:id/removeFieldAgent", m.admin.RemoveFieldAgent)
	admin.DELETE("/:id/delete", m.admin.Delete)

	agent := rc.FieldAgent.Group("/inspectionsFieldAgent")
	agent.GET("", m.agent.ListAssigned)
	agent.POST("/:id/startInspection", m.agent.StartInspection)
	agent.POST("/:id/stopInspection", m.agent.StopInspection)
	agent.POST("/:id/submitReport", m.agent.SubmitReport)
	agent.POST("/:id/sendDetails", m.agent.SendDetails)
	agent.POST("/:id/reportPhotos", m.agent.UploadReportPhoto)
	agent.GET("/:id/reportPhotos", m.agent.ListReportPhotos)

	// The LOI document upload is a buyer action, gated in the service on the
	// requesting buyer.
	rc.Protected.POST("/inspections/:id/letterOfIntention", m.agent.UploadLetterOfIntention)
}
