package agents

import (
	"estatehub_backend/internal/http"
	"estatehub_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module bundles field agent profiles and their admin HTTP surface.
type Module struct {
	Service *Service
	handler *Handler
}

func NewModule(pool *pgxpool.Pool, log *logger.Logger) *Module {
	svc := NewService(NewRepository(pool), log)
	return &Module{
		Service: svc,
		handler: NewHandler(svc),
	}
}

func (m *Module) Name() string { return "field-agents" }

func (m *Module) RegisterRoutes(rc *http.RouterContext) {
	admin := rc.Admin.Group("/field-agents")
	admin.GET("", m.handler.List)
	admin.GET("/:id", m.handler.Get)
	admin.PATCH("/:id/approve", m.handler.Approve)
	admin.PATCH("/:id/suspend", m.handler.Suspend)
}
