package notification

import (
	"estatehub_backend/internal/http"
	"estatehub_backend/internal/notification/handler"
	"estatehub_backend/internal/notification/inapp"
	"estatehub_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module bundles in-app notification storage and its HTTP surface.
type Module struct {
	Service *inapp.Service
	handler *handler.HTTPHandler
}

func NewModule(pool *pgxpool.Pool, log *logger.Logger) *Module {
	repo := inapp.NewRepository(pool)
	svc := inapp.NewService(repo, log)
	return &Module{
		Service: svc,
		handler: handler.NewHTTPHandler(svc),
	}
}

func (m *Module) Name() string { return "notifications" }

func (m *Module) RegisterRoutes(rc *http.RouterContext) {
	m.handler.RegisterRoutes(rc.Protected.Group("/notifications"))
}
