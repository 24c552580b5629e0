// Package lookup provides the phone number HTTP API: validation, formatting,
// extraction, location lookups and batch validation jobs.
package lookup

import (
	"time"

	apphttp "phone_tools_backend/internal/http"
	"phone_tools_backend/internal/lookup/handler"
	"phone_tools_backend/internal/lookup/service"
	"phone_tools_backend/platform/cache"
	"phone_tools_backend/platform/config"
	"phone_tools_backend/platform/logger"
	"phone_tools_backend/platform/validator"
)

// Module is the phone lookup module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates the lookup module. Pass cache.Nop{} to disable caching.
func NewModule(cfg config.PhoneConfig, c cache.Cache, cacheTTL time.Duration, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(cfg, c, cacheTTL, log)
	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "lookup"
}

// Service returns the service layer for the tool adapters.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts the phone routes under /api/v1/phone.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/phone")
	group.POST("/validate", m.handler.Validate)
	group.POST("/format", m.handler.Format)
	group.POST("/extract", m.handler.Extract)
	group.POST("/batch-validate", m.handler.BatchValidate)
	group.POST("/locate", m.handler.Locate)

	jobs := ctx.Protected.Group("/phone/batch-jobs")
	jobs.POST("", m.handler.SubmitBatch)
	jobs.GET("/:id", m.handler.GetBatch)
}

var _ apphttp.Module = (*Module)(nil)
