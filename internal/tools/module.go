package tools

import (
	apphttp "phone_tools_backend/internal/http"
)

// Module mounts the tool registry on the HTTP API.
type Module struct {
	handler  *Handler
	registry *Registry
}

func NewModule(registry *Registry) *Module {
	return &Module{handler: NewHandler(registry), registry: registry}
}

func (m *Module) Name() string {
	return "tools"
}

func (m *Module) Registry() *Registry {
	return m.registry
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/tools")
	group.GET("", m.handler.List)
	group.POST("/:name/invoke", m.handler.Invoke)
}

var _ apphttp.Module = (*Module)(nil)
