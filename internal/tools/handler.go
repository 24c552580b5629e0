package tools

import (
	"net/http"

	"phone_tools_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Manifest describes a tool to hosts.
type Manifest struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Parameters  []Parameter `json:"parameters"`
}

// InvokeRequest is the body of POST /tools/:name/invoke.
type InvokeRequest struct {
	Parameters map[string]any `json:"parameters"`
}

// Handler exposes the registry over HTTP.
type Handler struct {
	registry *Registry
}

func NewHandler(registry *Registry) *Handler {
	return &Handler{registry: registry}
}

// List returns the tool manifests.
// GET /api/v1/tools
func (h *Handler) List(c *gin.Context) {
	tools := h.registry.List()
	manifests := make([]Manifest, 0, len(tools))
	for _, tool := range tools {
		manifests = append(manifests, Manifest{
			Name:        tool.Name(),
			Description: tool.Description(),
			Parameters:  tool.Parameters(),
		})
	}
	httpkit.OK(c, gin.H{"tools": manifests})
}

// Invoke runs a tool.
// POST /api/v1/tools/:name/invoke
func (h *Handler) Invoke(c *gin.Context) {
	var req InvokeRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
			return
		}
	}

	msg, err := h.registry.Invoke(httpkit.RequestContext(c), c.Param("name"), req.Parameters)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, msg)
}
