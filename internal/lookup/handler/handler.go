package handler

import (
	"net/http"

	"phone_tools_backend/internal/lookup/service"
	"phone_tools_backend/internal/lookup/transport"
	"phone_tools_backend/platform/httpkit"
	"phone_tools_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for phone lookups.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// New creates a new phone lookup handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// bind decodes and validates a JSON body, writing the 400 response itself.
func (h *Handler) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return false
	}
	return true
}

// Validate checks a single number.
// POST /api/v1/phone/validate
func (h *Handler) Validate(c *gin.Context) {
	var req transport.ValidateRequest
	if !h.bind(c, &req) {
		return
	}
	httpkit.OK(c, h.svc.Validate(httpkit.RequestContext(c), req))
}

// Format renders a number in the requested format.
// POST /api/v1/phone/format
func (h *Handler) Format(c *gin.Context) {
	var req transport.FormatRequest
	if !h.bind(c, &req) {
		return
	}

	result, err := h.svc.Format(httpkit.RequestContext(c), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Extract finds numbers in free text.
// POST /api/v1/phone/extract
func (h *Handler) Extract(c *gin.Context) {
	var req transport.ExtractRequest
	if !h.bind(c, &req) {
		return
	}
	httpkit.OK(c, transport.ExtractResponse{Numbers: h.svc.Extract(httpkit.RequestContext(c), req.Text, req.Region)})
}

// BatchValidate validates many numbers at once.
// POST /api/v1/phone/batch-validate
func (h *Handler) BatchValidate(c *gin.Context) {
	var req transport.BatchValidateRequest
	if !h.bind(c, &req) {
		return
	}

	result, err := h.svc.BatchValidate(httpkit.RequestContext(c), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Locate returns the localized location mapping. Unparseable numbers still get a
// 200 with the error mapping.
// POST /api/v1/phone/locate
func (h *Handler) Locate(c *gin.Context) {
	var req transport.LocateRequest
	if !h.bind(c, &req) {
		return
	}
	httpkit.OK(c, h.svc.Locate(httpkit.RequestContext(c), req.Number, req.Region, req.Lang))
}

// SubmitBatch queues a batch validation job.
// POST /api/v1/phone/batch-jobs
func (h *Handler) SubmitBatch(c *gin.Context) {
	var req transport.BatchJobRequest
	if !h.bind(c, &req) {
		return
	}

	result, err := h.svc.SubmitBatch(httpkit.RequestContext(c), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Accepted(c, result)
}

// GetBatch returns a batch job.
// GET /api/v1/phone/batch-jobs/:id
func (h *Handler) GetBatch(c *gin.Context) {
	result, err := h.svc.GetBatch(httpkit.RequestContext(c), c.Param("id"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
