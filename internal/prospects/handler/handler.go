package handler

import (
	"net/http"
	"strconv"

	"custodios_crm/internal/prospects/domain"
	"custodios_crm/internal/prospects/service"
	"custodios_crm/internal/prospects/transport"
	"custodios_crm/platform/httpkit"
	"custodios_crm/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for the prospect worklist.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new prospects handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.Worklist)
	rg.GET("/filters", h.FilterOptions)
	rg.POST("/:leadId/validate", h.Validate)
}

func (h *Handler) Worklist(c *gin.Context) {
	var req transport.WorklistRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	resp, err := h.svc.Worklist(c.Request.Context(), FilterConfigFromRequest(req))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

func (h *Handler) FilterOptions(c *gin.Context) {
	httpkit.OK(c, h.svc.FilterOptions())
}

func (h *Handler) Validate(c *gin.Context) {
	leadID, err := strconv.ParseInt(c.Param("leadId"), 10, 64)
	if err != nil || leadID <= 0 {
		httpkit.Error(c, http.StatusBadRequest, "invalid lead id", nil)
		return
	}

	if err := h.svc.Validate(c.Request.Context(), leadID); httpkit.HandleError(c, err) {
		return
	}
	c.Status(http.StatusNoContent)
}

// FilterConfigFromRequest starts from the default view and applies each
// query parameter that was sent.
func FilterConfigFromRequest(req transport.WorklistRequest) domain.FilterConfig {
	config := domain.DefaultFilterConfig()
	if req.Status != nil && *req.Status != "" {
		config = domain.Reduce(config, domain.SetStatusFilter{Value: *req.Status})
	}
	if req.Interviewed != nil {
		config = domain.Reduce(config, domain.SetShowOnlyInterviewed{Value: *req.Interviewed})
	}
	if req.Query != nil {
		config = domain.Reduce(config, domain.SetSearch{Query: *req.Query})
	}
	return config
}
