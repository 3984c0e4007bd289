package handler

import (
	"net/http"
	"strconv"

	"custodios_crm/internal/validation/service"
	"custodios_crm/internal/validation/transport"
	"custodios_crm/platform/httpkit"
	"custodios_crm/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for validation records.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new validation handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/:leadId", h.Get)
	rg.PUT("/:leadId", h.Submit)
}

func (h *Handler) Get(c *gin.Context) {
	leadID, ok := parseLeadID(c)
	if !ok {
		return
	}

	rec, err := h.svc.Get(c.Request.Context(), leadID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, rec)
}

func (h *Handler) Submit(c *gin.Context) {
	leadID, ok := parseLeadID(c)
	if !ok {
		return
	}

	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	var req transport.SubmitValidationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	rec, err := h.svc.Submit(c.Request.Context(), leadID, identity.UserID(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, rec)
}

func parseLeadID(c *gin.Context) (int64, bool) {
	leadID, err := strconv.ParseInt(c.Param("leadId"), 10, 64)
	if err != nil || leadID <= 0 {
		httpkit.Error(c, http.StatusBadRequest, "invalid lead id", nil)
		return 0, false
	}
	return leadID, true
}
