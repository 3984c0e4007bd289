package handler

import (
	"net/http"
	"strconv"

	"custodios_crm/internal/leads/service"
	"custodios_crm/internal/leads/transport"
	"custodios_crm/platform/httpkit"
	"custodios_crm/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidLeadID    = "invalid lead id"
)

// Handler handles HTTP requests for leads.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new leads handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes mounts the staff-facing lead routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/board", h.Board)
	rg.GET("/:id", h.Get)
	rg.PATCH("/:id/status", h.UpdateStatus)
	rg.PATCH("/:id/stage", h.UpdateStage)
	rg.POST("/:id/call-outcome", h.RecordCallOutcome)
}

// RegisterWebhookRoutes mounts the machine intake route.
func (h *Handler) RegisterWebhookRoutes(rg *gin.RouterGroup) {
	rg.POST("/leads", h.WebhookCreate)
}

func (h *Handler) Create(c *gin.Context) {
	h.create(c, service.SourceManual)
}

func (h *Handler) WebhookCreate(c *gin.Context) {
	h.create(c, service.SourceWebhook)
}

func (h *Handler) create(c *gin.Context, source string) {
	var req transport.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	lead, duplicate, err := h.svc.Create(c.Request.Context(), source, req)
	if httpkit.HandleError(c, err) {
		return
	}

	status := http.StatusCreated
	if duplicate {
		status = http.StatusOK
	}
	httpkit.JSON(c, status, transport.CreateLeadResponse{Lead: lead, Duplicate: duplicate})
}

func (h *Handler) List(c *gin.Context) {
	var req transport.ListLeadsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	leads, err := h.svc.List(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, leads)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := parseLeadID(c)
	if !ok {
		return
	}

	lead, err := h.svc.Get(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, lead)
}

func (h *Handler) Board(c *gin.Context) {
	board, err := h.svc.Board(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, board)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := parseLeadID(c)
	if !ok {
		return
	}

	var req transport.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	lead, err := h.svc.UpdateStatus(c.Request.Context(), id, req.Estado, "manual")
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, lead)
}

func (h *Handler) UpdateStage(c *gin.Context) {
	id, ok := parseLeadID(c)
	if !ok {
		return
	}

	var req transport.UpdateStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	lead, err := h.svc.UpdateStage(c.Request.Context(), id, req.Etapa)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, lead)
}

func (h *Handler) RecordCallOutcome(c *gin.Context) {
	id, ok := parseLeadID(c)
	if !ok {
		return
	}

	var req transport.CallOutcomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	lead, err := h.svc.RecordCallOutcome(c.Request.Context(), id, req.Outcome)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, lead)
}

func parseLeadID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidLeadID, nil)
		return 0, false
	}
	return id, true
}
