package handler

import (
	"net/http"
	"strconv"

	"custodios_crm/internal/calls/service"
	"custodios_crm/internal/calls/transport"
	"custodios_crm/internal/scheduler"
	"custodios_crm/platform/httpkit"
	"custodios_crm/platform/logger"
	"custodios_crm/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for calls and call logs.
type Handler struct {
	svc   *service.Service
	queue scheduler.CallOutcomeEnqueuer
	val   *validator.Validator
	log   *logger.Logger
}

// New creates a calls handler. A nil queue makes the outcome webhook store
// reports inline.
func New(svc *service.Service, queue scheduler.CallOutcomeEnqueuer, val *validator.Validator, log *logger.Logger) *Handler {
	return &Handler{svc: svc, queue: queue, val: val, log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/call-logs", h.ListCallLogs)
	rg.POST("/leads/:id/call", h.InitiateCall)
}

func (h *Handler) RegisterWebhookRoutes(rg *gin.RouterGroup) {
	rg.POST("/call-outcomes", h.ReceiveOutcome)
}

func (h *Handler) ListCallLogs(c *gin.Context) {
	var req transport.ListCallLogsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	logs, err := h.svc.List(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, logs)
}

func (h *Handler) InitiateCall(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		httpkit.Error(c, http.StatusBadRequest, "invalid lead id", nil)
		return
	}

	resp, err := h.svc.InitiateCall(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusAccepted, resp)
}

func (h *Handler) ReceiveOutcome(c *gin.Context) {
	var req transport.CallOutcomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	payload := service.PayloadFromRequest(req)
	if h.queue != nil {
		if err := h.queue.EnqueueCallOutcome(c.Request.Context(), payload); err != nil {
			h.log.WithContext(c.Request.Context()).Error("enqueue call outcome failed", "callId", payload.CallID, "error", err)
			httpkit.Error(c, http.StatusServiceUnavailable, "call outcome could not be queued", nil)
			return
		}
		httpkit.JSON(c, http.StatusAccepted, transport.CallOutcomeAcceptedResponse{CallID: payload.CallID, Queued: true})
		return
	}

	if err := h.svc.RecordOutcome(c.Request.Context(), payload); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.CallOutcomeAcceptedResponse{CallID: payload.CallID, Queued: false})
}
