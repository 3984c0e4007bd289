package handler

import (
	"custodios_crm/internal/dashboard/service"
	"custodios_crm/platform/httpkit"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *service.Service
}

func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/summary", h.Summary)
}

func (h *Handler) Summary(c *gin.Context) {
	resp, err := h.svc.Summary(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}
