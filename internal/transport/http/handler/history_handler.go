package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"banking-user-service/internal/feature/history"
	"banking-user-service/internal/transport/http/response"
)

type HistoryHandler struct {
	svc *history.Service
	log *zap.Logger
}

func NewHistoryHandler(svc *history.Service, log *zap.Logger) *HistoryHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &HistoryHandler{svc: svc, log: log}
}

func (h *HistoryHandler) Mount(g *gin.RouterGroup) {
	g.GET("/users/:id/status-history", h.list)
}

func (h *HistoryHandler) list(c *gin.Context) {
	page, err := h.svc.ListByUser(c.Request.Context(), c.Param("id"), pageFromQuery(c))
	if err != nil {
		response.Fail(c, h.log, err)
		return
	}
	response.OK(c, page)
}
