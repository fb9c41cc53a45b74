package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"banking-user-service/internal/domain"
	"banking-user-service/internal/feature/profile"
	"banking-user-service/internal/transport/http/response"
)

type ProfileHandler struct {
	svc *profile.Service
	log *zap.Logger
}

func NewProfileHandler(svc *profile.Service, log *zap.Logger) *ProfileHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProfileHandler{svc: svc, log: log}
}

func (h *ProfileHandler) Mount(g *gin.RouterGroup) {
	p := g.Group("/users/:id/profile")
	p.GET("", h.get)
	p.PUT("", h.upsert)
	p.PUT("/avatar", h.updateAvatar)
	p.DELETE("", h.remove)
}

func (h *ProfileHandler) get(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Fail(c, h.log, err)
		return
	}
	response.OK(c, p)
}

func (h *ProfileHandler) upsert(c *gin.Context) {
	var patch domain.ProfilePatch
	if !bindJSON(c, &patch) {
		return
	}
	p, err := h.svc.Upsert(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		response.Fail(c, h.log, err)
		return
	}
	response.OKMsg(c, "Profile updated successfully", p)
}

type avatarReq struct {
	AvatarURL string `json:"avatarUrl" binding:"required,url,max=500"`
}

func (h *ProfileHandler) updateAvatar(c *gin.Context) {
	var req avatarReq
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.svc.UpdateAvatar(c.Request.Context(), c.Param("id"), req.AvatarURL)
	if err != nil {
		response.Fail(c, h.log, err)
		return
	}
	response.OKMsg(c, "Avatar updated successfully", p)
}

func (h *ProfileHandler) remove(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Fail(c, h.log, err)
		return
	}
	response.NoContent(c)
}
