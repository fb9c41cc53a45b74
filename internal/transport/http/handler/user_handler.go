package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"banking-user-service/internal/domain"
	"banking-user-service/internal/feature/user"
	"banking-user-service/internal/transport/http/middleware"
	"banking-user-service/internal/transport/http/response"
)

type UserHandler struct {
	svc *user.Service
	log *zap.Logger
}

func NewUserHandler(svc *user.Service, log *zap.Logger) *UserHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &UserHandler{svc: svc, log: log}
}

func (h *UserHandler) Mount(g *gin.RouterGroup) {
	users := g.Group("/users")
	users.POST("", h.create)
	users.GET("", h.list)
	users.GET("/search", h.search)
	users.GET("/status/:status", h.listByStatus)
	users.GET("/auth/:authId", h.getByAuthID)
	users.GET("/email/:email", h.getByEmail)
	users.GET("/:id", h.getByID)
	users.PUT("/:id", h.update)
	users.PUT("/:id/status", h.updateStatus)
	users.DELETE("/:id", h.remove)
}

type createUserReq struct {
	AuthID      string `json:"authId" binding:"required,max=36"`
	Email       string `json:"email" binding:"required,email,max=100"`
	FirstName   string `json:"firstName" binding:"required,min=1,max=50"`
	LastName    string `json:"lastName" binding:"required,min=1,max=50"`
	PhoneNumber string `json:"phoneNumber" binding:"omitempty,e164,max=20"`
	DateOfBirth string `json:"dateOfBirth" binding:"omitempty"`
	Currency    string `json:"currency" binding:"omitempty,max=3"`
}

func (h *UserHandler) create(c *gin.Context) {
	var req createUserReq
	if !bindJSON(c, &req) {
		return
	}
	fields := map[string]string{}
	dob := parseDOB(req.DateOfBirth, fields)
	if len(fields) > 0 {
		response.ValidationFailed(c, fields)
		return
	}

	v, err := h.svc.Create(c.Request.Context(), user.CreateInput{
		AuthID:      req.AuthID,
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		DateOfBirth: dob,
		Currency:    req.Currency,
	})
	if err != nil {
		response.Fail(c, h.log, err)
		return
	}
	response.Created(c, "User created successfully", v)
}

func (h *UserHandler) getByID(c *gin.Context) {
	v, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Fail(c, h.log, err)
		return
	}
	response.OK(c, v)
}

func (h *UserHandler) getByAuthID(c *gin.Context) {
	v, err := h.svc.GetByAuthID(c.Request.Context(), c.Param("authId"))
	if err != nil {
		response.Fail(c, h.log, err)
		return
	}
	response.OK(c, v)
}

func (h *UserHandler) getByEmail(c *gin.Context) {
	v, err := h.svc.GetByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.Fail(c, h.log, err)
		return
	}
	response.OK(c, v)
}

func (h *UserHandler) list(c *gin.Context) {
	page, err := h.svc.List(c.Request.Context(), pageFromQuery(c))
	if err != nil {
		response.Fail(c, h.log, err)
		return
	}
	response.OK(c, page)
}

func (h *UserHandler) listByStatus(c *gin.Context) {
	status := domain.UserStatus(c.Param("status"))
	if !status.Valid() {
		response.ValidationFailed(c, map[string]string{"status": "must be a valid user status"})
		return
	}
	page, err := h.svc.ListByStatus(c.Request.Context(), status, pageFromQuery(c))
	if err != nil {
		response.Fail(c, h.log, err)
		return
	}
	response.OK(c, page)
}

func (h *UserHandler) search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.ValidationFailed(c, map[string]string{"q": "is required"})
		return
	}
	page, err := h.svc.Search(c.Request.Context(), q, pageFromQuery(c))
	if err != nil {
		response.Fail(c, h.log, err)
		return
	}
	response.OK(c, page)
}

type updateUserReq struct {
	FirstName   *string `json:"firstName" binding:"omitempty,min=1,max=50"`
	LastName    *string `json:"lastName" binding:"omitempty,min=1,max=50"`
	PhoneNumber *string `json:"phoneNumber" binding:"omitempty,e164,max=20"`
	DateOfBirth *string `json:"dateOfBirth"`
	Currency    *string `json:"currency" binding:"omitempty,max=3"`
}

func (h *UserHandler) update(c *gin.Context) {
	var req updateUserReq
	if !bindJSON(c, &req) {
		return
	}
	patch := user.UpdatePatch{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Currency:    req.Currency,
	}
	if req.DateOfBirth != nil {
		fields := map[string]string{}
		patch.DateOfBirth = parseDOB(*req.DateOfBirth, fields)
		if len(fields) > 0 {
			response.ValidationFailed(c, fields)
			return
		}
	}

	v, err := h.svc.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		response.Fail(c, h.log, err)
		return
	}
	response.OKMsg(c, "User updated successfully", v)
}

type updateStatusReq struct {
	Status domain.UserStatus `json:"status" binding:"required,oneof=PENDING_VERIFICATION ACTIVE INACTIVE SUSPENDED CLOSED"`
	Reason string            `json:"reason" binding:"omitempty,max=500"`
}

func (h *UserHandler) updateStatus(c *gin.Context) {
	var req updateStatusReq
	if !bindJSON(c, &req) {
		return
	}
	// 操作者标识：显式头优先，否则用令牌里的 actor；均为透传元数据
	actor := c.GetHeader("X-Changed-By")
	if actor == "" {
		actor = c.GetString(middleware.CtxActor)
	}

	v, err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), user.StatusChange{
		Status: req.Status,
		Reason: req.Reason,
		Actor:  actor,
		FromIP: c.ClientIP(),
	})
	if err != nil {
		response.Fail(c, h.log, err)
		return
	}
	response.OKMsg(c, "Status updated successfully", v)
}

func (h *UserHandler) remove(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Fail(c, h.log, err)
		return
	}
	response.NoContent(c)
}
