package handler

import (
	nethttp "net/http"
	"strconv"

	"github.com/SahiraTejada/task-layer-arquitecture/internal/shared/apperr"
	"github.com/SahiraTejada/task-layer-arquitecture/internal/user/app"
	"github.com/SahiraTejada/task-layer-arquitecture/internal/user/dto"

	"github.com/gin-gonic/gin"
)

// User 暴露用户与认证接口。handler 只做参数绑定和转发，
// 错误一律挂到 gin.Context 交给错误分发中间件渲染。
type User struct {
	service *app.UserService
}

func NewUser(service *app.UserService) *User {
	return &User{service: service}
}

func (h *User) RegisterRoutes(g *gin.RouterGroup) {
	auth := g.Group("/auth")
	auth.POST("/register", h.Register)
	auth.POST("/login", h.Login)

	users := g.Group("/users")
	users.GET("/:id", h.Get)
	users.PATCH("/:id", h.Update)
	users.DELETE("/:id", h.Deactivate)
}

func (h *User) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}

	user, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(nethttp.StatusCreated, dto.NewUserResp(user))
}

func (h *User) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}

	user, err := h.service.Authenticate(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(nethttp.StatusOK, dto.NewUserResp(user))
}

func (h *User) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	user, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(nethttp.StatusOK, dto.NewUserResp(user))
}

func (h *User) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.UpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}

	user, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(nethttp.StatusOK, dto.NewUserResp(user))
}

func (h *User) Deactivate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.Deactivate(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(nethttp.StatusNoContent)
}

// pathID 解析路径里的数字 ID，非法时直接挂校验错误。
func pathID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		_ = c.Error(apperr.NewValidation("id", "'id' must be a positive integer"))
		return 0, false
	}
	return uint(id), true
}
