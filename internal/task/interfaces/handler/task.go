package handler

import (
	nethttp "net/http"
	"strconv"

	"github.com/SahiraTejada/task-layer-arquitecture/internal/shared/apperr"
	"github.com/SahiraTejada/task-layer-arquitecture/internal/shared/transport/http/middleware"
	"github.com/SahiraTejada/task-layer-arquitecture/internal/task/app"
	"github.com/SahiraTejada/task-layer-arquitecture/internal/task/dto"

	"github.com/gin-gonic/gin"
)

type Task struct {
	service *app.TaskService
}

func NewTask(service *app.TaskService) *Task {
	return &Task{service: service}
}

func (h *Task) RegisterRoutes(g *gin.RouterGroup) {
	tasks := g.Group("/tasks", middleware.Identity())
	tasks.POST("", h.Create)
	tasks.GET("", h.List)
	tasks.GET("/:id", h.Get)
	tasks.PATCH("/:id", h.Update)
	tasks.POST("/:id/complete", h.Complete)
	tasks.DELETE("/:id", h.Delete)

	tags := g.Group("/tags", middleware.Identity())
	tags.POST("", h.CreateTag)
	tags.GET("", h.ListTags)
	tags.DELETE("/:id", h.DeleteTag)
}

func (h *Task) Create(c *gin.Context) {
	var req dto.CreateTaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}

	task, err := h.service.Create(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(nethttp.StatusCreated, task)
}

func (h *Task) List(c *gin.Context) {
	var req dto.ListTasksReq
	if err := c.ShouldBindQuery(&req); err != nil {
		_ = c.Error(err)
		return
	}

	resp, err := h.service.List(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(nethttp.StatusOK, resp)
}

func (h *Task) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	task, err := h.service.Get(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(nethttp.StatusOK, task)
}

func (h *Task) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.UpdateTaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}

	task, err := h.service.Update(c.Request.Context(), middleware.UserID(c), id, req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(nethttp.StatusOK, task)
}

func (h *Task) Complete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	task, err := h.service.Complete(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(nethttp.StatusOK, task)
}

func (h *Task) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), middleware.UserID(c), id); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(nethttp.StatusNoContent)
}

func (h *Task) CreateTag(c *gin.Context) {
	var req dto.CreateTagReq
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}

	tag, err := h.service.CreateTag(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(nethttp.StatusCreated, tag)
}

func (h *Task) ListTags(c *gin.Context) {
	tags, err := h.service.ListTags(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(nethttp.StatusOK, tags)
}

func (h *Task) DeleteTag(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteTag(c.Request.Context(), middleware.UserID(c), id); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(nethttp.StatusNoContent)
}

func pathID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		_ = c.Error(apperr.NewValidation("id", "'id' must be a positive integer"))
		return 0, false
	}
	return uint(id), true
}
