package dto

import (
	"time"

	"github.com/SahiraTejada/task-layer-arquitecture/internal/task/domain"
)

type CreateTaskReq struct {
	Title       string     `json:"title" binding:"required,max=200"`
	Description string     `json:"description" binding:"omitempty,max=2000"`
	Status      string     `json:"status" binding:"omitempty,oneof=todo in_progress done"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate     *time.Time `json:"due_date"`
	TagIDs      []uint     `json:"tag_ids"`
}

type UpdateTaskReq struct {
	Title       *string    `json:"title" binding:"omitempty,max=200"`
	Description *string    `json:"description" binding:"omitempty,max=2000"`
	Status      *string    `json:"status" binding:"omitempty,oneof=todo in_progress done"`
	Priority    *string    `json:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate     *time.Time `json:"due_date"`
	TagIDs      *[]uint    `json:"tag_ids"`
}

// ListTasksReq 过滤与分页。page/page_size 越界时收敛到合法区间，不报错。
type ListTasksReq struct {
	Status   string `form:"status" binding:"omitempty,oneof=todo in_progress done"`
	Priority string `form:"priority" binding:"omitempty,oneof=low medium high"`
	TagID    uint   `form:"tag_id"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Normalize 收敛分页参数：page 最小 1，page_size 限定 1..100。
func (r *ListTasksReq) Normalize() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.PageSize < 1 {
		r.PageSize = DefaultPageSize
	}
	if r.PageSize > MaxPageSize {
		r.PageSize = MaxPageSize
	}
}

type TaskListResp struct {
	Items    []*domain.Task `json:"items"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

type CreateTagReq struct {
	Name  string `json:"name" binding:"required,max=50"`
	Color string `json:"color" binding:"omitempty,hexcolor"`
}
