package domain

import (
	"time"

	"gorm.io/gorm"
)

type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// MaxTagsPerTask 是单任务可挂标签数上限。
const MaxTagsPerTask = 10

type Task struct {
	ID          uint           `gorm:"column:id;primaryKey;autoIncrement;comment:任务ID" json:"id"`
	Title       string         `gorm:"column:title;type:varchar(200);not null;comment:标题" json:"title"`
	Description string         `gorm:"column:description;type:text;comment:描述" json:"description"`
	Status      Status         `gorm:"column:status;type:varchar(20);default:todo;index;comment:状态" json:"status"`
	Priority    Priority       `gorm:"column:priority;type:varchar(10);default:medium;comment:优先级" json:"priority"`
	DueDate     *time.Time     `gorm:"column:due_date;comment:截止时间" json:"due_date"`
	CompletedAt *time.Time     `gorm:"column:completed_at;comment:完成时间" json:"completed_at"`
	OwnerID     uint           `gorm:"column:owner_id;index;not null;comment:所属用户" json:"owner_id"`
	Tags        []Tag          `gorm:"many2many:task_tags" json:"tags"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Task) TableName() string {
	return "tasks"
}

func (t *Task) IsDone() bool {
	return t.Status == StatusDone
}

type Tag struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement;comment:标签ID" json:"id"`
	Name      string    `gorm:"column:name;type:varchar(50);not null;uniqueIndex:idx_tag_owner_name;comment:名称" json:"name"`
	Color     string    `gorm:"column:color;type:varchar(7);default:#808080;comment:颜色" json:"color"`
	OwnerID   uint      `gorm:"column:owner_id;not null;uniqueIndex:idx_tag_owner_name;comment:所属用户" json:"owner_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Tag) TableName() string {
	return "tags"
}

// ValidStatus 校验状态枚举。空串按未提供处理，由调用方补默认值。
func ValidStatus(s Status) bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

func ValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}
