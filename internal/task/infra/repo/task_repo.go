package repo

import (
	"context"

	"github.com/SahiraTejada/task-layer-arquitecture/internal/shared/infrastructure/db"
	"github.com/SahiraTejada/task-layer-arquitecture/internal/task/domain"
	"github.com/SahiraTejada/task-layer-arquitecture/internal/task/dto"

	"gorm.io/gorm"
)

type TaskRepo struct {
	db *gorm.DB
}

func NewTaskRepo(db *gorm.DB) *TaskRepo {
	return &TaskRepo{db: db}
}

func (r *TaskRepo) GetByID(ctx context.Context, id uint) (*domain.Task, error) {
	var task domain.Task
	err := r.db.WithContext(ctx).Preload("Tags").First(&task, id).Error
	if err != nil {
		return nil, db.Wrap("task.get_by_id", err)
	}
	return &task, nil
}

// List 按过滤条件分页查询。count 和查询共用同一组条件。
func (r *TaskRepo) List(ctx context.Context, ownerID uint, req dto.ListTasksReq) ([]*domain.Task, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Task{}).Where("owner_id = ?", ownerID)
	if req.Status != "" {
		q = q.Where("status = ?", req.Status)
	}
	if req.Priority != "" {
		q = q.Where("priority = ?", req.Priority)
	}
	if req.TagID != 0 {
		q = q.Joins("JOIN task_tags ON task_tags.task_id = tasks.id").
			Where("task_tags.tag_id = ?", req.TagID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, db.Wrap("task.count", err)
	}

	var tasks []*domain.Task
	err := q.Preload("Tags").
		Order("created_at DESC").
		Offset((req.Page - 1) * req.PageSize).
		Limit(req.PageSize).
		Find(&tasks).Error
	if err != nil {
		return nil, 0, db.Wrap("task.list", err)
	}
	return tasks, total, nil
}

func (r *TaskRepo) Create(ctx context.Context, t *domain.Task) error {
	return db.Wrap("task.create", r.db.WithContext(ctx).Create(t).Error)
}

func (r *TaskRepo) Update(ctx context.Context, t *domain.Task) error {
	// 关联另走 SetTags，常规更新不触碰 many2many
	return db.Wrap("task.update", r.db.WithContext(ctx).Omit("Tags").Save(t).Error)
}

func (r *TaskRepo) SetTags(ctx context.Context, t *domain.Task, tags []domain.Tag) error {
	err := r.db.WithContext(ctx).Model(t).Association("Tags").Replace(&tags)
	return db.Wrap("task.set_tags", err)
}

func (r *TaskRepo) Delete(ctx context.Context, id uint) error {
	return db.Wrap("task.delete", r.db.WithContext(ctx).Delete(&domain.Task{}, id).Error)
}
