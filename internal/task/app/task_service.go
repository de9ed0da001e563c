package app

import (
	"context"
	"strconv"
	"time"

	"github.com/SahiraTejada/task-layer-arquitecture/internal/shared/apperr"
	"github.com/SahiraTejada/task-layer-arquitecture/internal/shared/infrastructure/db"
	"github.com/SahiraTejada/task-layer-arquitecture/internal/task/domain"
	"github.com/SahiraTejada/task-layer-arquitecture/internal/task/dto"
)

type TaskRepo interface {
	GetByID(ctx context.Context, id uint) (*domain.Task, error)
	List(ctx context.Context, ownerID uint, req dto.ListTasksReq) ([]*domain.Task, int64, error)
	Create(ctx context.Context, t *domain.Task) error
	Update(ctx context.Context, t *domain.Task) error
	SetTags(ctx context.Context, t *domain.Task, tags []domain.Tag) error
	Delete(ctx context.Context, id uint) error
}

type TagRepo interface {
	GetByIDs(ctx context.Context, ownerID uint, ids []uint) ([]domain.Tag, error)
	GetByName(ctx context.Context, ownerID uint, name string) (*domain.Tag, error)
	List(ctx context.Context, ownerID uint) ([]domain.Tag, error)
	Create(ctx context.Context, tag *domain.Tag) error
	Delete(ctx context.Context, ownerID, id uint) error
}

type TaskService struct {
	tasks TaskRepo
	tags  TagRepo
	now   func() time.Time
}

func NewTaskService(tasks TaskRepo, tags TagRepo) *TaskService {
	return &TaskService{
		tasks: tasks,
		tags:  tags,
		now:   time.Now,
	}
}

func (s *TaskService) Create(ctx context.Context, ownerID uint, req dto.CreateTaskReq) (*domain.Task, error) {
	status := domain.Status(req.Status)
	if status == "" {
		status = domain.StatusTodo
	}
	priority := domain.Priority(req.Priority)
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if req.DueDate != nil && req.DueDate.Before(s.now()) {
		return nil, apperr.NewValidation("due_date", "'due_date' must be in the future")
	}

	tags, err := s.resolveTags(ctx, ownerID, req.TagIDs)
	if err != nil {
		return nil, err
	}

	task := &domain.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		Priority:    priority,
		DueDate:     req.DueDate,
		OwnerID:     ownerID,
		Tags:        tags,
	}
	if status == domain.StatusDone {
		now := s.now().UTC()
		task.CompletedAt = &now
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Get 按 ID 取任务并做归属校验。越权访问不降级成 404，
// 按规范用 AUTH004 区分"不存在"和"不是你的"。
func (s *TaskService) Get(ctx context.Context, ownerID, id uint) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, apperr.NewResourceNotFound("Task", formatID(id))
		}
		return nil, err
	}
	if task.OwnerID != ownerID {
		return nil, apperr.NewAuthorization("You do not have access to this task").
			WithResourceType("Task")
	}
	return task, nil
}

func (s *TaskService) List(ctx context.Context, ownerID uint, req dto.ListTasksReq) (*dto.TaskListResp, error) {
	req.Normalize()

	items, total, err := s.tasks.List(ctx, ownerID, req)
	if err != nil {
		return nil, err
	}
	return &dto.TaskListResp{
		Items:    items,
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
	}, nil
}

func (s *TaskService) Update(ctx context.Context, ownerID, id uint, req dto.UpdateTaskReq) (*domain.Task, error) {
	task, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Priority != nil {
		task.Priority = domain.Priority(*req.Priority)
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	if req.Status != nil {
		next := domain.Status(*req.Status)
		if next == domain.StatusDone && !task.IsDone() {
			now := s.now().UTC()
			task.CompletedAt = &now
		}
		if next != domain.StatusDone {
			task.CompletedAt = nil
		}
		task.Status = next
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	if req.TagIDs != nil {
		tags, err := s.resolveTags(ctx, ownerID, *req.TagIDs)
		if err != nil {
			return nil, err
		}
		if err := s.tasks.SetTags(ctx, task, tags); err != nil {
			return nil, err
		}
		task.Tags = tags
	}
	return task, nil
}

// Complete 把任务置为完成。重复完成是业务规则冲突，不是幂等操作。
func (s *TaskService) Complete(ctx context.Context, ownerID, id uint) (*domain.Task, error) {
	task, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if task.IsDone() {
		contextData := map[string]any{"task_id": task.ID}
		if task.CompletedAt != nil {
			contextData["completed_at"] = task.CompletedAt.Format(time.RFC3339)
		}
		return nil, apperr.NewBusinessRule(
			"task_already_completed",
			"A completed task cannot be completed again",
			contextData,
		)
	}

	now := s.now().UTC()
	task.Status = domain.StatusDone
	task.CompletedAt = &now
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, ownerID, id uint) error {
	if _, err := s.Get(ctx, ownerID, id); err != nil {
		return err
	}
	return s.tasks.Delete(ctx, id)
}

func (s *TaskService) CreateTag(ctx context.Context, ownerID uint, req dto.CreateTagReq) (*domain.Tag, error) {
	if existing, err := s.tags.GetByName(ctx, ownerID, req.Name); err != nil {
		if !db.IsNotFound(err) {
			return nil, err
		}
	} else if existing != nil {
		return nil, apperr.NewDuplicateResource("Tag", "name", req.Name)
	}

	tag := &domain.Tag{
		Name:    req.Name,
		OwnerID: ownerID,
	}
	if req.Color != "" {
		tag.Color = req.Color
	}
	if err := s.tags.Create(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *TaskService) ListTags(ctx context.Context, ownerID uint) ([]domain.Tag, error) {
	return s.tags.List(ctx, ownerID)
}

func (s *TaskService) DeleteTag(ctx context.Context, ownerID, id uint) error {
	if err := s.tags.Delete(ctx, ownerID, id); err != nil {
		if db.IsNotFound(err) {
			return apperr.NewResourceNotFound("Tag", formatID(id))
		}
		return err
	}
	return nil
}

// resolveTags 校验标签数量上限和归属，再换成实体。
// 引用了别人的（或不存在的）标签按 404 处理，不泄漏标签归属。
func (s *TaskService) resolveTags(ctx context.Context, ownerID uint, ids []uint) ([]domain.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	if len(ids) > domain.MaxTagsPerTask {
		return nil, apperr.NewQuotaExceeded(
			"max_tags_per_task",
			"A task cannot have more than 10 tags",
			map[string]any{
				"limit":     domain.MaxTagsPerTask,
				"requested": len(ids),
			},
		)
	}

	tags, err := s.tags.GetByIDs(ctx, ownerID, ids)
	if err != nil {
		return nil, err
	}
	if len(tags) != len(uniqueIDs(ids)) {
		return nil, apperr.NewResourceNotFound("Tag", missingTagID(ids, tags))
	}
	return tags, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func missingTagID(ids []uint, found []domain.Tag) string {
	have := make(map[uint]struct{}, len(found))
	for _, t := range found {
		have[t.ID] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := have[id]; !ok {
			return formatID(id)
		}
	}
	return "unknown"
}

func formatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
