package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SahiraTejada/task-layer-arquitecture/internal/shared/apperr"
	"github.com/SahiraTejada/task-layer-arquitecture/internal/shared/infrastructure/db"
	"github.com/SahiraTejada/task-layer-arquitecture/internal/task/domain"
	"github.com/SahiraTejada/task-layer-arquitecture/internal/task/dto"

	"gorm.io/gorm"
)

type fakeTaskRepo struct {
	tasks   map[uint]*domain.Task
	updated *domain.Task
	deleted uint
}

func newFakeTaskRepo(tasks ...*domain.Task) *fakeTaskRepo {
	r := &fakeTaskRepo{tasks: map[uint]*domain.Task{}}
	for _, t := range tasks {
		r.tasks[t.ID] = t
	}
	return r
}

func (r *fakeTaskRepo) GetByID(ctx context.Context, id uint) (*domain.Task, error) {
	if t, ok := r.tasks[id]; ok {
		return t, nil
	}
	return nil, db.Wrap("task.get_by_id", gorm.ErrRecordNotFound)
}

func (r *fakeTaskRepo) List(ctx context.Context, ownerID uint, req dto.ListTasksReq) ([]*domain.Task, int64, error) {
	var out []*domain.Task
	for _, t := range r.tasks {
		if t.OwnerID == ownerID {
			out = append(out, t)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	t.ID = uint(len(r.tasks) + 1)
	r.tasks[t.ID] = t
	return nil
}

func (r *fakeTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	r.updated = t
	return nil
}

func (r *fakeTaskRepo) SetTags(ctx context.Context, t *domain.Task, tags []domain.Tag) error {
	return nil
}

func (r *fakeTaskRepo) Delete(ctx context.Context, id uint) error {
	r.deleted = id
	return nil
}

type fakeTagRepo struct {
	tags    map[uint]domain.Tag
	created *domain.Tag
	deleted uint
}

func newFakeTagRepo(tags ...domain.Tag) *fakeTagRepo {
	r := &fakeTagRepo{tags: map[uint]domain.Tag{}}
	for _, t := range tags {
		r.tags[t.ID] = t
	}
	return r
}

func (r *fakeTagRepo) GetByIDs(ctx context.Context, ownerID uint, ids []uint) ([]domain.Tag, error) {
	var out []domain.Tag
	for _, id := range ids {
		if t, ok := r.tags[id]; ok && t.OwnerID == ownerID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTagRepo) GetByName(ctx context.Context, ownerID uint, name string) (*domain.Tag, error) {
	for _, t := range r.tags {
		if t.OwnerID == ownerID && t.Name == name {
			tag := t
			return &tag, nil
		}
	}
	return nil, db.Wrap("tag.get_by_name", gorm.ErrRecordNotFound)
}

func (r *fakeTagRepo) List(ctx context.Context, ownerID uint) ([]domain.Tag, error) {
	var out []domain.Tag
	for _, t := range r.tags {
		if t.OwnerID == ownerID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTagRepo) Create(ctx context.Context, tag *domain.Tag) error {
	tag.ID = uint(len(r.tags) + 1)
	r.tags[tag.ID] = *tag
	r.created = tag
	return nil
}

func (r *fakeTagRepo) Delete(ctx context.Context, ownerID, id uint) error {
	if t, ok := r.tags[id]; !ok || t.OwnerID != ownerID {
		return db.Wrap("tag.delete", gorm.ErrRecordNotFound)
	}
	delete(r.tags, id)
	r.deleted = id
	return nil
}

func newTestTaskService(tasks *fakeTaskRepo, tags *fakeTagRepo) *TaskService {
	s := NewTaskService(tasks, tags)
	s.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return s
}

func appErrCode(t *testing.T, err error) string {
	t.Helper()
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("unexpected error type: %T (%v)", err, err)
	}
	return appErr.CodeText()
}

func TestCreate_默认状态与优先级(t *testing.T) {
	repo := newFakeTaskRepo()
	s := newTestTaskService(repo, newFakeTagRepo())

	task, err := s.Create(context.Background(), 1, dto.CreateTaskReq{Title: "Write report"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if task.Status != domain.StatusTodo || task.Priority != domain.PriorityMedium {
		t.Fatalf("默认值不对: status=%s priority=%s", task.Status, task.Priority)
	}
	if task.OwnerID != 1 {
		t.Fatalf("归属丢失: %d", task.OwnerID)
	}
}

func TestCreate_过期截止时间返回VAL001(t *testing.T) {
	s := newTestTaskService(newFakeTaskRepo(), newFakeTagRepo())

	past := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := s.Create(context.Background(), 1, dto.CreateTaskReq{Title: "x", DueDate: &past})

	if got := appErrCode(t, err); got != "VAL001" {
		t.Fatalf("unexpected code: %s", got)
	}
}

func TestCreate_超过标签上限返回BIZ004(t *testing.T) {
	s := newTestTaskService(newFakeTaskRepo(), newFakeTagRepo())

	ids := make([]uint, domain.MaxTagsPerTask+1)
	for i := range ids {
		ids[i] = uint(i + 1)
	}
	_, err := s.Create(context.Background(), 1, dto.CreateTaskReq{Title: "x", TagIDs: ids})

	if got := appErrCode(t, err); got != "BIZ004" {
		t.Fatalf("unexpected code: %s", got)
	}
	var appErr *apperr.Error
	errors.As(err, &appErr)
	resp := appErr.ToSchema()
	if resp.RuleName != "max_tags_per_task" {
		t.Fatalf("unexpected rule: %s", resp.RuleName)
	}
	if resp.ContextData["limit"] != domain.MaxTagsPerTask {
		t.Fatalf("context_data 缺少 limit: %v", resp.ContextData)
	}
}

func TestCreate_引用他人标签按404处理(t *testing.T) {
	foreign := domain.Tag{ID: 7, Name: "work", OwnerID: 99}
	s := newTestTaskService(newFakeTaskRepo(), newFakeTagRepo(foreign))

	_, err := s.Create(context.Background(), 1, dto.CreateTaskReq{Title: "x", TagIDs: []uint{7}})

	if got := appErrCode(t, err); got != "RES001" {
		t.Fatalf("不能泄漏他人标签的存在性: %s", got)
	}
}

func TestGet_他人任务返回AUTH004(t *testing.T) {
	foreign := &domain.Task{ID: 5, Title: "x", OwnerID: 99}
	s := newTestTaskService(newFakeTaskRepo(foreign), newFakeTagRepo())

	_, err := s.Get(context.Background(), 1, 5)

	if got := appErrCode(t, err); got != "AUTH004" {
		t.Fatalf("unexpected code: %s", got)
	}
	var appErr *apperr.Error
	errors.As(err, &appErr)
	if appErr.ToSchema().ResourceType != "Task" {
		t.Fatalf("resource_type 缺失")
	}
}

func TestGet_不存在返回RES001(t *testing.T) {
	s := newTestTaskService(newFakeTaskRepo(), newFakeTagRepo())

	_, err := s.Get(context.Background(), 1, 5)

	if got := appErrCode(t, err); got != "RES001" {
		t.Fatalf("unexpected code: %s", got)
	}
}

func TestComplete_成功记录完成时间(t *testing.T) {
	task := &domain.Task{ID: 1, Title: "x", Status: domain.StatusTodo, OwnerID: 1}
	repo := newFakeTaskRepo(task)
	s := newTestTaskService(repo, newFakeTagRepo())

	out, err := s.Complete(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if out.Status != domain.StatusDone || out.CompletedAt == nil {
		t.Fatalf("完成状态未落地: %+v", out)
	}
}

func TestComplete_重复完成返回BIZ001(t *testing.T) {
	done := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	task := &domain.Task{ID: 1, Title: "x", Status: domain.StatusDone, CompletedAt: &done, OwnerID: 1}
	s := newTestTaskService(newFakeTaskRepo(task), newFakeTagRepo())

	_, err := s.Complete(context.Background(), 1, 1)

	if got := appErrCode(t, err); got != "BIZ001" {
		t.Fatalf("unexpected code: %s", got)
	}
	var appErr *apperr.Error
	errors.As(err, &appErr)
	resp := appErr.ToSchema()
	if resp.RuleName != "task_already_completed" {
		t.Fatalf("unexpected rule: %s", resp.RuleName)
	}
	if resp.ContextData["completed_at"] == nil {
		t.Fatalf("context_data 缺少 completed_at: %v", resp.ContextData)
	}
}

func TestList_分页参数越界被收敛(t *testing.T) {
	req := dto.ListTasksReq{Page: -3, PageSize: 5000}
	req.Normalize()

	if req.Page != 1 {
		t.Fatalf("page 未收敛: %d", req.Page)
	}
	if req.PageSize != dto.MaxPageSize {
		t.Fatalf("page_size 未收敛: %d", req.PageSize)
	}
}

func TestCreateTag_重名返回RES002(t *testing.T) {
	existing := domain.Tag{ID: 1, Name: "work", OwnerID: 1}
	s := newTestTaskService(newFakeTaskRepo(), newFakeTagRepo(existing))

	_, err := s.CreateTag(context.Background(), 1, dto.CreateTagReq{Name: "work"})

	if got := appErrCode(t, err); got != "RES002" {
		t.Fatalf("unexpected code: %s", got)
	}
}

func TestCreateTag_不同用户可重名(t *testing.T) {
	existing := domain.Tag{ID: 1, Name: "work", OwnerID: 99}
	s := newTestTaskService(newFakeTaskRepo(), newFakeTagRepo(existing))

	tag, err := s.CreateTag(context.Background(), 1, dto.CreateTagReq{Name: "work"})
	if err != nil {
		t.Fatalf("create tag failed: %v", err)
	}
	if tag.OwnerID != 1 {
		t.Fatalf("归属不对: %d", tag.OwnerID)
	}
}

func TestDeleteTag_他人标签按404处理(t *testing.T) {
	existing := domain.Tag{ID: 1, Name: "work", OwnerID: 99}
	s := newTestTaskService(newFakeTaskRepo(), newFakeTagRepo(existing))

	err := s.DeleteTag(context.Background(), 1, 1)

	if got := appErrCode(t, err); got != "RES001" {
		t.Fatalf("unexpected code: %s", got)
	}
}
