package repo

import (
	"context"

	"github.com/SahiraTejada/task-layer-arquitecture/internal/shared/infrastructure/db"
	"github.com/SahiraTejada/task-layer-arquitecture/internal/task/domain"

	"gorm.io/gorm"
)

type TagRepo struct {
	db *gorm.DB
}

func NewTagRepo(db *gorm.DB) *TagRepo {
	return &TagRepo{db: db}
}

func (r *TagRepo) GetByIDs(ctx context.Context, ownerID uint, ids []uint) ([]domain.Tag, error) {
	var tags []domain.Tag
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND id IN ?", ownerID, ids).
		Find(&tags).Error
	if err != nil {
		return nil, db.Wrap("tag.get_by_ids", err)
	}
	return tags, nil
}

func (r *TagRepo) GetByName(ctx context.Context, ownerID uint, name string) (*domain.Tag, error) {
	var tag domain.Tag
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND name = ?", ownerID, name).
		First(&tag).Error
	if err != nil {
		return nil, db.Wrap("tag.get_by_name", err)
	}
	return &tag, nil
}

func (r *TagRepo) List(ctx context.Context, ownerID uint) ([]domain.Tag, error) {
	var tags []domain.Tag
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("name").
		Find(&tags).Error
	if err != nil {
		return nil, db.Wrap("tag.list", err)
	}
	return tags, nil
}

func (r *TagRepo) Create(ctx context.Context, tag *domain.Tag) error {
	return db.Wrap("tag.create", r.db.WithContext(ctx).Create(tag).Error)
}

// Delete 带归属条件删除。没删到任何行按记录不存在处理。
func (r *TagRepo) Delete(ctx context.Context, ownerID, id uint) error {
	res := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Delete(&domain.Tag{}, id)
	if res.Error != nil {
		return db.Wrap("tag.delete", res.Error)
	}
	if res.RowsAffected == 0 {
		return db.Wrap("tag.delete", gorm.ErrRecordNotFound)
	}
	return nil
}
