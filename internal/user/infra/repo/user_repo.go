package repo

import (
	"context"

	"github.com/SahiraTejada/task-layer-arquitecture/internal/shared/infrastructure/db"
	"github.com/SahiraTejada/task-layer-arquitecture/internal/user/domain"

	"gorm.io/gorm"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, db.Wrap("user.get_by_id", err)
	}
	return &user, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, db.Wrap("user.get_by_email", err)
	}
	return &user, nil
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, db.Wrap("user.get_by_username", err)
	}
	return &user, nil
}

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	return db.Wrap("user.create", r.db.WithContext(ctx).Create(u).Error)
}

func (r *UserRepo) Update(ctx context.Context, u *domain.User) error {
	return db.Wrap("user.update", r.db.WithContext(ctx).Save(u).Error)
}

// Delete 软删除（gorm.DeletedAt）。
func (r *UserRepo) Delete(ctx context.Context, id uint) error {
	return db.Wrap("user.delete", r.db.WithContext(ctx).Delete(&domain.User{}, id).Error)
}
