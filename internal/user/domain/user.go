package domain

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID             uint           `gorm:"column:id;primaryKey;autoIncrement;comment:用户ID" json:"id"`
	Email          string         `gorm:"column:email;type:varchar(255);uniqueIndex;not null;comment:邮箱" json:"email"`
	Username       string         `gorm:"column:username;type:varchar(50);uniqueIndex;not null;comment:用户名" json:"username"`
	HashedPassword string         `gorm:"column:hashed_password;type:varchar(255);not null;comment:密码哈希" json:"-"`
	FullName       string         `gorm:"column:full_name;type:varchar(100);comment:姓名" json:"full_name"`
	IsActive       bool           `gorm:"column:is_active;default:true;comment:是否可用" json:"is_active"`
	CreatedAt      time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (User) TableName() string {
	return "users"
}
