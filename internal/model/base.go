package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel 公共字段
// 不使用软删除：删除需要落到数据库，由外键约束阻止删除仍被引用的记录
type BaseModel struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// --- 审计字段 ---
	CreatedBy string `gorm:"type:varchar(64);comment:创建人ID" json:"createdBy,omitempty"`
	UpdatedBy string `gorm:"type:varchar(64);comment:更新人ID" json:"updatedBy,omitempty"`
}

// BeforeCreate 生成 UUID 主键
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// AllModels 需要迁移的模型，按依赖顺序排列
func AllModels() []interface{} {
	return []interface{}{
		&Store{},
		&Billboard{},
		&Category{},
		&Size{},
		&Color{},
		&Product{},
		&Image{},
		&Upload{},
	}
}
