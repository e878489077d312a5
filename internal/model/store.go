package model

// Store 店铺
// 店铺名称全局唯一；删除店铺时级联删除所有子实体
type Store struct {
	BaseModel
	UserID string `gorm:"type:varchar(64);not null;index;comment:所有者身份ID" json:"userId"`
	Name   string `gorm:"size:255;not null;uniqueIndex:idx_stores_name" json:"name"`
}

func (Store) TableName() string { return "stores" }
