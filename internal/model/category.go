package model

// Category 商品分类
// 业务唯一键: (store_id, name, billboard_id)
// 广告牌外键不级联，删除仍被分类引用的广告牌会失败
type Category struct {
	BaseModel
	StoreID     string `gorm:"type:varchar(36);not null;uniqueIndex:idx_categories_key,priority:1" json:"storeId"`
	Name        string `gorm:"size:255;not null;uniqueIndex:idx_categories_key,priority:2" json:"name"`
	BillboardID string `gorm:"type:varchar(36);not null;index;uniqueIndex:idx_categories_key,priority:3" json:"billboardId"`

	Store     *Store     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Billboard *Billboard `gorm:"constraint:OnUpdate:CASCADE;" json:"billboard,omitempty"`
}

func (Category) TableName() string { return "categories" }
