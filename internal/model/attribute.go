package model

// Size 尺码
// 业务唯一键: (store_id, name, value)
type Size struct {
	BaseModel
	StoreID string `gorm:"type:varchar(36);not null;uniqueIndex:idx_sizes_key,priority:1" json:"storeId"`
	Name    string `gorm:"size:255;not null;uniqueIndex:idx_sizes_key,priority:2" json:"name"`
	Value   string `gorm:"size:255;not null;uniqueIndex:idx_sizes_key,priority:3" json:"value"`

	Store *Store `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

func (Size) TableName() string { return "sizes" }

// Color 颜色，value 为 # 开头的色值
// 业务唯一键: (store_id, name, value)
type Color struct {
	BaseModel
	StoreID string `gorm:"type:varchar(36);not null;uniqueIndex:idx_colors_key,priority:1" json:"storeId"`
	Name    string `gorm:"size:255;not null;uniqueIndex:idx_colors_key,priority:2" json:"name"`
	Value   string `gorm:"size:9;not null;uniqueIndex:idx_colors_key,priority:3" json:"value"`

	Store *Store `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

func (Color) TableName() string { return "colors" }
