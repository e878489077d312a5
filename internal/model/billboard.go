package model

// Billboard 广告牌
// 业务唯一键: (store_id, label, image_url)
type Billboard struct {
	BaseModel
	StoreID  string `gorm:"type:varchar(36);not null;uniqueIndex:idx_billboards_key,priority:1" json:"storeId"`
	Label    string `gorm:"size:255;not null;uniqueIndex:idx_billboards_key,priority:2" json:"label"`
	ImageURL string `gorm:"size:512;not null;uniqueIndex:idx_billboards_key,priority:3" json:"imageUrl"`

	Store *Store `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

func (Billboard) TableName() string { return "billboards" }
