package model

// Upload 已上传到对象存储的文件记录
// 清理任务据此删除超过宽限期且未被广告牌或商品图片引用的文件
// 不设店铺外键：店铺删除后其上传记录保留，由清理任务回收
type Upload struct {
	BaseModel
	StoreID     string `gorm:"type:varchar(36);not null;index" json:"storeId"`
	URL         string `gorm:"size:512;not null;uniqueIndex" json:"url"`
	Provider    string `gorm:"size:20;not null" json:"provider"`
	ContentType string `gorm:"size:100" json:"contentType"`
	Size        int64  `json:"size"`
}

func (Upload) TableName() string { return "uploads" }
