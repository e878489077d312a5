package model

// Product 商品
// 业务唯一键: (store_id, category_id, name)
// 尺码/颜色通过中间表 product_sizes / product_colors 关联，中间表外键不级联，
// 删除仍被商品引用的尺码或颜色会失败
type Product struct {
	BaseModel
	StoreID    string  `gorm:"type:varchar(36);not null;uniqueIndex:idx_products_key,priority:1" json:"storeId"`
	CategoryID string  `gorm:"type:varchar(36);not null;index;uniqueIndex:idx_products_key,priority:2" json:"categoryId"`
	Name       string  `gorm:"size:255;not null;uniqueIndex:idx_products_key,priority:3" json:"name"`
	Price      float64 `gorm:"type:decimal(12,2);not null" json:"price"`
	Quantity   int     `gorm:"not null" json:"quantity"`
	IsFeatured bool    `gorm:"not null;index" json:"isFeatured"`
	IsArchived bool    `gorm:"not null;index" json:"isArchived"`

	Store    *Store    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Category *Category `gorm:"constraint:OnUpdate:CASCADE;" json:"category,omitempty"`
	Sizes    []Size    `gorm:"many2many:product_sizes;" json:"sizes"`
	Colors   []Color   `gorm:"many2many:product_colors;" json:"colors"`
	Images   []Image   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"images"`
}

func (Product) TableName() string { return "products" }

// Image 商品图片，归属于唯一商品，商品更新时整体替换
type Image struct {
	BaseModel
	ProductID string `gorm:"type:varchar(36);not null;index" json:"productId"`
	URL       string `gorm:"size:512;not null" json:"url"`
	Position  int    `gorm:"not null" json:"position"`
}

func (Image) TableName() string { return "images" }
