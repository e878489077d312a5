package dto

import "strings"

// ================== Product DTO ==================

// RefReq 按 ID 引用尺码/颜色
type RefReq struct {
	ID string `json:"id" binding:"required"`
}

// ImageReq 商品图片
type ImageReq struct {
	URL string `json:"url" binding:"required,max=512"`
}

// ProductReq 创建/更新商品
// quantity / price 兼容字符串形式；sizes/colors/images 不能为空
type ProductReq struct {
	Name       string     `json:"name" binding:"required,max=255"`
	CategoryID string     `json:"categoryId" binding:"required"`
	Quantity   Integer    `json:"quantity" binding:"gte=1"`
	Price      Number     `json:"price" binding:"gte=1"`
	IsFeatured bool       `json:"isFeatured"`
	IsArchived bool       `json:"isArchived"`
	Sizes      []RefReq   `json:"sizes" binding:"required,min=1,dive"`
	Colors     []RefReq   `json:"colors" binding:"required,min=1,dive"`
	Images     []ImageReq `json:"images" binding:"required,min=1,dive"`
}

func (r *ProductReq) Normalize() {
	trimAll(&r.Name, &r.CategoryID)
	for i := range r.Sizes {
		r.Sizes[i].ID = strings.TrimSpace(r.Sizes[i].ID)
	}
	for i := range r.Colors {
		r.Colors[i].ID = strings.TrimSpace(r.Colors[i].ID)
	}
	for i := range r.Images {
		r.Images[i].URL = strings.TrimSpace(r.Images[i].URL)
	}
}

// SizeIDs 去重后的尺码 ID，保持提交顺序
func (r *ProductReq) SizeIDs() []string { return uniqueIDs(r.Sizes) }

// ColorIDs 去重后的颜色 ID，保持提交顺序
func (r *ProductReq) ColorIDs() []string { return uniqueIDs(r.Colors) }

// ImageURLs 图片 URL 列表，保持提交顺序
func (r *ProductReq) ImageURLs() []string {
	urls := make([]string, 0, len(r.Images))
	for _, img := range r.Images {
		urls = append(urls, img.URL)
	}
	return urls
}

func uniqueIDs(refs []RefReq) []string {
	seen := make(map[string]struct{}, len(refs))
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		if _, ok := seen[ref.ID]; ok {
			continue
		}
		seen[ref.ID] = struct{}{}
		ids = append(ids, ref.ID)
	}
	return ids
}

// ProductListQuery 商品列表筛选条件
// sizeId / colorId 可重复，命中任意一个即可
type ProductListQuery struct {
	CategoryID      string   `form:"categoryId"`
	BillboardID     string   `form:"billboardId"`
	SizeIDs         []string `form:"sizeId"`
	ColorIDs        []string `form:"colorId"`
	IsFeatured      string   `form:"isFeatured"`
	IncludeArchived bool     `form:"includeArchived"`
}

// FeaturedOnly isFeatured 存在且为真值时只返回推荐商品
func (q *ProductListQuery) FeaturedOnly() bool {
	switch strings.ToLower(strings.TrimSpace(q.IsFeatured)) {
	case "", "0", "false", "no", "off":
		return false
	default:
		return true
	}
}
