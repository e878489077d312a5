package dto

// ================== Billboard DTO ==================

// BillboardReq 创建/更新广告牌
type BillboardReq struct {
	Label    string `json:"label" binding:"required,max=255"`
	ImageURL string `json:"imageUrl" binding:"required,max=512"`
}

func (r *BillboardReq) Normalize() { trimAll(&r.Label, &r.ImageURL) }
