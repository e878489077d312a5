package dto

// ================== Category DTO ==================

// CategoryReq 创建/更新分类
type CategoryReq struct {
	Name        string `json:"name" binding:"required,max=255"`
	BillboardID string `json:"billboardId" binding:"required"`
}

func (r *CategoryReq) Normalize() { trimAll(&r.Name, &r.BillboardID) }
