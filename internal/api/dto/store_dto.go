package dto

// ================== Store DTO ==================

// StoreReq 创建/更新店铺
type StoreReq struct {
	Name string `json:"name" binding:"required,max=255"`
}

func (r *StoreReq) Normalize() { trimAll(&r.Name) }
