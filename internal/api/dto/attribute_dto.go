package dto

// ================== Size / Color DTO ==================

// SizeReq 创建/更新尺码
type SizeReq struct {
	Name  string `json:"name" binding:"required,max=255"`
	Value string `json:"value" binding:"required,max=255"`
}

func (r *SizeReq) Normalize() { trimAll(&r.Name, &r.Value) }

// ColorReq 创建/更新颜色
// value 长度 4-9 且以 # 开头，例如 #fff、#ff0000、#ff000080
type ColorReq struct {
	Name  string `json:"name" binding:"required,max=255"`
	Value string `json:"value" binding:"required,min=4,max=9,startswith=#"`
}

func (r *ColorReq) Normalize() { trimAll(&r.Name, &r.Value) }
