package dto

// ================== Upload DTO ==================

// UploadFromURLReq 通过 URL 上传
type UploadFromURLReq struct {
	URL string `json:"url" binding:"required,http_url"`
}

func (r *UploadFromURLReq) Normalize() { trimAll(&r.URL) }
