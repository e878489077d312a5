package controller

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"store_admin_dashboard/internal/api/dto"
	"store_admin_dashboard/internal/service"
)

const entityUpload = "upload"

type UploadController struct {
	uploadSvc *service.UploadService
	maxSize   int64
}

func NewUploadController(uploadSvc *service.UploadService, maxSize int64) *UploadController {
	return &UploadController{uploadSvc: uploadSvc, maxSize: maxSize}
}

// Upload 上传图片
// @Summary 上传图片
// @Description multipart 字段 file，或 JSON {url} 由服务端下载；返回的 url 用于广告牌与商品图片
// @Tags Upload (上传)
// @Accept multipart/form-data
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param storeId path string true "店铺 ID"
// @Param file formData file false "图片文件"
// @Param request body dto.UploadFromURLReq false "远程图片地址"
// @Success 201 {object} model.Upload
// @Failure 400 {object} dto.ValidationErrorResp "文件无效"
// @Failure 401 {object} MessageResp "未登录"
// @Failure 403 {object} MessageResp "非店铺所有者"
// @Failure 429 {object} MessageResp "请求过于频繁"
// @Router /api/{storeId}/uploads [post]
func (c *UploadController) Upload(ctx *gin.Context) {
	if !strings.HasPrefix(ctx.ContentType(), "multipart/") {
		c.uploadFromURL(ctx)
		return
	}

	// 预留 1MiB 给 multipart 边界与其他字段
	ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, c.maxSize+1<<20)

	fh, err := ctx.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		message := "is required"
		if errors.As(err, &tooLarge) {
			message = "file is too large"
		}
		invalidInput(ctx, []dto.FieldError{{Field: "file", Message: message}})
		return
	}
	if fh.Size > c.maxSize {
		invalidInput(ctx, []dto.FieldError{{Field: "file", Message: "file is too large"}})
		return
	}

	f, err := fh.Open()
	if err != nil {
		respondError(ctx, entityUpload, err)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		respondError(ctx, entityUpload, err)
		return
	}

	upload, err := c.uploadSvc.Upload(ctx.Request.Context(), userID(ctx), storeID(ctx), fh.Filename, data)
	if err != nil {
		respondError(ctx, entityUpload, err)
		return
	}
	ctx.JSON(http.StatusCreated, upload)
}

func (c *UploadController) uploadFromURL(ctx *gin.Context) {
	var req dto.UploadFromURLReq
	if !bindJSON(ctx, &req) {
		return
	}

	upload, err := c.uploadSvc.UploadFromURL(ctx.Request.Context(), userID(ctx), storeID(ctx), req.URL)
	if err != nil {
		respondError(ctx, entityUpload, err)
		return
	}
	ctx.JSON(http.StatusCreated, upload)
}
