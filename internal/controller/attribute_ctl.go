package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"store_admin_dashboard/internal/api/dto"
	"store_admin_dashboard/internal/service"
)

const (
	entitySize  = "size"
	entityColor = "color"
)

// ==================== 尺码 ====================

type SizeController struct {
	sizeSvc *service.SizeService
}

func NewSizeController(sizeSvc *service.SizeService) *SizeController {
	return &SizeController{sizeSvc: sizeSvc}
}

// List 尺码列表
// @Summary 尺码列表
// @Tags Size (尺码)
// @Produce json
// @Param storeId path string true "店铺 ID"
// @Success 200 {array} model.Size
// @Router /api/{storeId}/sizes [get]
func (c *SizeController) List(ctx *gin.Context) {
	list, err := c.sizeSvc.List(ctx.Request.Context(), storeID(ctx))
	if err != nil {
		respondError(ctx, entitySize, err)
		return
	}
	ctx.JSON(http.StatusOK, list)
}

// Get 尺码详情
// @Summary 尺码详情
// @Tags Size (尺码)
// @Produce json
// @Param storeId path string true "店铺 ID"
// @Param id path string true "尺码 ID"
// @Success 200 {object} model.Size
// @Failure 404 {object} MessageResp "不存在"
// @Router /api/{storeId}/sizes/{id} [get]
func (c *SizeController) Get(ctx *gin.Context) {
	size, err := c.sizeSvc.Get(ctx.Request.Context(), storeID(ctx), ctx.Param("id"))
	if err != nil {
		respondError(ctx, entitySize, err)
		return
	}
	ctx.JSON(http.StatusOK, size)
}

// Create 创建尺码
// @Summary 创建尺码
// @Tags Size (尺码)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param storeId path string true "店铺 ID"
// @Param request body dto.SizeReq true "尺码"
// @Success 201 {object} model.Size
// @Failure 400 {object} dto.ValidationErrorResp "参数错误"
// @Failure 403 {object} MessageResp "非店铺所有者"
// @Failure 409 {object} MessageResp "已存在"
// @Router /api/{storeId}/sizes [post]
func (c *SizeController) Create(ctx *gin.Context) {
	var req dto.SizeReq
	if !bindJSON(ctx, &req) {
		return
	}
	size, err := c.sizeSvc.Create(ctx.Request.Context(), userID(ctx), storeID(ctx), &req)
	if err != nil {
		respondError(ctx, entitySize, err)
		return
	}
	ctx.JSON(http.StatusCreated, size)
}

// Update 更新尺码
// @Summary 更新尺码
// @Tags Size (尺码)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param storeId path string true "店铺 ID"
// @Param id path string true "尺码 ID"
// @Param request body dto.SizeReq true "尺码"
// @Success 200 {object} model.Size
// @Router /api/{storeId}/sizes/{id} [patch]
func (c *SizeController) Update(ctx *gin.Context) {
	var req dto.SizeReq
	if !bindJSON(ctx, &req) {
		return
	}
	size, err := c.sizeSvc.Update(ctx.Request.Context(), userID(ctx), storeID(ctx), ctx.Param("id"), &req)
	if err != nil {
		respondError(ctx, entitySize, err)
		return
	}
	ctx.JSON(http.StatusOK, size)
}

// Delete 删除尺码
// @Summary 删除尺码
// @Tags Size (尺码)
// @Produce json
// @Security BearerAuth
// @Param storeId path string true "店铺 ID"
// @Param id path string true "尺码 ID"
// @Success 200 {object} model.Size
// @Router /api/{storeId}/sizes/{id} [delete]
func (c *SizeController) Delete(ctx *gin.Context) {
	size, err := c.sizeSvc.Delete(ctx.Request.Context(), userID(ctx), storeID(ctx), ctx.Param("id"))
	if err != nil {
		respondError(ctx, entitySize, err)
		return
	}
	ctx.JSON(http.StatusOK, size)
}

// ==================== 颜色 ====================

type ColorController struct {
	colorSvc *service.ColorService
}

func NewColorController(colorSvc *service.ColorService) *ColorController {
	return &ColorController{colorSvc: colorSvc}
}

// List 颜色列表
// @Summary 颜色列表
// @Tags Color (颜色)
// @Produce json
// @Param storeId path string true "店铺 ID"
// @Success 200 {array} model.Color
// @Router /api/{storeId}/colors [get]
func (c *ColorController) List(ctx *gin.Context) {
	list, err := c.colorSvc.List(ctx.Request.Context(), storeID(ctx))
	if err != nil {
		respondError(ctx, entityColor, err)
		return
	}
	ctx.JSON(http.StatusOK, list)
}

// Get 颜色详情
// @Summary 颜色详情
// @Tags Color (颜色)
// @Produce json
// @Param storeId path string true "店铺 ID"
// @Param id path string true "颜色 ID"
// @Success 200 {object} model.Color
// @Failure 404 {object} MessageResp "不存在"
// @Router /api/{storeId}/colors/{id} [get]
func (c *ColorController) Get(ctx *gin.Context) {
	color, err := c.colorSvc.Get(ctx.Request.Context(), storeID(ctx), ctx.Param("id"))
	if err != nil {
		respondError(ctx, entityColor, err)
		return
	}
	ctx.JSON(http.StatusOK, color)
}

// Create 创建颜色
// @Summary 创建颜色
// @Description value 为 #RGB 或 #RRGGBB 形式
// @Tags Color (颜色)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param storeId path string true "店铺 ID"
// @Param request body dto.ColorReq true "颜色"
// @Success 201 {object} model.Color
// @Failure 400 {object} dto.ValidationErrorResp "参数错误"
// @Failure 403 {object} MessageResp "非店铺所有者"
// @Failure 409 {object} MessageResp "已存在"
// @Router /api/{storeId}/colors [post]
func (c *ColorController) Create(ctx *gin.Context) {
	var req dto.ColorReq
	if !bindJSON(ctx, &req) {
		return
	}
	color, err := c.colorSvc.Create(ctx.Request.Context(), userID(ctx), storeID(ctx), &req)
	if err != nil {
		respondError(ctx, entityColor, err)
		return
	}
	ctx.JSON(http.StatusCreated, color)
}

// Update 更新颜色
// @Summary 更新颜色
// @Tags Color (颜色)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param storeId path string true "店铺 ID"
// @Param id path string true "颜色 ID"
// @Param request body dto.ColorReq true "颜色"
// @Success 200 {object} model.Color
// @Router /api/{storeId}/colors/{id} [patch]
func (c *ColorController) Update(ctx *gin.Context) {
	var req dto.ColorReq
	if !bindJSON(ctx, &req) {
		return
	}
	color, err := c.colorSvc.Update(ctx.Request.Context(), userID(ctx), storeID(ctx), ctx.Param("id"), &req)
	if err != nil {
		respondError(ctx, entityColor, err)
		return
	}
	ctx.JSON(http.StatusOK, color)
}

// Delete 删除颜色
// @Summary 删除颜色
// @Tags Color (颜色)
// @Produce json
// @Security BearerAuth
// @Param storeId path string true "店铺 ID"
// @Param id path string true "颜色 ID"
// @Success 200 {object} model.Color
// @Router /api/{storeId}/colors/{id} [delete]
func (c *ColorController) Delete(ctx *gin.Context) {
	color, err := c.colorSvc.Delete(ctx.Request.Context(), userID(ctx), storeID(ctx), ctx.Param("id"))
	if err != nil {
		respondError(ctx, entityColor, err)
		return
	}
	ctx.JSON(http.StatusOK, color)
}
