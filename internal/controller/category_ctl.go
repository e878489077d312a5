package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"store_admin_dashboard/internal/api/dto"
	"store_admin_dashboard/internal/service"
)

const entityCategory = "category"

type CategoryController struct {
	categorySvc *service.CategoryService
}

func NewCategoryController(categorySvc *service.CategoryService) *CategoryController {
	return &CategoryController{categorySvc: categorySvc}
}

// List 分类列表（含广告牌）
// @Summary 分类列表
// @Tags Category (分类)
// @Produce json
// @Param storeId path string true "店铺 ID"
// @Success 200 {array} model.Category
// @Router /api/{storeId}/categories [get]
func (c *CategoryController) List(ctx *gin.Context) {
	list, err := c.categorySvc.List(ctx.Request.Context(), storeID(ctx))
	if err != nil {
		respondError(ctx, entityCategory, err)
		return
	}
	ctx.JSON(http.StatusOK, list)
}

// Get 分类详情
// @Summary 分类详情
// @Tags Category (分类)
// @Produce json
// @Param storeId path string true "店铺 ID"
// @Param id path string true "分类 ID"
// @Success 200 {object} model.Category
// @Failure 404 {object} MessageResp "不存在"
// @Router /api/{storeId}/categories/{id} [get]
func (c *CategoryController) Get(ctx *gin.Context) {
	category, err := c.categorySvc.Get(ctx.Request.Context(), storeID(ctx), ctx.Param("id"))
	if err != nil {
		respondError(ctx, entityCategory, err)
		return
	}
	ctx.JSON(http.StatusOK, category)
}

// Create 创建分类
// @Summary 创建分类
// @Description billboardId 必须是本店铺的广告牌
// @Tags Category (分类)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param storeId path string true "店铺 ID"
// @Param request body dto.CategoryReq true "分类"
// @Success 201 {object} model.Category
// @Failure 400 {object} dto.ValidationErrorResp "参数错误"
// @Failure 403 {object} MessageResp "非店铺所有者"
// @Failure 409 {object} MessageResp "已存在"
// @Router /api/{storeId}/categories [post]
func (c *CategoryController) Create(ctx *gin.Context) {
	var req dto.CategoryReq
	if !bindJSON(ctx, &req) {
		return
	}

	category, err := c.categorySvc.Create(ctx.Request.Context(), userID(ctx), storeID(ctx), &req)
	if err != nil {
		respondError(ctx, entityCategory, err)
		return
	}
	ctx.JSON(http.StatusCreated, category)
}

// Update 更新分类
// @Summary 更新分类
// @Tags Category (分类)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param storeId path string true "店铺 ID"
// @Param id path string true "分类 ID"
// @Param request body dto.CategoryReq true "分类"
// @Success 200 {object} model.Category
// @Failure 400 {object} dto.ValidationErrorResp "参数错误"
// @Failure 403 {object} MessageResp "非店铺所有者"
// @Failure 404 {object} MessageResp "不存在"
// @Failure 409 {object} MessageResp "已存在"
// @Router /api/{storeId}/categories/{id} [patch]
func (c *CategoryController) Update(ctx *gin.Context) {
	var req dto.CategoryReq
	if !bindJSON(ctx, &req) {
		return
	}

	category, err := c.categorySvc.Update(ctx.Request.Context(), userID(ctx), storeID(ctx), ctx.Param("id"), &req)
	if err != nil {
		respondError(ctx, entityCategory, err)
		return
	}
	ctx.JSON(http.StatusOK, category)
}

// Delete 删除分类
// @Summary 删除分类
// @Description 仍有商品引用时删除失败
// @Tags Category (分类)
// @Produce json
// @Security BearerAuth
// @Param storeId path string true "店铺 ID"
// @Param id path string true "分类 ID"
// @Success 200 {object} model.Category
// @Failure 403 {object} MessageResp "非店铺所有者"
// @Failure 404 {object} MessageResp "不存在"
// @Router /api/{storeId}/categories/{id} [delete]
func (c *CategoryController) Delete(ctx *gin.Context) {
	category, err := c.categorySvc.Delete(ctx.Request.Context(), userID(ctx), storeID(ctx), ctx.Param("id"))
	if err != nil {
		respondError(ctx, entityCategory, err)
		return
	}
	ctx.JSON(http.StatusOK, category)
}
