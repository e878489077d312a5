package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"store_admin_dashboard/internal/api/dto"
	"store_admin_dashboard/internal/service"
)

const entityBillboard = "billboard"

type BillboardController struct {
	billboardSvc *service.BillboardService
}

func NewBillboardController(billboardSvc *service.BillboardService) *BillboardController {
	return &BillboardController{billboardSvc: billboardSvc}
}

// List 广告牌列表
// @Summary 广告牌列表
// @Description 店铺的全部广告牌，按创建时间倒序，无需登录
// @Tags Billboard (广告牌)
// @Produce json
// @Param storeId path string true "店铺 ID"
// @Success 200 {array} model.Billboard
// @Failure 500 {object} MessageResp "服务器错误"
// @Router /api/{storeId}/billboards [get]
func (c *BillboardController) List(ctx *gin.Context) {
	list, err := c.billboardSvc.List(ctx.Request.Context(), storeID(ctx))
	if err != nil {
		respondError(ctx, entityBillboard, err)
		return
	}
	ctx.JSON(http.StatusOK, list)
}

// Get 广告牌详情
// @Summary 广告牌详情
// @Tags Billboard (广告牌)
// @Produce json
// @Param storeId path string true "店铺 ID"
// @Param id path string true "广告牌 ID"
// @Success 200 {object} model.Billboard
// @Failure 404 {object} MessageResp "不存在"
// @Router /api/{storeId}/billboards/{id} [get]
func (c *BillboardController) Get(ctx *gin.Context) {
	billboard, err := c.billboardSvc.Get(ctx.Request.Context(), storeID(ctx), ctx.Param("id"))
	if err != nil {
		respondError(ctx, entityBillboard, err)
		return
	}
	ctx.JSON(http.StatusOK, billboard)
}

// Create 创建广告牌
// @Summary 创建广告牌
// @Description (label, imageUrl) 在店铺内唯一
// @Tags Billboard (广告牌)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param storeId path string true "店铺 ID"
// @Param request body dto.BillboardReq true "广告牌"
// @Success 201 {object} model.Billboard
// @Failure 400 {object} dto.ValidationErrorResp "参数错误"
// @Failure 401 {object} MessageResp "未登录"
// @Failure 403 {object} MessageResp "非店铺所有者"
// @Failure 409 {object} MessageResp "已存在"
// @Router /api/{storeId}/billboards [post]
func (c *BillboardController) Create(ctx *gin.Context) {
	var req dto.BillboardReq
	if !bindJSON(ctx, &req) {
		return
	}

	billboard, err := c.billboardSvc.Create(ctx.Request.Context(), userID(ctx), storeID(ctx), &req)
	if err != nil {
		respondError(ctx, entityBillboard, err)
		return
	}
	ctx.JSON(http.StatusCreated, billboard)
}

// Update 更新广告牌
// @Summary 更新广告牌
// @Tags Billboard (广告牌)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param storeId path string true "店铺 ID"
// @Param id path string true "广告牌 ID"
// @Param request body dto.BillboardReq true "广告牌"
// @Success 200 {object} model.Billboard
// @Failure 400 {object} dto.ValidationErrorResp "参数错误"
// @Failure 403 {object} MessageResp "非店铺所有者"
// @Failure 404 {object} MessageResp "不存在"
// @Failure 409 {object} MessageResp "已存在"
// @Router /api/{storeId}/billboards/{id} [patch]
func (c *BillboardController) Update(ctx *gin.Context) {
	var req dto.BillboardReq
	if !bindJSON(ctx, &req) {
		return
	}

	billboard, err := c.billboardSvc.Update(ctx.Request.Context(), userID(ctx), storeID(ctx), ctx.Param("id"), &req)
	if err != nil {
		respondError(ctx, entityBillboard, err)
		return
	}
	ctx.JSON(http.StatusOK, billboard)
}

// Delete 删除广告牌
// @Summary 删除广告牌
// @Description 仍被分类引用时删除失败
// @Tags Billboard (广告牌)
// @Produce json
// @Security BearerAuth
// @Param storeId path string true "店铺 ID"
// @Param id path string true "广告牌 ID"
// @Success 200 {object} model.Billboard
// @Failure 403 {object} MessageResp "非店铺所有者"
// @Failure 404 {object} MessageResp "不存在"
// @Failure 500 {object} MessageResp "服务器错误"
// @Router /api/{storeId}/billboards/{id} [delete]
func (c *BillboardController) Delete(ctx *gin.Context) {
	billboard, err := c.billboardSvc.Delete(ctx.Request.Context(), userID(ctx), storeID(ctx), ctx.Param("id"))
	if err != nil {
		respondError(ctx, entityBillboard, err)
		return
	}
	ctx.JSON(http.StatusOK, billboard)
}
