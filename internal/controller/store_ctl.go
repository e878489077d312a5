package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"store_admin_dashboard/internal/api/dto"
	"store_admin_dashboard/internal/service"
)

const entityStore = "store"

type StoreController struct {
	storeSvc *service.StoreService
}

func NewStoreController(storeSvc *service.StoreService) *StoreController {
	return &StoreController{storeSvc: storeSvc}
}

// Create 创建店铺
// @Summary 创建店铺
// @Description 为当前用户创建店铺，名称全局唯一
// @Tags Store (店铺)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.StoreReq true "店铺名称"
// @Success 201 {object} model.Store
// @Failure 400 {object} dto.ValidationErrorResp "参数错误"
// @Failure 401 {object} MessageResp "未登录"
// @Failure 409 {object} MessageResp "名称已存在"
// @Failure 500 {object} MessageResp "服务器错误"
// @Router /api/stores [post]
func (c *StoreController) Create(ctx *gin.Context) {
	var req dto.StoreReq
	if !bindJSON(ctx, &req) {
		return
	}

	store, err := c.storeSvc.Create(ctx.Request.Context(), userID(ctx), &req)
	if err != nil {
		respondError(ctx, entityStore, err)
		return
	}
	ctx.JSON(http.StatusCreated, store)
}

// List 当前用户的店铺列表
// @Summary 店铺列表
// @Description 当前用户拥有的店铺，按创建时间升序
// @Tags Store (店铺)
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Store
// @Failure 401 {object} MessageResp "未登录"
// @Router /api/stores [get]
func (c *StoreController) List(ctx *gin.Context) {
	stores, err := c.storeSvc.List(ctx.Request.Context(), userID(ctx))
	if err != nil {
		respondError(ctx, entityStore, err)
		return
	}
	ctx.JSON(http.StatusOK, stores)
}

// Get 店铺详情
// @Summary 店铺详情
// @Tags Store (店铺)
// @Produce json
// @Security BearerAuth
// @Param storeId path string true "店铺 ID"
// @Success 200 {object} model.Store
// @Failure 401 {object} MessageResp "未登录"
// @Failure 403 {object} MessageResp "非店铺所有者"
// @Router /api/stores/{storeId} [get]
func (c *StoreController) Get(ctx *gin.Context) {
	store, err := c.storeSvc.Get(ctx.Request.Context(), userID(ctx), storeID(ctx))
	if err != nil {
		respondError(ctx, entityStore, err)
		return
	}
	ctx.JSON(http.StatusOK, store)
}

// Update 重命名店铺
// @Summary 重命名店铺
// @Tags Store (店铺)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param storeId path string true "店铺 ID"
// @Param request body dto.StoreReq true "店铺名称"
// @Success 200 {object} model.Store
// @Failure 400 {object} dto.ValidationErrorResp "参数错误"
// @Failure 401 {object} MessageResp "未登录"
// @Failure 403 {object} MessageResp "非店铺所有者"
// @Failure 409 {object} MessageResp "名称已存在"
// @Router /api/stores/{storeId} [patch]
func (c *StoreController) Update(ctx *gin.Context) {
	var req dto.StoreReq
	if !bindJSON(ctx, &req) {
		return
	}

	store, err := c.storeSvc.Update(ctx.Request.Context(), userID(ctx), storeID(ctx), &req)
	if err != nil {
		respondError(ctx, entityStore, err)
		return
	}
	ctx.JSON(http.StatusOK, store)
}

// Delete 删除店铺及其全部数据
// @Summary 删除店铺
// @Tags Store (店铺)
// @Produce json
// @Security BearerAuth
// @Param storeId path string true "店铺 ID"
// @Success 200 {object} model.Store
// @Failure 401 {object} MessageResp "未登录"
// @Failure 403 {object} MessageResp "非店铺所有者"
// @Failure 500 {object} MessageResp "服务器错误"
// @Router /api/stores/{storeId} [delete]
func (c *StoreController) Delete(ctx *gin.Context) {
	store, err := c.storeSvc.Delete(ctx.Request.Context(), userID(ctx), storeID(ctx))
	if err != nil {
		respondError(ctx, entityStore, err)
		return
	}
	ctx.JSON(http.StatusOK, store)
}
