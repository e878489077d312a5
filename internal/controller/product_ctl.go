package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"store_admin_dashboard/internal/api/dto"
	"store_admin_dashboard/internal/service"
)

const entityProduct = "product"

type ProductController struct {
	productSvc *service.ProductService
}

func NewProductController(productSvc *service.ProductService) *ProductController {
	return &ProductController{productSvc: productSvc}
}

// List 商品列表
// @Summary 商品列表
// @Description 默认不含已归档商品；sizeId/colorId 可重复，命中任意一个即可；按创建时间倒序
// @Tags Product (商品)
// @Produce json
// @Param storeId path string true "店铺 ID"
// @Param categoryId query string false "分类 ID"
// @Param billboardId query string false "广告牌 ID (经由分类)"
// @Param sizeId query []string false "尺码 ID" collectionFormat(multi)
// @Param colorId query []string false "颜色 ID" collectionFormat(multi)
// @Param isFeatured query string false "只看推荐商品"
// @Param includeArchived query bool false "包含已归档商品 (仅店铺所有者)"
// @Success 200 {array} model.Product
// @Failure 400 {object} dto.ValidationErrorResp "参数错误"
// @Failure 401 {object} MessageResp "未登录 (includeArchived)"
// @Failure 403 {object} MessageResp "非店铺所有者 (includeArchived)"
// @Router /api/{storeId}/products [get]
func (c *ProductController) List(ctx *gin.Context) {
	var query dto.ProductListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		invalidInput(ctx, []dto.FieldError{{Field: "query", Message: err.Error()}})
		return
	}

	list, err := c.productSvc.List(ctx.Request.Context(), userID(ctx), storeID(ctx), &query)
	if err != nil {
		respondError(ctx, entityProduct, err)
		return
	}
	ctx.JSON(http.StatusOK, list)
}

// Get 商品详情（含分类、尺码、颜色、图片）
// @Summary 商品详情
// @Tags Product (商品)
// @Produce json
// @Param storeId path string true "店铺 ID"
// @Param id path string true "商品 ID"
// @Success 200 {object} model.Product
// @Failure 404 {object} MessageResp "不存在"
// @Router /api/{storeId}/products/{id} [get]
func (c *ProductController) Get(ctx *gin.Context) {
	product, err := c.productSvc.Get(ctx.Request.Context(), storeID(ctx), ctx.Param("id"))
	if err != nil {
		respondError(ctx, entityProduct, err)
		return
	}
	ctx.JSON(http.StatusOK, product)
}

// Create 创建商品
// @Summary 创建商品
// @Description quantity/price 可为数字或数字字符串；sizes/colors/images 至少一项
// @Tags Product (商品)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param storeId path string true "店铺 ID"
// @Param request body dto.ProductReq true "商品"
// @Success 201 {object} model.Product
// @Failure 400 {object} dto.ValidationErrorResp "参数错误或引用无效"
// @Failure 401 {object} MessageResp "未登录"
// @Failure 403 {object} MessageResp "非店铺所有者"
// @Failure 409 {object} MessageResp "同分类下已存在同名商品"
// @Router /api/{storeId}/products [post]
func (c *ProductController) Create(ctx *gin.Context) {
	var req dto.ProductReq
	if !bindJSON(ctx, &req) {
		return
	}

	product, err := c.productSvc.Create(ctx.Request.Context(), userID(ctx), storeID(ctx), &req)
	if err != nil {
		respondError(ctx, entityProduct, err)
		return
	}
	ctx.JSON(http.StatusCreated, product)
}

// Update 更新商品
// @Summary 更新商品
// @Description 尺码、颜色、图片整体替换
// @Tags Product (商品)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param storeId path string true "店铺 ID"
// @Param id path string true "商品 ID"
// @Param request body dto.ProductReq true "商品"
// @Success 200 {object} model.Product
// @Failure 400 {object} dto.ValidationErrorResp "参数错误或引用无效"
// @Failure 403 {object} MessageResp "非店铺所有者"
// @Failure 404 {object} MessageResp "不存在"
// @Failure 409 {object} MessageResp "同分类下已存在同名商品"
// @Router /api/{storeId}/products/{id} [patch]
func (c *ProductController) Update(ctx *gin.Context) {
	var req dto.ProductReq
	if !bindJSON(ctx, &req) {
		return
	}

	product, err := c.productSvc.Update(ctx.Request.Context(), userID(ctx), storeID(ctx), ctx.Param("id"), &req)
	if err != nil {
		respondError(ctx, entityProduct, err)
		return
	}
	ctx.JSON(http.StatusOK, product)
}

// Delete 删除商品
// @Summary 删除商品
// @Tags Product (商品)
// @Produce json
// @Security BearerAuth
// @Param storeId path string true "店铺 ID"
// @Param id path string true "商品 ID"
// @Success 200 {object} model.Product
// @Failure 403 {object} MessageResp "非店铺所有者"
// @Failure 404 {object} MessageResp "不存在"
// @Router /api/{storeId}/products/{id} [delete]
func (c *ProductController) Delete(ctx *gin.Context) {
	product, err := c.productSvc.Delete(ctx.Request.Context(), userID(ctx), storeID(ctx), ctx.Param("id"))
	if err != nil {
		respondError(ctx, entityProduct, err)
		return
	}
	ctx.JSON(http.StatusOK, product)
}
