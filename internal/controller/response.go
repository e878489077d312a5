package controller

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"store_admin_dashboard/internal/api/dto"
	"store_admin_dashboard/internal/middleware"
	"store_admin_dashboard/internal/service"
)

// MessageResp 通用错误响应
type MessageResp struct {
	Message string `json:"message" example:"Internal error"`
}

const msgInvalidInput = "Invalid input"

// ==================== 请求绑定 ====================

// bindJSON 解析请求体，规范化后校验；失败时已写出 400 响应
func bindJSON(ctx *gin.Context, req dto.Normalizer) bool {
	if err := json.NewDecoder(ctx.Request.Body).Decode(req); err != nil {
		message := "malformed JSON body"
		var typeErr *json.UnmarshalTypeError
		if errors.Is(err, io.EOF) {
			message = "request body is empty"
		} else if errors.As(err, &typeErr) {
			message = typeMessage(typeErr.Type)
		}
		field := ""
		if typeErr != nil {
			field = typeErr.Field
		}
		invalidInput(ctx, []dto.FieldError{{Field: field, Message: message}})
		return false
	}

	if err := dto.Validate(req); err != nil {
		invalidInput(ctx, dto.ToFieldErrors(err))
		return false
	}
	return true
}

func typeMessage(t reflect.Type) string {
	switch t {
	case reflect.TypeOf(dto.Integer(0)):
		return "must be an integer"
	case reflect.TypeOf(dto.Number(0)):
		return "must be a number"
	}
	return "has an invalid type"
}

func invalidInput(ctx *gin.Context, errs []dto.FieldError) {
	ctx.JSON(http.StatusBadRequest, dto.ValidationErrorResp{Message: msgInvalidInput, Errors: errs})
}

// ==================== 错误映射 ====================

// respondError 将服务层错误映射为 HTTP 响应
// entity 用于冲突计数与日志
func respondError(ctx *gin.Context, entity string, err error) {
	var refErr *service.ReferenceError
	var uploadErr *service.UploadError

	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		ctx.JSON(http.StatusUnauthorized, MessageResp{Message: "Unauthenticated"})
	case errors.Is(err, service.ErrUnauthorized):
		ctx.JSON(http.StatusForbidden, MessageResp{Message: "Unauthorized"})
	case errors.Is(err, service.ErrNotFound):
		ctx.JSON(http.StatusNotFound, MessageResp{Message: "Not found"})
	case errors.Is(err, service.ErrConflict):
		middleware.RecordConflict(entity)
		ctx.JSON(http.StatusConflict, MessageResp{Message: "Conflict"})
	case errors.As(err, &refErr):
		invalidInput(ctx, []dto.FieldError{{Field: refErr.Field, Message: "does not reference a row in this store"}})
	case errors.As(err, &uploadErr):
		invalidInput(ctx, []dto.FieldError{{Field: "file", Message: uploadErr.Reason}})
	default:
		zap.L().Error("请求处理失败",
			zap.String("entity", entity),
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.Request.URL.Path),
			zap.String("user_id", middleware.GetUserID(ctx)),
			zap.Error(err),
		)
		ctx.JSON(http.StatusInternalServerError, MessageResp{Message: "Internal error"})
	}
}

// ==================== 路径参数 ====================

func userID(ctx *gin.Context) string  { return middleware.GetUserID(ctx) }
func storeID(ctx *gin.Context) string { return ctx.Param("storeId") }
