package middleware

import (
	"context"
	"reflect"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ==================== 审计上下文 ====================

// AuditContext Key
type auditContextKey struct{}

// WithAuditUser 注入操作人 ID 到 context
func WithAuditUser(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, auditContextKey{}, userID)
}

// GetAuditUserID 从 context 获取操作人 ID
func GetAuditUserID(ctx context.Context) string {
	if userID, ok := ctx.Value(auditContextKey{}).(string); ok {
		return userID
	}
	return ""
}

// ==================== Gin 中间件 ====================

// AuditContext 审计上下文中间件
// 将 JWT 中的用户 ID 注入到 request context，供 GORM 回调使用
func AuditContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID := GetUserID(c); userID != "" {
			c.Request = c.Request.WithContext(WithAuditUser(c.Request.Context(), userID))
		}
		c.Next()
	}
}

// ==================== GORM 回调 ====================

// RegisterAuditCallbacks 注册 GORM 审计回调
// Create 时填充 CreatedBy/UpdatedBy，Update 时覆盖 UpdatedBy
func RegisterAuditCallbacks(db *gorm.DB) {
	_ = db.Callback().Create().Before("gorm:create").Register("audit:create", func(tx *gorm.DB) {
		userID := auditUser(tx)
		if userID == "" {
			return
		}
		setAuditField(tx, "CreatedBy", userID, false)
		setAuditField(tx, "UpdatedBy", userID, false)
	})

	_ = db.Callback().Update().Before("gorm:update").Register("audit:update", func(tx *gorm.DB) {
		userID := auditUser(tx)
		if userID == "" {
			return
		}
		setAuditField(tx, "UpdatedBy", userID, true)
	})
}

func auditUser(tx *gorm.DB) string {
	if tx.Statement.Context == nil {
		return ""
	}
	return GetAuditUserID(tx.Statement.Context)
}

// setAuditField 设置审计字段，overwrite 为 false 时只填充零值
func setAuditField(tx *gorm.DB, fieldName string, value string, overwrite bool) {
	if tx.Statement.Schema == nil {
		return
	}

	field := tx.Statement.Schema.LookUpField(fieldName)
	if field == nil {
		return
	}

	ctx := tx.Statement.Context
	set := func(rv reflect.Value) {
		if _, isZero := field.ValueOf(ctx, rv); isZero || overwrite {
			_ = field.Set(ctx, rv, value)
		}
	}

	switch tx.Statement.ReflectValue.Kind() {
	case reflect.Struct:
		set(tx.Statement.ReflectValue)
	case reflect.Slice, reflect.Array:
		for i := 0; i < tx.Statement.ReflectValue.Len(); i++ {
			rv := tx.Statement.ReflectValue.Index(i)
			if rv.Kind() == reflect.Ptr {
				rv = rv.Elem()
			}
			set(rv)
		}
	}
}
