package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ==================== 错误定义 ====================

var (
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrInvalidReference = errors.New("invalid reference")
	ErrInvalidUpload    = errors.New("invalid upload")
)

// ReferenceError 请求中引用的 ID 不存在或不属于当前店铺
type ReferenceError struct {
	Field string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s does not reference a row in this store", e.Field)
}

func (e *ReferenceError) Is(target error) bool { return target == ErrInvalidReference }

// UploadError 上传内容不合法
type UploadError struct {
	Reason string
}

func (e *UploadError) Error() string { return e.Reason }

func (e *UploadError) Is(target error) bool { return target == ErrInvalidUpload }

// translateWriteError 将存储层约束错误转换为业务错误
// 唯一索引冲突 -> ErrConflict；外键不存在 -> ReferenceError(field)
func translateWriteError(err error, field string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", ErrConflict, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated) && field != "":
		return &ReferenceError{Field: field}
	default:
		return err
	}
}
