package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// ==================== 请求规范化 ====================

// Normalizer 请求体在校验前的规范化（去除首尾空白等）
type Normalizer interface {
	Normalize()
}

// ==================== 数字兼容 ====================

// Number 兼容 JSON 数字与数字字符串，例如 12.5 与 "12.5"
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	f, ok, err := parseNumeric(data)
	if err != nil {
		return typeError(data, n)
	}
	if !ok {
		return nil
	}
	*n = Number(f)
	return nil
}

// Integer 兼容 JSON 整数与整数字符串
type Integer int64

func (n *Integer) UnmarshalJSON(data []byte) error {
	f, ok, err := parseNumeric(data)
	if err != nil || f != math.Trunc(f) {
		return typeError(data, n)
	}
	if !ok {
		return nil
	}
	*n = Integer(f)
	return nil
}

// typeError 返回 *json.UnmarshalTypeError，解码器会补充字段路径
func typeError(data []byte, target interface{}) error {
	return &json.UnmarshalTypeError{
		Value: strings.TrimSpace(string(data)),
		Type:  reflect.TypeOf(target).Elem(),
	}
}

// parseNumeric 解析数字，null 与空字符串视为未提供
func parseNumeric(data []byte) (float64, bool, error) {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		return 0, false, nil
	}
	s = strings.TrimSpace(strings.Trim(s, `"`))
	if s == "" {
		return 0, false, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false, fmt.Errorf("invalid number %q", s)
	}
	return f, true, nil
}

// ==================== 校验 ====================

// FieldError 字段级错误
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrorResp 校验失败响应
type ValidationErrorResp struct {
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors"`
}

var registerOnce sync.Once

// RegisterValidation 让 gin 的校验器使用 json 字段名输出错误
func RegisterValidation() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// Validate 规范化后按 binding 标签校验
func Validate(req Normalizer) error {
	req.Normalize()
	return binding.Validator.ValidateStruct(req)
}

// ToFieldErrors 将校验错误转换为字段级错误列表
func ToFieldErrors(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "", Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   fieldPath(fe),
			Message: fieldMessage(fe),
		})
	}
	return out
}

// fieldPath 去掉顶层结构体名，例如 ProductReq.sizes[0].id -> sizes[0].id
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
		}
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "startswith":
		return fmt.Sprintf("must start with %q", fe.Param())
	default:
		return fmt.Sprintf("failed on %s", fe.Tag())
	}
}

// trimAll 去除字段首尾空白
func trimAll(values ...*string) {
	for _, v := range values {
		*v = strings.TrimSpace(*v)
	}
}
