package docmap

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"
)

var durationType = reflect.TypeFor[time.Duration]()

// ErrNotStruct 表示 [FromStruct] 的参数不是结构体。
var ErrNotStruct = errors.New("value is not a struct")

// FromStruct 把结构体转换为映射，key 取 json tag，顺序与字段定义一致。
//
// 转换规则：
//   - 嵌套结构体 → 嵌套映射
//   - time.Duration → 字符串 (如 "30s")，可由 mapstructure 的 duration hook 解码回来
//   - 切片 → []any
//   - 没有 json tag 或 tag 为 "-" 的字段、未导出字段、nil 指针 → 跳过
func FromStruct(v any) (*Map, error) {
	val := reflect.ValueOf(v)
	if val.Kind() == reflect.Pointer {
		if val.IsNil() {
			return nil, fmt.Errorf("%w: nil pointer", ErrNotStruct)
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %T", ErrNotStruct, v)
	}

	return structValue(val), nil
}

func structValue(val reflect.Value) *Map {
	out := New()
	typ := val.Type()
	for i := range typ.NumField() {
		field := typ.Field(i)
		if field.PkgPath != "" {
			continue
		}
		key := tagName(field.Tag.Get("json"))
		if key == "" {
			continue
		}

		fieldVal := val.Field(i)
		if fieldVal.Kind() == reflect.Pointer {
			if fieldVal.IsNil() {
				continue
			}
			fieldVal = fieldVal.Elem()
		}
		out.Set(key, fieldValue(fieldVal))
	}

	return out
}

func fieldValue(val reflect.Value) any {
	if val.Type() == durationType {
		return time.Duration(val.Int()).String()
	}

	switch val.Kind() {
	case reflect.Struct:
		return structValue(val)
	case reflect.Slice, reflect.Array:
		out := make([]any, val.Len())
		for i := range val.Len() {
			out[i] = fieldValue(val.Index(i))
		}

		return out
	default:
		return Normalize(val.Interface())
	}
}

func tagName(tag string) string {
	name, _, _ := strings.Cut(tag, ",")
	if name == "-" {
		return ""
	}

	return name
}
