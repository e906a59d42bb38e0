package schema

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Kind 值类型标签。
type Kind int

const (
	KindInvalid Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindList:
		return "list"
	default:
		return "invalid"
	}
}

// Type 叶子的推断类型。Kind 为 [KindList] 时 Elem 表示元素类型。
type Type struct {
	Kind Kind
	Elem Kind
}

// Scalar 返回标量类型。
func Scalar(k Kind) Type {
	return Type{Kind: k}
}

// ListOf 返回元素类型为 elem 的列表类型。
func ListOf(elem Kind) Type {
	return Type{Kind: KindList, Elem: elem}
}

// IsList 判断是否为列表类型。
func (t Type) IsList() bool {
	return t.Kind == KindList
}

func (t Type) String() string {
	if t.IsList() {
		return "list[" + t.Elem.String() + "]"
	}

	return t.Kind.String()
}

// ErrValueType 表示值与叶子类型不符。
var ErrValueType = errors.New("value does not match leaf type")

// Convert 把文档中的原始值转换为类型对应的 Go 表示：
//   - bool, int64, float64, string
//   - []bool, []int64, []float64, []string
//
// 整数可以放宽为浮点，其余类型不做隐式转换。
func Convert(t Type, raw any) (any, error) {
	if !t.IsList() {
		return convertScalar(t.Kind, raw)
	}

	items, ok := raw.([]any)
	if !ok {
		items, ok = typedSliceToAny(raw)
		if !ok {
			return nil, fmt.Errorf("%w: want %s, got %T", ErrValueType, t, raw)
		}
	}

	switch t.Elem {
	case KindBool:
		return convertSlice[bool](t.Elem, items)
	case KindInt:
		return convertSlice[int64](t.Elem, items)
	case KindFloat:
		return convertSlice[float64](t.Elem, items)
	case KindString:
		return convertSlice[string](t.Elem, items)
	default:
		return nil, fmt.Errorf("%w: invalid list element kind %s", ErrValueType, t.Elem)
	}
}

func convertSlice[T any](elem Kind, items []any) ([]T, error) {
	out := make([]T, 0, len(items))
	for i, item := range items {
		v, err := convertScalar(elem, item)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out = append(out, v.(T))
	}

	return out, nil
}

func convertScalar(k Kind, raw any) (any, error) {
	switch k {
	case KindBool:
		if v, ok := raw.(bool); ok {
			return v, nil
		}
	case KindInt:
		if v, ok := raw.(int64); ok {
			return v, nil
		}
	case KindFloat:
		switch v := raw.(type) {
		case float64:
			return v, nil
		case int64:
			return float64(v), nil
		}
	case KindString:
		if v, ok := raw.(string); ok {
			return v, nil
		}
	}

	return nil, fmt.Errorf("%w: want %s, got %T", ErrValueType, k, raw)
}

func typedSliceToAny(raw any) ([]any, bool) {
	switch v := raw.(type) {
	case []bool:
		return toAnySlice(v), true
	case []int64:
		return toAnySlice(v), true
	case []float64:
		return toAnySlice(v), true
	case []string:
		return toAnySlice(v), true
	default:
		return nil, false
	}
}

func toAnySlice[T any](items []T) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = item
	}

	return out
}

// ToDocument 把类型化的值转换回文档表示 (列表转为 []any)。
func ToDocument(v any) any {
	if items, ok := typedSliceToAny(v); ok {
		return items
	}

	return v
}

// FormatValue 返回值的展示文本，列表形如 [a, b]。
func FormatValue(v any) string {
	switch typed := v.(type) {
	case string:
		return typed
	case float64:
		return strconv.FormatFloat(typed, 'g', -1, 64)
	case []any:
		parts := make([]string, len(typed))
		for i, item := range typed {
			parts[i] = FormatValue(item)
		}

		return "[" + strings.Join(parts, ", ") + "]"
	}
	if items, ok := typedSliceToAny(v); ok {
		return FormatValue(items)
	}

	return fmt.Sprint(v)
}
