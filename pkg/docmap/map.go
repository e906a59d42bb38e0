package docmap

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"sort"
	"strings"
)

// ErrNotMapping 表示路径中间节点不是嵌套映射。
var ErrNotMapping = errors.New("path segment is not a mapping")

// Map 是保持插入顺序的嵌套映射。
//
// 值只允许以下几类：
//   - 标量: bool, int64, float64, string
//   - 标量列表: []any
//   - 嵌套映射: *Map
//
// 零值不可用，请使用 [New] 创建。
type Map struct {
	keys   []string
	values map[string]any
}

// New 创建空映射。
func New() *Map {
	return &Map{values: make(map[string]any)}
}

// Len 返回当前层级的 key 数量。
func (m *Map) Len() int {
	return len(m.keys)
}

// Keys 按文档顺序返回当前层级的 key。
func (m *Map) Keys() []string {
	return slices.Clone(m.keys)
}

// Get 返回 key 对应的值。
func (m *Map) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Set 写入 key。已有 key 保持原位置，新 key 追加到末尾。
func (m *Map) Set(key string, value any) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Delete 删除 key，不存在时忽略。
func (m *Map) Delete(key string) {
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	m.keys = slices.DeleteFunc(m.keys, func(k string) bool { return k == key })
}

// Lookup 按 key 序列查找值。
func (m *Map) Lookup(path ...string) (any, bool) {
	if len(path) == 0 {
		return nil, false
	}
	current := m
	for i, key := range path {
		v, ok := current.values[key]
		if !ok {
			return nil, false
		}
		if i == len(path)-1 {
			return v, true
		}
		next, ok := v.(*Map)
		if !ok {
			return nil, false
		}
		current = next
	}

	return nil, false
}

// SetPath 按 key 序列写入值，缺失的中间层级会自动创建。
func (m *Map) SetPath(path []string, value any) error {
	if len(path) == 0 {
		return errors.New("empty path")
	}
	current := m
	for i, key := range path[:len(path)-1] {
		v, ok := current.values[key]
		if !ok {
			next := New()
			current.Set(key, next)
			current = next

			continue
		}
		next, ok := v.(*Map)
		if !ok {
			return fmt.Errorf("%w: %s", ErrNotMapping, strings.Join(path[:i+1], "."))
		}
		current = next
	}
	current.Set(path[len(path)-1], value)

	return nil
}

// Walk 深度优先遍历所有叶子，顺序与文档一致。
// fn 返回 error 时立即停止。
func (m *Map) Walk(fn func(path []string, value any) error) error {
	return m.walk(nil, fn)
}

func (m *Map) walk(prefix []string, fn func(path []string, value any) error) error {
	for _, key := range m.keys {
		path := append(slices.Clone(prefix), key)
		if child, ok := m.values[key].(*Map); ok {
			if err := child.walk(path, fn); err != nil {
				return err
			}

			continue
		}
		if err := fn(path, m.values[key]); err != nil {
			return err
		}
	}

	return nil
}

// Clone 深拷贝映射。
func (m *Map) Clone() *Map {
	out := New()
	for _, key := range m.keys {
		out.Set(key, cloneValue(m.values[key]))
	}

	return out
}

func cloneValue(v any) any {
	switch typed := v.(type) {
	case *Map:
		return typed.Clone()
	case []any:
		out := make([]any, len(typed))
		for i := range typed {
			out[i] = cloneValue(typed[i])
		}

		return out
	default:
		return v
	}
}

// ToMap 转换为普通 map，嵌套映射同样转换，列表保持 []any。
func (m *Map) ToMap() map[string]any {
	out := make(map[string]any, len(m.keys))
	for _, key := range m.keys {
		out[key] = toPlain(m.values[key])
	}

	return out
}

func toPlain(v any) any {
	switch typed := v.(type) {
	case *Map:
		return typed.ToMap()
	case []any:
		out := make([]any, len(typed))
		for i := range typed {
			out[i] = toPlain(typed[i])
		}

		return out
	default:
		return v
	}
}

// FromMap 从普通 map 构建映射。
//
// 普通 map 没有顺序，key 按字典序排列。整数统一为 int64，浮点统一为 float64。
func FromMap(src map[string]any) *Map {
	out := New()
	keys := make([]string, 0, len(src))
	for key := range src {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		out.Set(key, Normalize(src[key]))
	}

	return out
}

// Normalize 统一标量类型，并把嵌套的 map / slice 转换为 *Map / []any。
func Normalize(v any) any {
	switch typed := v.(type) {
	case *Map:
		return typed
	case map[string]any:
		return FromMap(typed)
	case []any:
		out := make([]any, len(typed))
		for i := range typed {
			out[i] = Normalize(typed[i])
		}

		return out
	case int:
		return int64(typed)
	case int8:
		return int64(typed)
	case int16:
		return int64(typed)
	case int32:
		return int64(typed)
	case uint:
		return int64(typed) //nolint:gosec // config integers fit in int64
	case uint8:
		return int64(typed)
	case uint16:
		return int64(typed)
	case uint32:
		return int64(typed)
	case uint64:
		return int64(typed) //nolint:gosec // config integers fit in int64
	case float32:
		return float64(typed)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() != reflect.Uint8 {
		out := make([]any, rv.Len())
		for i := range rv.Len() {
			out[i] = Normalize(rv.Index(i).Interface())
		}

		return out
	}

	return v
}

// Equal 比较两个映射的 key 顺序与值是否一致。
func (m *Map) Equal(other *Map) bool {
	if m == nil || other == nil {
		return m == other
	}
	if !slices.Equal(m.keys, other.keys) {
		return false
	}
	for _, key := range m.keys {
		if !valueEqual(m.values[key], other.values[key]) {
			return false
		}
	}

	return true
}

func valueEqual(a, b any) bool {
	switch ta := a.(type) {
	case *Map:
		tb, ok := b.(*Map)
		return ok && ta.Equal(tb)
	case []any:
		tb, ok := b.([]any)
		if !ok || len(ta) != len(tb) {
			return false
		}
		for i := range ta {
			if !valueEqual(ta[i], tb[i]) {
				return false
			}
		}

		return true
	default:
		return reflect.DeepEqual(a, b)
	}
}
