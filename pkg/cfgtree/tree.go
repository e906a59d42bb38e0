package cfgtree

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	"github.com/lwmacct/251018-go-pkg-cfgen/pkg/docmap"
	"github.com/lwmacct/251018-go-pkg-cfgen/pkg/schema"
)

var (
	// ErrNotFound 路径不存在。
	ErrNotFound = errors.New("config path not found")
	// ErrTypeMismatch 路径存在但类型不符 (例如把分组当作叶子读取)。
	ErrTypeMismatch = errors.New("config value type mismatch")
)

// Node 配置树节点，为 *Group 或 *Leaf。
type Node interface {
	Key() string
	Path() []string
	isNode()
}

// Leaf 叶子节点，持有一个类型化的值。
type Leaf struct {
	key   string
	path  []string
	typ   schema.Type
	value any
}

func (*Leaf) isNode() {}

// Key 返回叶子在所属分组内的 key。
func (l *Leaf) Key() string { return l.key }

// Path 返回从根到叶子的 key 序列。
func (l *Leaf) Path() []string { return slices.Clone(l.path) }

// Type 返回叶子的类型标签。
func (l *Leaf) Type() schema.Type { return l.typ }

// Value 返回叶子的值，列表返回副本。
func (l *Leaf) Value() any {
	switch v := l.value.(type) {
	case []bool:
		return slices.Clone(v)
	case []int64:
		return slices.Clone(v)
	case []float64:
		return slices.Clone(v)
	case []string:
		return slices.Clone(v)
	default:
		return v
	}
}

// Group 分组节点，子节点保持文档顺序。
type Group struct {
	key      string
	path     []string
	children []Node
	index    map[string]int
}

func (*Group) isNode() {}

func newGroup(key string, path []string) *Group {
	return &Group{key: key, path: path, index: make(map[string]int)}
}

func (g *Group) add(n Node) {
	g.index[n.Key()] = len(g.children)
	g.children = append(g.children, n)
}

// Key 返回分组 key，根分组为空字符串。
func (g *Group) Key() string { return g.key }

// Path 返回从根到分组的 key 序列。
func (g *Group) Path() []string { return slices.Clone(g.path) }

// Len 返回直接子节点数量。
func (g *Group) Len() int { return len(g.children) }

// Keys 按文档顺序返回直接子节点的 key。
func (g *Group) Keys() []string {
	keys := make([]string, len(g.children))
	for i, c := range g.children {
		keys[i] = c.Key()
	}

	return keys
}

// Children 按文档顺序返回直接子节点。
func (g *Group) Children() []Node {
	return slices.Clone(g.children)
}

// Child 返回直接子节点。
func (g *Group) Child(key string) (Node, bool) {
	i, ok := g.index[key]
	if !ok {
		return nil, false
	}

	return g.children[i], true
}

// Lookup 按 key 序列查找节点，空路径返回分组自身。
func (g *Group) Lookup(path ...string) (Node, bool) {
	var current Node = g
	for _, key := range path {
		group, ok := current.(*Group)
		if !ok {
			return nil, false
		}
		current, ok = group.Child(key)
		if !ok {
			return nil, false
		}
	}

	return current, true
}

// Group 返回子分组。
func (g *Group) Group(path ...string) (*Group, error) {
	node, ok := g.Lookup(path...)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, joinPath(path))
	}
	group, ok := node.(*Group)
	if !ok {
		return nil, fmt.Errorf("%w: %s is a leaf", ErrTypeMismatch, joinPath(path))
	}

	return group, nil
}

// Leaf 返回叶子节点。
func (g *Group) Leaf(path ...string) (*Leaf, error) {
	node, ok := g.Lookup(path...)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, joinPath(path))
	}
	leaf, ok := node.(*Leaf)
	if !ok {
		return nil, fmt.Errorf("%w: %s is a group", ErrTypeMismatch, joinPath(path))
	}

	return leaf, nil
}

// Value 返回叶子的值。
func (g *Group) Value(path ...string) (any, error) {
	leaf, err := g.Leaf(path...)
	if err != nil {
		return nil, err
	}

	return leaf.Value(), nil
}

func get[T any](g *Group, path []string) (T, error) {
	var zero T
	leaf, err := g.Leaf(path...)
	if err != nil {
		return zero, err
	}
	v, ok := leaf.Value().(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s is %s", ErrTypeMismatch, joinPath(path), leaf.typ)
	}

	return v, nil
}

// GetBool 读取 bool 叶子。
func (g *Group) GetBool(path ...string) (bool, error) { return get[bool](g, path) }

// GetInt 读取整数叶子。
func (g *Group) GetInt(path ...string) (int64, error) { return get[int64](g, path) }

// GetFloat 读取浮点叶子。
func (g *Group) GetFloat(path ...string) (float64, error) { return get[float64](g, path) }

// GetString 读取字符串叶子。
func (g *Group) GetString(path ...string) (string, error) { return get[string](g, path) }

// GetBools 读取 bool 列表叶子。
func (g *Group) GetBools(path ...string) ([]bool, error) { return get[[]bool](g, path) }

// GetInts 读取整数列表叶子。
func (g *Group) GetInts(path ...string) ([]int64, error) { return get[[]int64](g, path) }

// GetFloats 读取浮点列表叶子。
func (g *Group) GetFloats(path ...string) ([]float64, error) { return get[[]float64](g, path) }

// GetStrings 读取字符串列表叶子。
func (g *Group) GetStrings(path ...string) ([]string, error) { return get[[]string](g, path) }

// Leaves 深度优先返回全部叶子。
func (g *Group) Leaves() []*Leaf {
	var out []*Leaf
	for _, c := range g.children {
		switch n := c.(type) {
		case *Group:
			out = append(out, n.Leaves()...)
		case *Leaf:
			out = append(out, n)
		}
	}

	return out
}

// ToMap 转换为普通嵌套 map，叶子保持类型化的值。
func (g *Group) ToMap() map[string]any {
	out := make(map[string]any, len(g.children))
	for _, c := range g.children {
		switch n := c.(type) {
		case *Group:
			out[n.key] = n.ToMap()
		case *Leaf:
			out[n.key] = n.Value()
		}
	}

	return out
}

// ToDocument 转换回文档表示，保持 key 顺序。
func (g *Group) ToDocument() *docmap.Map {
	out := docmap.New()
	for _, c := range g.children {
		switch n := c.(type) {
		case *Group:
			out.Set(n.key, n.ToDocument())
		case *Leaf:
			out.Set(n.key, schema.ToDocument(n.Value()))
		}
	}

	return out
}

// Decode 把树解码到结构体，字段按 json tag 匹配。
//
// 示例：
//
//	type Paths struct {
//	    ModelSavePath string `json:"model_save_path"`
//	    Epochs        int    `json:"epochs"`
//	}
//	var cfg struct {
//	    Paths Paths `json:"PATHS"`
//	}
//	err := tree.Decode(&cfg)
func (g *Group) Decode(out any) error {
	conf := &mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.TextUnmarshallerHookFunc(),
		),
		Metadata:         nil,
		Result:           out,
		WeaklyTypedInput: true,
		TagName:          "json",
	}
	decoder, err := mapstructure.NewDecoder(conf)
	if err != nil {
		return err
	}

	return decoder.Decode(g.ToMap())
}

// String 返回形如 Config(PATHS=PATHS(epochs=10)) 的文本表示。
func (g *Group) String() string {
	var b strings.Builder
	g.format(&b)

	return b.String()
}

func (g *Group) format(b *strings.Builder) {
	name := g.key
	if name == "" {
		name = "Config"
	}
	b.WriteString(name)
	b.WriteByte('(')
	for i, c := range g.children {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(c.Key())
		b.WriteByte('=')
		switch n := c.(type) {
		case *Group:
			n.format(b)
		case *Leaf:
			if s, ok := n.value.(string); ok {
				b.WriteString(strconv.Quote(s))
			} else {
				b.WriteString(schema.FormatValue(n.value))
			}
		}
	}
	b.WriteByte(')')
}

func joinPath(path []string) string {
	return strings.Join(path, schema.KeySeparator)
}
