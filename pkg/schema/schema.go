package schema

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/lwmacct/251018-go-pkg-cfgen/pkg/docmap"
)

// KeySeparator 连接路径得到目的 key，例如 PATHS.epochs。
const KeySeparator = "."

// ErrSchemaInference 所有类型推断失败的错误都可以用 errors.Is 匹配它。
var ErrSchemaInference = errors.New("schema inference failed")

// ErrFlagConflict 表示限定后的 flag 名称或目的 key 仍然重复。
var ErrFlagConflict = errors.New("flag name conflict")

// InversePrefix 布尔叶子取反 flag 的前缀。
const InversePrefix = "no-"

// reservedFlags 被 flag 引擎占用的名称 (--help / -h)。
var reservedFlags = map[string]struct{}{
	"help": {},
	"h":    {},
}

// InferenceError 叶子的类型无法从默认值推断。
type InferenceError struct {
	Path   []string
	Reason string
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("cannot infer type of %q: %s", strings.Join(e.Path, KeySeparator), e.Reason)
}

func (e *InferenceError) Unwrap() error {
	return ErrSchemaInference
}

// Overrides 扁平的覆盖值表，key 为 [Entry.Key]。
type Overrides map[string]any

// Entry 单个叶子的 flag 描述。
type Entry struct {
	Path     []string // 从根到叶子的 key 序列
	Key      string   // 目的 key，Path 以 "." 连接
	FlagName string   // 命令行名称，不含 "--"
	Type     Type
	Default  any // 类型化的默认值，见 [Convert]
}

// Category 返回叶子所在分组的路径，根层级返回空字符串。
func (e *Entry) Category() string {
	return strings.Join(e.Path[:len(e.Path)-1], KeySeparator)
}

// Node 模板节点，为 *Group 或 *Entry。
type Node interface {
	node()
}

// Group 模板中的分组，Children 保持文档顺序。
type Group struct {
	Key      string
	Path     []string
	Children []Node
}

func (*Group) node() {}
func (*Entry) node() {}

// Schema 一份文档推断出的全部 flag。
type Schema struct {
	root    *Group
	entries []*Entry
	byKey   map[string]*Entry
	byFlag  map[string]*Entry
}

// Build 深度优先遍历文档，为每个叶子生成 [Entry]，并生成同构的分组模板。
//
// 推断规则：
//   - 嵌套映射 → 递归，生成子分组
//   - bool → 成对的 --name / --no-name
//   - 非空列表 → 元素类型取第一个元素，其余元素必须一致 (整数可放宽为浮点)
//   - 空列表、null 或不支持的值 → [InferenceError]
//   - 其他标量 → 按运行时类型
//
// 任一叶子失败时返回错误，不返回部分结果。
func Build(doc *docmap.Map) (*Schema, error) {
	s := &Schema{
		byKey:  make(map[string]*Entry),
		byFlag: make(map[string]*Entry),
	}

	root, err := s.buildGroup("", nil, doc)
	if err != nil {
		return nil, err
	}
	s.root = root

	if err := s.assignFlagNames(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Schema) buildGroup(key string, path []string, doc *docmap.Map) (*Group, error) {
	group := &Group{Key: key, Path: path}
	for _, childKey := range doc.Keys() {
		value, _ := doc.Get(childKey)
		childPath := append(slices.Clone(path), childKey)

		if child, ok := value.(*docmap.Map); ok {
			sub, err := s.buildGroup(childKey, childPath, child)
			if err != nil {
				return nil, err
			}
			group.Children = append(group.Children, sub)

			continue
		}

		entry, err := newEntry(childPath, value)
		if err != nil {
			return nil, err
		}
		if _, dup := s.byKey[entry.Key]; dup {
			return nil, fmt.Errorf("%w: destination key %q is used by more than one leaf", ErrFlagConflict, entry.Key)
		}
		s.byKey[entry.Key] = entry
		s.entries = append(s.entries, entry)
		group.Children = append(group.Children, entry)
	}

	return group, nil
}

func newEntry(path []string, raw any) (*Entry, error) {
	raw = docmap.Normalize(raw)
	typ, err := Infer(raw)
	if err != nil {
		return nil, &InferenceError{Path: path, Reason: err.Error()}
	}
	def, err := Convert(typ, raw)
	if err != nil {
		return nil, &InferenceError{Path: path, Reason: err.Error()}
	}

	return &Entry{
		Path:    path,
		Key:     strings.Join(path, KeySeparator),
		Type:    typ,
		Default: def,
	}, nil
}

// Infer 根据值的运行时形态推断类型。
func Infer(raw any) (Type, error) {
	switch v := raw.(type) {
	case nil:
		return Type{}, errors.New("null value has no type")
	case []any:
		if len(v) == 0 {
			return Type{}, errors.New("empty list has no element type")
		}
		elem := scalarKind(v[0])
		if elem == KindInvalid {
			return Type{}, fmt.Errorf("list element of type %T is not a scalar", v[0])
		}
		for i, item := range v[1:] {
			k := scalarKind(item)
			if k == elem || (elem == KindFloat && k == KindInt) {
				continue
			}

			return Type{}, fmt.Errorf("list element %d is %s, want %s", i+1, describe(item), elem)
		}

		return ListOf(elem), nil
	}

	if k := scalarKind(raw); k != KindInvalid {
		return Scalar(k), nil
	}

	return Type{}, fmt.Errorf("unsupported value type %T", raw)
}

func scalarKind(v any) Kind {
	switch v.(type) {
	case bool:
		return KindBool
	case int64:
		return KindInt
	case float64:
		return KindFloat
	case string:
		return KindString
	default:
		return KindInvalid
	}
}

func describe(v any) string {
	if k := scalarKind(v); k != KindInvalid {
		return k.String()
	}

	return fmt.Sprintf("%T", v)
}

// assignFlagNames 默认使用叶子 key (下划线转连字符)。
// 名称重复或与保留名冲突时，所有相关叶子改用完整路径 (以 "-" 连接)。
func (s *Schema) assignFlagNames() error {
	counts := make(map[string]int, len(s.entries))
	for _, e := range s.entries {
		counts[FlagName(e.Path[len(e.Path)-1])]++
	}

	for _, e := range s.entries {
		name := FlagName(e.Path[len(e.Path)-1])
		_, reserved := reservedFlags[name]
		if counts[name] > 1 || reserved {
			name = FlagName(strings.Join(e.Path, "-"))
		}
		if _, reserved := reservedFlags[name]; reserved {
			return fmt.Errorf("%w: --%s is reserved by the flag parser (key %q)", ErrFlagConflict, name, e.Key)
		}
		if other, dup := s.byFlag[name]; dup {
			return fmt.Errorf("%w: --%s is claimed by %q and %q", ErrFlagConflict, name, other.Key, e.Key)
		}
		e.FlagName = name
		s.byFlag[name] = e
	}

	// bool 叶子同时占用 --no-<name>
	for _, e := range s.entries {
		if e.Type.Kind != KindBool {
			continue
		}
		if other, dup := s.byFlag[InversePrefix+e.FlagName]; dup {
			return fmt.Errorf("%w: --%s%s of %q is claimed by %q", ErrFlagConflict, InversePrefix, e.FlagName, e.Key, other.Key)
		}
	}

	return nil
}

// FlagName 把 key 转为命令行名称：下划线替换为连字符。
func FlagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}

// Entries 按文档顺序返回全部叶子。
func (s *Schema) Entries() []*Entry {
	return slices.Clone(s.entries)
}

// Len 返回叶子数量。
func (s *Schema) Len() int {
	return len(s.entries)
}

// Entry 按目的 key 查找叶子。
func (s *Schema) Entry(key string) (*Entry, bool) {
	e, ok := s.byKey[key]
	return e, ok
}

// ByFlag 按 flag 名称查找叶子。
func (s *Schema) ByFlag(name string) (*Entry, bool) {
	e, ok := s.byFlag[name]
	return e, ok
}

// Root 返回分组模板的根节点。
func (s *Schema) Root() *Group {
	return s.root
}

// Defaults 返回全部取默认值的覆盖表。
func (s *Schema) Defaults() Overrides {
	out := make(Overrides, len(s.entries))
	for _, e := range s.entries {
		out[e.Key] = e.Default
	}

	return out
}
