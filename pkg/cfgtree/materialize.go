package cfgtree

import (
	"errors"
	"fmt"

	"github.com/lwmacct/251018-go-pkg-cfgen/pkg/docmap"
	"github.com/lwmacct/251018-go-pkg-cfgen/pkg/schema"
)

var (
	// ErrNoOverrides 尚未解析命令行，没有覆盖表可用。
	ErrNoOverrides = errors.New("no parsed overrides available")
	// ErrShapeMismatch 文档结构与 schema 模板不一致。
	ErrShapeMismatch = errors.New("document does not match schema template")
)

// Materialize 按模板同步遍历文档，构建配置树。
//
// 叶子取值规则：覆盖表中存在目的 key 时使用覆盖值，否则使用文档中的默认值。
// 任一叶子失败时返回错误，不返回部分树。
func Materialize(doc *docmap.Map, tmpl *schema.Group, overrides schema.Overrides) (*Group, error) {
	if overrides == nil {
		return nil, ErrNoOverrides
	}

	return materializeGroup(doc, tmpl, overrides)
}

func materializeGroup(doc *docmap.Map, tmpl *schema.Group, overrides schema.Overrides) (*Group, error) {
	group := newGroup(tmpl.Key, tmpl.Path)
	for _, child := range tmpl.Children {
		switch c := child.(type) {
		case *schema.Group:
			sub, err := subDocument(doc, c)
			if err != nil {
				return nil, err
			}
			node, err := materializeGroup(sub, c, overrides)
			if err != nil {
				return nil, err
			}
			group.add(node)
		case *schema.Entry:
			value, err := leafValue(doc, c, overrides)
			if err != nil {
				return nil, err
			}
			group.add(&Leaf{
				key:   c.Path[len(c.Path)-1],
				path:  c.Path,
				typ:   c.Type,
				value: value,
			})
		}
	}

	return group, nil
}

// Apply 将同样的覆盖规则原地写回文档。
//
// 只修改模板中存在的叶子，文档中其他 key (例如 schema 重建前追加的参数) 保持不变。
func Apply(doc *docmap.Map, tmpl *schema.Group, overrides schema.Overrides) error {
	if overrides == nil {
		return ErrNoOverrides
	}

	for _, child := range tmpl.Children {
		switch c := child.(type) {
		case *schema.Group:
			sub, err := subDocument(doc, c)
			if err != nil {
				return err
			}
			if err := Apply(sub, c, overrides); err != nil {
				return err
			}
		case *schema.Entry:
			if _, ok := overrides[c.Key]; !ok {
				continue
			}
			value, err := leafValue(doc, c, overrides)
			if err != nil {
				return err
			}
			doc.Set(c.Path[len(c.Path)-1], schema.ToDocument(value))
		}
	}

	return nil
}

func subDocument(doc *docmap.Map, tmpl *schema.Group) (*docmap.Map, error) {
	raw, ok := doc.Get(tmpl.Key)
	if !ok {
		return nil, fmt.Errorf("%w: group %s is missing", ErrShapeMismatch, joinPath(tmpl.Path))
	}
	sub, ok := raw.(*docmap.Map)
	if !ok {
		return nil, fmt.Errorf("%w: %s is no longer a group", ErrShapeMismatch, joinPath(tmpl.Path))
	}

	return sub, nil
}

func leafValue(doc *docmap.Map, entry *schema.Entry, overrides schema.Overrides) (any, error) {
	if v, ok := overrides[entry.Key]; ok {
		value, err := schema.Convert(entry.Type, v)
		if err != nil {
			return nil, fmt.Errorf("override %s: %w", entry.Key, err)
		}

		return value, nil
	}

	raw, ok := doc.Get(entry.Path[len(entry.Path)-1])
	if !ok {
		return nil, fmt.Errorf("%w: leaf %s is missing", ErrShapeMismatch, entry.Key)
	}
	value, err := schema.Convert(entry.Type, raw)
	if err != nil {
		return nil, fmt.Errorf("default %s: %w", entry.Key, err)
	}

	return value, nil
}
