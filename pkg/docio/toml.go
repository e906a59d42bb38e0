package docio

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/lwmacct/251018-go-pkg-cfgen/pkg/docmap"
)

func decodeTOML(content []byte) (*docmap.Map, error) {
	raw := make(map[string]any)
	md, err := toml.Decode(string(content), &raw)
	if err != nil {
		return nil, err
	}

	out := docmap.New()
	for _, key := range md.Keys() {
		value, ok := lookupRaw(raw, key)
		if !ok {
			// 数组表 ([[x]]) 内部的 key 无法按路径定位，整体值由父 key 处理
			continue
		}
		parent, ok := groupAt(out, key[:len(key)-1])
		if !ok {
			continue
		}
		name := key[len(key)-1]
		if _, isTable := value.(map[string]any); isTable {
			if _, exists := parent.Get(name); !exists {
				parent.Set(name, docmap.New())
			}

			continue
		}
		if _, exists := parent.Get(name); !exists {
			parent.Set(name, docmap.Normalize(value))
		}
	}
	fillMissing(out, raw)

	return out, nil
}

func lookupRaw(raw map[string]any, key toml.Key) (any, bool) {
	var current any = raw
	for _, part := range key {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[part]
		if !ok {
			return nil, false
		}
	}

	return current, true
}

func groupAt(root *docmap.Map, path []string) (*docmap.Map, bool) {
	current := root
	for _, part := range path {
		v, ok := current.Get(part)
		if !ok {
			next := docmap.New()
			current.Set(part, next)
			current = next

			continue
		}
		next, ok := v.(*docmap.Map)
		if !ok {
			return nil, false
		}
		current = next
	}

	return current, true
}

// fillMissing 补齐 MetaData 未覆盖到的 key，按字典序追加。
func fillMissing(dst *docmap.Map, raw map[string]any) {
	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		existing, ok := dst.Get(key)
		if !ok {
			dst.Set(key, docmap.Normalize(raw[key]))

			continue
		}
		child, isMap := existing.(*docmap.Map)
		rawChild, rawIsMap := raw[key].(map[string]any)
		if isMap && rawIsMap {
			fillMissing(child, rawChild)
		}
	}
}

func encodeTOML(doc *docmap.Map) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeTOMLTable(&buf, nil, doc); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// writeTOMLTable 先写当前表的标量 key，再依次写子表。
// TOML 要求子表出现在标量之后，因此标量与子表各自保持文档顺序。
func writeTOMLTable(buf *bytes.Buffer, path []string, table *docmap.Map) error {
	if len(path) > 0 {
		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		fmt.Fprintf(buf, "[%s]\n", toml.Key(path).String())
	}

	var tables []string
	for _, key := range table.Keys() {
		value, _ := table.Get(key)
		if _, ok := value.(*docmap.Map); ok {
			tables = append(tables, key)

			continue
		}
		if err := writeTOMLKeyValue(buf, key, value); err != nil {
			return fmt.Errorf("key %s: %w", toml.Key(append(slices.Clone(path), key)), err)
		}
	}

	for _, key := range tables {
		value, _ := table.Get(key)
		if err := writeTOMLTable(buf, append(slices.Clone(path), key), value.(*docmap.Map)); err != nil {
			return err
		}
	}

	return nil
}

func writeTOMLKeyValue(buf *bytes.Buffer, key string, value any) error {
	if containsNil(value) {
		return errors.New("toml cannot represent null")
	}
	line, err := toml.Marshal(map[string]any{key: value})
	if err != nil {
		return err
	}
	buf.Write(line)

	return nil
}

func containsNil(value any) bool {
	switch typed := value.(type) {
	case nil:
		return true
	case []any:
		return slices.ContainsFunc(typed, containsNil)
	default:
		return false
	}
}
