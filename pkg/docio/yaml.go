package docio

import (
	"bytes"
	"fmt"
	"math"

	yamlv3 "go.yaml.in/yaml/v3"

	"github.com/lwmacct/251018-go-pkg-cfgen/pkg/docmap"
)

const mergeKey = "<<"

func decodeYAML(content []byte) (*docmap.Map, error) {
	var root yamlv3.Node
	if err := yamlv3.Unmarshal(content, &root); err != nil {
		return nil, err
	}

	node := &root
	if node.Kind == 0 {
		return docmap.New(), nil
	}
	if node.Kind == yamlv3.DocumentNode {
		if len(node.Content) == 0 {
			return docmap.New(), nil
		}
		node = node.Content[0]
	}
	node = resolveAlias(node)

	if node.Kind == yamlv3.ScalarNode && node.ShortTag() == "!!null" {
		return docmap.New(), nil
	}
	if node.Kind != yamlv3.MappingNode {
		return nil, ErrRootNotMapping
	}

	return yamlMapping(node)
}

func resolveAlias(node *yamlv3.Node) *yamlv3.Node {
	for node.Kind == yamlv3.AliasNode && node.Alias != nil {
		node = node.Alias
	}

	return node
}

func yamlMapping(node *yamlv3.Node) (*docmap.Map, error) {
	out := docmap.New()
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode := resolveAlias(node.Content[i])
		if keyNode.Kind != yamlv3.ScalarNode {
			return nil, fmt.Errorf("line %d: mapping key must be a scalar", keyNode.Line)
		}
		if keyNode.Value == mergeKey {
			return nil, fmt.Errorf("line %d: merge keys are not supported", keyNode.Line)
		}

		value, err := yamlValue(node.Content[i+1])
		if err != nil {
			return nil, err
		}
		out.Set(keyNode.Value, value)
	}

	return out, nil
}

func yamlValue(node *yamlv3.Node) (any, error) {
	node = resolveAlias(node)

	switch node.Kind {
	case yamlv3.MappingNode:
		return yamlMapping(node)
	case yamlv3.SequenceNode:
		out := make([]any, 0, len(node.Content))
		for _, item := range node.Content {
			v, err := yamlValue(item)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}

		return out, nil
	case yamlv3.ScalarNode:
		return yamlScalar(node)
	default:
		return nil, fmt.Errorf("line %d: unsupported yaml node", node.Line)
	}
}

func yamlScalar(node *yamlv3.Node) (any, error) {
	switch node.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return nil, err
		}

		return b, nil
	case "!!int":
		var i int64
		if err := node.Decode(&i); err != nil {
			return nil, err
		}

		return i, nil
	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return nil, err
		}

		return f, nil
	default:
		// !!str 以及 !!timestamp / !!binary 等统一按原文字符串保留
		return node.Value, nil
	}
}

func encodeYAML(doc *docmap.Map) ([]byte, error) {
	node, err := yamlMappingNode(doc)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := yamlv3.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func yamlMappingNode(doc *docmap.Map) (*yamlv3.Node, error) {
	node := &yamlv3.Node{Kind: yamlv3.MappingNode, Tag: "!!map"}
	for _, key := range doc.Keys() {
		value, _ := doc.Get(key)
		valueNode, err := yamlValueNode(value)
		if err != nil {
			return nil, fmt.Errorf("key %s: %w", key, err)
		}
		keyNode := &yamlv3.Node{}
		if err := keyNode.Encode(key); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, keyNode, valueNode)
	}

	return node, nil
}

func yamlValueNode(value any) (*yamlv3.Node, error) {
	switch typed := value.(type) {
	case *docmap.Map:
		return yamlMappingNode(typed)
	case []any:
		// 标量列表使用 flow 风格: [64, 32]
		node := &yamlv3.Node{Kind: yamlv3.SequenceNode, Tag: "!!seq", Style: yamlv3.FlowStyle}
		for _, item := range typed {
			child, err := yamlValueNode(item)
			if err != nil {
				return nil, err
			}
			if child.Kind != yamlv3.ScalarNode {
				node.Style = 0
			}
			node.Content = append(node.Content, child)
		}

		return node, nil
	case nil:
		return &yamlv3.Node{Kind: yamlv3.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case float64:
		return &yamlv3.Node{Kind: yamlv3.ScalarNode, Tag: "!!float", Value: yamlFloat(typed)}, nil
	default:
		node := &yamlv3.Node{}
		if err := node.Encode(value); err != nil {
			return nil, err
		}

		return node, nil
	}
}

func yamlFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	case math.IsNaN(f):
		return ".nan"
	default:
		return formatFloat(f)
	}
}
