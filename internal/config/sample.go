package config

import (
	"bytes"
	"fmt"
	"reflect"

	yamlv3 "go.yaml.in/yaml/v3"

	"github.com/lwmacct/251018-go-pkg-cfgen/pkg/docio"
	"github.com/lwmacct/251018-go-pkg-cfgen/pkg/docmap"
)

// Document 返回默认配置对应的文档。
func Document() (*docmap.Map, error) {
	return docmap.FromStruct(DefaultConfig())
}

// Sample 按格式生成示例文档。
//
// YAML 会附带 desc tag 中的注释，其他格式与 [docio.Encode] 输出一致。
func Sample(format docio.Format) ([]byte, error) {
	doc, err := Document()
	if err != nil {
		return nil, err
	}
	content, err := docio.Encode(format, doc)
	if err != nil {
		return nil, err
	}
	if format != docio.YAML {
		return content, nil
	}

	return annotateYAML(content, descriptions(reflect.TypeFor[Config]()))
}

// descriptions 收集 json key → desc tag，嵌套 key 以 "." 连接。
func descriptions(typ reflect.Type) map[string]string {
	out := make(map[string]string)
	collectDescriptions(typ, "", out)

	return out
}

func collectDescriptions(typ reflect.Type, prefix string, out map[string]string) {
	for i := range typ.NumField() {
		field := typ.Field(i)
		key := field.Tag.Get("json")
		if key == "" || key == "-" {
			continue
		}
		if prefix != "" {
			key = prefix + "." + key
		}
		if desc := field.Tag.Get("desc"); desc != "" {
			out[key] = desc
		}
		if field.Type.Kind() == reflect.Struct && field.Type.PkgPath() != "time" {
			collectDescriptions(field.Type, key, out)
		}
	}
}

// annotateYAML 为分组写入 head 注释，为叶子写入行尾注释。
func annotateYAML(content []byte, desc map[string]string) ([]byte, error) {
	var root yamlv3.Node
	if err := yamlv3.Unmarshal(content, &root); err != nil {
		return nil, fmt.Errorf("annotate sample: %w", err)
	}
	if len(root.Content) == 0 {
		return content, nil
	}
	root.HeadComment = "示例实验配置，命令行参数会覆盖这里的默认值"
	annotateMapping(root.Content[0], "", desc)

	var buf bytes.Buffer
	enc := yamlv3.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&root); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func annotateMapping(node *yamlv3.Node, prefix string, desc map[string]string) {
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]
		key := keyNode.Value
		if prefix != "" {
			key = prefix + "." + key
		}
		text, ok := desc[key]
		if valueNode.Kind == yamlv3.MappingNode {
			if ok {
				keyNode.HeadComment = text
			}
			annotateMapping(valueNode, key, desc)

			continue
		}
		if ok {
			valueNode.LineComment = text
		}
	}
}
