package docio

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lwmacct/251018-go-pkg-cfgen/pkg/docmap"
)

// Format 配置文档格式。
type Format string

const (
	YAML Format = "yaml"
	JSON Format = "json"
	TOML Format = "toml"
)

// ErrRootNotMapping 表示文档根节点不是映射。
var ErrRootNotMapping = errors.New("document root must be a mapping")

// FormatFromPath 根据扩展名判断文档格式，未知扩展名按 YAML 处理。
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON
	case ".toml", ".tml":
		return TOML
	default:
		return YAML
	}
}

// ParseFormat 解析格式名称 (大小写不敏感，yml 等同 yaml)。
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "yaml", "yml":
		return YAML, nil
	case "json":
		return JSON, nil
	case "toml", "tml":
		return TOML, nil
	default:
		return "", fmt.Errorf("unknown document format %q", name)
	}
}

// Decode 按格式解析文档。
func Decode(format Format, content []byte) (*docmap.Map, error) {
	switch format {
	case YAML:
		return decodeYAML(content)
	case JSON:
		return decodeJSON(content)
	case TOML:
		return decodeTOML(content)
	default:
		return nil, fmt.Errorf("unknown document format %q", format)
	}
}

// Encode 按格式序列化文档。
func Encode(format Format, doc *docmap.Map) ([]byte, error) {
	switch format {
	case YAML:
		return encodeYAML(doc)
	case JSON:
		return encodeJSON(doc)
	case TOML:
		return encodeTOML(doc)
	default:
		return nil, fmt.Errorf("unknown document format %q", format)
	}
}

// formatFloat 输出带小数部分的浮点数，保证重新加载后仍是浮点类型。
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return s
	}
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}

	return s
}
