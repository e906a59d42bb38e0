package docio

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/lwmacct/251018-go-pkg-cfgen/pkg/docmap"
)

func decodeJSON(content []byte) (*docmap.Map, error) {
	dec := json.NewDecoder(bytes.NewReader(content))
	dec.UseNumber()

	tok, err := dec.Token()
	if errors.Is(err, io.EOF) {
		return docmap.New(), nil
	}
	if err != nil {
		return nil, err
	}
	if tok == nil {
		return docmap.New(), nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, ErrRootNotMapping
	}

	out, err := jsonObject(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level object")
	}

	return out, nil
}

// jsonObject 读取对象剩余部分，调用前 '{' 已被消费。
func jsonObject(dec *json.Decoder) (*docmap.Map, error) {
	out := docmap.New()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key %v", tok)
		}
		value, err := jsonValue(dec)
		if err != nil {
			return nil, err
		}
		out.Set(key, value)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	return out, nil
}

func jsonValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch typed := tok.(type) {
	case json.Delim:
		switch typed {
		case '{':
			return jsonObject(dec)
		case '[':
			out := []any{}
			for dec.More() {
				v, err := jsonValue(dec)
				if err != nil {
					return nil, err
				}
				out = append(out, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}

			return out, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %v", typed)
		}
	case json.Number:
		if i, err := typed.Int64(); err == nil {
			return i, nil
		}

		return typed.Float64()
	default:
		// string, bool, nil
		return typed, nil
	}
}

func encodeJSON(doc *docmap.Map) ([]byte, error) {
	var compact bytes.Buffer
	if err := writeJSONValue(&compact, doc); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
		return nil, err
	}
	out.WriteByte('\n')

	return out.Bytes(), nil
}

func writeJSONValue(buf *bytes.Buffer, value any) error {
	switch typed := value.(type) {
	case *docmap.Map:
		buf.WriteByte('{')
		for i, key := range typed.Keys() {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONScalar(buf, key); err != nil {
				return err
			}
			buf.WriteByte(':')
			child, _ := typed.Get(key)
			if err := writeJSONValue(buf, child); err != nil {
				return fmt.Errorf("key %s: %w", key, err)
			}
		}
		buf.WriteByte('}')
	case []any:
		buf.WriteByte('[')
		for i, item := range typed {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONValue(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case float64:
		if math.IsInf(typed, 0) || math.IsNaN(typed) {
			return fmt.Errorf("json cannot represent %v", typed)
		}
		buf.WriteString(formatFloat(typed))
	default:
		return writeJSONScalar(buf, value)
	}

	return nil
}

func writeJSONScalar(buf *bytes.Buffer, value any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value); err != nil {
		return err
	}
	// Encoder 总会追加换行
	buf.Truncate(buf.Len() - 1)

	return nil
}
