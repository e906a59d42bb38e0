package cfgen

import (
	"fmt"
	"io"

	"github.com/lwmacct/251018-go-pkg-cfgen/pkg/cfgtree"
	"github.com/lwmacct/251018-go-pkg-cfgen/pkg/docio"
	"github.com/lwmacct/251018-go-pkg-cfgen/pkg/docmap"
)

// Dump 把当前文档 (叠加最近一次解析的覆盖值) 写入 path，格式由扩展名决定。
//
// 写入是原子的：目标文件要么被完整替换，要么保持不变。
func (g *Generator) Dump(path string) error {
	doc, err := g.merged()
	if err != nil {
		return err
	}
	if err := docio.SaveFile(path, doc); err != nil {
		return err
	}

	g.opts.logger.Debug("Dumped config", "path", path, "format", docio.FormatFromPath(path))

	return nil
}

// DumpTo 与 [Generator.Dump] 相同，但写入 w。
func (g *Generator) DumpTo(w io.Writer, format docio.Format) error {
	doc, err := g.merged()
	if err != nil {
		return err
	}
	content, err := docio.Encode(format, doc)
	if err != nil {
		return fmt.Errorf("encode %s: %w", format, err)
	}
	if _, err := w.Write(content); err != nil {
		return fmt.Errorf("write %s: %w", format, err)
	}

	return nil
}

func (g *Generator) merged() (*docmap.Map, error) {
	if g.state != StateParsed {
		return nil, ErrNotParsed
	}

	doc := g.doc.Clone()
	if err := cfgtree.Apply(doc, g.schema.Root(), g.overrides); err != nil {
		return nil, err
	}

	return doc, nil
}
