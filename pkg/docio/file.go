package docio

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/lwmacct/251018-go-pkg-cfgen/pkg/docmap"
)

// LoadFile 读取并解析文档，格式由扩展名决定。
func LoadFile(path string) (*docmap.Map, error) {
	f, err := os.Open(path) //nolint:gosec // path is provided by the caller
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read document %s: %w", path, err)
	}

	doc, err := Decode(FormatFromPath(path), content)
	if err != nil {
		return nil, fmt.Errorf("parse document %s: %w", path, err)
	}
	slog.Debug("Loaded document", "path", path, "keys", doc.Len())

	return doc, nil
}

// SaveFile 序列化文档并原子写入 path，格式由扩展名决定。
func SaveFile(path string, doc *docmap.Map) error {
	content, err := Encode(FormatFromPath(path), doc)
	if err != nil {
		return fmt.Errorf("encode document %s: %w", path, err)
	}
	if err := WriteFile(path, content); err != nil {
		return err
	}
	slog.Debug("Saved document", "path", path, "bytes", len(content))

	return nil
}

// WriteFile 写入同目录临时文件后 rename，目标文件要么完整替换要么保持不变。
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	tempFile, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temporary file: %w", err)
	}
	tempPath := tempFile.Name()
	renamed := false
	defer func() {
		if !renamed {
			_ = os.Remove(tempPath)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temporary file: %w", err)
	}
	if err := tempFile.Sync(); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("sync temporary file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temporary file: %w", err)
	}
	if err := os.Chmod(tempPath, 0o644); err != nil { //nolint:gosec // config files are world readable
		return fmt.Errorf("set permissions: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("rename temporary file: %w", err)
	}
	renamed = true

	return nil
}
