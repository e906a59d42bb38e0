package cfgen

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251018-go-pkg-cfgen/pkg/cfgtree"
	"github.com/lwmacct/251018-go-pkg-cfgen/pkg/docio"
	"github.com/lwmacct/251018-go-pkg-cfgen/pkg/docmap"
	"github.com/lwmacct/251018-go-pkg-cfgen/pkg/schema"
)

var (
	// ErrNotParsed 在 [Generator.Parse] 成功之前调用了 BuildConfig 或 Dump。
	ErrNotParsed = errors.New("generator has no parsed arguments")
	// ErrArgumentExists AppendArgument 的路径已存在。
	ErrArgumentExists = errors.New("argument already exists")
)

// State 生成器状态。
type State int

const (
	// StateSchemaBuilt 已构建 schema，尚未解析命令行。
	StateSchemaBuilt State = iota + 1
	// StateParsed 已解析命令行，可以 BuildConfig / Dump。
	StateParsed
)

func (s State) String() string {
	switch s {
	case StateSchemaBuilt:
		return "schema-built"
	case StateParsed:
		return "parsed"
	default:
		return "uninitialized"
	}
}

// Generator 持有当前文档、由文档推断的 schema 以及最近一次解析的覆盖表。
//
// Generator 不是并发安全的。
type Generator struct {
	opts      *options
	source    string
	doc       *docmap.Map
	schema    *schema.Schema
	overrides schema.Overrides
	state     State
}

// New 读取文档并构建 schema，文件格式按扩展名判断 (见 [docio.FormatFromPath])。
func New(path string, opts ...Option) (*Generator, error) {
	doc, err := docio.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load document %s: %w", path, err)
	}

	return newGenerator(path, doc, opts)
}

// NewFromMap 从内存中的文档构建生成器，文档会被深拷贝。
func NewFromMap(doc *docmap.Map, opts ...Option) (*Generator, error) {
	if doc == nil {
		doc = docmap.New()
	}

	return newGenerator("", doc.Clone(), opts)
}

func newGenerator(source string, doc *docmap.Map, opts []Option) (*Generator, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	g := &Generator{opts: o, source: source, doc: doc}
	if err := g.Recompile(); err != nil {
		return nil, err
	}

	return g, nil
}

// Parse 解析命令行参数并返回配置树，args 通常为 os.Args[1:]。
//
// 成功后覆盖值会原地写回当前文档，随后的 [Generator.Dump] 与
// [Generator.Recompile] 都能看到本次解析的结果。
// 解析失败时生成器状态保持不变。
func (g *Generator) Parse(ctx context.Context, args []string) (*cfgtree.Group, error) {
	overrides, explicit, err := newFlagSet(g.schema).parse(ctx, g.opts, args)
	if err != nil {
		return nil, err
	}

	tree, err := cfgtree.Materialize(g.doc, g.schema.Root(), overrides)
	if err != nil {
		return nil, err
	}
	if err := cfgtree.Apply(g.doc, g.schema.Root(), overrides); err != nil {
		return nil, err
	}

	g.overrides = overrides
	g.state = StateParsed
	g.opts.logger.Debug("Parsed arguments", "source", g.source, "args", len(args), "set", explicit)

	return tree, nil
}

// BuildConfig 用最近一次解析的覆盖表重新构建配置树。
func (g *Generator) BuildConfig() (*cfgtree.Group, error) {
	if g.state != StateParsed {
		return nil, ErrNotParsed
	}

	return cfgtree.Materialize(g.doc, g.schema.Root(), g.overrides)
}

// AppendArgument 在 path 处追加一个新的叶子 (或分组)，缺失的中间分组会自动创建。
//
// 只修改文档，schema 需要 [Generator.Recompile] 后才包含新参数。
//
// 示例：
//
//	_ = gen.AppendArgument([]string{"TRAINING", "dropout"}, 0.1)
//	_ = gen.Recompile()
func (g *Generator) AppendArgument(path []string, def any) error {
	if len(path) == 0 {
		return errors.New("append argument: empty path")
	}
	if _, ok := g.doc.Lookup(path...); ok {
		return fmt.Errorf("%w: %s", ErrArgumentExists, schemaKey(path))
	}
	if err := g.doc.SetPath(path, docmap.Normalize(def)); err != nil {
		return fmt.Errorf("append argument %s: %w", schemaKey(path), err)
	}

	g.opts.logger.Debug("Appended argument", "key", schemaKey(path))

	return nil
}

// Recompile 从当前文档重新构建 schema，状态回到 [StateSchemaBuilt]，丢弃之前的解析结果。
// 构建失败时保留原有 schema 与状态。
func (g *Generator) Recompile() error {
	s, err := schema.Build(g.doc)
	if err != nil {
		return err
	}

	g.schema = s
	g.overrides = nil
	g.state = StateSchemaBuilt
	g.opts.logger.Debug("Compiled flag schema", "source", g.source, "entries", s.Len())

	return nil
}

// Schema 返回当前 schema。
func (g *Generator) Schema() *schema.Schema {
	return g.schema
}

// Document 返回当前文档的深拷贝。
func (g *Generator) Document() *docmap.Map {
	return g.doc.Clone()
}

// State 返回当前状态。
func (g *Generator) State() State {
	return g.state
}

// Command 返回按当前 schema 生成的 urfave/cli 命令，可用于渲染帮助或嵌入其他命令。
// 返回的命令不会修改生成器状态。
func (g *Generator) Command() *cli.Command {
	return newFlagSet(g.schema).command(g.opts, nil)
}

func schemaKey(path []string) string {
	return strings.Join(path, schema.KeySeparator)
}
