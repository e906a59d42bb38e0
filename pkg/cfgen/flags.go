package cfgen

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251018-go-pkg-cfgen/pkg/schema"
)

var (
	// ErrUsage 命令行参数非法：未知 flag、取值错误或多余的位置参数。
	ErrUsage = errors.New("incorrect usage")
	// ErrHelp 命令行请求了 --help，帮助信息已输出。
	ErrHelp = errors.New("help requested")
)

// binding 把 schema 叶子与 flag 的目的地址关联起来。
type binding struct {
	entry *schema.Entry
	value func() (any, error)
}

// flagSet 由 schema 生成的一组 flag。
//
// urfave/cli 的 flag 带有解析状态，每次解析都要重新生成。
type flagSet struct {
	schema   *schema.Schema
	flags    []cli.Flag
	bindings []binding
}

func newFlagSet(s *schema.Schema) *flagSet {
	fs := &flagSet{schema: s}
	for _, e := range s.Entries() {
		fs.add(e)
	}

	return fs
}

func (fs *flagSet) add(e *schema.Entry) {
	usage := fmt.Sprintf("%s (%s)", e.Key, e.Type)
	category := e.Category()

	switch e.Type {
	case schema.Scalar(schema.KindBool):
		dest := new(bool)
		fs.flags = append(fs.flags, &cli.BoolWithInverseFlag{
			Name:          e.FlagName,
			Category:      category,
			Usage:         usage,
			Value:         e.Default.(bool),
			Destination:   dest,
			InversePrefix: schema.InversePrefix,
		})
		fs.bind(e, scalarValue(dest))
	case schema.Scalar(schema.KindInt):
		dest := new(int64)
		fs.flags = append(fs.flags, &cli.Int64Flag{
			Name:        e.FlagName,
			Category:    category,
			Usage:       usage,
			Value:       e.Default.(int64),
			Destination: dest,
		})
		fs.bind(e, scalarValue(dest))
	case schema.Scalar(schema.KindFloat):
		dest := new(float64)
		fs.flags = append(fs.flags, &cli.FloatFlag{
			Name:        e.FlagName,
			Category:    category,
			Usage:       usage,
			Value:       e.Default.(float64),
			Destination: dest,
		})
		fs.bind(e, scalarValue(dest))
	case schema.Scalar(schema.KindString):
		dest := new(string)
		fs.flags = append(fs.flags, &cli.StringFlag{
			Name:        e.FlagName,
			Category:    category,
			Usage:       usage,
			Value:       e.Default.(string),
			Destination: dest,
		})
		fs.bind(e, scalarValue(dest))
	case schema.ListOf(schema.KindInt):
		dest := new([]int64)
		fs.flags = append(fs.flags, &cli.Int64SliceFlag{
			Name:        e.FlagName,
			Category:    category,
			Usage:       usage,
			Value:       slices.Clone(e.Default.([]int64)),
			Destination: dest,
		})
		fs.bind(e, sliceValue(dest))
	case schema.ListOf(schema.KindFloat):
		dest := new([]float64)
		fs.flags = append(fs.flags, &cli.FloatSliceFlag{
			Name:        e.FlagName,
			Category:    category,
			Usage:       usage,
			Value:       slices.Clone(e.Default.([]float64)),
			Destination: dest,
		})
		fs.bind(e, sliceValue(dest))
	case schema.ListOf(schema.KindString):
		dest := new([]string)
		fs.flags = append(fs.flags, &cli.StringSliceFlag{
			Name:        e.FlagName,
			Category:    category,
			Usage:       usage,
			Value:       slices.Clone(e.Default.([]string)),
			Destination: dest,
		})
		fs.bind(e, sliceValue(dest))
	case schema.ListOf(schema.KindBool):
		// urfave/cli 没有 bool 列表，按字符串接收后校验
		dest := new([]string)
		defaults := e.Default.([]bool)
		text := make([]string, len(defaults))
		for i, b := range defaults {
			text[i] = strconv.FormatBool(b)
		}
		fs.flags = append(fs.flags, &cli.StringSliceFlag{
			Name:        e.FlagName,
			Category:    category,
			Usage:       usage,
			Value:       text,
			Destination: dest,
			Validator: func(values []string) error {
				_, err := parseBools(values)
				return err
			},
		})
		fs.bind(e, func() (any, error) { return parseBools(*dest) })
	}
}

func (fs *flagSet) bind(e *schema.Entry, value func() (any, error)) {
	fs.bindings = append(fs.bindings, binding{entry: e, value: value})
}

func scalarValue[T any](dest *T) func() (any, error) {
	return func() (any, error) { return *dest, nil }
}

func sliceValue[T any](dest *[]T) func() (any, error) {
	return func() (any, error) { return slices.Clone(*dest), nil }
}

func parseBools(values []string) ([]bool, error) {
	out := make([]bool, len(values))
	for i, v := range values {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = b
	}

	return out, nil
}

// command 生成用于解析和渲染帮助的 urfave/cli 命令。
func (fs *flagSet) command(o *options, action cli.ActionFunc) *cli.Command {
	return &cli.Command{
		Name:                      o.name,
		Usage:                     o.usage,
		Flags:                     fs.flags,
		Writer:                    o.writer,
		ErrWriter:                 o.errWriter,
		HideVersion:               true,
		HideHelpCommand:           true,
		DisableSliceFlagSeparator: true,
		OnUsageError: func(_ context.Context, _ *cli.Command, err error, _ bool) error {
			return err
		},
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
		Action:         action,
	}
}

// parse 解析命令行，返回完整的覆盖表 (每个叶子一项) 以及显式设置的目的 key。
func (fs *flagSet) parse(ctx context.Context, o *options, args []string) (schema.Overrides, []string, error) {
	normalized, err := fs.normalize(args)
	if err != nil {
		return nil, nil, usageError(o, err)
	}

	var (
		overrides schema.Overrides
		explicit  []string
	)
	cmd := fs.command(o, func(_ context.Context, cmd *cli.Command) error {
		if cmd.Args().Present() {
			return fmt.Errorf("unexpected arguments: %s", strings.Join(cmd.Args().Slice(), " "))
		}

		out := make(schema.Overrides, len(fs.bindings))
		for _, b := range fs.bindings {
			v, err := b.value()
			if err != nil {
				return fmt.Errorf("flag --%s: %w", b.entry.FlagName, err)
			}
			out[b.entry.Key] = v
			if cmd.IsSet(b.entry.FlagName) {
				explicit = append(explicit, b.entry.Key)
			}
		}
		overrides = out

		return nil
	})

	if err := cmd.Run(ctx, append([]string{o.name}, normalized...)); err != nil {
		return nil, nil, usageError(o, err)
	}
	if overrides == nil {
		return nil, nil, ErrHelp
	}

	return overrides, explicit, nil
}

func usageError(o *options, err error) error {
	_, _ = fmt.Fprintf(o.errWriter, "Incorrect Usage: %s\n\nRun '%s --help' for usage.\n", err, o.name)

	return fmt.Errorf("%w: %w", ErrUsage, err)
}

// normalize 把参数改写为 urfave/cli 能直接识别的形式：
//   - 列表 flag 后的多个值 (--layers 64 32) 展开为重复的 --layers=64 --layers=32
//   - 标量 flag 与其后的值合并为 --name=value，负数值 (--lr -0.5) 不会被当作 flag
//
// 已带 "=" 的 token 与 "--" 之后的参数保持不变。
func (fs *flagSet) normalize(args []string) ([]string, error) {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		tok := args[i]
		if tok == "--" {
			return append(out, args[i:]...), nil
		}

		entry, ok := fs.lookup(tok)
		if !ok {
			out = append(out, tok)

			continue
		}

		switch {
		case entry.Type.IsList():
			n := 0
			for i+1 < len(args) && isValueToken(args[i+1]) {
				i++
				n++
				out = append(out, "--"+entry.FlagName+"="+args[i])
			}
			if n == 0 {
				return nil, fmt.Errorf("flag --%s expects at least one value", entry.FlagName)
			}
		case entry.Type.Kind == schema.KindBool:
			out = append(out, tok)
		default:
			if i+1 == len(args) {
				out = append(out, tok)

				continue
			}
			i++
			out = append(out, "--"+entry.FlagName+"="+args[i])
		}
	}

	return out, nil
}

// lookup 识别 --name 与 -name 形式的 token。
func (fs *flagSet) lookup(tok string) (*schema.Entry, bool) {
	if !strings.HasPrefix(tok, "-") || isNumber(tok) || strings.Contains(tok, "=") {
		return nil, false
	}
	name := strings.TrimPrefix(strings.TrimPrefix(tok, "-"), "-")

	return fs.schema.ByFlag(name)
}

func isValueToken(tok string) bool {
	if tok == "--" {
		return false
	}

	return !strings.HasPrefix(tok, "-") || tok == "-" || isNumber(tok)
}

func isNumber(tok string) bool {
	_, err := strconv.ParseFloat(tok, 64)
	return err == nil
}
