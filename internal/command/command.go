// Package command 提供 cfgen 子命令共用的根命令与辅助函数。
package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251018-go-pkg-cfgen/pkg/cfgen"
	"github.com/lwmacct/251018-go-pkg-cfgen/pkg/cfgtree"
)

// AppName 根命令名称。
const AppName = "cfgen"

// ErrMissingArgument 缺少必需的位置参数。
var ErrMissingArgument = errors.New("missing argument")

// NewApp 创建根命令，--debug 打开调试日志。
func NewApp(commands ...*cli.Command) *cli.Command {
	return &cli.Command{
		Name:  AppName,
		Usage: "由配置文档生成类型化配置与命令行参数",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "输出调试日志",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("debug") {
				handler := slog.NewTextHandler(cmd.Root().ErrWriter, &slog.HandlerOptions{Level: slog.LevelDebug})
				slog.SetDefault(slog.New(handler))
			}

			return ctx, nil
		},
		Commands: commands,
	}
}

// Open 加载文档并创建生成器，帮助与用法错误写到根命令的输出流。
func Open(cmd *cli.Command, path string) (*cfgen.Generator, error) {
	root := cmd.Root()

	return cfgen.New(path,
		cfgen.WithName(cmd.FullName()+" "+path),
		cfgen.WithWriter(root.Writer),
		cfgen.WithErrWriter(root.ErrWriter),
		cfgen.WithLogger(slog.Default()),
	)
}

// Parse 解析覆盖参数。请求帮助时返回 nil 树与 nil 错误，帮助信息已输出。
func Parse(ctx context.Context, gen *cfgen.Generator, args []string) (*cfgtree.Group, error) {
	tree, err := gen.Parse(ctx, args)
	if errors.Is(err, cfgen.ErrHelp) {
		return nil, nil
	}

	return tree, err
}

// SplitArgs 取出前 len(names) 个位置参数，其余原样返回。
//
// 示例：
//
//	pos, rest, err := SplitArgs([]string{"a.yaml", "--epochs", "3"}, "doc")
//	// pos = [a.yaml], rest = [--epochs 3]
func SplitArgs(args []string, names ...string) ([]string, []string, error) {
	for i, name := range names {
		if i >= len(args) || args[i] == "" || (strings.HasPrefix(args[i], "-") && args[i] != "-") {
			return nil, nil, fmt.Errorf("%w: <%s>", ErrMissingArgument, name)
		}
	}

	return args[:len(names)], args[len(names):], nil
}

// IsHelp 判断参数是否为帮助 flag。
func IsHelp(arg string) bool {
	switch arg {
	case "-h", "--h", "-help", "--help":
		return true
	default:
		return false
	}
}
