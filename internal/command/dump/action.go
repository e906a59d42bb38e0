package dump

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251018-go-pkg-cfgen/internal/command"
	"github.com/lwmacct/251018-go-pkg-cfgen/pkg/docio"
)

// Stdout 表示写到标准输出的目标。
const Stdout = "-"

func action(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) > 0 && command.IsHelp(args[0]) {
		return cli.ShowSubcommandHelp(cmd)
	}

	pos, overrides, err := command.SplitArgs(args, "doc", "out")
	if err != nil {
		return err
	}
	doc, out := pos[0], pos[1]

	gen, err := command.Open(cmd, doc)
	if err != nil {
		return err
	}
	tree, err := command.Parse(ctx, gen, overrides)
	if err != nil || tree == nil {
		return err
	}

	if out == Stdout {
		return gen.DumpTo(cmd.Root().Writer, docio.FormatFromPath(doc))
	}
	if err := gen.Dump(out); err != nil {
		return err
	}

	slog.Info("Dumped config", "source", doc, "path", out)

	return nil
}
