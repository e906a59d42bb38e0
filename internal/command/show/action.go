package show

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251018-go-pkg-cfgen/internal/command"
	"github.com/lwmacct/251018-go-pkg-cfgen/pkg/schema"
)

func action(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) > 0 && command.IsHelp(args[0]) {
		return cli.ShowSubcommandHelp(cmd)
	}

	pos, overrides, err := command.SplitArgs(args, "doc")
	if err != nil {
		return err
	}

	gen, err := command.Open(cmd, pos[0])
	if err != nil {
		return err
	}
	tree, err := command.Parse(ctx, gen, overrides)
	if err != nil || tree == nil {
		return err
	}

	w := cmd.Root().Writer
	_, _ = fmt.Fprintln(w, tree)
	for _, leaf := range tree.Leaves() {
		_, _ = fmt.Fprintf(w, "%s = %s\n", strings.Join(leaf.Path(), schema.KeySeparator), schema.FormatValue(leaf.Value()))
	}

	return nil
}
