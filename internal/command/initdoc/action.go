package initdoc

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251018-go-pkg-cfgen/internal/command"
	"github.com/lwmacct/251018-go-pkg-cfgen/internal/config"
	"github.com/lwmacct/251018-go-pkg-cfgen/pkg/docio"
)

// ErrExists 目标文件已存在且未指定 --force。
var ErrExists = errors.New("file already exists")

func action(_ context.Context, cmd *cli.Command) error {
	switch {
	case cmd.NArg() == 0:
		return fmt.Errorf("%w: <out>", command.ErrMissingArgument)
	case cmd.NArg() > 1:
		return fmt.Errorf("unexpected arguments: %v", cmd.Args().Tail())
	}
	out := cmd.Args().First()

	format := docio.FormatFromPath(out)
	if name := cmd.String("format"); name != "" {
		var err error
		if format, err = docio.ParseFormat(name); err != nil {
			return err
		}
	}

	if !cmd.Bool("force") {
		_, err := os.Stat(out)
		if err == nil {
			return fmt.Errorf("%w: %s (use --force to overwrite)", ErrExists, out)
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	content, err := config.Sample(format)
	if err != nil {
		return fmt.Errorf("render sample: %w", err)
	}
	if err := docio.WriteFile(out, content); err != nil {
		return err
	}

	slog.Info("Wrote sample document", "path", out, "format", format)

	return nil
}
