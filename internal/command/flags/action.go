package flags

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251018-go-pkg-cfgen/internal/command"
	"github.com/lwmacct/251018-go-pkg-cfgen/pkg/schema"
)

// row 一个 flag 的展示信息。
type row struct {
	Flag    string `json:"flag"`
	Key     string `json:"key"`
	Type    string `json:"type"`
	Default any    `json:"default"`
}

func action(_ context.Context, cmd *cli.Command) error {
	pos, rest, err := command.SplitArgs(cmd.Args().Slice(), "doc")
	if err != nil {
		return err
	}
	if len(rest) > 0 {
		return fmt.Errorf("unexpected arguments: %v", rest)
	}

	gen, err := command.Open(cmd, pos[0])
	if err != nil {
		return err
	}

	rows := make([]row, 0, gen.Schema().Len())
	for _, e := range gen.Schema().Entries() {
		rows = append(rows, newRow(e))
	}

	w := cmd.Root().Writer
	switch format := cmd.String("output"); format {
	case FormatText:
		return writeText(w, rows)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(rows)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

func newRow(e *schema.Entry) row {
	name := "--" + e.FlagName
	if e.Type == schema.Scalar(schema.KindBool) {
		name = "--[" + schema.InversePrefix + "]" + e.FlagName
	}

	return row{Flag: name, Key: e.Key, Type: e.Type.String(), Default: e.Default}
}

func writeText(w io.Writer, rows []row) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "FLAG\tKEY\tTYPE\tDEFAULT")
	for _, r := range rows {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Flag, r.Key, r.Type, schema.FormatValue(r.Default))
	}

	return tw.Flush()
}
