package flags_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251018-go-pkg-cfgen/internal/command"
	"github.com/lwmacct/251018-go-pkg-cfgen/internal/command/flags"
	"github.com/lwmacct/251018-go-pkg-cfgen/pkg/schema"
)

const doc = `PATHS:
  epochs: 10
TRAINING:
  use_cuda: true
  layers: [64, 32]
EVAL:
  epochs: 1
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	app := command.NewApp(flags.NewCommand())
	app.Writer = &stdout
	app.ErrWriter = &stderr

	err := app.Run(context.Background(), append([]string{command.AppName, "flags"}, args...))

	return stdout.String(), err
}

func writeDoc(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "experiment.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestFlags_Text(t *testing.T) {
	out, err := run(t, writeDoc(t, doc))
	require.NoError(t, err)

	var rows [][]string
	for line := range strings.SplitSeq(strings.TrimSpace(out), "\n") {
		rows = append(rows, strings.Fields(line))
	}
	assert.Equal(t, [][]string{
		{"FLAG", "KEY", "TYPE", "DEFAULT"},
		{"--PATHS-epochs", "PATHS.epochs", "int", "10"},
		{"--[no-]use-cuda", "TRAINING.use_cuda", "bool", "true"},
		{"--layers", "TRAINING.layers", "list[int]", "[64,", "32]"},
		{"--EVAL-epochs", "EVAL.epochs", "int", "1"},
	}, rows)
}

func TestFlags_JSON(t *testing.T) {
	out, err := run(t, "--output", flags.FormatJSON, writeDoc(t, doc))
	require.NoError(t, err)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 4)
	assert.Equal(t, "--[no-]use-cuda", rows[1]["flag"])
	assert.Equal(t, "TRAINING.layers", rows[2]["key"])
	assert.Equal(t, []any{float64(64), float64(32)}, rows[2]["default"])
}

func TestFlags_Errors(t *testing.T) {
	_, err := run(t)
	require.ErrorIs(t, err, command.ErrMissingArgument)

	_, err = run(t, "--output", "xml", writeDoc(t, doc))
	require.Error(t, err)

	var inference *schema.InferenceError
	_, err = run(t, writeDoc(t, "TRAINING:\n  layers: []\n"))
	require.ErrorAs(t, err, &inference)
}
