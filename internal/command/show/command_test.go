package show_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251018-go-pkg-cfgen/internal/command"
	"github.com/lwmacct/251018-go-pkg-cfgen/internal/command/show"
	"github.com/lwmacct/251018-go-pkg-cfgen/pkg/cfgen"
)

const doc = `PATHS:
  model_save_path: runs/
  epochs: 10
TRAINING:
  use_cuda: true
  layers: [64, 32]
`

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	app := command.NewApp(show.NewCommand())
	app.Writer = &stdout
	app.ErrWriter = &stderr

	err := app.Run(context.Background(), append([]string{command.AppName, "show"}, args...))

	return stdout.String(), stderr.String(), err
}

func writeDoc(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "experiment.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	return path
}

func TestShow(t *testing.T) {
	path := writeDoc(t)

	stdout, _, err := run(t, path, "--epochs", "25", "--no-use-cuda", "--layers", "8", "4", "2")
	require.NoError(t, err)
	assert.Equal(t, `Config(PATHS=PATHS(model_save_path="runs/", epochs=25), TRAINING=TRAINING(use_cuda=false, layers=[8, 4, 2]))
PATHS.model_save_path = runs/
PATHS.epochs = 25
TRAINING.use_cuda = false
TRAINING.layers = [8, 4, 2]
`, stdout)

	// show 不修改源文档
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, doc, string(content))
}

func TestShow_Defaults(t *testing.T) {
	stdout, _, err := run(t, writeDoc(t))
	require.NoError(t, err)
	assert.Contains(t, stdout, "PATHS.epochs = 10\n")
	assert.Contains(t, stdout, "TRAINING.use_cuda = true\n")
}

func TestShow_Help(t *testing.T) {
	stdout, _, err := run(t, writeDoc(t), "--help")
	require.NoError(t, err)
	assert.Contains(t, stdout, "--[no-]use-cuda")
	assert.Contains(t, stdout, "PATHS.epochs (int) (default: 10)")
	assert.NotContains(t, stdout, "Config(")

	stdout, _, err = run(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, stdout, "<doc> [overrides...]")
}

func TestShow_UsageError(t *testing.T) {
	path := writeDoc(t)

	stdout, stderr, err := run(t, path, "--epochs", "many")
	require.ErrorIs(t, err, cfgen.ErrUsage)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Incorrect Usage")
	assert.Contains(t, stderr, "show "+path+" --help")
}

func TestShow_MissingDocument(t *testing.T) {
	_, _, err := run(t)
	require.ErrorIs(t, err, command.ErrMissingArgument)

	_, _, err = run(t, "--epochs", "3")
	require.ErrorIs(t, err, command.ErrMissingArgument)
}
