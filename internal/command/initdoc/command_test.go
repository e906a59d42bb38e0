package initdoc_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251018-go-pkg-cfgen/internal/command"
	"github.com/lwmacct/251018-go-pkg-cfgen/internal/command/initdoc"
	"github.com/lwmacct/251018-go-pkg-cfgen/internal/config"
	"github.com/lwmacct/251018-go-pkg-cfgen/pkg/docio"
)

func run(t *testing.T, args ...string) error {
	t.Helper()

	var stdout, stderr bytes.Buffer
	app := command.NewApp(initdoc.NewCommand())
	app.Writer = &stdout
	app.ErrWriter = &stderr

	return app.Run(context.Background(), append([]string{command.AppName, "init"}, args...))
}

func TestInit_WritesSampleByExtension(t *testing.T) {
	want, err := config.Document()
	require.NoError(t, err)

	for _, name := range []string{"experiment.yaml", "experiment.json", "experiment.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, run(t, path))

			got, err := docio.LoadFile(path)
			require.NoError(t, err)
			assert.True(t, want.Equal(got))
		})
	}
}

func TestInit_YAMLKeepsComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "experiment.yml")
	require.NoError(t, run(t, path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "# 示例实验配置")
}

func TestInit_FormatFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "experiment.conf")
	require.NoError(t, run(t, "--format", "json", path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	doc, err := docio.Decode(docio.JSON, content)
	require.NoError(t, err)
	assert.Equal(t, []string{"PATHS", "TRAINING"}, doc.Keys())

	require.Error(t, run(t, "--force", "--format", "ini", path))
}

func TestInit_RefusesToOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "experiment.yaml")
	require.NoError(t, os.WriteFile(path, []byte("keep: true\n"), 0o600))

	err := run(t, path)
	require.ErrorIs(t, err, initdoc.ErrExists)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "keep: true\n", string(content))

	require.NoError(t, run(t, "--force", path))
	doc, err := docio.LoadFile(path)
	require.NoError(t, err)
	_, ok := doc.Get("keep")
	assert.False(t, ok)
}

func TestInit_Arguments(t *testing.T) {
	require.ErrorIs(t, run(t), command.ErrMissingArgument)

	dir := t.TempDir()
	require.Error(t, run(t, filepath.Join(dir, "a.yaml"), filepath.Join(dir, "b.yaml")))
}
