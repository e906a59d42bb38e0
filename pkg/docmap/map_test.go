package docmap_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251018-go-pkg-cfgen/pkg/docmap"
)

func sample() *docmap.Map {
	paths := docmap.New()
	paths.Set("model_save_path", "runs/")
	paths.Set("epochs", int64(10))

	root := docmap.New()
	root.Set("PATHS", paths)
	root.Set("seed", int64(7))

	return root
}

func TestMap_SetKeepsInsertionOrder(t *testing.T) {
	m := docmap.New()
	m.Set("b", int64(1))
	m.Set("a", int64(2))
	m.Set("b", int64(3))

	assert.Equal(t, []string{"b", "a"}, m.Keys())
	v, ok := m.Get("b")
	require.True(t, ok)
	assert.Equal(t, int64(3), v)

	m.Delete("b")
	assert.Equal(t, []string{"a"}, m.Keys())
	m.Delete("missing")
	assert.Equal(t, 1, m.Len())
}

func TestMap_LookupAndSetPath(t *testing.T) {
	m := sample()

	v, ok := m.Lookup("PATHS", "epochs")
	require.True(t, ok)
	assert.Equal(t, int64(10), v)

	_, ok = m.Lookup("PATHS", "missing")
	assert.False(t, ok)
	_, ok = m.Lookup("seed", "deeper")
	assert.False(t, ok)
	_, ok = m.Lookup()
	assert.False(t, ok)

	require.NoError(t, m.SetPath([]string{"TRAINING", "optim", "lr"}, 0.1))
	v, ok = m.Lookup("TRAINING", "optim", "lr")
	require.True(t, ok)
	assert.InDelta(t, 0.1, v, 1e-12)
	assert.Equal(t, []string{"PATHS", "seed", "TRAINING"}, m.Keys())

	err := m.SetPath([]string{"seed", "x"}, true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, docmap.ErrNotMapping))

	require.Error(t, m.SetPath(nil, 1))
}

func TestMap_WalkIsDepthFirst(t *testing.T) {
	var got [][]string
	err := sample().Walk(func(path []string, _ any) error {
		got = append(got, path)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"PATHS", "model_save_path"},
		{"PATHS", "epochs"},
		{"seed"},
	}, got)

	stop := errors.New("stop")
	calls := 0
	err = sample().Walk(func([]string, any) error {
		calls++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}

func TestMap_CloneIsDeep(t *testing.T) {
	m := sample()
	m.Set("layers", []any{int64(1), int64(2)})
	c := m.Clone()
	require.True(t, m.Equal(c))

	require.NoError(t, c.SetPath([]string{"PATHS", "epochs"}, int64(99)))
	layers, _ := c.Get("layers")
	layers.([]any)[0] = int64(42)

	v, _ := m.Lookup("PATHS", "epochs")
	assert.Equal(t, int64(10), v)
	orig, _ := m.Get("layers")
	assert.Equal(t, int64(1), orig.([]any)[0])
	assert.False(t, m.Equal(c))
}

func TestFromMap_NormalizesValues(t *testing.T) {
	m := docmap.FromMap(map[string]any{
		"z":     1,
		"a":     float32(0.5),
		"group": map[string]any{"names": []string{"x", "y"}},
	})

	assert.Equal(t, []string{"a", "group", "z"}, m.Keys())
	z, _ := m.Get("z")
	assert.Equal(t, int64(1), z)
	a, _ := m.Get("a")
	assert.Equal(t, float64(0.5), a)
	names, ok := m.Lookup("group", "names")
	require.True(t, ok)
	assert.Equal(t, []any{"x", "y"}, names)

	assert.Equal(t, map[string]any{
		"z":     int64(1),
		"a":     float64(0.5),
		"group": map[string]any{"names": []any{"x", "y"}},
	}, m.ToMap())
}

func TestMap_EqualRespectsOrder(t *testing.T) {
	a := docmap.New()
	a.Set("x", int64(1))
	a.Set("y", int64(2))
	b := docmap.New()
	b.Set("y", int64(2))
	b.Set("x", int64(1))

	assert.False(t, a.Equal(b))
	assert.True(t, a.Equal(a.Clone()))

	var nilMap *docmap.Map
	assert.False(t, a.Equal(nilMap))
}
