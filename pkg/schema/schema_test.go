package schema_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251018-go-pkg-cfgen/pkg/docmap"
	"github.com/lwmacct/251018-go-pkg-cfgen/pkg/schema"
)

func group(kv ...any) *docmap.Map {
	m := docmap.New()
	for i := 0; i+1 < len(kv); i += 2 {
		m.Set(kv[i].(string), kv[i+1])
	}

	return m
}

func TestBuild_InfersTypesInDocumentOrder(t *testing.T) {
	doc := group(
		"PATHS", group(
			"model_save_path", "runs/",
			"epochs", int64(10),
		),
		"TRAINING", group(
			"lr", 0.01,
			"use_cuda", true,
			"layers", []any{int64(64), int64(32)},
			"weights", []any{0.5, int64(1)},
			"tags", []any{"a"},
			"masks", []any{true, false},
		),
	)

	s, err := schema.Build(doc)
	require.NoError(t, err)

	type row struct {
		key, flag string
		typ       schema.Type
		def       any
	}
	var got []row
	for _, e := range s.Entries() {
		got = append(got, row{e.Key, e.FlagName, e.Type, e.Default})
	}

	assert.Equal(t, []row{
		{"PATHS.model_save_path", "model-save-path", schema.Scalar(schema.KindString), "runs/"},
		{"PATHS.epochs", "epochs", schema.Scalar(schema.KindInt), int64(10)},
		{"TRAINING.lr", "lr", schema.Scalar(schema.KindFloat), 0.01},
		{"TRAINING.use_cuda", "use-cuda", schema.Scalar(schema.KindBool), true},
		{"TRAINING.layers", "layers", schema.ListOf(schema.KindInt), []int64{64, 32}},
		{"TRAINING.weights", "weights", schema.ListOf(schema.KindFloat), []float64{0.5, 1}},
		{"TRAINING.tags", "tags", schema.ListOf(schema.KindString), []string{"a"}},
		{"TRAINING.masks", "masks", schema.ListOf(schema.KindBool), []bool{true, false}},
	}, got)
	assert.Equal(t, 8, s.Len())

	e, ok := s.ByFlag("use-cuda")
	require.True(t, ok)
	assert.Equal(t, "TRAINING", e.Category())
	_, ok = s.Entry("PATHS.epochs")
	assert.True(t, ok)
}

func TestBuild_TemplateMirrorsDocument(t *testing.T) {
	doc := group(
		"seed", int64(1),
		"outer", group("inner", group("x", "y")),
	)

	s, err := schema.Build(doc)
	require.NoError(t, err)

	root := s.Root()
	require.Len(t, root.Children, 2)
	seed, ok := root.Children[0].(*schema.Entry)
	require.True(t, ok)
	assert.Equal(t, "seed", seed.Key)
	assert.Equal(t, "", seed.Category())

	outer, ok := root.Children[1].(*schema.Group)
	require.True(t, ok)
	assert.Equal(t, []string{"outer"}, outer.Path)
	inner := outer.Children[0].(*schema.Group)
	assert.Equal(t, []string{"outer", "inner"}, inner.Path)
	assert.Equal(t, "outer.inner.x", inner.Children[0].(*schema.Entry).Key)
}

func TestBuild_EmptyListFails(t *testing.T) {
	doc := group(
		"ok", int64(1),
		"TRAINING", group("layers", []any{}),
	)

	s, err := schema.Build(doc)
	require.Error(t, err)
	assert.Nil(t, s, "no partial schema on failure")

	var inference *schema.InferenceError
	require.True(t, errors.As(err, &inference))
	assert.Equal(t, []string{"TRAINING", "layers"}, inference.Path)
	assert.True(t, errors.Is(err, schema.ErrSchemaInference))
	assert.Contains(t, err.Error(), "TRAINING.layers")
}

func TestBuild_RejectsUninferableValues(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{"null", nil},
		{"mixed list", []any{int64(1), "two"}},
		{"nested list", []any{[]any{int64(1)}}},
		{"map in list", []any{group("a", int64(1))}},
		{"float then int ok but string fails", []any{1.5, int64(2), "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := schema.Build(group("v", tt.value))
			assert.True(t, errors.Is(err, schema.ErrSchemaInference), "err = %v", err)
		})
	}
}

func TestBuild_QualifiesCollidingFlagNames(t *testing.T) {
	doc := group(
		"train", group("lr", 0.1, "batch_size", int64(32)),
		"eval", group("lr", 0.2),
		"meta", group("help", "see README"),
	)

	s, err := schema.Build(doc)
	require.NoError(t, err)

	var flags []string
	for _, e := range s.Entries() {
		flags = append(flags, e.FlagName)
	}
	assert.Equal(t, []string{"train-lr", "batch-size", "eval-lr", "meta-help"}, flags)

	trainLR, ok := s.ByFlag("train-lr")
	require.True(t, ok)
	assert.Equal(t, "train.lr", trainLR.Key)
}

func TestBuild_UnresolvableConflict(t *testing.T) {
	doc := group(
		"x", group("lr", 0.1),
		"y", group("lr", 0.2),
		"x_lr", 0.3,
	)

	_, err := schema.Build(doc)
	assert.True(t, errors.Is(err, schema.ErrFlagConflict))

	_, err = schema.Build(group("help", true))
	assert.True(t, errors.Is(err, schema.ErrFlagConflict), "root-level reserved names cannot be qualified")

	_, err = schema.Build(group("cache", true, "no_cache", "x"))
	assert.True(t, errors.Is(err, schema.ErrFlagConflict), "--no-cache belongs to the bool leaf")
}

func TestDefaults_FullyPopulated(t *testing.T) {
	s, err := schema.Build(group("a", int64(1), "g", group("b", "x")))
	require.NoError(t, err)

	assert.Equal(t, schema.Overrides{"a": int64(1), "g.b": "x"}, s.Defaults())
}

func TestConvertAndToDocument(t *testing.T) {
	v, err := schema.Convert(schema.ListOf(schema.KindFloat), []any{int64(1), 2.5})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2.5}, v)
	assert.Equal(t, []any{1.0, 2.5}, schema.ToDocument(v))

	v, err = schema.Convert(schema.ListOf(schema.KindString), []string{"a"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, v)

	_, err = schema.Convert(schema.Scalar(schema.KindInt), "10")
	assert.True(t, errors.Is(err, schema.ErrValueType))

	assert.Equal(t, "x", schema.ToDocument("x"))
}

func TestTypeAndFormatValue(t *testing.T) {
	assert.Equal(t, "list[int]", schema.ListOf(schema.KindInt).String())
	assert.Equal(t, "bool", schema.Scalar(schema.KindBool).String())
	assert.Equal(t, "invalid", schema.Kind(99).String())

	assert.Equal(t, "[1, 2]", schema.FormatValue([]int64{1, 2}))
	assert.Equal(t, "0.5", schema.FormatValue(0.5))
	assert.Equal(t, "true", schema.FormatValue(true))
	assert.Equal(t, "[a, b]", schema.FormatValue([]any{"a", "b"}))
}

func TestFlagName(t *testing.T) {
	assert.Equal(t, "model-save-path", schema.FlagName("model_save_path"))
	assert.Equal(t, "epochs", schema.FlagName("epochs"))
}
