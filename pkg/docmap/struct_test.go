package docmap_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251018-go-pkg-cfgen/pkg/docmap"
)

func TestFromStruct(t *testing.T) {
	type paths struct {
		ModelSavePath string `json:"model_save_path"`
		Epochs        int    `json:"epochs,omitempty"`
	}
	type training struct {
		LR       float32       `json:"lr"`
		Layers   []int         `json:"layers"`
		Interval time.Duration `json:"interval"`
		Ignored  string        `json:"-"`
		NoTag    string
		Optional *paths `json:"optional"`
	}
	type config struct {
		Paths    paths     `json:"PATHS"`
		Training *training `json:"TRAINING"`
	}

	m, err := docmap.FromStruct(config{
		Paths: paths{ModelSavePath: "runs/", Epochs: 10},
		Training: &training{
			LR:       0.5,
			Layers:   []int{64, 32},
			Interval: 90 * time.Second,
			Ignored:  "x",
			NoTag:    "y",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"PATHS", "TRAINING"}, m.Keys())
	group, ok := m.Get("TRAINING")
	require.True(t, ok)
	assert.Equal(t, []string{"lr", "layers", "interval"}, group.(*docmap.Map).Keys())

	assert.Equal(t, map[string]any{
		"PATHS": map[string]any{"model_save_path": "runs/", "epochs": int64(10)},
		"TRAINING": map[string]any{
			"lr":       float64(0.5),
			"layers":   []any{int64(64), int64(32)},
			"interval": "1m30s",
		},
	}, m.ToMap())
}

func TestFromStruct_RejectsNonStruct(t *testing.T) {
	_, err := docmap.FromStruct(map[string]any{"a": 1})
	assert.ErrorIs(t, err, docmap.ErrNotStruct)

	var p *struct{}
	_, err = docmap.FromStruct(p)
	assert.ErrorIs(t, err, docmap.ErrNotStruct)
}
