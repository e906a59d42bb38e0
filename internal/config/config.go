// Package config 提供 `cfgen init` 写出的示例实验配置。
//
// 示例文档由 DefaultConfig() 生成，key 取 json tag，注释取 desc tag。
// 解析后的配置树可以直接解码回 Config：
//
//	var cfg config.Config
//	err := tree.Decode(&cfg)
package config

import (
	"time"
)

// Config 实验配置。
//
//nolint:tagliatelle
type Config struct {
	Paths    PathsConfig    `json:"PATHS" desc:"数据与模型路径"`
	Training TrainingConfig `json:"TRAINING" desc:"训练参数"`
}

// PathsConfig 路径配置。
//
//nolint:tagliatelle
type PathsConfig struct {
	ModelSavePath string `json:"model_save_path" desc:"模型保存目录"`
	DataPath      string `json:"data_path" desc:"训练数据目录"`
	Epochs        int    `json:"epochs" desc:"训练轮数"`
}

// TrainingConfig 训练配置。
//
//nolint:tagliatelle
type TrainingConfig struct {
	Optimizer          string        `json:"optimizer" desc:"优化器名称"`
	LR                 float64       `json:"lr" desc:"学习率"`
	Momentum           float64       `json:"momentum" desc:"动量"`
	BatchSize          int           `json:"batch_size" desc:"批大小"`
	UseCUDA            bool          `json:"use_cuda" desc:"是否使用 GPU"`
	Layers             []int         `json:"layers" desc:"隐藏层宽度"`
	Dropout            []float64     `json:"dropout" desc:"各层 dropout 比例"`
	Augmentations      []string      `json:"augmentations" desc:"数据增强"`
	CheckpointInterval time.Duration `json:"checkpoint_interval" desc:"checkpoint 间隔"`
}

// DefaultConfig 返回默认配置。
func DefaultConfig() Config {
	return Config{
		Paths: PathsConfig{
			ModelSavePath: "runs/",
			DataPath:      "data/",
			Epochs:        10,
		},
		Training: TrainingConfig{
			Optimizer:          "sgd",
			LR:                 0.01,
			Momentum:           0.9,
			BatchSize:          32,
			UseCUDA:            true,
			Layers:             []int{64, 32},
			Dropout:            []float64{0.5, 0.25},
			Augmentations:      []string{"flip", "crop"},
			CheckpointInterval: 10 * time.Minute,
		},
	}
}
