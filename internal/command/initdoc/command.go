// Package initdoc 提供写出示例配置文档的 init 命令。
package initdoc

import "github.com/urfave/cli/v3"

// Command init 命令
var Command = NewCommand()

// NewCommand 创建 init 命令。
func NewCommand() *cli.Command {
	return &cli.Command{
		Name:      "init",
		Usage:     "写出示例实验配置文档",
		ArgsUsage: "<out>",
		Action:    action,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "force",
				Aliases: []string{"f"},
				Usage:   "覆盖已存在的文件",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "文档格式 (yaml, json, toml)，默认按扩展名判断",
			},
		},
	}
}
