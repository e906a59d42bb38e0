// Package dump 提供把合并后的配置写回文档的 dump 命令。
package dump

import "github.com/urfave/cli/v3"

// Command dump 命令
var Command = NewCommand()

// NewCommand 创建 dump 命令。out 为 "-" 时按源文档格式写到标准输出。
func NewCommand() *cli.Command {
	return &cli.Command{
		Name:            "dump",
		Usage:           "合并命令行参数后写出配置文档",
		ArgsUsage:       "<doc> <out|-> [overrides...]",
		SkipFlagParsing: true,
		Action:          action,
	}
}
