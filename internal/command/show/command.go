// Package show 提供解析覆盖参数并打印配置树的 show 命令。
package show

import "github.com/urfave/cli/v3"

// Command show 命令
var Command = NewCommand()

// NewCommand 创建 show 命令。
//
// 文档之后的参数全部交给由文档生成的 flag 解析，例如：
//
//	cfgen show experiment.yaml --epochs 25 --no-use-cuda
//	cfgen show experiment.yaml --help
func NewCommand() *cli.Command {
	return &cli.Command{
		Name:            "show",
		Usage:           "打印合并命令行参数后的配置",
		ArgsUsage:       "<doc> [overrides...]",
		SkipFlagParsing: true,
		Action:          action,
	}
}
