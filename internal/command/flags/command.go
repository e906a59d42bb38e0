// Package flags 提供列出文档推断出的 flag 的 flags 命令。
package flags

import "github.com/urfave/cli/v3"

// 输出格式
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Command flags 命令
var Command = NewCommand()

// NewCommand 创建 flags 命令。
func NewCommand() *cli.Command {
	return &cli.Command{
		Name:      "flags",
		Usage:     "列出由文档推断出的命令行参数",
		ArgsUsage: "<doc>",
		Action:    action,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Value:   FormatText,
				Usage:   "输出格式 (text, json)",
			},
		},
	}
}
