package cfgen

import (
	"io"
	"log/slog"
	"os"
)

// options 生成器选项。
type options struct {
	name      string // 命令名称，显示在帮助信息中
	usage     string // 命令说明
	writer    io.Writer
	errWriter io.Writer
	logger    *slog.Logger
}

// Option 生成器选项函数。
type Option func(*options)

func defaultOptions() *options {
	return &options{
		name:      "cfgen",
		usage:     "Process args for experiments",
		writer:    os.Stdout,
		errWriter: os.Stderr,
		logger:    slog.Default(),
	}
}

// WithName 设置帮助信息中的命令名称，默认为 "cfgen"。
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithUsage 设置帮助信息中的命令说明。
func WithUsage(usage string) Option {
	return func(o *options) {
		o.usage = usage
	}
}

// WithWriter 设置 --help 输出的目标，默认为 os.Stdout。
func WithWriter(w io.Writer) Option {
	return func(o *options) {
		o.writer = w
	}
}

// WithErrWriter 设置命令行用法错误的输出目标，默认为 os.Stderr。
func WithErrWriter(w io.Writer) Option {
	return func(o *options) {
		o.errWriter = w
	}
}

// WithLogger 设置日志记录器，默认为 slog.Default()。
//
// 生成器只输出 Debug 级别的结构化日志：
//
//	gen, err := cfgen.New("config.yaml",
//	    cfgen.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, nil))),
//	)
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
