package main

import (
	"context"
	"fmt"
	"os"

	"github.com/lwmacct/251018-go-pkg-cfgen/internal/command"
	"github.com/lwmacct/251018-go-pkg-cfgen/internal/command/dump"
	"github.com/lwmacct/251018-go-pkg-cfgen/internal/command/flags"
	"github.com/lwmacct/251018-go-pkg-cfgen/internal/command/initdoc"
	"github.com/lwmacct/251018-go-pkg-cfgen/internal/command/show"
)

func main() {
	app := command.NewApp(
		initdoc.Command,
		flags.Command,
		show.Command,
		dump.Command,
	)

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
