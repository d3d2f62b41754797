package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/mdblocks/cmd/mdblocks/commands"
	"git.home.luguber.info/inful/mdblocks/internal/foundation/errors"
	"git.home.luguber.info/inful/mdblocks/internal/version"
)

func main() {
	cli := &commands.CLI{}
	ctx := kong.Parse(cli,
		kong.Name("mdblocks"),
		kong.Description("Render Markdown with custom ::: blocks dispatched to generators."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	if err := ctx.Run(cli); err != nil {
		errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
