package main

import (
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/typedoc-postbuild/cmd/typedoc-postbuild/commands"
	"git.home.luguber.info/inful/typedoc-postbuild/internal/foundation/errors"
	"git.home.luguber.info/inful/typedoc-postbuild/internal/version"
)

func main() {
	cli := &commands.CLI{}
	global := &commands.Global{Out: os.Stdout}

	parser := kong.Parse(cli,
		kong.Name("typedoc-postbuild"),
		kong.Description("Restructure typedoc markdown output for a docs site sidebar."),
		kong.UsageOnError(),
		kong.Bind(global),
		kong.Vars{"version": version.String()},
	)

	err := parser.Run(cli)
	if err != nil {
		adapter := errors.NewCLIErrorAdapter(cli.Verbose, global.Logger)
		adapter.HandleError(err)
	}
}
