package main

import (
	"github.com/alecthomas/kong"
)

type CLI struct {
	Version VersionCmd `cmd:"" help:"Print version information."`
	Convert ConvertCmd `cmd:"" help:"Convert an ExtendScript API XML file to a TypeScript declaration file."`
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("esdtsgen"),
		kong.Description("ExtendScript API XML to TypeScript declaration converter."),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
