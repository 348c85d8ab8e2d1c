package main

import (
	"github.com/alecthomas/kong"

	"github.com/lepinkainen/filesorter/cmd"
	"github.com/lepinkainen/filesorter/types"
)

var Version = "dev"

type CLI struct {
	Sort    cmd.SortCmd    `cmd:"" default:"withargs" help:"Sort files in a directory into category subfolders"`
	Similar cmd.SimilarCmd `cmd:"" help:"Find perceptually similar images"`
}

func main() {
	var cli CLI
	appCtx := &types.AppContext{Version: Version}
	ctx := kong.Parse(&cli,
		kong.Name("filesorter"),
		kong.Description("Sort files into category subfolders, with duplicate detection by content hash."),
		kong.Bind(appCtx),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
