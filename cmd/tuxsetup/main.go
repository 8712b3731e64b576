package main

import (
	"os"

	"github.com/sebastianaldrin/tux-agent/internal/cli"
)

var version = "dev"

func main() {
	os.Exit(cli.Run(os.Args, version))
}
