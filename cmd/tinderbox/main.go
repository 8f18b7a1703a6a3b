package main

import (
	"os"

	"github.com/tinderbox-cli/tinderbox/internal/commands"
)

func main() {
	if err := commands.RootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
