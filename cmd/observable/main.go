package main

import (
	"fmt"
	"os"

	"github.com/observekit/observable/cmd/observable/commands"
)

func main() {
	if err := commands.NewCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
