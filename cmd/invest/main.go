package main

import (
	"os"

	"github.com/tumkwe/invest/cmd/invest/commands"
)

// main is the entry point for the invest CLI.
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
