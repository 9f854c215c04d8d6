package main

import (
	"os"

	"forelegg/cmd/forelegg/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
