package main

import (
	"os"

	"github.com/cahrendt0815/alphahandle/cmd/alphahandle/commands"
)

// main is the entry point for the alphahandle CLI.
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
