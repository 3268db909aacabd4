package main

import (
	"fmt"
	"os"

	"rosepine/internal/config"
	"rosepine/internal/debug"
)

func main() {
	if err := config.Initialize(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
		os.Exit(1)
	}

	cmd := newRootCmd(os.Stdout, os.Stderr)
	err := cmd.Execute()
	debug.Close()
	if err != nil {
		os.Exit(1)
	}
}
