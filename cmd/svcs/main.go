package main

import (
	"fmt"
	"os"

	"github.com/keshon/svcs/internal/command"
)

func main() {
	root, err := command.NewRootCommand(os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
