package main

import (
	"fmt"
	"os"

	"billable-timer/internal/cli"
)

func main() {
	root := cli.NewRootCommand(os.Stdin, os.Stdout)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
