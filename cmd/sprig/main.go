// Package main is the entry point for the sprig CLI.
//
// Usage:
//
//	sprig [flags] <command> [args]
//
// Commands:
//
//	generate   - Print every generation of a preset's grammar
//	draw       - Run a drawing pass and write the command stream
//	runs       - List, show and delete archived runs
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
