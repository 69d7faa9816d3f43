// Package main provides the entry point for toastq.
//
// toastq shows transient toast notifications in the terminal. Toasts are
// kept in an ordered queue and each one removes itself when its display time
// runs out.
//
// Usage:
//
//	toastq run
//	toastq replay demo.yaml
package main

import (
	"fmt"
	"os"

	"github.com/riordanpawley/toastq/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
