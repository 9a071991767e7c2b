// file: main.go
// version: 2.0.0
// guid: 2b3c4d5e-6f7a-4b8c-9d0e-1f2a3b4c5d6e

package main

import (
	"fmt"
	"os"

	"github.com/musiclib-tools/album-cleaner/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
