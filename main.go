package main

import (
	"fmt"
	"os"

	"github.com/rocketscienceinc/playground-backend/internal/cli"
)

// main - is the entry point of the application. Commands load the config and
// logger themselves, see internal/cli.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
