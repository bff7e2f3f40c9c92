// issues is the CLI for issues-lite, a markdown file issue tracker.
package main

import (
	"fmt"
	"os"

	"issues-lite/internal/cmd"
)

var (
	run    = func() error { return cmd.Execute() }
	osExit = os.Exit
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		osExit(1)
	}
}
