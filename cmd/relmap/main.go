// Command relmap compiles CUE table definitions with clause-based CHECK
// constraints and renders them as SQL DDL.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/relmap/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
