// Command swrldrl translates SWRL rule bodies into Drools DRL.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/swrldrl/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		// Subcommands silence cobra's own error printing.
		fmt.Fprintf(os.Stderr, "swrldrl: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
