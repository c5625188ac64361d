// Command hammerplot turns rowhammer attack logs into interactive 2-D
// histogram plots: one row/column error map per attack, or one
// aggregate aggressor-vs-victim bit-flip map for a whole log.
package main

import (
	"fmt"
	"os"

	"github.com/dramsec/hammerplot/config"
)

func main() {
	cfg, err := config.Parse()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		os.Exit(1)
	}

	if err := newRootCmd(cfg).Execute(); err != nil {
		os.Exit(1)
	}
}
