// If you are AI: This tool enforces the repository style rules on all Go source files.
// Rules: at most 300 lines per file, an AI header on every non-test file, a doc comment on every function.

package main

import (
	"fmt"
	"os"
)

// main checks the tree rooted at the given directory and exits non-zero on violations.
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <directory>\n", os.Args[0])
		os.Exit(1)
	}

	failures, err := Check(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error walking directory: %v\n", err)
		os.Exit(1)
	}

	if len(failures) > 0 {
		fmt.Fprintf(os.Stderr, "Style violations:\n")
		for _, f := range failures {
			fmt.Fprintf(os.Stderr, "  %s\n", f)
		}
		os.Exit(1)
	}
}
