// Command citizenctl inspects and maintains a deployment's stored data from
// the shell: per-device statistics and resets, term imports, lookups and
// analysis cache upkeep.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
