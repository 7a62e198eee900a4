// main holds the entry logic for the gitdebt CLI.
package main

import (
	"github.com/gitdebt/gitdebt/cmd"
	"github.com/gitdebt/gitdebt/internal/contract"
	"github.com/gitdebt/gitdebt/internal/iocache"
)

// main wires the global persistence manager into the command layer, runs the
// root command, and tears down stores and profiling before reporting failure.
func main() {
	cmd.SetCacheManager(iocache.Manager)

	err := cmd.Execute()

	// Cleanup runs before the fatal exit below, so it cannot live in a defer.
	iocache.CloseStores()
	if perr := cmd.StopProfiling(); perr != nil {
		contract.LogWarn("Failed to stop profiling", perr)
	}

	if err != nil {
		contract.LogFatal("Command failed", err)
	}
}
