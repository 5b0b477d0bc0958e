// main is the entry point of the racechart CLI.
package main

import (
	"github.com/huangsam/racechart/cmd"
	"github.com/huangsam/racechart/internal/contract"
	"github.com/huangsam/racechart/internal/iocache"
)

func main() {
	cmd.SetCacheManager(iocache.Manager)

	err := cmd.Execute()
	iocache.CloseCaching()
	if perr := cmd.StopProfiling(); perr != nil {
		contract.LogWarn("Failed to stop profiling", perr)
	}
	if err != nil {
		contract.LogFatal("racechart failed", err)
	}
}
