// wrcounter serves Wild Rift counter picks over a CLI, an HTTP API and a
// Discord bot, all backed by the same champion roster.
package main

import (
	"runtime"
	"runtime/debug"
)

func init() {
	// Optimize garbage collector for low memory
	// GOGC=50 means GC runs more frequently, using less memory
	debug.SetGCPercent(50)

	// Limit max memory usage (soft limit)
	debug.SetMemoryLimit(64 * 1024 * 1024) // 64MB

	// Use minimal number of OS threads
	runtime.GOMAXPROCS(1)
}

func main() {
	Execute()
}
