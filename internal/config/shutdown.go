package config

import (
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
)

var isShouldShutdown atomic.Bool

// StartListeningForShutdownSignal flips a process-wide flag on SIGINT/SIGTERM.
// Background workers poll it between iterations so they stop cleanly without
// needing their own signal handling.
func StartListeningForShutdownSignal() {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-signals
		isShouldShutdown.Store(true)
	}()
}

func IsShouldShutdown() bool {
	return isShouldShutdown.Load()
}
