package util

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// SetupInterruptHandler removes the given scratch paths and exits when the
// process is interrupted. The returned func stops listening.
func SetupInterruptHandler(paths ...string) func() {
	sig := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-sig:
		case <-done:
			return
		}

		fmt.Fprintln(os.Stderr, "\nInterrupt received. Cleaning up...")
		RemovePaths(paths...)
		os.Exit(1)
	}()

	return func() {
		signal.Stop(sig)
		close(done)
	}
}

func RemovePaths(paths ...string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := os.RemoveAll(p); err != nil {
			fmt.Fprintf(os.Stderr, "Error cleaning up %s: %v\n", p, err)
		}
	}
}
