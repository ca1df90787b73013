package main

import (
	"fmt"
	"log"
	"os"
	"runtime/pprof"
)

// startCPUProfile records a CPU profile to path until the returned function
// is called.
func startCPUProfile(path string) (func(), error) {
	out, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating profile: %w", err)
	}
	if err := pprof.StartCPUProfile(out); err != nil {
		out.Close()
		return nil, fmt.Errorf("starting CPU profile: %w", err)
	}
	log.Printf("Recording CPU profile to %s", path)
	return func() {
		pprof.StopCPUProfile()
		if err := out.Close(); err != nil {
			log.Printf("Closing profile %s: %v", path, err)
		}
	}, nil
}
