package main

import (
	"fmt"
	"strings"
)

// clPlatformNotFound is CL_PLATFORM_NOT_FOUND_KHR, reported when the ICD
// loader finds no vendor driver.
const clPlatformNotFound = "-1001"

// openCLError wraps an OpenCL failure with the operation that hit it. A
// missing driver gets an install hint.
func openCLError(op string, err error) error {
	if strings.Contains(err.Error(), clPlatformNotFound) {
		return fmt.Errorf("%s: %w (no OpenCL driver found; install one and check `clinfo`)", op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
