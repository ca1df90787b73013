package main

import "flag"

// Command-line flags that control optional rendering, audio, and startup
// behavior.
var (
	// debugFlag enables the FPS and mixer overlay.
	debugFlag = flag.Bool("debug", false, "show FPS and mixer overlay")

	// openCLFlag requests the OpenCL mixer for combined playback.
	openCLFlag = flag.Bool("opencl", false, "mix combined tones on an OpenCL device (requires -tags opencl)")

	// referenceFlag loads a WAV recording that can be played next to the model.
	referenceFlag = flag.String("reference", "", "WAV recording of a real fork to compare against")

	// exportFlag renders the combined startup tone to a WAV file and exits.
	exportFlag = flag.String("export-wav", "", "write the combined tone of the startup forks to this WAV file and exit")

	// forksFlag sets how many forks exist at startup.
	forksFlag = flag.Int("forks", 1, "number of forks at startup (extra forks use the default parameters)")

	// workersFlag spreads combined-tone mixing over this many goroutines.
	workersFlag = flag.Int("workers", 1, "goroutines used to mix combined tones on the CPU")

	cpuProfileFlag = flag.String("cpuprofile", "", "write a CPU profile to this file while running")

	// scaleFlag multiplies the window size.
	scaleFlag = flag.Float64("scale", defaultWindowScale, "window scale factor")
)
