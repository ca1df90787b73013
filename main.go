package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"forksim/internal/ensemble"
	"forksim/internal/pcm"
	"forksim/internal/tone"
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if *cpuProfileFlag != "" {
		stop, err := startCPUProfile(*cpuProfileFlag)
		if err != nil {
			return err
		}
		defer stop()
	}

	forks := *forksFlag
	if forks < 1 {
		forks = 1
	}
	ens := bootstrapEnsemble(forks)
	for i, r := range ens.Forks() {
		log.Printf("Fork %d: %s, L=%.2f m, H=%.2f m, %s: %.2f Hz", i+1, r.Shape(), r.Length(), r.Height(), r.Material(), r.Frequency())
	}

	mixer, mixerName := selectMixer()
	if closer, ok := mixer.(*openCLMixer); ok {
		defer closer.Close()
	}

	if *exportFlag != "" {
		return exportCombined(ens, mixer, *exportFlag)
	}

	player := newTonePlayer(tone.SampleRate)
	defer player.Stop()
	g := newGame(ens, player, mixer, mixerName)
	if *referenceFlag != "" {
		samples, err := loadReference(*referenceFlag)
		if err != nil {
			log.Printf("Reference disabled: %v", err)
		} else {
			g.reference = samples
			log.Printf("Loaded reference %q (%.2f s, peak %.3f)", *referenceFlag,
				float64(len(samples))/tone.SampleRate, peakLevel(samples))
		}
	}

	scale := *scaleFlag
	if scale <= 0 {
		scale = defaultWindowScale
	}
	ebiten.SetWindowSize(int(screenW*scale), int(screenH*scale))
	ebiten.SetWindowTitle("Tuning Fork Simulator")
	ebiten.SetTPS(ticksPerSecond)
	return ebiten.RunGame(g)
}

// selectMixer returns the OpenCL mixer when requested and available, then
// the worker mixer when more than one worker is configured, and the CPU
// mixer otherwise.
func selectMixer() (ensemble.Mixer, string) {
	if *openCLFlag {
		m, err := newOpenCLMixer()
		if err == nil {
			log.Printf("OpenCL mixer enabled (device: %s)", m.DeviceName())
			return m, "opencl"
		}
		log.Printf("OpenCL mixer unavailable, falling back: %v", err)
	}
	return cpuMixer(*workersFlag)
}

func cpuMixer(workers int) (ensemble.Mixer, string) {
	if workers > 1 {
		log.Printf("Mixing combined tones on %d workers", workers)
		return workerMixer{workers: workers}, fmt.Sprintf("cpu x%d", workers)
	}
	return ensemble.CPUMixer{}, "cpu"
}

// exportCombined writes the averaged tone of ens to path as WAV.
func exportCombined(ens *ensemble.Ensemble, mixer ensemble.Mixer, path string) error {
	samples, err := ens.Mix(mixer, tone.DefaultDuration, tone.SampleRate)
	if err != nil {
		return err
	}
	if err := pcm.SaveWAV(path, samples, tone.SampleRate); err != nil {
		return err
	}
	log.Printf("Wrote %d forks (%d samples, %.1f s) to %s", ens.Len(), len(samples), tone.DefaultDuration, path)
	return nil
}
