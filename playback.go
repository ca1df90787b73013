package main

import (
	"log"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"forksim/internal/pcm"
)

// tonePlayback starts a tone and returns immediately. The returned channel
// is closed once the tone has finished or was replaced.
type tonePlayback interface {
	Play(samples []float64) <-chan struct{}
	Stop()
}

// audioPlayer is the part of *audio.Player the tone player drives.
type audioPlayer interface {
	Play()
	IsPlaying() bool
	Pause()
	Close() error
}

// tonePlayer plays float sample buffers through an ebiten audio context.
// Starting a new tone stops the one in flight.
type tonePlayer struct {
	open func(pcmBytes []byte) audioPlayer
	poll time.Duration

	mu      sync.Mutex
	current audioPlayer
}

func newTonePlayer(sampleRate int) *tonePlayer {
	ctx := audio.NewContext(sampleRate)
	return &tonePlayer{
		open: func(b []byte) audioPlayer { return ctx.NewPlayerFromBytes(b) },
		poll: playbackPoll,
	}
}

func (p *tonePlayer) Play(samples []float64) <-chan struct{} {
	done := make(chan struct{})
	player := p.open(pcm.EncodeStereo(samples))

	p.mu.Lock()
	p.stopLocked()
	p.current = player
	p.mu.Unlock()

	player.Play()
	go p.watch(player, done)
	return done
}

// watch closes done once player stops, whether it ran out or was stopped.
func (p *tonePlayer) watch(player audioPlayer, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(p.poll)
	defer ticker.Stop()
	for range ticker.C {
		if !player.IsPlaying() {
			break
		}
	}
	p.mu.Lock()
	if p.current == player {
		p.current = nil
		if err := player.Close(); err != nil {
			log.Printf("Closing audio player: %v", err)
		}
	}
	p.mu.Unlock()
}

func (p *tonePlayer) Stop() {
	p.mu.Lock()
	p.stopLocked()
	p.mu.Unlock()
}

func (p *tonePlayer) stopLocked() {
	if p.current == nil {
		return
	}
	p.current.Pause()
	if err := p.current.Close(); err != nil {
		log.Printf("Closing audio player: %v", err)
	}
	p.current = nil
}
