package main

import (
	"sync"
	"testing"
	"time"
)

// stubAudio stands in for *audio.Player. It plays until paused or ended.
type stubAudio struct {
	mu      sync.Mutex
	size    int
	playing bool
	paused  bool
	closed  bool
}

func (a *stubAudio) Play() {
	a.mu.Lock()
	a.playing = true
	a.mu.Unlock()
}

func (a *stubAudio) IsPlaying() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.playing
}

func (a *stubAudio) Pause() {
	a.mu.Lock()
	a.playing, a.paused = false, true
	a.mu.Unlock()
}

func (a *stubAudio) Close() error {
	a.mu.Lock()
	a.playing, a.closed = false, true
	a.mu.Unlock()
	return nil
}

func (a *stubAudio) end() {
	a.mu.Lock()
	a.playing = false
	a.mu.Unlock()
}

func (a *stubAudio) state() (paused, closed bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.paused, a.closed
}

func newStubTonePlayer() (*tonePlayer, *[]*stubAudio) {
	var opened []*stubAudio
	p := &tonePlayer{
		open: func(b []byte) audioPlayer {
			a := &stubAudio{size: len(b)}
			opened = append(opened, a)
			return a
		},
		poll: time.Millisecond,
	}
	return p, &opened
}

func waitClosed(t *testing.T, done <-chan struct{}, what string) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("%s: completion channel not closed", what)
	}
}

func requireOpen(t *testing.T, done <-chan struct{}, what string) {
	t.Helper()
	select {
	case <-done:
		t.Fatalf("%s: completion channel closed early", what)
	case <-time.After(20 * time.Millisecond):
	}
}

func TestTonePlayerEncodesStereo(t *testing.T) {
	p, opened := newStubTonePlayer()
	done := p.Play(make([]float64, 10))
	if len(*opened) != 1 || (*opened)[0].size != 10*4 {
		t.Fatalf("opened = %d players", len(*opened))
	}
	if !(*opened)[0].IsPlaying() {
		t.Fatal("player not started")
	}
	(*opened)[0].end()
	waitClosed(t, done, "finished tone")
	if _, closed := (*opened)[0].state(); !closed {
		t.Fatal("finished player not closed")
	}
}

func TestTonePlayerReplaceClosesPrevious(t *testing.T) {
	p, opened := newStubTonePlayer()
	first := p.Play([]float64{0.1, 0.2})
	second := p.Play([]float64{0.3})

	waitClosed(t, first, "replaced tone")
	if paused, closed := (*opened)[0].state(); !paused || !closed {
		t.Fatalf("replaced player paused=%v closed=%v", paused, closed)
	}
	requireOpen(t, second, "current tone")

	p.Stop()
	waitClosed(t, second, "stopped tone")
	if paused, closed := (*opened)[1].state(); !paused || !closed {
		t.Fatalf("stopped player paused=%v closed=%v", paused, closed)
	}
}

func TestTonePlayerStopIdle(t *testing.T) {
	p, opened := newStubTonePlayer()
	p.Stop()
	if len(*opened) != 0 {
		t.Fatalf("opened = %d, want 0", len(*opened))
	}
}
