package led

import (
	"slices"
	"sync"

	"github.com/jmylchreest/ledstripd/internal/config"
)

// Frame is one pushed state of the strip.
type Frame struct {
	Pixels     []Color
	Brightness uint8
}

// Output returns the pixels as they would be lit, with brightness applied.
func (f Frame) Output() []Color {
	out := make([]Color, len(f.Pixels))
	for i, p := range f.Pixels {
		out[i] = Scale(p, f.Brightness)
	}
	return out
}

// Memory is a Device that records pushed frames instead of driving hardware.
// It is safe for concurrent use.
type Memory struct {
	mu         sync.Mutex
	staged     []Color
	brightness uint8
	last       Frame
	shows      int
	showErr    error
}

// NewMemory creates an in-memory strip of count pixels.
func NewMemory(count int) *Memory {
	return &Memory{
		staged:     make([]Color, count),
		brightness: config.MaxChannel,
	}
}

func (m *Memory) Fill(c Color) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.staged {
		m.staged[i] = c
	}
}

func (m *Memory) SetBrightness(b uint8) {
	m.mu.Lock()
	m.brightness = b
	m.mu.Unlock()
}

// Show copies the staged pixels into the last frame.
func (m *Memory) Show() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shows++
	if m.showErr != nil {
		return m.showErr
	}
	m.last = Frame{Pixels: slices.Clone(m.staged), Brightness: m.brightness}
	return nil
}

func (m *Memory) Len() int { return len(m.staged) }

func (m *Memory) Name() string { return config.DriverMemory }

func (m *Memory) Close() error { return nil }

// Last returns the most recently pushed frame.
func (m *Memory) Last() Frame {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Frame{Pixels: slices.Clone(m.last.Pixels), Brightness: m.last.Brightness}
}

// Shows returns how many times Show has been called.
func (m *Memory) Shows() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.shows
}

// FailShows makes every following Show return err. A nil err restores normal behaviour.
func (m *Memory) FailShows(err error) {
	m.mu.Lock()
	m.showErr = err
	m.mu.Unlock()
}
