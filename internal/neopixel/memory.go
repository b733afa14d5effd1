package neopixel

import (
	"sync"

	log "github.com/sirupsen/logrus"
)

// Memory is a Driver without hardware. Rendered frames are kept for inspection by the simulator and tests.
type Memory struct {
	mu       sync.Mutex
	leds     []uint32
	rendered []uint32
	renders  int

	// OnRender, when set, is called at the end of every Render.
	OnRender func()
}

func NewMemory(pixels int) *Memory {
	return &Memory{
		leds:     make([]uint32, pixels),
		rendered: make([]uint32, pixels),
	}
}

func (m *Memory) Init() error {
	return nil
}

func (m *Memory) Render() error {
	m.mu.Lock()
	copy(m.rendered, m.leds)
	m.renders++
	m.mu.Unlock()

	log.Tracef("neopixel: render %#v", m.leds)
	if m.OnRender != nil {
		m.OnRender()
	}
	return nil
}

func (m *Memory) Wait() error {
	return nil
}

func (m *Memory) Fini() {
	log.Debug("neopixel: fini")
}

func (m *Memory) Leds(_ int) []uint32 {
	return m.leds
}

// Rendered returns a copy of the colors of the last rendered frame.
func (m *Memory) Rendered() []uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]uint32, len(m.rendered))
	copy(out, m.rendered)
	return out
}

func (m *Memory) Renders() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.renders
}
