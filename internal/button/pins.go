package button

import "sync"

// MockPins are levels set in software, for the simulator and for machines without GPIO.
type MockPins struct {
	mu     sync.Mutex
	active [inputCount]bool
}

func NewMockPins() *MockPins {
	return &MockPins{}
}

func (m *MockPins) Set(in Input, active bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.active[in] = active
}

func (m *MockPins) Active(in Input) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.active[in]
}
