package button

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const (
	debounce = 20 * time.Millisecond
	stuck    = time.Second
)

var start = time.Unix(1000, 0)

func at(ms int) time.Time {
	return start.Add(time.Duration(ms) * time.Millisecond)
}

func kinds(events []Event) []Kind {
	var out []Kind
	for _, e := range events {
		out = append(out, e.Kind)
	}
	return out
}

func TestPressAfterStableHold(t *testing.T) {
	pins := NewMockPins()
	s := NewSampler(pins, debounce, stuck, start)

	pins.Set(Trigger, true)
	assert.Empty(t, s.Sample(at(0)))
	assert.Empty(t, s.Sample(at(10)))

	events := s.Sample(at(20))
	assert.Equal(t, []Kind{TriggerPressed}, kinds(events))
	assert.Equal(t, Trigger, events[0].Input)
	assert.Equal(t, at(20), events[0].At)

	assert.Empty(t, s.Sample(at(30)))

	pins.Set(Trigger, false)
	assert.Empty(t, s.Sample(at(40)))
	assert.Equal(t, []Kind{TriggerReleased}, kinds(s.Sample(at(60))))
}

func TestBounceWithinWindow(t *testing.T) {
	pins := NewMockPins()
	s := NewSampler(pins, debounce, stuck, start)

	for ms := 0; ms < 100; ms += 5 {
		pins.Set(Mode, (ms/5)%2 == 0)
		assert.Empty(t, s.Sample(at(ms)), "bounce at %dms produced an event", ms)
	}

	pins.Set(Mode, true)
	s.Sample(at(100))
	assert.Equal(t, []Kind{ModePressed}, kinds(s.Sample(at(125))))
}

func TestOnlyPressesForButtons(t *testing.T) {
	pins := NewMockPins()
	s := NewSampler(pins, debounce, stuck, start)

	pins.Set(Reload, true)
	s.Sample(at(0))
	assert.Equal(t, []Kind{ReloadPressed}, kinds(s.Sample(at(20))))

	pins.Set(Reload, false)
	s.Sample(at(30))
	assert.Empty(t, s.Sample(at(60)))
}

func TestSimultaneousInPriorityOrder(t *testing.T) {
	pins := NewMockPins()
	s := NewSampler(pins, debounce, stuck, start)

	pins.Set(Mode, true)
	pins.Set(Trigger, true)
	pins.Set(Reload, true)
	pins.Set(Power, true)
	s.Sample(at(0))

	events := s.Sample(at(20))
	assert.Equal(t, []Kind{PowerToggled, ReloadPressed, TriggerPressed, ModePressed}, kinds(events))
}

func TestHeldAtBoot(t *testing.T) {
	pins := NewMockPins()
	pins.Set(Trigger, true)
	s := NewSampler(pins, debounce, stuck, start)

	assert.Empty(t, s.Sample(at(50)))

	pins.Set(Trigger, false)
	s.Sample(at(60))
	assert.Equal(t, []Kind{TriggerReleased}, kinds(s.Sample(at(80))))
}

func TestStuckInput(t *testing.T) {
	pins := NewMockPins()
	s := NewSampler(pins, debounce, stuck, start)

	pins.Set(Trigger, true)
	s.Sample(at(0))
	assert.Equal(t, []Kind{TriggerPressed}, kinds(s.Sample(at(20))))
	assert.Empty(t, s.Sample(at(500)))

	events := s.Sample(at(1000))
	assert.Equal(t, []Kind{InputFault}, kinds(events))
	assert.Equal(t, Trigger, events[0].Input)

	// Reported once, not repeated.
	assert.Empty(t, s.Sample(at(3000)))

	// Chatter while stuck produces nothing, including the release edge.
	pins.Set(Trigger, false)
	s.Sample(at(3010))
	pins.Set(Trigger, true)
	s.Sample(at(3015))
	assert.Empty(t, s.Sample(at(3100)))
	pins.Set(Trigger, false)
	s.Sample(at(3110))
	assert.Empty(t, s.Sample(at(3200)))

	// Back at idle level, edges are accepted again.
	pins.Set(Trigger, true)
	s.Sample(at(3300))
	assert.Equal(t, []Kind{TriggerPressed}, kinds(s.Sample(at(3320))))
}

func TestStuckDoesNotAffectOtherInputs(t *testing.T) {
	pins := NewMockPins()
	s := NewSampler(pins, debounce, stuck, start)

	pins.Set(Trigger, true)
	s.Sample(at(0))
	s.Sample(at(20))
	assert.Equal(t, []Kind{InputFault}, kinds(s.Sample(at(1000))))

	pins.Set(Reload, true)
	s.Sample(at(1010))
	assert.Equal(t, []Kind{ReloadPressed}, kinds(s.Sample(at(1030))))
}

func TestEventString(t *testing.T) {
	assert.Equal(t, "TriggerPressed (trigger)", Event{Kind: TriggerPressed, Input: Trigger}.String())
	assert.Equal(t, "Input mode is stuck", Event{Kind: InputFault, Input: Mode}.String())
}
