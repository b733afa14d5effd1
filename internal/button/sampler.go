package button

import (
	"time"

	log "github.com/sirupsen/logrus"
)

// Levels reports the raw, undebounced level of the inputs. Active means pressed.
type Levels interface {
	Active(in Input) bool
}

type channel struct {
	stable      bool
	candidate   bool
	since       time.Time
	activeSince time.Time
	faulted     bool
}

// Sampler turns raw levels into debounced events. It never blocks; call Sample once per loop tick.
type Sampler struct {
	levels       Levels
	debounce     time.Duration
	stuckTimeout time.Duration
	channels     [inputCount]channel
}

// NewSampler takes the current levels as the settled state, so an input held during boot does not produce
// a press.
func NewSampler(levels Levels, debounce, stuckTimeout time.Duration, now time.Time) *Sampler {
	s := &Sampler{
		levels:       levels,
		debounce:     debounce,
		stuckTimeout: stuckTimeout,
	}
	for _, in := range Inputs() {
		active := levels.Active(in)
		s.channels[in] = channel{
			stable:      active,
			candidate:   active,
			since:       now,
			activeSince: now,
		}
	}
	return s
}

// Sample returns the events detected since the previous call, in input priority order.
func (s *Sampler) Sample(now time.Time) []Event {
	var events []Event

	for _, in := range Inputs() {
		c := &s.channels[in]

		raw := s.levels.Active(in)
		if raw != c.candidate {
			c.candidate = raw
			c.since = now
		}

		if c.candidate != c.stable && now.Sub(c.since) >= s.debounce {
			c.stable = c.candidate
			if c.stable {
				c.activeSince = c.since
			}

			if c.faulted {
				if !c.stable {
					c.faulted = false
					log.Infof("Input %v returned to idle, accepting edges again", in)
				}
				continue
			}

			if kind, ok := edge(in, c.stable); ok {
				events = append(events, Event{Kind: kind, Input: in, At: now})
			}
		}

		if c.stable && !c.faulted && s.stuckTimeout > 0 && now.Sub(c.activeSince) >= s.stuckTimeout {
			c.faulted = true
			log.WithField("input", in).Warnf("Input held for more than %v, ignoring it until released", s.stuckTimeout)
			events = append(events, Event{Kind: InputFault, Input: in, At: now})
		}
	}

	return events
}
