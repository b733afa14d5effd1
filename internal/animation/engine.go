package animation

import (
	"time"

	"github.com/callebjorkell/blaster/internal/neopixel"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var (
	// ErrDone is returned exactly once, by the first Next after the effect's duration has passed.
	ErrDone = errors.New("animation done")
	// ErrCursorFinished is returned by every Next after ErrDone.
	ErrCursorFinished = errors.New("animation cursor already finished")
)

type Engine struct {
	pixels int
}

func NewEngine(pixels int) *Engine {
	return &Engine{pixels: pixels}
}

func (e *Engine) Pixels() int {
	return e.pixels
}

// Start begins effect at now. Frames are produced from the time elapsed since now, not from the number of
// frames requested.
func (e *Engine) Start(effect Effect, theme Theme, now time.Time) *Cursor {
	log.WithFields(log.Fields{
		"effect": effect.ID,
		"theme":  theme.Name,
	}).Debug("Starting effect")

	return &Cursor{
		effect: effect,
		theme:  theme,
		start:  now,
		frame:  neopixel.NewFrame(e.pixels),
	}
}

// Cursor is the progress of one started effect.
type Cursor struct {
	effect Effect
	theme  Theme
	start  time.Time
	frame  neopixel.Frame
	done   bool
}

func (c *Cursor) Effect() Effect {
	return c.effect
}

func (c *Cursor) Started() time.Time {
	return c.start
}

// Done reports whether the cursor has returned ErrDone.
func (c *Cursor) Done() bool {
	return c.done
}

// Next renders the frame for now. The returned frame is owned by the cursor and only valid until the next
// call.
func (c *Cursor) Next(now time.Time) (neopixel.Frame, error) {
	if c.done {
		return nil, ErrCursorFinished
	}

	t := now.Sub(c.start)
	if t < 0 {
		t = 0
	}

	length, fixed := c.effect.Duration.Length()
	if fixed && t > length {
		c.done = true
		return nil, ErrDone
	}

	paint(c.effect.ID, c.frame, t, progress(t, length, fixed), c.theme)
	return c.frame, nil
}

func progress(t, length time.Duration, fixed bool) float64 {
	if !fixed || length <= 0 {
		return 0
	}
	p := float64(t) / float64(length)
	if p > 1 {
		return 1
	}
	return p
}
