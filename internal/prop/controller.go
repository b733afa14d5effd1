package prop

import (
	"time"

	"github.com/callebjorkell/blaster/internal/animation"
	"github.com/callebjorkell/blaster/internal/button"
	"github.com/callebjorkell/blaster/internal/neopixel"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// maxChain bounds how many effects may finish within a single frame.
const maxChain = 4

// Sound is the audio output as seen by the controller. None of the calls may block.
type Sound interface {
	Play(id animation.SoundID) error
	Stop()
	IsPlaying() bool
}

// Controller owns the prop status, the active animation and the pending audio command. It is driven by a
// single loop and is not safe for concurrent use.
type Controller struct {
	settings Settings
	engine   *animation.Engine
	sound    Sound

	status Status
	cursor *animation.Cursor
	audio  audioQueue
	blank  neopixel.Frame
}

func New(settings Settings, engine *animation.Engine, snd Sound, now time.Time) *Controller {
	c := &Controller{
		settings: settings,
		engine:   engine,
		sound:    snd,
		status:   Boot(settings, now),
		blank:    neopixel.NewFrame(engine.Pixels()),
	}
	c.apply(Outcome{Effect: animation.Idle, Start: true}, now)

	log.WithFields(log.Fields{
		"ammo":  c.status.Ammo,
		"theme": animation.ThemeAt(c.status.Theme).Name,
	}).Info("Prop ready")
	return c
}

// Handle feeds one input event into the state machine.
func (c *Controller) Handle(ev button.Event, now time.Time) {
	c.expire(now)

	before := c.status.State
	out, err := Step(&c.status, ev, now, c.settings)
	if err != nil {
		log.WithFields(log.Fields{
			"state": before,
			"event": ev.Kind,
		}).Debug("Ignoring event: ", err)
		return
	}

	c.transitioned(before, ev.String())
	c.apply(out, now)
}

// Frame returns the frame of the active effect at now, moving the state machine on when the effect ends.
// The frame is only valid until the next call.
func (c *Controller) Frame(now time.Time) neopixel.Frame {
	c.expire(now)

	for i := 0; i < maxChain; i++ {
		f, err := c.cursor.Next(now)
		switch {
		case err == nil:
			return f
		case errors.Is(err, animation.ErrDone):
			before := c.status.State
			out := Finish(&c.status, now, c.settings)
			c.transitioned(before, c.cursor.Effect().ID.String()+" done")
			c.apply(out, now)
		default:
			log.Error("Restarting effect: ", err)
			c.apply(Outcome{Effect: c.status.Effect, Start: true}, now)
		}
	}

	log.Errorf("No frame after %d effects, blanking", maxChain)
	return c.blank
}

// FlushAudio issues the pending audio command.
func (c *Controller) FlushAudio() {
	c.audio.flush(c.sound, c.settings.RetryLimit)
}

// Status returns a copy of the current status that shares nothing with the controller.
func (c *Controller) Status() Status {
	s := c.status
	if s.QueuedFire != nil {
		at := *s.QueuedFire
		s.QueuedFire = &at
	}
	if s.PendingTheme != nil {
		theme := *s.PendingTheme
		s.PendingTheme = &theme
	}
	if s.TriggerDown != nil {
		at := *s.TriggerDown
		s.TriggerDown = &at
	}
	return s
}

func (c *Controller) Summary() Summary {
	return Summary{
		State:   c.status.State,
		Ammo:    c.status.Ammo,
		MaxAmmo: c.settings.MaxAmmo,
		Theme:   animation.ThemeAt(c.status.Theme).Name,
	}
}

func (c *Controller) expire(now time.Time) {
	before := c.status.State
	if out := Expire(&c.status, now); out.Start {
		c.transitioned(before, "cooldown elapsed")
		c.apply(out, now)
	}
}

func (c *Controller) apply(out Outcome, now time.Time) {
	if !out.Start {
		return
	}

	effect, ok := animation.Lookup(out.Effect)
	if !ok {
		log.Errorf("Unknown effect %v, blanking instead", out.Effect)
		effect, _ = animation.Lookup(animation.Blank)
	}
	c.cursor = c.engine.Start(effect, animation.ThemeAt(c.status.Theme), now)
	c.audio.replace(effect.Sound)
}

func (c *Controller) transitioned(from State, cause string) {
	fields := log.Fields{
		"state":  c.status.State,
		"event":  cause,
		"effect": c.status.Effect,
		"ammo":   c.status.Ammo,
	}
	if from != c.status.State {
		log.WithFields(fields).Infof("%v -> %v", from, c.status.State)
		return
	}
	log.WithFields(fields).Debugf("Staying in %v", from)
}
