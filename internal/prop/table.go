package prop

import (
	"time"

	"github.com/callebjorkell/blaster/internal/animation"
	"github.com/callebjorkell/blaster/internal/button"
	"github.com/pkg/errors"
)

// ErrIllegalTransition is returned by Step for an event the current state does not accept. The status is
// left untouched.
var ErrIllegalTransition = errors.New("illegal transition")

// Outcome tells the caller which effect to start, if any. Starting an effect always supersedes the active
// one, including its sound.
type Outcome struct {
	Effect animation.EffectID
	Start  bool
}

type handler func(s *Status, ev button.Event, now time.Time, settings Settings) Outcome

var table = map[State]map[button.Kind]handler{
	Idle: {
		button.TriggerPressed:  fire,
		button.TriggerReleased: release,
		button.ReloadPressed:   reload,
		button.ModePressed:     cycleTheme,
		button.PowerToggled:    powerOff,
		button.InputFault:      fault,
	},
	Firing: {
		button.TriggerPressed:  queueFire,
		button.TriggerReleased: release,
		button.ReloadPressed:   reload,
		button.ModePressed:     latchTheme,
		button.PowerToggled:    powerOff,
		button.InputFault:      fault,
	},
	Reloading: {
		button.TriggerReleased: ignore,
		button.ModePressed:     latchTheme,
		button.PowerToggled:    powerOff,
		button.InputFault:      fault,
	},
	Overheated: {
		button.TriggerReleased: release,
		button.ModePressed:     latchTheme,
		button.PowerToggled:    powerOff,
		button.InputFault:      fault,
	},
	PoweredOff: {
		button.PowerToggled: powerOn,
		button.InputFault:   fault,
	},
}

// Accepts reports whether state has a transition for kind.
func Accepts(state State, kind button.Kind) bool {
	_, ok := table[state][kind]
	return ok
}

// Step applies ev to s.
func Step(s *Status, ev button.Event, now time.Time, settings Settings) (Outcome, error) {
	h, ok := table[s.State][ev.Kind]
	if !ok {
		return Outcome{}, errors.Wrapf(ErrIllegalTransition, "%v in %v", ev.Kind, s.State)
	}
	return h(s, ev, now, settings), nil
}

// Finish applies the end of the active effect. Only effects with a fixed duration finish.
func Finish(s *Status, now time.Time, settings Settings) Outcome {
	switch s.State {
	case Firing:
		if s.BurstAmmo > settings.OverheatThreshold && s.Ammo <= settings.OverheatThreshold {
			s.State = Overheated
			s.OverheatUntil = now.Add(settings.OverheatCooldown)
			s.QueuedFire = nil
			s.TriggerDown = nil
			return s.start(animation.Overheat, now)
		}
		if s.QueuedFire != nil {
			at := *s.QueuedFire
			s.QueuedFire = nil
			return fire(s, button.Event{Kind: button.TriggerPressed, Input: button.Trigger, At: at}, now, settings)
		}
		return enterIdle(s, now)
	case Reloading:
		s.Ammo = settings.MaxAmmo
		return enterIdle(s, now)
	case Idle:
		return s.start(animation.Idle, now)
	}
	return Outcome{}
}

// Expire leaves Overheated once the cooldown deadline has passed.
func Expire(s *Status, now time.Time) Outcome {
	if s.State != Overheated || s.Overheated(now) {
		return Outcome{}
	}
	s.OverheatUntil = time.Time{}
	return enterIdle(s, now)
}

func (s *Status) start(id animation.EffectID, now time.Time) Outcome {
	s.Effect = id
	s.EffectStart = now
	return Outcome{Effect: id, Start: true}
}

func enterIdle(s *Status, now time.Time) Outcome {
	s.State = Idle
	s.BurstAmmo = 0
	s.QueuedFire = nil
	if s.PendingTheme != nil {
		s.Theme = *s.PendingTheme
		s.PendingTheme = nil
	}
	return s.start(animation.Idle, now)
}

func fire(s *Status, ev button.Event, now time.Time, _ Settings) Outcome {
	s.TriggerDown = nil
	if s.Ammo <= 0 || s.Overheated(now) {
		if s.State != Idle {
			return enterDryFire(s, now)
		}
		return s.start(animation.DryFire, now)
	}

	if s.State != Firing {
		s.BurstAmmo = s.Ammo
	}
	s.Ammo--
	s.State = Firing
	down := eventTime(ev, now)
	s.TriggerDown = &down
	return s.start(animation.Fire, now)
}

// release fires a charged blast when the trigger was held for long enough after a shot. The blast costs
// no ammo and is part of the same burst.
func release(s *Status, ev button.Event, now time.Time, settings Settings) Outcome {
	down := s.TriggerDown
	s.TriggerDown = nil
	if down == nil || s.State == Overheated || settings.ChargeThreshold <= 0 {
		return Outcome{}
	}
	if eventTime(ev, now).Sub(*down) < settings.ChargeThreshold {
		return Outcome{}
	}

	s.State = Firing
	return s.start(animation.Charged, now)
}

// eventTime is when ev was sampled, or now for events without a timestamp.
func eventTime(ev button.Event, now time.Time) time.Time {
	if ev.At.IsZero() {
		return now
	}
	return ev.At
}

// enterDryFire ends a burst on an empty magazine.
func enterDryFire(s *Status, now time.Time) Outcome {
	enterIdle(s, now)
	return s.start(animation.DryFire, now)
}

func queueFire(s *Status, ev button.Event, _ time.Time, _ Settings) Outcome {
	at := ev.At
	s.QueuedFire = &at
	return Outcome{}
}

func reload(s *Status, _ button.Event, now time.Time, _ Settings) Outcome {
	s.State = Reloading
	s.QueuedFire = nil
	s.TriggerDown = nil
	s.BurstAmmo = 0
	return s.start(animation.Reload, now)
}

func cycleTheme(s *Status, _ button.Event, now time.Time, _ Settings) Outcome {
	s.Theme = (s.Theme + 1) % animation.NumThemes()

	flash, _ := animation.Lookup(animation.ModeFlash)
	active, _ := animation.Lookup(s.Effect)
	if active.Priority > flash.Priority {
		return Outcome{}
	}
	return s.start(animation.ModeFlash, now)
}

func latchTheme(s *Status, _ button.Event, _ time.Time, _ Settings) Outcome {
	next := s.Theme
	if s.PendingTheme != nil {
		next = *s.PendingTheme
	}
	next = (next + 1) % animation.NumThemes()
	s.PendingTheme = &next
	return Outcome{}
}

func powerOff(s *Status, _ button.Event, now time.Time, _ Settings) Outcome {
	s.State = PoweredOff
	s.QueuedFire = nil
	s.TriggerDown = nil
	s.PendingTheme = nil
	s.OverheatUntil = time.Time{}
	return s.start(animation.Blank, now)
}

func powerOn(s *Status, _ button.Event, now time.Time, settings Settings) Outcome {
	theme := s.Theme
	*s = Boot(settings, now)
	s.Theme = theme
	return s.start(animation.Idle, now)
}

// fault drops a queued shot or a charge that came from the faulted input.
func fault(s *Status, ev button.Event, _ time.Time, _ Settings) Outcome {
	if ev.Input == button.Trigger {
		s.QueuedFire = nil
		s.TriggerDown = nil
	}
	return Outcome{}
}

func ignore(*Status, button.Event, time.Time, Settings) Outcome {
	return Outcome{}
}
