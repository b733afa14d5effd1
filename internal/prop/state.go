package prop

import (
	"fmt"
	"time"

	"github.com/callebjorkell/blaster/internal/animation"
	"github.com/callebjorkell/blaster/internal/config"
)

type State int

const (
	Idle State = iota
	Firing
	Reloading
	Overheated
	PoweredOff
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Firing:
		return "Firing"
	case Reloading:
		return "Reloading"
	case Overheated:
		return "Overheated"
	case PoweredOff:
		return "PoweredOff"
	}
	return "N/A"
}

func States() []State {
	return []State{Idle, Firing, Reloading, Overheated, PoweredOff}
}

// Settings are the parts of the configuration the state machine depends on.
type Settings struct {
	MaxAmmo           int
	OverheatThreshold int
	OverheatCooldown  time.Duration
	RetryLimit        int
	ChargeThreshold   time.Duration
}

func NewSettings(c config.Config) Settings {
	return Settings{
		MaxAmmo:           c.MaxAmmo,
		OverheatThreshold: c.Overheat.Threshold,
		OverheatCooldown:  c.Overheat.Cooldown,
		RetryLimit:        c.RetryLimit,
		ChargeThreshold:   c.ChargeThreshold,
	}
}

// Status is the complete mutable state of the prop. Only Step, Finish and Expire change it.
type Status struct {
	State State
	Ammo  int
	// Theme indexes animation.ThemeAt.
	Theme int

	Effect      animation.EffectID
	EffectStart time.Time

	OverheatUntil time.Time
	// BurstAmmo is the ammo count when the current burst of shots started from Idle.
	BurstAmmo int

	// QueuedFire holds the latest trigger press seen while Firing.
	QueuedFire *time.Time
	// PendingTheme is the theme to switch to at the next Idle entry.
	PendingTheme *int
	// TriggerDown is when the trigger was pressed for the last shot, while it is still held.
	TriggerDown *time.Time
}

// Boot is the status at power on.
func Boot(settings Settings, now time.Time) Status {
	return Status{
		State:       Idle,
		Ammo:        settings.MaxAmmo,
		Effect:      animation.Idle,
		EffectStart: now,
	}
}

// Overheated is derived from the cooldown deadline, so it turns false on its own.
func (s Status) Overheated(now time.Time) bool {
	return now.Before(s.OverheatUntil)
}

func (s Status) String() string {
	return fmt.Sprintf("%v ammo=%d theme=%s effect=%v", s.State, s.Ammo, animation.ThemeAt(s.Theme).Name, s.Effect)
}

// Summary is what status displays show.
type Summary struct {
	State   State
	Ammo    int
	MaxAmmo int
	Theme   string
}
