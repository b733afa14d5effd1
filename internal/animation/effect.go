package animation

import (
	"fmt"
	"time"
)

type EffectID int

const (
	Idle EffectID = iota
	Fire
	DryFire
	Reload
	Overheat
	ModeFlash
	Blank
	Charged
)

func (id EffectID) String() string {
	switch id {
	case Idle:
		return "idle"
	case Fire:
		return "fire"
	case DryFire:
		return "dry-fire"
	case Reload:
		return "reload"
	case Overheat:
		return "overheat"
	case ModeFlash:
		return "mode-flash"
	case Blank:
		return "blank"
	case Charged:
		return "charged"
	}
	return "N/A"
}

// SoundID names a stored sound asset. The empty ID is silence.
type SoundID string

const (
	NoSound       SoundID = ""
	SoundBlast    SoundID = "blast"
	SoundDry      SoundID = "dry"
	SoundReload   SoundID = "reload"
	SoundOverheat SoundID = "overheat"
	SoundMode     SoundID = "mode"
	SoundCharged  SoundID = "charged"
)

// Duration is either a fixed length or "loops until stopped".
type Duration struct {
	length time.Duration
	fixed  bool
}

func Fixed(d time.Duration) Duration {
	return Duration{length: d, fixed: true}
}

func Looping() Duration {
	return Duration{}
}

// Length returns the fixed length, or false for a looping effect.
func (d Duration) Length() (time.Duration, bool) {
	return d.length, d.fixed
}

func (d Duration) String() string {
	if !d.fixed {
		return "looping"
	}
	return d.length.String()
}

type Effect struct {
	ID       EffectID
	Duration Duration
	Sound    SoundID
	// Priority decides whether a cosmetic effect may replace the active one.
	Priority int
}

func (e Effect) String() string {
	return fmt.Sprintf("%v (%v)", e.ID, e.Duration)
}

var catalog = map[EffectID]Effect{
	Idle:      {ID: Idle, Duration: Looping(), Sound: NoSound, Priority: 0},
	ModeFlash: {ID: ModeFlash, Duration: Fixed(300 * time.Millisecond), Sound: SoundMode, Priority: 1},
	DryFire:   {ID: DryFire, Duration: Fixed(150 * time.Millisecond), Sound: SoundDry, Priority: 2},
	Fire:      {ID: Fire, Duration: Fixed(400 * time.Millisecond), Sound: SoundBlast, Priority: 3},
	Charged:   {ID: Charged, Duration: Fixed(700 * time.Millisecond), Sound: SoundCharged, Priority: 3},
	Reload:    {ID: Reload, Duration: Fixed(1500 * time.Millisecond), Sound: SoundReload, Priority: 4},
	Overheat:  {ID: Overheat, Duration: Looping(), Sound: SoundOverheat, Priority: 4},
	Blank:     {ID: Blank, Duration: Looping(), Sound: NoSound, Priority: 5},
}

func Lookup(id EffectID) (Effect, bool) {
	e, ok := catalog[id]
	return e, ok
}

// Sounds lists every sound referenced by the catalog.
func Sounds() []SoundID {
	var out []SoundID
	for _, id := range []EffectID{Idle, Fire, Charged, DryFire, Reload, Overheat, ModeFlash, Blank} {
		if s := catalog[id].Sound; s != NoSound {
			out = append(out, s)
		}
	}
	return out
}
