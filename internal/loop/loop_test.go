package loop

import (
	"context"
	"testing"
	"time"

	"github.com/callebjorkell/blaster/internal/animation"
	"github.com/callebjorkell/blaster/internal/button"
	"github.com/callebjorkell/blaster/internal/neopixel"
	"github.com/callebjorkell/blaster/internal/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pixels = 6

var (
	start    = time.Unix(1000, 0)
	settings = prop.Settings{
		MaxAmmo:           3,
		OverheatThreshold: 0,
		OverheatCooldown:  time.Second,
		RetryLimit:        2,
	}
)

type fakeStrip struct {
	frames []neopixel.Frame
	busy   int
	err    error
}

func (s *fakeStrip) Push(f neopixel.Frame) error {
	if s.busy > 0 {
		s.busy--
		return neopixel.ErrBusy
	}
	if s.err != nil {
		return s.err
	}
	s.frames = append(s.frames, append(neopixel.Frame(nil), f...))
	return nil
}

type fakeSound struct {
	played []animation.SoundID
	on     bool
}

func (f *fakeSound) Play(id animation.SoundID) error {
	f.played = append(f.played, id)
	f.on = true
	return nil
}

func (f *fakeSound) Stop() {
	f.on = false
}

func (f *fakeSound) IsPlaying() bool {
	return f.on
}

type rig struct {
	pins    *button.MockPins
	strip   *fakeStrip
	sound   *fakeSound
	ctrl    *prop.Controller
	loop    *Loop
	changes []prop.Summary
	now     time.Time
}

func newRig() *rig {
	r := &rig{
		pins:  button.NewMockPins(),
		strip: &fakeStrip{},
		sound: &fakeSound{},
		now:   start,
	}
	sampler := button.NewSampler(r.pins, 20*time.Millisecond, 5*time.Second, start)
	r.ctrl = prop.New(settings, animation.NewEngine(pixels), r.sound, start)
	r.loop = New(sampler, r.ctrl, r.strip, Options{
		Tick:       10 * time.Millisecond,
		RetryLimit: 2,
		OnChange: func(s prop.Summary) {
			r.changes = append(r.changes, s)
		},
	})
	return r
}

func (r *rig) advance(d time.Duration) {
	end := r.now.Add(d)
	for r.now.Before(end) {
		r.now = r.now.Add(10 * time.Millisecond)
		r.loop.Tick(r.now)
	}
}

// press holds in down long enough to be debounced, then lets go.
func (r *rig) press(in button.Input) {
	r.pins.Set(in, true)
	r.advance(50 * time.Millisecond)
	r.pins.Set(in, false)
	r.advance(50 * time.Millisecond)
}

func TestEveryTickPushesAFrame(t *testing.T) {
	r := newRig()
	r.advance(100 * time.Millisecond)

	require.Len(t, r.strip.frames, 10)
	for _, f := range r.strip.frames {
		assert.Len(t, f, pixels)
	}
	assert.Equal(t, []prop.Summary{{State: prop.Idle, Ammo: 3, MaxAmmo: 3, Theme: "ice"}}, r.changes)
}

func TestFireThroughTheLoop(t *testing.T) {
	r := newRig()

	r.press(button.Trigger)
	assert.Equal(t, prop.Firing, r.ctrl.Status().State)
	assert.Equal(t, 2, r.ctrl.Status().Ammo)
	assert.Equal(t, []animation.SoundID{animation.SoundBlast}, r.sound.played)

	r.advance(time.Second)
	assert.Equal(t, prop.Idle, r.ctrl.Status().State)
	assert.False(t, r.sound.on)

	assert.Equal(t, []prop.Summary{
		{State: prop.Idle, Ammo: 3, MaxAmmo: 3, Theme: "ice"},
		{State: prop.Firing, Ammo: 2, MaxAmmo: 3, Theme: "ice"},
		{State: prop.Idle, Ammo: 2, MaxAmmo: 3, Theme: "ice"},
	}, r.changes)
}

func TestEmptyMagazineOverheatsAndRecovers(t *testing.T) {
	r := newRig()
	for i := 0; i < 3; i++ {
		r.press(button.Trigger)
		r.advance(500 * time.Millisecond)
	}
	assert.Equal(t, prop.Overheated, r.ctrl.Status().State)
	assert.Equal(t, 0, r.ctrl.Status().Ammo)

	r.press(button.Trigger)
	assert.Equal(t, prop.Overheated, r.ctrl.Status().State)

	r.advance(time.Second)
	assert.Equal(t, prop.Idle, r.ctrl.Status().State)

	r.press(button.Trigger)
	assert.Equal(t, animation.DryFire, r.ctrl.Status().Effect)
	assert.Equal(t, 0, r.ctrl.Status().Ammo)

	r.press(button.Reload)
	r.advance(2 * time.Second)
	assert.Equal(t, prop.Idle, r.ctrl.Status().State)
	assert.Equal(t, 3, r.ctrl.Status().Ammo)
}

func TestReloadBeatsTriggerInTheSameTick(t *testing.T) {
	r := newRig()

	r.pins.Set(button.Trigger, true)
	r.pins.Set(button.Reload, true)
	r.advance(50 * time.Millisecond)

	s := r.ctrl.Status()
	assert.Equal(t, prop.Reloading, s.State)
	assert.Equal(t, 3, s.Ammo)
}

func TestStuckTriggerDoesNotRunAway(t *testing.T) {
	r := newRig()

	r.pins.Set(button.Trigger, true)
	r.advance(10 * time.Second)

	assert.Equal(t, 2, r.ctrl.Status().Ammo, "one shot, then the input is ignored")

	r.press(button.Reload)
	assert.Equal(t, prop.Reloading, r.ctrl.Status().State, "other inputs still work")
}

func TestBusyStripDropsAfterRetries(t *testing.T) {
	r := newRig()
	r.strip.busy = 2
	r.advance(30 * time.Millisecond)
	assert.Zero(t, r.loop.Dropped())
	assert.Len(t, r.strip.frames, 1)

	r.strip.busy = 3
	r.advance(40 * time.Millisecond)
	assert.Equal(t, 1, r.loop.Dropped())
	assert.Len(t, r.strip.frames, 2)
}

func TestPushErrorKeepsRunning(t *testing.T) {
	r := newRig()
	r.strip.err = neopixel.ErrFrameSize
	r.advance(30 * time.Millisecond)
	assert.Equal(t, 3, r.loop.Dropped())

	r.strip.err = nil
	r.press(button.Trigger)
	assert.Equal(t, prop.Firing, r.ctrl.Status().State)
}

func TestRunStopsOnCancel(t *testing.T) {
	r := newRig()
	r.loop.opts.Tick = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() {
		done <- r.loop.Run(ctx)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("loop did not stop")
	}
	assert.NotEmpty(t, r.strip.frames)
}
