package loop

import (
	"context"
	"time"

	"github.com/callebjorkell/blaster/internal/button"
	"github.com/callebjorkell/blaster/internal/neopixel"
	"github.com/callebjorkell/blaster/internal/prop"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Sampler interface {
	Sample(now time.Time) []button.Event
}

type Controller interface {
	Handle(ev button.Event, now time.Time)
	Frame(now time.Time) neopixel.Frame
	FlushAudio()
	Summary() prop.Summary
}

type Strip interface {
	Push(f neopixel.Frame) error
}

type Options struct {
	Tick time.Duration
	// RetryLimit is how many ticks in a row the strip may refuse frames before it is reported.
	RetryLimit int
	// OnChange is called from the loop whenever the summary of the prop changes, and once at start.
	OnChange func(prop.Summary)
}

// Loop runs sample, transition, render and audio in a single goroutine. Nothing in a tick blocks.
type Loop struct {
	sampler Sampler
	ctrl    Controller
	strip   Strip
	opts    Options

	busy    int
	dropped int
	summary *prop.Summary

	clock func() time.Time
}

func New(sampler Sampler, ctrl Controller, strip Strip, opts Options) *Loop {
	return &Loop{
		sampler: sampler,
		ctrl:    ctrl,
		strip:   strip,
		opts:    opts,
		clock:   time.Now,
	}
}

// Tick runs one iteration of the loop at now.
func (l *Loop) Tick(now time.Time) {
	for _, ev := range l.sampler.Sample(now) {
		log.WithField("event", ev).Trace("Input")
		l.ctrl.Handle(ev, now)
	}

	l.push(l.ctrl.Frame(now))
	l.ctrl.FlushAudio()
	l.notify()
}

// Run ticks until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	log.Infof("Starting main loop, ticking every %v", l.opts.Tick)

	ticker := time.NewTicker(l.opts.Tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("Main loop stopped")
			return nil
		case <-ticker.C:
			began := l.clock()
			l.Tick(began)
			if took := l.clock().Sub(began); took > l.opts.Tick {
				log.Warnf("Tick took %v, longer than the %v budget", took, l.opts.Tick)
			}
		}
	}
}

// Dropped is the number of frames given up on after the strip stayed busy.
func (l *Loop) Dropped() int {
	return l.dropped
}

func (l *Loop) push(f neopixel.Frame) {
	err := l.strip.Push(f)
	switch {
	case err == nil:
		l.busy = 0
	case errors.Is(err, neopixel.ErrBusy):
		l.busy++
		if l.busy > l.opts.RetryLimit {
			l.dropped++
			log.Errorf("Strip busy for %d ticks, dropped a frame", l.busy)
			l.busy = 0
		}
	default:
		l.dropped++
		log.Error("Unable to push frame: ", err)
	}
}

func (l *Loop) notify() {
	if l.opts.OnChange == nil {
		return
	}
	s := l.ctrl.Summary()
	if l.summary != nil && *l.summary == s {
		return
	}
	l.summary = &s
	l.opts.OnChange(s)
}
