package main

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/callebjorkell/blaster/internal/button"
	"github.com/callebjorkell/blaster/internal/config"
	"github.com/callebjorkell/blaster/internal/neopixel"
	"github.com/callebjorkell/blaster/internal/prop"
	"github.com/gdamore/tcell/v2"
	log "github.com/sirupsen/logrus"
)

const (
	keyHold     = 300 * time.Millisecond
	redrawEvery = 30 * time.Millisecond
	cellWidth   = 3
)

var simKeys = map[rune]button.Input{
	' ': button.Trigger,
	'r': button.Reload,
	'm': button.Mode,
	'p': button.Power,
}

// simulator draws the strip and the prop status in the terminal and turns key presses into input levels.
type simulator struct {
	screen tcell.Screen
	pins   *button.MockPins
	mem    *neopixel.Memory
	charge time.Duration

	mu      sync.Mutex
	summary prop.Summary
}

func simulate(conf config.Config, logFile string) {
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Fatal("Unable to open the simulator log: ", err)
	}
	defer f.Close()
	log.SetOutput(f)
	log.SetFormatter(&log.TextFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	})

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}
	defer screen.Fini()

	sim := &simulator{
		screen: screen,
		pins:   button.NewMockPins(),
		mem:    neopixel.NewMemory(conf.Pixels),
		charge: conf.ChargeThreshold,
	}
	strip := neopixel.NewStrip(sim.mem, conf.Pixels, conf.Brightness, conf.Order())
	snd := openSound(conf)
	defer snd.Stop()

	l, _ := newLoop(conf, sim.pins, strip, snd, sim.setSummary)

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		if err := l.Run(ctx); err != nil {
			log.Error(err)
		}
	}()
	go func() {
		defer wg.Done()
		sim.redraw(ctx)
	}()

	sim.handleKeys()
	cancel()
	wg.Wait()
}

func (s *simulator) setSummary(summary prop.Summary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summary = summary
}

func (s *simulator) handleKeys() {
	for {
		switch ev := s.screen.PollEvent().(type) {
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
				return
			}
			if ev.Key() != tcell.KeyRune {
				continue
			}
			switch ev.Rune() {
			case 'q':
				return
			case 'c':
				s.hold(button.Trigger, s.charge+keyHold)
			default:
				if in, ok := simKeys[ev.Rune()]; ok {
					s.hold(in, keyHold)
				}
			}
		case *tcell.EventResize:
			s.screen.Sync()
		case nil:
			return
		}
	}
}

// hold keeps in active for d, which must be long enough to pass the debounce filter.
func (s *simulator) hold(in button.Input, d time.Duration) {
	log.Debugf("Key pressed for %v", in)
	s.pins.Set(in, true)
	time.AfterFunc(d, func() {
		s.pins.Set(in, false)
	})
}

func (s *simulator) redraw(ctx context.Context) {
	ticker := time.NewTicker(redrawEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.draw()
		}
	}
}

func (s *simulator) draw() {
	s.screen.Clear()

	for i, c := range s.mem.Rendered() {
		r, g, b := int32(c>>16&0xff), int32(c>>8&0xff), int32(c&0xff)
		style := tcell.StyleDefault.Background(tcell.NewRGBColor(r, g, b))
		for x := 0; x < cellWidth; x++ {
			s.screen.SetContent(1+i*cellWidth+x, 1, ' ', nil, style)
		}
	}

	s.mu.Lock()
	summary := s.summary
	s.mu.Unlock()

	s.print(1, 3, fmt.Sprintf("%-10v ammo %d/%d  theme %s", summary.State, summary.Ammo, summary.MaxAmmo, summary.Theme))
	s.print(1, 5, "space: trigger  c: charged shot  r: reload  m: mode  p: power  q: quit")
	s.screen.Show()
}

func (s *simulator) print(x, y int, msg string) {
	for i, r := range msg {
		s.screen.SetContent(x+i, y, r, nil, tcell.StyleDefault)
	}
}
