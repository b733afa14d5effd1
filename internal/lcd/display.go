package lcd

import (
	"sync"

	log "github.com/sirupsen/logrus"
)

// Screen is the content of both lines.
type Screen struct {
	Top    string
	Bottom string
}

// Display writes screens on its own goroutine, since the LCD protocol sleeps between pulses. Only the most
// recent screen is kept; older ones that were not written yet are discarded.
type Display struct {
	updates chan Screen
	wg      sync.WaitGroup

	printer func(l Line, msg string)
}

func NewDisplay() *Display {
	return newDisplay(Println)
}

func newDisplay(printer func(Line, string)) *Display {
	d := &Display{
		updates: make(chan Screen, 1),
		printer: printer,
	}
	d.wg.Add(1)
	go d.run()
	return d
}

// Show queues s without blocking. It must always be called from the same goroutine.
func (d *Display) Show(s Screen) {
	select {
	case <-d.updates:
		log.Trace("LCD busy, replacing queued screen")
	default:
	}
	select {
	case d.updates <- s:
	default:
	}
}

// Close writes the last queued screen and stops the writer.
func (d *Display) Close() {
	close(d.updates)
	d.wg.Wait()
}

func (d *Display) run() {
	defer d.wg.Done()

	var last Screen
	first := true
	for s := range d.updates {
		if first || s.Top != last.Top {
			d.printer(Line1, s.Top)
		}
		if first || s.Bottom != last.Bottom {
			d.printer(Line2, s.Bottom)
		}
		last = s
		first = false
	}
}
