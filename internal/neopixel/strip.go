package neopixel

import (
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var (
	ErrBusy      = errors.New("strip is busy")
	ErrFrameSize = errors.New("frame does not match the strip length")
)

const (
	// WS2812 timing: 24 bits at 800kHz per pixel, followed by the reset latch.
	pixelTime = 30 * time.Microsecond
	latchTime = 300 * time.Microsecond
)

// Strip pushes frames to the physical pixels. Push is non-reentrant and refuses frames while the previous one
// is still being shifted out.
type Strip struct {
	drv        Driver
	pixels     int
	brightness uint32
	order      PixelOrder
	guard      Guard
	readyAt    time.Time

	clock func() time.Time
}

func NewStrip(drv Driver, pixels, brightness int, order PixelOrder) *Strip {
	return &Strip{
		drv:        drv,
		pixels:     pixels,
		brightness: uint32(brightness),
		order:      order,
		clock:      time.Now,
	}
}

func (s *Strip) Pixels() int {
	return s.pixels
}

// Push copies f into the driver buffer, applying the brightness cap, and starts the transfer. f is not
// retained after Push returns.
func (s *Strip) Push(f Frame) error {
	release, ok := s.guard.Acquire()
	if !ok {
		return ErrBusy
	}
	defer release()

	if len(f) != s.pixels {
		return errors.Wrapf(ErrFrameSize, "got %d pixels, strip has %d", len(f), s.pixels)
	}

	now := s.clock()
	if now.Before(s.readyAt) {
		return ErrBusy
	}

	leds := s.drv.Leds(0)
	for i, c := range f {
		leds[i] = withBrightness(c.Uint32(), s.brightness)
	}
	if log.IsLevelEnabled(log.TraceLevel) {
		log.Tracef("frame: % x", f.Bytes(s.order))
	}

	if err := s.drv.Render(); err != nil {
		return errors.Wrap(err, "unable to render frame")
	}
	s.readyAt = now.Add(s.refreshTime())
	return nil
}

func (s *Strip) refreshTime() time.Duration {
	return time.Duration(s.pixels)*pixelTime + latchTime
}

// Clear blanks the strip, waiting for any transfer in flight. Only for use outside the main loop.
func (s *Strip) Clear() error {
	release, ok := s.guard.Acquire()
	if !ok {
		return ErrBusy
	}
	defer release()

	if err := s.drv.Wait(); err != nil {
		return err
	}
	leds := s.drv.Leds(0)
	for i := range leds {
		leds[i] = 0
	}
	return s.drv.Render()
}

func (s *Strip) Close() {
	if err := s.Clear(); err != nil {
		log.Warn("Unable to clear strip: ", err)
	}
	s.drv.Fini()
}
