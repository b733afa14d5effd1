package neopixel

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Driver is the subset of the ws281x device the strip needs. Leds must return the same backing slice on
// every call; Render shifts its contents out to the pixels.
type Driver interface {
	Init() error
	Render() error
	Wait() error
	Fini()
	Leds(channel int) []uint32
}

type Color struct {
	R, G, B, W uint8
}

var Off = Color{}

func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// Uint32 packs the color the way the ws281x driver expects it: 0xWWRRGGBB.
func (c Color) Uint32() uint32 {
	return uint32(c.W)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

func (c Color) String() string {
	return fmt.Sprintf("#%08x", c.Uint32())
}

// Frame is one color per pixel, index 0 being the pixel closest to the controller.
type Frame []Color

func NewFrame(pixels int) Frame {
	return make(Frame, pixels)
}

func (f Frame) Fill(c Color) {
	for i := range f {
		f[i] = c
	}
}

// Bytes serializes the frame into the wire order of the strip.
func (f Frame) Bytes(order PixelOrder) []byte {
	out := make([]byte, 0, len(f)*order.Channels())
	for _, c := range f {
		out = append(out, c.G, c.R, c.B)
		if order == GRBW {
			out = append(out, c.W)
		}
	}
	return out
}

type PixelOrder int

const (
	GRB PixelOrder = iota
	GRBW
)

func ParsePixelOrder(s string) (PixelOrder, error) {
	switch strings.ToUpper(s) {
	case "GRB":
		return GRB, nil
	case "GRBW":
		return GRBW, nil
	}
	return GRB, errors.Errorf("unknown pixel order %q", s)
}

func (o PixelOrder) String() string {
	switch o {
	case GRB:
		return "GRB"
	case GRBW:
		return "GRBW"
	}
	return "N/A"
}

func (o PixelOrder) Channels() int {
	if o == GRBW {
		return 4
	}
	return 3
}

// Get the same color, but with a lower or equal brightness, on a scale from 0-100, where 100 is the same as the input.
func withBrightness(color, light uint32) uint32 {
	if light >= 100 {
		return color
	}
	if light == 0 {
		return 0
	}

	w, r, g, b := (color>>24)&0xff, (color>>16)&0xff, (color>>8)&0xff, color&0xff

	white := w * light / 100
	red := r * light / 100
	green := g * light / 100
	blue := b * light / 100

	return (white << 24) | (red << 16) | (green << 8) | blue
}
