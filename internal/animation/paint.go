package animation

import (
	"math"
	"time"

	"github.com/callebjorkell/blaster/internal/neopixel"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	idlePeriod     = 3 * time.Second
	overheatPeriod = 800 * time.Millisecond
	flickerStep    = 40 * time.Millisecond
	spriteLength   = 5
)

var overheatGlow = mustHex("#ff3000")

// paint renders effect id at elapsed time t (p is t as a fraction of the effect length) into f.
func paint(id EffectID, f neopixel.Frame, t time.Duration, p float64, th Theme) {
	switch id {
	case Idle:
		fill(f, th.Fade.BlendLab(th.Idle, wave(t, idlePeriod)))
	case Fire:
		f.Fill(toColor(th.Fade))
		drawSprite(f, shotSprite(th), int(p*float64(len(f)+spriteLength)))
	case Charged:
		fill(f, th.Accent.BlendLab(th.Fade, p))
		drawSprite(f, chargedSprite(th), int(p*float64(len(f)+2*spriteLength)))
	case DryFire:
		flicker(f, th.Shadow, t)
	case Reload:
		sweep(f, th, p)
	case Overheat:
		flicker(f, th.Shadow.BlendLab(overheatGlow, wave(t, overheatPeriod)), t)
	case ModeFlash:
		fill(f, th.Accent.BlendLab(th.Idle, p))
	default:
		f.Fill(neopixel.Off)
	}
}

func toColor(c colorful.Color) neopixel.Color {
	r, g, b := c.Clamped().RGB255()
	return neopixel.RGB(r, g, b)
}

func fill(f neopixel.Frame, c colorful.Color) {
	f.Fill(toColor(c))
}

// wave goes 0 -> 1 -> 0 once per period.
func wave(t, period time.Duration) float64 {
	phase := float64(t%period) / float64(period)
	return 0.5 - 0.5*math.Cos(2*math.Pi*phase)
}

func scale(c colorful.Color, k float64) colorful.Color {
	return colorful.Color{R: c.R * k, G: c.G * k, B: c.B * k}
}

// shotSprite runs from the tail (index 0), which matches the idle background, to the head.
func shotSprite(th Theme) []neopixel.Color {
	s := make([]neopixel.Color, spriteLength)
	for i := range s {
		k := float64(i) / float64(spriteLength-1)
		if k < 0.5 {
			s[i] = toColor(th.Fade.BlendLab(th.Shadow, k*2))
		} else {
			s[i] = toColor(th.Shadow.BlendLab(th.Accent, (k-0.5)*2))
		}
	}
	return s
}

// chargedSprite is a shot sprite twice as long, with the idle colour as its head.
func chargedSprite(th Theme) []neopixel.Color {
	shot := shotSprite(th)
	s := make([]neopixel.Color, 0, 2*len(shot))
	s = append(s, shot...)
	for i := range shot {
		k := float64(i+1) / float64(len(shot))
		s = append(s, toColor(th.Accent.BlendLab(th.Idle, k)))
	}
	return s
}

// drawSprite places the sprite so that its head sits just below offset. With offset 0 nothing is visible;
// at len(f)+len(sprite) the sprite has left the strip.
func drawSprite(f neopixel.Frame, sprite []neopixel.Color, offset int) {
	start := offset - len(sprite)
	for i, c := range sprite {
		idx := start + i
		if idx >= 0 && idx < len(f) {
			f[idx] = c
		}
	}
}

// sweep fills the strip from pixel 0 as p goes to 1, the lit part running through the theme's palette
// with a bright leading pixel.
func sweep(f neopixel.Frame, th Theme, p float64) {
	lit := int(p * float64(len(f)))
	for i := range f {
		switch {
		case i < lit:
			f[i] = toColor(th.Fade.BlendHcl(th.Idle, float64(i+1)/float64(len(f))).Clamped())
		case i == lit:
			f[i] = toColor(th.Accent)
		default:
			f[i] = neopixel.Off
		}
	}
}

// flicker is base with a per-pixel brightness jitter that changes every flickerStep. It is derived from t,
// so the same t always renders the same frame.
func flicker(f neopixel.Frame, base colorful.Color, t time.Duration) {
	step := uint32(t / flickerStep)
	for i := range f {
		n := jitter(step, uint32(i))
		k := 0.6 + 0.4*float64(n&0xff)/255
		f[i] = toColor(scale(base, k))
	}
}

func jitter(step, pixel uint32) uint32 {
	x := step*0x9e3779b1 ^ pixel*0x85ebca6b
	x ^= x >> 16
	x *= 0x7feb352d
	x ^= x >> 15
	x *= 0x846ca68b
	x ^= x >> 16
	return x
}
