package animation

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Theme recolors every effect. Idle and Fade are the two ends of the idle glow; Accent and Shadow are the
// bright and dark ends of the shot.
type Theme struct {
	Name   string
	Idle   colorful.Color
	Fade   colorful.Color
	Accent colorful.Color
	Shadow colorful.Color
}

var themes = []Theme{
	newTheme("ice", "#0044ff", "#000b2a", "#ff0000", "#190000"),
	newTheme("ember", "#ff6a00", "#2a0e00", "#ffd000", "#2a1a00"),
	newTheme("toxic", "#39ff14", "#082a03", "#e0ff4f", "#1a2000"),
	newTheme("violet", "#8a2be2", "#16052a", "#ff1493", "#2a0418"),
}

func newTheme(name, idle, fade, accent, shadow string) Theme {
	return Theme{
		Name:   name,
		Idle:   mustHex(idle),
		Fade:   mustHex(fade),
		Accent: mustHex(accent),
		Shadow: mustHex(shadow),
	}
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

func Themes() []Theme {
	out := make([]Theme, len(themes))
	copy(out, themes)
	return out
}

func NumThemes() int {
	return len(themes)
}

// ThemeAt wraps i around the catalog.
func ThemeAt(i int) Theme {
	n := len(themes)
	return themes[((i%n)+n)%n]
}
