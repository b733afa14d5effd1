package neopixel

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestColor(t *testing.T) {
	tt := []struct {
		name   string
		input  uint32
		light  uint32
		output uint32
	}{
		{
			"full brightness red",
			0xff0000,
			100,
			0xff0000,
		},
		{
			"full brightness white channel",
			0xff000000,
			100,
			0xff000000,
		},
		{
			"zero brightness green",
			0x00ff00,
			0,
			0x000000,
		},
		{
			"zero brightness white channel",
			0xff0000ff,
			0,
			0x00000000,
		},
		{
			"50 percent",
			0x806040,
			50,
			0x403020,
		},
		{
			"33 percent with white",
			0x96966330,
			33,
			0x3131200f,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			o := withBrightness(tc.input, tc.light)
			assert.Equal(t, tc.output, o)
		})
	}
}

func TestPack(t *testing.T) {
	assert.Equal(t, uint32(0x0a112233), Color{R: 0x11, G: 0x22, B: 0x33, W: 0x0a}.Uint32())
	assert.Equal(t, "#00ff8000", RGB(0xff, 0x80, 0).String())
}

func TestBytes(t *testing.T) {
	f := Frame{
		{R: 1, G: 2, B: 3, W: 4},
		{R: 5, G: 6, B: 7, W: 8},
	}

	assert.Equal(t, []byte{2, 1, 3, 6, 5, 7}, f.Bytes(GRB))
	assert.Equal(t, []byte{2, 1, 3, 4, 6, 5, 7, 8}, f.Bytes(GRBW))
}

func TestParsePixelOrder(t *testing.T) {
	o, err := ParsePixelOrder("grbw")
	assert.NoError(t, err)
	assert.Equal(t, GRBW, o)
	assert.Equal(t, 4, o.Channels())

	o, err = ParsePixelOrder("GRB")
	assert.NoError(t, err)
	assert.Equal(t, GRB, o)
	assert.Equal(t, 3, o.Channels())

	_, err = ParsePixelOrder("RGB")
	assert.EqualError(t, err, `unknown pixel order "RGB"`)
	_, traced := err.(interface{ StackTrace() errors.StackTrace })
	assert.True(t, traced)
}

func TestFill(t *testing.T) {
	f := NewFrame(3)
	f.Fill(RGB(1, 2, 3))
	assert.Equal(t, Frame{RGB(1, 2, 3), RGB(1, 2, 3), RGB(1, 2, 3)}, f)
}
