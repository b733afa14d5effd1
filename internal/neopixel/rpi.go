//go:build pi

package neopixel

import (
	"github.com/pkg/errors"
	ws "github.com/rpi-ws281x/rpi-ws281x-go"
	log "github.com/sirupsen/logrus"
)

// Open initializes the ws281x strip on the default PWM channel. Brightness is applied in software by Push,
// so the driver runs at full scale.
func Open(pixels, brightness int, order PixelOrder) (*Strip, error) {
	opt := ws.DefaultOptions
	opt.Channels[0].Brightness = 255
	opt.Channels[0].LedCount = pixels
	opt.Channels[0].StripeType = stripType(order)

	dev, err := ws.MakeWS2811(&opt)
	if err != nil {
		return nil, errors.Wrap(err, "unable to create ws281x device")
	}
	if err := dev.Init(); err != nil {
		return nil, errors.Wrap(err, "unable to initialize ws281x device")
	}

	log.Infof("Initialized ws281x strip with %d %v pixels", pixels, order)
	return NewStrip(dev, pixels, brightness, order), nil
}

func stripType(o PixelOrder) int {
	if o == GRBW {
		return ws.SK6812StripGRBW
	}
	return ws.WS2811StripGRB
}
