//go:build !pi

package neopixel

import (
	log "github.com/sirupsen/logrus"
)

// Open returns a strip backed by memory on machines without the ws281x hardware.
func Open(pixels, brightness int, order PixelOrder) (*Strip, error) {
	log.Infof("Using in-memory strip with %d %v pixels", pixels, order)
	return NewStrip(NewMemory(pixels), pixels, brightness, order), nil
}
