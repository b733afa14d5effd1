package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/callebjorkell/blaster/internal/button"
	"github.com/callebjorkell/blaster/internal/config"
	"github.com/callebjorkell/blaster/internal/lcd"
	"github.com/callebjorkell/blaster/internal/neopixel"
	"github.com/callebjorkell/blaster/internal/prop"
	log "github.com/sirupsen/logrus"
)

func startProp(conf config.Config) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	levels, err := button.OpenPins(pinNames(conf.Pins))
	if err != nil {
		log.Fatal("Unable to open input pins: ", err)
	}

	strip, err := neopixel.Open(conf.Pixels, conf.Brightness, conf.Order())
	if err != nil {
		log.Fatal("Unable to open LED strip: ", err)
	}
	defer strip.Close()

	snd := openSound(conf)
	defer snd.Stop()

	var onChange func(prop.Summary)
	if conf.LCD {
		if err := lcd.InitLCD(); err != nil {
			log.Warn("Running without LCD: ", err)
		} else {
			display := lcd.NewDisplay()
			defer func() {
				display.Show(lcd.Screen{Top: "  Sleeping..."})
				display.Close()
			}()
			onChange = func(s prop.Summary) {
				display.Show(screenFor(s))
			}
		}
	}

	l, _ := newLoop(conf, levels, strip, snd, onChange)
	if err := l.Run(ctx); err != nil {
		log.Error(err)
	}
	log.Info("Done...")
}
