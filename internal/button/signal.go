//go:build !pi

package button

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
)

const hupPulse = 250 * time.Millisecond

// OpenPins returns software pins on machines without GPIO. Each SIGHUP holds the trigger down for a short
// pulse, so a headless build can still be fired.
func OpenPins(names map[Input]string) (Levels, error) {
	log.Infoln("Initializing simulated input pins")

	pins := NewMockPins()
	go simulateTrigger(pins)
	return pins, nil
}

func simulateTrigger(pins *MockPins) {
	hupChan := make(chan os.Signal, 1)
	signal.Notify(hupChan, syscall.SIGHUP)

	for range hupChan {
		log.Debug("SIGHUP: pulsing trigger")
		pins.Set(Trigger, true)
		time.AfterFunc(hupPulse, func() {
			pins.Set(Trigger, false)
		})
	}
}
