//go:build pi

package button

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

type gpioPins struct {
	pins [inputCount]gpio.PinIO
}

// OpenPins configures the named GPIO pins as pulled-up inputs. The switches pull them low when pressed.
func OpenPins(names map[Input]string) (Levels, error) {
	log.Infoln("Initializing input pins")
	if _, err := host.Init(); err != nil {
		return nil, errors.Wrap(err, "unable to initialize periph")
	}

	p := &gpioPins{}
	for _, in := range Inputs() {
		pin := gpioreg.ByName(names[in])
		if pin == nil {
			return nil, errors.Errorf("no GPIO pin named %q for %v", names[in], in)
		}
		// Sampling is polled from the loop, edge detection stays off.
		if err := pin.In(gpio.PullUp, gpio.NoEdge); err != nil {
			return nil, errors.Wrapf(err, "unable to configure %v on %v", in, names[in])
		}
		p.pins[in] = pin
	}

	return p, nil
}

func (p *gpioPins) Active(in Input) bool {
	return p.pins[in].Read() == gpio.Low
}
