package config

import (
	"os"
	"time"

	"github.com/callebjorkell/blaster/internal/neopixel"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ErrInvalid marks a configuration the prop must refuse to boot with.
var ErrInvalid = errors.New("invalid configuration")

const (
	defaultPixels       = 15
	defaultBrightness   = 33
	defaultMaxAmmo      = 6
	defaultDebounce     = 20 * time.Millisecond
	defaultStuckTimeout = 5 * time.Second
	defaultCooldown     = 3 * time.Second
	defaultTick         = 10 * time.Millisecond
	defaultRetryLimit   = 3
	defaultCharge       = 500 * time.Millisecond
)

type Overheat struct {
	Threshold int           `yaml:"threshold"`
	Cooldown  time.Duration `yaml:"cooldown"`
}

type Pins struct {
	Trigger string `yaml:"trigger"`
	Mode    string `yaml:"mode"`
	Reload  string `yaml:"reload"`
	Power   string `yaml:"power"`
}

type Config struct {
	LogLevel        string        `yaml:"logLevel"`
	Pixels          int           `yaml:"pixels"`
	Brightness      int           `yaml:"brightness"`
	PixelOrder      string        `yaml:"pixelOrder"`
	MaxAmmo         int           `yaml:"maxAmmo"`
	// ChargeThreshold is how long the trigger must be held after a shot for its release to fire a charged
	// blast. Zero disables charging.
	ChargeThreshold time.Duration `yaml:"chargeThreshold"`
	Debounce        time.Duration `yaml:"debounce"`
	StuckTimeout    time.Duration `yaml:"stuckTimeout"`
	Overheat        Overheat      `yaml:"overheat"`
	Tick            time.Duration `yaml:"tick"`
	RetryLimit      int           `yaml:"retryLimit"`
	SoundDir        string        `yaml:"soundDir"`
	Pins            Pins          `yaml:"pins"`
	LCD             bool          `yaml:"lcd"`
}

// Default returns the configuration used for keys missing from the file.
func Default() Config {
	return Config{
		LogLevel:        "info",
		Pixels:          defaultPixels,
		Brightness:      defaultBrightness,
		PixelOrder:      neopixel.GRBW.String(),
		MaxAmmo:         defaultMaxAmmo,
		ChargeThreshold: defaultCharge,
		Debounce:        defaultDebounce,
		StuckTimeout:    defaultStuckTimeout,
		Overheat: Overheat{
			Threshold: 0,
			Cooldown:  defaultCooldown,
		},
		Tick:       defaultTick,
		RetryLimit: defaultRetryLimit,
		SoundDir:   "sounds",
		Pins: Pins{
			Trigger: "GPIO9",
			Mode:    "GPIO6",
			Reload:  "GPIO11",
			Power:   "GPIO12",
		},
	}
}

// Load reads and validates the configuration file at path. A missing file boots with the defaults.
func Load(path string) (Config, error) {
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		log.Warnf("No configuration at %v, using defaults", path)
		c := Default()
		return c, c.Validate()
	}
	if err != nil {
		return Config{}, errors.Wrapf(err, "unable to read %v", path)
	}

	return Parse(content)
}

// Parse decodes YAML on top of the defaults. Keys present in the document always win, so an explicit
// zero is kept and rejected by Validate rather than silently replaced.
func Parse(content []byte) (Config, error) {
	c := Default()
	if err := yaml.Unmarshal(content, &c); err != nil {
		return Config{}, errors.Wrapf(ErrInvalid, "malformed YAML: %v", err)
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrapf(ErrInvalid, "unknown log level %q", c.LogLevel)
	}
	if c.Pixels <= 0 {
		return errors.Wrapf(ErrInvalid, "pixel count must be positive, got %d", c.Pixels)
	}
	if c.Brightness < 1 || c.Brightness > 100 {
		return errors.Wrapf(ErrInvalid, "brightness must be within 1-100, got %d", c.Brightness)
	}
	if _, err := neopixel.ParsePixelOrder(c.PixelOrder); err != nil {
		return errors.Wrap(ErrInvalid, err.Error())
	}
	if c.MaxAmmo <= 0 {
		return errors.Wrapf(ErrInvalid, "maxAmmo must be positive, got %d", c.MaxAmmo)
	}
	if c.Overheat.Threshold < 0 || c.Overheat.Threshold >= c.MaxAmmo {
		return errors.Wrapf(ErrInvalid, "overheat threshold must be within [0, %d), got %d", c.MaxAmmo, c.Overheat.Threshold)
	}
	if c.Overheat.Cooldown <= 0 {
		return errors.Wrapf(ErrInvalid, "overheat cooldown must be positive, got %v", c.Overheat.Cooldown)
	}
	if c.ChargeThreshold < 0 {
		return errors.Wrapf(ErrInvalid, "chargeThreshold cannot be negative, got %v", c.ChargeThreshold)
	}
	if c.Debounce <= 0 {
		return errors.Wrapf(ErrInvalid, "debounce must be positive, got %v", c.Debounce)
	}
	if c.StuckTimeout <= c.Debounce {
		return errors.Wrapf(ErrInvalid, "stuckTimeout (%v) must be longer than debounce (%v)", c.StuckTimeout, c.Debounce)
	}
	if c.Tick <= 0 {
		return errors.Wrapf(ErrInvalid, "tick must be positive, got %v", c.Tick)
	}
	if c.RetryLimit < 0 {
		return errors.Wrapf(ErrInvalid, "retryLimit cannot be negative, got %d", c.RetryLimit)
	}

	seen := make(map[string]string)
	for name, pin := range c.Pins.byName() {
		if pin == "" {
			return errors.Wrapf(ErrInvalid, "pin for %s must be specified", name)
		}
		if other, ok := seen[pin]; ok {
			return errors.Wrapf(ErrInvalid, "pin %s is used by both %s and %s", pin, other, name)
		}
		seen[pin] = name
	}

	return nil
}

// Level is the logrus level named by logLevel. Only call on a validated configuration.
func (c Config) Level() log.Level {
	l, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return l
}

// Order is the parsed pixel order. Only call on a validated configuration.
func (c Config) Order() neopixel.PixelOrder {
	o, _ := neopixel.ParsePixelOrder(c.PixelOrder)
	return o
}

func (p Pins) byName() map[string]string {
	return map[string]string{
		"trigger": p.Trigger,
		"mode":    p.Mode,
		"reload":  p.Reload,
		"power":   p.Power,
	}
}
