package main

import (
	"fmt"
	"os"
	"time"

	"github.com/callebjorkell/blaster/internal/animation"
	"github.com/callebjorkell/blaster/internal/button"
	"github.com/callebjorkell/blaster/internal/config"
	"github.com/callebjorkell/blaster/internal/lcd"
	"github.com/callebjorkell/blaster/internal/loop"
	"github.com/callebjorkell/blaster/internal/prop"
	"github.com/callebjorkell/blaster/internal/sound"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	log "github.com/sirupsen/logrus"
)

const (
	sampleRate   = beep.SampleRate(44100)
	speakerDelay = 50 * time.Millisecond
)

// loadConfig loads the configuration and applies its log level. An invalid configuration stops the process
// before anything touches the hardware.
func loadConfig() config.Config {
	conf, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("Refusing to start: ", err)
	}

	log.SetLevel(conf.Level())
	if *debug {
		log.Info("Enabling debug output...")
		log.SetLevel(log.DebugLevel)
	}
	return conf
}

func check() {
	conf, err := config.Load(*configPath)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	fmt.Printf("pixels:       %d (%v, %d%% brightness)\n", conf.Pixels, conf.Order(), conf.Brightness)
	fmt.Printf("ammo:         %d\n", conf.MaxAmmo)
	fmt.Printf("charge:       %v\n", conf.ChargeThreshold)
	fmt.Printf("overheat:     at %d, cooling %v\n", conf.Overheat.Threshold, conf.Overheat.Cooldown)
	fmt.Printf("debounce:     %v (stuck after %v)\n", conf.Debounce, conf.StuckTimeout)
	fmt.Printf("tick:         %v, %d retries\n", conf.Tick, conf.RetryLimit)
	fmt.Printf("pins:         trigger=%s mode=%s reload=%s power=%s\n",
		conf.Pins.Trigger, conf.Pins.Mode, conf.Pins.Reload, conf.Pins.Power)
	fmt.Printf("sounds:       %s\n", conf.SoundDir)
	fmt.Printf("lcd:          %v\n", conf.LCD)
}

func pinNames(p config.Pins) map[button.Input]string {
	return map[button.Input]string{
		button.Trigger: p.Trigger,
		button.Mode:    p.Mode,
		button.Reload:  p.Reload,
		button.Power:   p.Power,
	}
}

type speakerLock struct{}

func (speakerLock) Lock() {
	speaker.Lock()
}

func (speakerLock) Unlock() {
	speaker.Unlock()
}

// openSound starts the speaker and loads the sound files. The prop runs silent if either fails.
func openSound(conf config.Config) prop.Sound {
	format := beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2}
	if err := speaker.Init(format.SampleRate, format.SampleRate.N(speakerDelay)); err != nil {
		log.Warn("No audio output, running silent: ", err)
		return sound.Silent{}
	}

	p := sound.NewPlayer(format, speakerLock{})
	if err := p.LoadDir(conf.SoundDir); err != nil {
		log.Warn("Unable to load sounds, running silent: ", err)
		speaker.Close()
		return sound.Silent{}
	}
	speaker.Play(p.Streamer())
	return p
}

func screenFor(s prop.Summary) lcd.Screen {
	return lcd.Screen{
		Top:    s.State.String(),
		Bottom: fmt.Sprintf("%d/%d %s", s.Ammo, s.MaxAmmo, s.Theme),
	}
}

// newLoop wires the prop together. onChange may be nil.
func newLoop(conf config.Config, levels button.Levels, strip loop.Strip, snd prop.Sound, onChange func(prop.Summary)) (*loop.Loop, *prop.Controller) {
	now := time.Now()
	sampler := button.NewSampler(levels, conf.Debounce, conf.StuckTimeout, now)
	ctrl := prop.New(prop.NewSettings(conf), animation.NewEngine(conf.Pixels), snd, now)

	l := loop.New(sampler, ctrl, strip, loop.Options{
		Tick:       conf.Tick,
		RetryLimit: conf.RetryLimit,
		OnChange:   onChange,
	})
	return l, ctrl
}
