package sound

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/callebjorkell/blaster/internal/animation"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var (
	ErrBusy         = errors.New("audio output is busy")
	ErrUnknownSound = errors.New("unknown sound")
)

const (
	fadeTime        = 15 * time.Millisecond
	resampleQuality = 4
)

// Player plays at most one stored asset at a time through a mixer that is attached to the output once.
// lock must be the lock the output holds while pulling samples (speaker.Lock on hardware).
type Player struct {
	lock   sync.Locker
	format beep.Format
	assets map[animation.SoundID]*beep.Buffer
	mixer  *beep.Mixer

	voice  *voice
	fading *voice
}

func NewPlayer(format beep.Format, lock sync.Locker) *Player {
	return &Player{
		lock:   lock,
		format: format,
		assets: make(map[animation.SoundID]*beep.Buffer),
		mixer:  &beep.Mixer{},
	}
}

// Streamer is what the output device plays. It never ends; silence is produced while nothing is playing.
func (p *Player) Streamer() beep.Streamer {
	return keepAlive{p.mixer}
}

// Load buffers s under id, resampling it to the output rate when needed.
func (p *Player) Load(id animation.SoundID, s beep.Streamer, format beep.Format) error {
	if format.SampleRate != p.format.SampleRate {
		s = beep.Resample(resampleQuality, format.SampleRate, p.format.SampleRate, s)
	}

	buf := beep.NewBuffer(p.format)
	buf.Append(s)
	if err := s.Err(); err != nil {
		return errors.Wrapf(err, "unable to buffer sound %v", id)
	}

	p.lock.Lock()
	defer p.lock.Unlock()
	p.assets[id] = buf
	log.Debugf("Loaded sound %v (%v)", id, p.format.SampleRate.D(buf.Len()))
	return nil
}

// LoadDir loads every <id>.wav in dir. Sounds the effect catalog refers to but that are missing are logged.
func (p *Player) LoadDir(dir string) error {
	matches, err := filepath.Glob(filepath.Join(dir, "*.wav"))
	if err != nil {
		return errors.Wrapf(err, "unable to list %v", dir)
	}

	for _, path := range matches {
		id := animation.SoundID(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
		if err := p.loadFile(id, path); err != nil {
			return err
		}
	}

	for _, id := range animation.Sounds() {
		if !p.Has(id) {
			log.Warnf("No sound file for %v in %v", id, dir)
		}
	}
	return nil
}

func (p *Player) loadFile(id animation.SoundID, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "unable to open %v", path)
	}
	defer f.Close()

	s, format, err := wav.Decode(f)
	if err != nil {
		return errors.Wrapf(err, "unable to decode %v", path)
	}
	defer s.Close()

	return p.Load(id, s, format)
}

func (p *Player) Has(id animation.SoundID) bool {
	p.lock.Lock()
	defer p.lock.Unlock()
	_, ok := p.assets[id]
	return ok
}

// Play starts id from the beginning. It does not stop what is already playing. While a stopped sound is
// still fading out, ErrBusy is returned and the caller should try again later.
func (p *Player) Play(id animation.SoundID) error {
	p.lock.Lock()
	defer p.lock.Unlock()

	if p.fading != nil && !p.fading.finished {
		return ErrBusy
	}
	p.fading = nil

	buf, ok := p.assets[id]
	if !ok {
		return errors.Wrapf(ErrUnknownSound, "%q", id)
	}

	v := &voice{src: buf.Streamer(0, buf.Len())}
	p.mixer.Add(v)
	p.voice = v
	log.Tracef("Playing %v", id)
	return nil
}

// Stop fades out the current sound. It returns immediately.
func (p *Player) Stop() {
	p.lock.Lock()
	defer p.lock.Unlock()

	if p.voice == nil || p.voice.finished {
		p.voice = nil
		return
	}
	p.voice.fadeOut(p.format.SampleRate.N(fadeTime))
	p.fading = p.voice
	p.voice = nil
}

// IsPlaying reports whether anything is still audible, including a sound that is fading out.
func (p *Player) IsPlaying() bool {
	p.lock.Lock()
	defer p.lock.Unlock()

	return (p.voice != nil && !p.voice.finished) || (p.fading != nil && !p.fading.finished)
}

// voice is one playing asset. Its fields are only touched with the player lock held.
type voice struct {
	src      beep.Streamer
	fadeLen  int
	fadeLeft int
	finished bool
}

func (v *voice) fadeOut(samples int) {
	if samples < 1 {
		samples = 1
	}
	v.fadeLen = samples
	v.fadeLeft = samples
}

func (v *voice) Stream(samples [][2]float64) (int, bool) {
	if v.finished {
		return 0, false
	}

	n, ok := v.src.Stream(samples)
	if v.fadeLen > 0 {
		for i := 0; i < n; i++ {
			if v.fadeLeft == 0 {
				n = i
				ok = false
				break
			}
			gain := float64(v.fadeLeft) / float64(v.fadeLen)
			samples[i][0] *= gain
			samples[i][1] *= gain
			v.fadeLeft--
		}
		if v.fadeLeft == 0 {
			ok = false
		}
	}

	// A short read means the asset is drained.
	if !ok || n < len(samples) {
		v.finished = true
		return n, n > 0
	}
	return n, true
}

func (v *voice) Err() error {
	return v.src.Err()
}

type keepAlive struct {
	s beep.Streamer
}

func (k keepAlive) Stream(samples [][2]float64) (int, bool) {
	n, _ := k.s.Stream(samples)
	for i := n; i < len(samples); i++ {
		samples[i] = [2]float64{}
	}
	return len(samples), true
}

func (k keepAlive) Err() error {
	return nil
}
