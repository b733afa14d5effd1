package prop

import (
	"github.com/callebjorkell/blaster/internal/animation"
	"github.com/callebjorkell/blaster/internal/sound"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// audioQueue is the one audio command waiting to be issued. A newer command replaces an older one.
type audioQueue struct {
	stop     bool
	play     animation.SoundID
	pending  bool
	attempts int
}

// replace schedules stopping the current sound followed by id. NoSound only stops.
func (q *audioQueue) replace(id animation.SoundID) {
	q.stop = true
	q.play = id
	q.pending = id != animation.NoSound
	q.attempts = 0
}

func (q *audioQueue) flush(snd Sound, retryLimit int) {
	if q.stop {
		q.stop = false
		if snd.IsPlaying() {
			snd.Stop()
		}
	}
	if !q.pending {
		return
	}

	err := snd.Play(q.play)
	switch {
	case err == nil:
		q.pending = false
	case errors.Is(err, sound.ErrBusy):
		q.attempts++
		if q.attempts > retryLimit {
			log.Errorf("Dropping sound %v, output busy for %d attempts", q.play, q.attempts)
			q.pending = false
			return
		}
		log.Tracef("Sound output busy, retrying %v", q.play)
	case errors.Is(err, sound.ErrUnknownSound):
		log.Warn("Unable to play: ", err)
		q.pending = false
	default:
		log.Errorf("Unable to play %v: %v", q.play, err)
		q.pending = false
	}
}
