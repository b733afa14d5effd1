package sound

import (
	"github.com/callebjorkell/blaster/internal/animation"
	log "github.com/sirupsen/logrus"
)

// Silent stands in for the player when no audio output could be opened.
type Silent struct{}

func (Silent) Play(id animation.SoundID) error {
	log.Tracef("Not playing %v, audio is disabled", id)
	return nil
}

func (Silent) Stop() {}

func (Silent) IsPlaying() bool {
	return false
}
