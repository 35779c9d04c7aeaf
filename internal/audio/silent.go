package audio

import (
	"errors"

	"github.com/sandeepkv93/temporizador/internal/playlist"
)

var ErrNoDevice = errors.New("audio: no output device")

// Silent stands in when the speaker cannot be opened. Decoding and playing both
// fail, so the playlist skips through and stops while tasks and the timer keep working.
type Silent struct{}

func (Silent) Decode(string) (playlist.Sound, error) { return nil, ErrNoDevice }

func (Silent) Play(playlist.Sound, int, float64) (playlist.Channel, error) {
	return nil, ErrNoDevice
}

func (Silent) PlayNotification(string) error { return ErrNoDevice }

func (Silent) StopNotification() {}
