package playlist

// LoopForever repeats a sound until its channel is stopped.
const LoopForever = -1

// Sound is a decoded, cached audio clip.
type Sound interface {
	Path() string
}

// Channel is a live audio output.
type Channel interface {
	// Busy reports whether the channel is still producing sound.
	Busy() bool
	Stop()
	SetVolume(volume float64)
}

// Backend decodes and plays sounds on a single exclusive channel: Play stops
// whatever channel it returned before.
type Backend interface {
	Decode(path string) (Sound, error)
	Play(s Sound, loops int, volume float64) (Channel, error)
}
