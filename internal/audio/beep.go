package audio

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
	"github.com/sandeepkv93/temporizador/internal/playlist"
)

const (
	DefaultSampleRate = beep.SampleRate(44100)
	resampleQuality   = 4
)

var (
	ErrUnsupportedFormat = errors.New("audio: unsupported format")
	ErrEmptyClip         = errors.New("audio: empty clip")
)

// Clip is a fully decoded sound held in memory at the speaker sample rate.
type Clip struct {
	path   string
	buffer *beep.Buffer
}

func (c *Clip) Path() string { return c.path }

func (c *Clip) Duration(sr beep.SampleRate) time.Duration {
	return sr.D(c.buffer.Len())
}

// Beep plays clips through the beep speaker. Playlist playback uses one
// exclusive channel; the completion sound has a channel of its own.
type Beep struct {
	mu           sync.Mutex
	sampleRate   beep.SampleRate
	cache        map[string]*Clip
	current      *channel
	notification *channel
	logger       *log.Logger
}

func NewBeep(sr beep.SampleRate, logger *log.Logger) (*Beep, error) {
	if sr <= 0 {
		sr = DefaultSampleRate
	}
	if err := speaker.Init(sr, sr.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	return newBeep(sr, logger), nil
}

func newBeep(sr beep.SampleRate, logger *log.Logger) *Beep {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Beep{
		sampleRate: sr,
		cache:      make(map[string]*Clip),
		logger:     logger,
	}
}

// Decode loads path into memory, caching by path.
func (b *Beep) Decode(path string) (playlist.Sound, error) {
	return b.decodeClip(path)
}

func (b *Beep) decodeClip(path string) (*Clip, error) {
	b.mu.Lock()
	if clip, ok := b.cache[path]; ok {
		b.mu.Unlock()
		return clip, nil
	}
	b.mu.Unlock()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	streamer, format, err := decodeStream(f, filepath.Ext(path))
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	defer streamer.Close()

	var src beep.Streamer = streamer
	if format.SampleRate != b.sampleRate {
		src = beep.Resample(resampleQuality, format.SampleRate, b.sampleRate, streamer)
	}
	buffer := beep.NewBuffer(beep.Format{SampleRate: b.sampleRate, NumChannels: 2, Precision: 2})
	buffer.Append(src)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	// A looped empty buffer never yields a sample and pins the speaker lock.
	if buffer.Len() == 0 {
		return nil, fmt.Errorf("decode %s: %w", path, ErrEmptyClip)
	}

	clip := &Clip{path: path, buffer: buffer}
	b.mu.Lock()
	b.cache[path] = clip
	b.mu.Unlock()
	return clip, nil
}

func decodeStream(f *os.File, ext string) (beep.StreamSeekCloser, beep.Format, error) {
	switch strings.ToLower(ext) {
	case ".mp3":
		return mp3.Decode(f)
	case ".wav":
		return wav.Decode(f)
	case ".ogg":
		return vorbis.Decode(f)
	case ".flac":
		return flac.Decode(f)
	default:
		return nil, beep.Format{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// Play starts s on the playlist channel, stopping whatever played there.
func (b *Beep) Play(s playlist.Sound, loops int, volume float64) (playlist.Channel, error) {
	clip, ok := s.(*Clip)
	if !ok {
		return nil, fmt.Errorf("%w: foreign sound %T", ErrUnsupportedFormat, s)
	}
	ch := b.start(clip, loops, volume)

	b.mu.Lock()
	prev := b.current
	b.current = ch
	b.mu.Unlock()
	if prev != nil {
		prev.Stop()
	}
	return ch, nil
}

// PlayNotification loops the sound at path until StopNotification.
func (b *Beep) PlayNotification(path string) error {
	clip, err := b.decodeClip(path)
	if err != nil {
		return err
	}
	ch := b.start(clip, playlist.LoopForever, 1)

	b.mu.Lock()
	prev := b.notification
	b.notification = ch
	b.mu.Unlock()
	if prev != nil {
		prev.Stop()
	}
	return nil
}

func (b *Beep) StopNotification() {
	b.mu.Lock()
	ch := b.notification
	b.notification = nil
	b.mu.Unlock()
	if ch != nil {
		ch.Stop()
	}
}

func (b *Beep) Close() {
	b.StopNotification()
	b.mu.Lock()
	ch := b.current
	b.current = nil
	b.mu.Unlock()
	if ch != nil {
		ch.Stop()
	}
	speaker.Clear()
}

func (b *Beep) start(clip *Clip, loops int, volume float64) *channel {
	count := 1
	if loops < 0 {
		count = -1
	} else if loops > 0 {
		count = loops + 1
	}
	vol := &effects.Volume{
		Streamer: beep.Loop(count, clip.buffer.Streamer(0, clip.buffer.Len())),
		Base:     2,
	}
	applyVolume(vol, volume)
	ch := &channel{
		ctrl:   &beep.Ctrl{Streamer: vol},
		volume: vol,
	}
	speaker.Play(beep.Seq(ch.ctrl, beep.Callback(func() {
		ch.done.Store(true)
	})))
	return ch
}

type channel struct {
	ctrl   *beep.Ctrl
	volume *effects.Volume
	done   atomic.Bool
}

func (c *channel) Busy() bool {
	return !c.done.Load()
}

func (c *channel) Stop() {
	speaker.Lock()
	c.ctrl.Streamer = nil
	speaker.Unlock()
	c.done.Store(true)
}

func (c *channel) SetVolume(volume float64) {
	speaker.Lock()
	applyVolume(c.volume, volume)
	speaker.Unlock()
}

// applyVolume maps a linear level in [0,1] onto the base-2 gain of
// effects.Volume. Zero is silence.
func applyVolume(v *effects.Volume, level float64) {
	if level <= 0 {
		v.Silent = true
		v.Volume = 0
		return
	}
	if level > 1 {
		level = 1
	}
	v.Silent = false
	v.Volume = math.Log2(level)
}
