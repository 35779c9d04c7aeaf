package playlist

import (
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
)

var ErrIndexOutOfRange = errors.New("playlist: index out of range")

const DefaultVolumePercent = 70

type Entry struct {
	Path          string
	Loop          bool
	VolumePercent int
	Loaded        bool
}

func (e Entry) Name() string {
	return filepath.Base(e.Path)
}

type State struct {
	Entries []Entry
	Current int
	Playing bool
}

func (s State) AfterTrackEnd() State {
	if !s.Playing {
		return s
	}
	s.Current++
	if s.Current >= len(s.Entries) {
		s.Playing = false
	}
	return s
}

func ShouldAdvance(playing, busy bool) bool {
	return playing && !busy
}

func ClampVolume(percent int) int {
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}

type Options struct {
	DefaultVolume int
	Logger        *log.Logger
}

type Player struct {
	backend       Backend
	logger        *log.Logger
	defaultVolume int
	folder        string
	state         State
	sounds        map[int]Sound
	channel       Channel
	listeners     []func()
}

func NewPlayer(backend Backend, opts Options) *Player {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	vol := DefaultVolumePercent
	if opts.DefaultVolume > 0 {
		vol = ClampVolume(opts.DefaultVolume)
	}
	return &Player{
		backend:       backend,
		logger:        logger,
		defaultVolume: vol,
		sounds:        make(map[int]Sound),
	}
}

func (p *Player) Subscribe(fn func()) {
	if fn == nil {
		return
	}
	p.listeners = append(p.listeners, fn)
}

func (p *Player) Folder() string {
	return p.folder
}

func (p *Player) State() State {
	out := p.state
	out.Entries = p.Entries()
	return out
}

func (p *Player) Entries() []Entry {
	out := make([]Entry, len(p.state.Entries))
	copy(out, p.state.Entries)
	return out
}

func (p *Player) Playing() bool {
	return p.state.Playing
}

func (p *Player) Current() (Entry, bool) {
	if !p.state.Playing || p.state.Current < 0 || p.state.Current >= len(p.state.Entries) {
		return Entry{}, false
	}
	return p.state.Entries[p.state.Current], true
}

func (p *Player) LoadFolder(dir string) error {
	p.Stop()
	p.folder = dir
	p.state = State{Entries: make([]Entry, 0)}
	p.sounds = make(map[int]Sound)
	defer p.changed()

	paths, err := ScanFolder(dir)
	if err != nil {
		return err
	}
	for _, path := range paths {
		p.state.Entries = append(p.state.Entries, Entry{
			Path:          path,
			VolumePercent: p.defaultVolume,
		})
	}
	return nil
}

func (p *Player) Play() {
	if len(p.state.Entries) == 0 {
		return
	}
	p.Stop()
	p.state.Playing = true
	p.state.Current = 0
	p.playCurrent()
}

func (p *Player) Stop() {
	p.state.Playing = false
	p.stopChannel()
}

func (p *Player) Advance() {
	if !p.state.Playing {
		return
	}
	p.state = p.state.AfterTrackEnd()
	if !p.state.Playing {
		p.stopChannel()
		return
	}
	p.playCurrent()
}

func (p *Player) Next() bool {
	if !p.state.Playing || len(p.state.Entries) == 0 {
		return false
	}
	if p.state.Current >= len(p.state.Entries)-1 {
		return false
	}
	p.state.Current++
	p.playCurrent()
	return true
}

func (p *Player) Previous() bool {
	if !p.state.Playing || len(p.state.Entries) == 0 {
		return false
	}
	if p.state.Current <= 0 {
		return false
	}
	p.state.Current--
	p.playCurrent()
	return true
}

func (p *Player) Poll() bool {
	if p.channel == nil {
		return false
	}
	if !ShouldAdvance(p.state.Playing, p.channel.Busy()) {
		return false
	}
	p.Advance()
	return true
}

func (p *Player) SetVolume(index, percent int) error {
	if err := p.checkIndex(index); err != nil {
		return err
	}
	percent = ClampVolume(percent)
	p.state.Entries[index].VolumePercent = percent
	if p.channel != nil && p.state.Playing && p.state.Current == index {
		p.channel.SetVolume(float64(percent) / 100)
	}
	return nil
}

// SetLoop takes effect the next time the entry starts.
func (p *Player) SetLoop(index int, loop bool) error {
	if err := p.checkIndex(index); err != nil {
		return err
	}
	p.state.Entries[index].Loop = loop
	return nil
}

// playCurrent starts the entry under the cursor. Entries that fail to decode
// or play are skipped as if they had ended.
func (p *Player) playCurrent() {
	for p.state.Playing && p.state.Current < len(p.state.Entries) {
		err := p.start(p.state.Current)
		if err == nil {
			return
		}
		p.logger.Printf("playlist: skipping %s: %v", p.state.Entries[p.state.Current].Path, err)
		p.state.Current++
	}
	p.state.Playing = false
	p.stopChannel()
}

func (p *Player) start(index int) error {
	p.stopChannel()
	entry := &p.state.Entries[index]
	sound, ok := p.sounds[index]
	if !ok {
		decoded, err := p.backend.Decode(entry.Path)
		if err != nil {
			return fmt.Errorf("decode: %w", err)
		}
		sound = decoded
		p.sounds[index] = sound
		entry.Loaded = true
	}
	loops := 0
	if entry.Loop {
		loops = LoopForever
	}
	ch, err := p.backend.Play(sound, loops, float64(entry.VolumePercent)/100)
	if err != nil {
		return fmt.Errorf("play: %w", err)
	}
	p.channel = ch
	return nil
}

func (p *Player) stopChannel() {
	if p.channel == nil {
		return
	}
	p.channel.Stop()
	p.channel = nil
}

func (p *Player) checkIndex(index int) error {
	if index < 0 || index >= len(p.state.Entries) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	return nil
}

func (p *Player) changed() {
	for _, fn := range p.listeners {
		fn()
	}
}
