package audio

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
)

const (
	ChimeFileName   = "chime.wav"
	chimeSampleRate = 44100
	chimeBitDepth   = 16
)

// chime notes: frequency in Hz and length in seconds.
var chimeNotes = []struct {
	freq float64
	secs float64
}{
	{880, 0.35},
	{660, 0.35},
	{990, 0.6},
}

// WriteChime renders a short three-note bell to a 16-bit mono WAV at path.
func WriteChime(path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chime: %w", err)
	}

	enc := gowav.NewEncoder(f, chimeSampleRate, chimeBitDepth, 1, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: chimeSampleRate},
		Data:           chimeSamples(),
		SourceBitDepth: chimeBitDepth,
	}
	if err := enc.Write(buf); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode chime: %w", err)
	}
	if err := enc.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("finalize chime: %w", err)
	}
	return f.Close()
}

// EnsureChime writes the chime into dir unless it is already there and
// returns its path.
func EnsureChime(dir string) (string, error) {
	path := filepath.Join(dir, ChimeFileName)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}
	if err := WriteChime(path); err != nil {
		return "", err
	}
	return path, nil
}

func chimeSamples() []int {
	total := 0
	for _, n := range chimeNotes {
		total += int(n.secs * chimeSampleRate)
	}
	out := make([]int, 0, total)
	amp := 0.6 * float64(math.MaxInt16)
	for _, n := range chimeNotes {
		count := int(n.secs * chimeSampleRate)
		for i := 0; i < count; i++ {
			t := float64(i) / chimeSampleRate
			decay := math.Exp(-4 * t / n.secs)
			out = append(out, int(amp*decay*math.Sin(2*math.Pi*n.freq*t)))
		}
	}
	return out
}
