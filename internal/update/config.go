package update

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sandeepkv93/temporizador/internal/model"
	"github.com/sandeepkv93/temporizador/internal/playlist"
)

type RuntimeConfig struct {
	ConfigDir       string
	DefaultMinutes  int
	PlaylistPollMS  int
	DefaultVolume   int
	FinishSound     string
	HistoryEnabled  bool
	SchedulerBuffer int
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		DefaultMinutes:  model.DefaultTimerMinutes,
		PlaylistPollMS:  100,
		DefaultVolume:   playlist.DefaultVolumePercent,
		FinishSound:     "finish.mp3",
		HistoryEnabled:  true,
		SchedulerBuffer: 16,
	}
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v, ok := getEnvString("TEMPORIZADOR_CONFIG_DIR"); ok {
		cfg.ConfigDir = v
	}
	if v, ok := getEnvInt("TEMPORIZADOR_DEFAULT_MINUTES"); ok && v > 0 {
		cfg.DefaultMinutes = v
	}
	if v, ok := getEnvInt("TEMPORIZADOR_PLAYLIST_POLL_MS"); ok && v > 0 {
		cfg.PlaylistPollMS = v
	}
	if v, ok := getEnvInt("TEMPORIZADOR_DEFAULT_VOLUME"); ok && v > 0 && v <= 100 {
		cfg.DefaultVolume = v
	}
	if v, ok := getEnvString("TEMPORIZADOR_FINISH_SOUND"); ok {
		cfg.FinishSound = v
	}
	if v, ok := getEnvBool("TEMPORIZADOR_HISTORY"); ok {
		cfg.HistoryEnabled = v
	}
	if v, ok := getEnvInt("TEMPORIZADOR_SCHEDULER_BUFFER"); ok && v > 0 {
		cfg.SchedulerBuffer = v
	}
	return cfg
}

func (c RuntimeConfig) PollInterval() time.Duration {
	return time.Duration(c.PlaylistPollMS) * time.Millisecond
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	return raw, raw != ""
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
