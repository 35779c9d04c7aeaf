package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/temporizador/internal/app"
	"github.com/sandeepkv93/temporizador/internal/audio"
	"github.com/sandeepkv93/temporizador/internal/playlist"
	"github.com/sandeepkv93/temporizador/internal/scheduler"
	"github.com/sandeepkv93/temporizador/internal/storage"
	"github.com/sandeepkv93/temporizador/internal/update"
)

const logFileName = "temporizador.log"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "temporizador failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := update.RuntimeConfigFromEnv(update.DefaultRuntimeConfig())
	if cfg.ConfigDir == "" {
		dir, err := storage.DefaultConfigDir()
		if err != nil {
			return err
		}
		cfg.ConfigDir = dir
	}
	if err := os.MkdirAll(cfg.ConfigDir, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	logger, closeLog := openLog(cfg.ConfigDir)
	defer closeLog()

	var backend playlist.Backend = audio.Silent{}
	var notifier app.Notifier = audio.Silent{}
	if b, err := audio.NewBeep(audio.DefaultSampleRate, logger); err != nil {
		logger.Printf("audio disabled: %v", err)
	} else {
		defer b.Close()
		backend, notifier = b, b
	}

	deps := app.Deps{
		Store:       storage.NewConfigStore(filepath.Join(cfg.ConfigDir, storage.ConfigFileName)),
		Backend:     backend,
		Notifier:    notifier,
		Logger:      logger,
		FinishSound: finishSound(cfg, logger),
		Minutes:     cfg.DefaultMinutes,
		Volume:      cfg.DefaultVolume,
	}
	if cfg.HistoryEnabled {
		history, err := storage.OpenHistory(filepath.Join(cfg.ConfigDir, storage.HistoryFileName))
		if err != nil {
			logger.Printf("session history disabled: %v", err)
		} else {
			defer history.Close()
			deps.History = history
		}
	}

	state := app.New(deps)
	state.Restore()

	engine := scheduler.NewEngine(cfg.SchedulerBuffer)
	engine.Start()
	defer engine.Stop()
	if err := update.ScheduleJobs(engine, cfg); err != nil {
		return err
	}

	program := tea.NewProgram(update.NewModel(state, engine), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}
	return nil
}

func openLog(dir string) (*log.Logger, func()) {
	f, err := os.OpenFile(filepath.Join(dir, logFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return log.New(io.Discard, "", 0), func() {}
	}
	return log.New(f, "temporizador: ", log.LstdFlags), func() { _ = f.Close() }
}

// finishSound prefers the configured file and falls back to a generated chime.
func finishSound(cfg update.RuntimeConfig, logger *log.Logger) string {
	if _, err := os.Stat(cfg.FinishSound); err == nil {
		return cfg.FinishSound
	}
	path, err := audio.EnsureChime(cfg.ConfigDir)
	if err != nil {
		logger.Printf("completion sound unavailable: %v", err)
		return ""
	}
	return path
}
