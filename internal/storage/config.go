package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const (
	AppDirName     = "temporizador"
	ConfigFileName = "config.json"
)

type TaskRecord struct {
	Text    string `json:"text"`
	Checked bool   `json:"checked"`
}

// Document is the whole persisted state. AudioFolder is null when no folder
// was chosen.
type Document struct {
	Tasks       []TaskRecord `json:"tasks"`
	AudioFolder *string      `json:"audio_folder"`
}

func (d Document) Folder() string {
	if d.AudioFolder == nil {
		return ""
	}
	return *d.AudioFolder
}

type ConfigStore struct {
	path string
}

func NewConfigStore(path string) *ConfigStore {
	return &ConfigStore{path: path}
}

func (s *ConfigStore) Path() string {
	return s.path
}

// Load reads the document. A missing file yields an empty document and no
// error; an unreadable or corrupt file yields an empty document and the error.
func (s *ConfigStore) Load() (Document, error) {
	empty := Document{Tasks: make([]TaskRecord, 0)}
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return empty, nil
		}
		return empty, fmt.Errorf("read config: %w", err)
	}
	if strings.TrimSpace(string(raw)) == "" {
		return empty, nil
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return empty, fmt.Errorf("parse config %s: %w", s.path, err)
	}
	if doc.Tasks == nil {
		doc.Tasks = make([]TaskRecord, 0)
	}
	return doc, nil
}

// Save overwrites the file in full through a temp file and rename.
func (s *ConfigStore) Save(doc Document) error {
	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	if doc.Tasks == nil {
		doc.Tasks = make([]TaskRecord, 0)
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace config: %w", err)
	}
	return nil
}

// DefaultConfigDir follows the per-OS convention: %APPDATA% on Windows and
// ~/.config everywhere else. TEMPORIZADOR_CONFIG_DIR wins when set.
func DefaultConfigDir() (string, error) {
	if dir := strings.TrimSpace(os.Getenv("TEMPORIZADOR_CONFIG_DIR")); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	if runtime.GOOS == "windows" {
		base := os.Getenv("APPDATA")
		if base == "" {
			base = home
		}
		return filepath.Join(base, AppDirName), nil
	}
	return filepath.Join(home, ".config", AppDirName), nil
}
