// Package config loads and persists the viewer's small settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	appName  = "webcam-fx"
	fileName = "config.json"

	// DefaultAdvanceInterval is the auto-advance period in seconds.
	DefaultAdvanceInterval = 0.3
	DefaultTattooText      = "SAM REICH"
)

type Config struct {
	CameraIndex     *int    `koanf:"camera_index"`
	AdvanceInterval float64 `koanf:"advance_interval"`
	CascadePath     string  `koanf:"cascade_path"`
	MaskImage       string  `koanf:"mask_image"`
	TattooText      string  `koanf:"tattoo_text"`
}

// Defaults returns the settings used when nothing is stored.
func Defaults() *Config {
	return &Config{
		AdvanceInterval: DefaultAdvanceInterval,
		TattooText:      DefaultTattooText,
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/webcam-fx/config.json.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, appName, fileName)
}

// Store is a JSON settings file.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	if path == "" {
		path = DefaultPath()
	}
	return &Store{path: path}
}

func (s *Store) Path() string { return s.path }

// Load reads the file. A missing file yields defaults and no error. A file
// that cannot be parsed yields defaults together with the parse error, which
// callers report as a warning; it is never fatal.
func (s *Store) Load() (*Config, error) {
	k, err := s.read()
	if err != nil {
		return Defaults(), err
	}

	cfg := Defaults()
	if err := k.Unmarshal("", cfg); err != nil {
		return Defaults(), fmt.Errorf("decode %s: %w", s.path, err)
	}

	if cfg.AdvanceInterval <= 0 {
		cfg.AdvanceInterval = DefaultAdvanceInterval
	}
	if cfg.TattooText == "" {
		cfg.TattooText = DefaultTattooText
	}
	return cfg, nil
}

// SaveCameraIndex records the working camera. Other keys already in the file
// are kept as they are.
func (s *Store) SaveCameraIndex(index int) error {
	k, err := s.read()
	if err != nil {
		// an unreadable file is replaced rather than merged
		k = koanf.New(".")
	}
	if err := k.Set("camera_index", index); err != nil {
		return fmt.Errorf("set camera_index: %w", err)
	}

	data, err := k.Marshal(json.Parser())
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}

func (s *Store) read() (*koanf.Koanf, error) {
	k := koanf.New(".")
	if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
		return k, nil
	}
	if err := k.Load(file.Provider(s.path), json.Parser()); err != nil {
		return k, fmt.Errorf("load %s: %w", s.path, err)
	}
	return k, nil
}
