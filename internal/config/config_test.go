package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFile(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "nope", "config.json"))
	cfg, err := s.Load()
	require.NoError(t, err)
	assert.Nil(t, cfg.CameraIndex)
	assert.Equal(t, DefaultAdvanceInterval, cfg.AdvanceInterval)
	assert.Equal(t, DefaultTattooText, cfg.TattooText)
}

func TestLoadValues(t *testing.T) {
	path := writeFile(t, `{"camera_index": 2, "advance_interval": 1.5, "mask_image": "mask.png"}`)

	cfg, err := NewStore(path).Load()
	require.NoError(t, err)
	require.NotNil(t, cfg.CameraIndex)
	assert.Equal(t, 2, *cfg.CameraIndex)
	assert.Equal(t, 1.5, cfg.AdvanceInterval)
	assert.Equal(t, "mask.png", cfg.MaskImage)
}

func TestLoadMalformedFallsBackToDefaults(t *testing.T) {
	path := writeFile(t, `{"camera_index": `)

	cfg, err := NewStore(path).Load()
	assert.Error(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, Defaults(), cfg)
}

func TestLoadRejectsNonPositiveInterval(t *testing.T) {
	for _, content := range []string{`{"advance_interval": 0}`, `{"advance_interval": -2}`} {
		cfg, err := NewStore(writeFile(t, content)).Load()
		require.NoError(t, err)
		assert.Equal(t, DefaultAdvanceInterval, cfg.AdvanceInterval, content)
	}
}

func TestSaveCameraIndexKeepsOtherKeys(t *testing.T) {
	path := writeFile(t, `{"advance_interval": 0.8, "tattoo_text": "HELLO"}`)
	s := NewStore(path)

	require.NoError(t, s.SaveCameraIndex(1))

	cfg, err := s.Load()
	require.NoError(t, err)
	require.NotNil(t, cfg.CameraIndex)
	assert.Equal(t, 1, *cfg.CameraIndex)
	assert.Equal(t, 0.8, cfg.AdvanceInterval)
	assert.Equal(t, "HELLO", cfg.TattooText)
}

func TestSaveCameraIndexCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.json")
	s := NewStore(path)

	require.NoError(t, s.SaveCameraIndex(0))
	cfg, err := s.Load()
	require.NoError(t, err)
	require.NotNil(t, cfg.CameraIndex)
	assert.Equal(t, 0, *cfg.CameraIndex)
}

func TestDefaultPath(t *testing.T) {
	assert.Equal(t, "config.json", filepath.Base(NewStore("").Path()))
	assert.Contains(t, NewStore("").Path(), appName)
}
