package main

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webcam-fx/internal/catalog"
	"webcam-fx/internal/display"
)

func TestRootFlagDefaults(t *testing.T) {
	cmd := newRootCmd()
	f := cmd.Flags()

	tests := []struct {
		name string
		want string
	}{
		{"width", "1280"},
		{"height", "720"},
		{"fps", "30"},
		{"config", ""},
		{"debug", "false"},
		{"display", display.BackendHighGUI},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fl := f.Lookup(tt.name)
			require.NotNil(t, fl)
			assert.Equal(t, tt.want, fl.DefValue)
		})
	}
	assert.Equal(t, "c", f.Lookup("config").Shorthand)
}

func TestRootRejectsArguments(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"extra"})
	assert.Error(t, cmd.Execute())
}

func TestRunRejectsBadFormat(t *testing.T) {
	tests := []struct {
		name string
		opts options
	}{
		{"zero width", options{width: 0, height: 720, fps: 30}},
		{"negative height", options{width: 1280, height: -1, fps: 30}},
		{"zero fps", options{width: 1280, height: 720, fps: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.opts
			assert.Error(t, run(context.Background(), &opts))
		})
	}
}

func TestBanner(t *testing.T) {
	c := catalog.Default()
	b := banner(c, 300*time.Millisecond)

	assert.Contains(t, b, fmt.Sprintf("WesWorld FX ready with %d filters", c.Len()))
	assert.Contains(t, b, fmt.Sprintf("0-%d + ENTER", c.MaxDisplayNumber()))
	assert.Contains(t, b, "(0.3s)")
	assert.Contains(t, b, "s=SAM REICH Tattoo")
}

func TestInitLogger(t *testing.T) {
	debug := initLogger(true)
	assert.Equal(t, logrus.DebugLevel, debug.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, debug.Formatter)

	info := initLogger(false)
	assert.Equal(t, logrus.InfoLevel, info.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, info.Formatter)
}
