// WesWorld FX - live webcam filter viewer
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"webcam-fx/internal/camera"
	"webcam-fx/internal/catalog"
	"webcam-fx/internal/config"
	"webcam-fx/internal/dispatch"
	"webcam-fx/internal/display"
	"webcam-fx/internal/face"
	"webcam-fx/internal/fx"
	"webcam-fx/internal/input"
	"webcam-fx/internal/metrics"
	"webcam-fx/internal/overlay"
	"webcam-fx/internal/viewer"
)

const AppVersion = "1.0.0"

type options struct {
	width      int
	height     int
	fps        int
	configPath string
	debug      bool
	backend    string
}

// highgui windows must be driven from the main OS thread on macOS.
func init() {
	runtime.LockOSThread()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "webcam-fx",
		Short: "Live webcam viewer with switchable filters",
		Long: `webcam-fx mirrors your webcam into a window and applies one of about a
hundred filters to it. Pick filters with the arrow keys, by typing their number,
or let auto-advance cycle through them.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.width, "width", 1280, "requested capture width")
	f.IntVar(&opts.height, "height", 720, "requested capture height")
	f.IntVar(&opts.fps, "fps", viewer.DefaultFPS, "requested capture frame rate")
	f.StringVarP(&opts.configPath, "config", "c", "", "config file (default is $XDG_CONFIG_HOME/webcam-fx/config.json)")
	f.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	f.StringVar(&opts.backend, "display", display.BackendHighGUI, "window backend: highgui or fyne")
	return cmd
}

func run(parent context.Context, opts *options) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := initLogger(opts.debug)
	logger.WithFields(logrus.Fields{
		"version": AppVersion,
		"debug":   opts.debug,
		"display": opts.backend,
	}).Info("Starting WesWorld FX")

	if opts.width <= 0 || opts.height <= 0 {
		return fmt.Errorf("invalid capture size %dx%d", opts.width, opts.height)
	}
	if opts.fps <= 0 {
		return fmt.Errorf("invalid frame rate %d", opts.fps)
	}

	store := config.NewStore(opts.configPath)
	cfg, err := store.Load()
	if err != nil {
		logger.WithError(err).WithField("path", store.Path()).Warn("Could not load config, using defaults")
	}

	format := camera.Format{Width: opts.width, Height: opts.height, FPS: opts.fps}
	device, index, err := camera.NewProber(logger).Probe(cfg.CameraIndex, format)
	if err != nil {
		return fmt.Errorf("open camera: %w", err)
	}
	if cfg.CameraIndex == nil || *cfg.CameraIndex != index {
		if err := store.SaveCameraIndex(index); err != nil {
			logger.WithError(err).Warn("Could not save camera index")
		} else {
			logger.WithField("index", index).Info("Saved camera index")
		}
	}

	detector := face.Open(cfg.CascadePath, logger)
	defer detector.Close()

	bank := fx.NewBank(fx.Options{TattooText: cfg.TattooText, MaskImage: cfg.MaskImage}, logger)
	defer bank.Close()

	cat := catalog.Default()
	interval := time.Duration(cfg.AdvanceInterval * float64(time.Second))

	win, err := display.New(opts.backend, overlay.Title, opts.width, opts.height)
	if err != nil {
		device.Close()
		return err
	}

	loop := viewer.New(viewer.Options{
		Source:          device,
		Display:         win,
		Filter:          dispatch.New(cat, bank.Registry(), detector, logger),
		Overlay:         overlay.New(cat, interval),
		Input:           input.NewMachine(cat, logger),
		Catalog:         cat,
		Metrics:         metrics.NewTracker(viewer.FrameBudget(opts.fps), logger),
		Logger:          logger,
		AdvanceInterval: interval,
		FPS:             opts.fps,
	})

	logger.Info(banner(cat, interval))

	var runErr error
	win.Run(func() { runErr = loop.Run(ctx) })
	if runErr != nil {
		return runErr
	}

	logger.Info("Shut down cleanly")
	return nil
}

// banner lists the controls shown at startup.
func banner(c *catalog.Catalog, interval time.Duration) string {
	keys := c.QuickKeys()
	quick := make([]string, 0, len(keys))
	for r, idx := range keys {
		quick = append(quick, fmt.Sprintf("%c=%s", r, c.At(idx).Name))
	}
	sort.Strings(quick)

	var b strings.Builder
	fmt.Fprintf(&b, "%s ready with %d filters. ", overlay.Title, c.Len())
	fmt.Fprintf(&b, "Controls: 0-%d + ENTER select, <- -> navigate, SPACE auto-advance (%.1fs), H toggle UI, Q quit", c.MaxDisplayNumber(), interval.Seconds())
	if len(quick) > 0 {
		fmt.Fprintf(&b, ". Quick keys: %s", strings.Join(quick, ", "))
	}
	return b.String()
}

// initLogger picks the level and format from the debug flag.
func initLogger(debugMode bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	if debugMode {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
		logger.Debug("Debug logging enabled")
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	return logger
}
