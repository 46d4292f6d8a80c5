// Command ethos runs the motion demo in a window, a terminal or headless.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/pborman/getopt/v2"

	"ethos/app"
	"ethos/config"
	"ethos/hal"
	"ethos/internal/buildinfo"
	"ethos/motion"
)

type options struct {
	mode        string
	configPath  string
	logPath     string
	hz          int
	ticks       uint64
	width       int
	height      int
	verbose     bool
	printConfig bool
}

func main() {
	mode := getopt.StringLong("mode", 'm', "window", "runner: window, terminal or headless", "MODE")
	configPath := getopt.StringLong("config", 'c', "", "scene configuration (YAML)", "FILE")
	logPath := getopt.StringLong("log", 'l', "", "write the log to FILE instead of stdout", "FILE")
	hz := getopt.IntLong("hz", 0, 0, "refresh rate of the terminal and headless runners (default from config)", "HZ")
	ticks := getopt.Uint64Long("ticks", 't', 0, "stop a headless run after N refreshes", "N")
	width := getopt.IntLong("width", 0, 0, "framebuffer width", "PX")
	height := getopt.IntLong("height", 0, 0, "framebuffer height", "PX")
	verbose := getopt.BoolLong("verbose", 'v', "log debug messages")
	printConfig := getopt.BoolLong("print-config", 0, "print the effective configuration and exit")
	version := getopt.BoolLong("version", 0, "print the version and exit")
	help := getopt.BoolLong("help", 'h', "show this help")
	getopt.Parse()

	if *help {
		getopt.Usage()
		return
	}
	if *version {
		fmt.Println(buildinfo.String())
		return
	}

	o := options{
		mode:        *mode,
		configPath:  *configPath,
		logPath:     *logPath,
		hz:          *hz,
		ticks:       *ticks,
		width:       *width,
		height:      *height,
		verbose:     *verbose,
		printConfig: *printConfig,
	}
	if err := run(o); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(o options) error {
	cfg, err := loadConfig(o)
	if err != nil {
		return err
	}
	if o.printConfig {
		raw, err := cfg.Marshal()
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(raw)
		return err
	}

	out, closeLog, err := logOutput(o)
	if err != nil {
		return err
	}
	defer closeLog()
	logger := hal.NewLogger(out)
	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	motion.SetLogger(slog.New(slog.NewTextHandler(hal.LogWriter(logger), &slog.HandlerOptions{Level: level})))
	motion.Logger().Info("starting", "version", buildinfo.Short(), "mode", o.mode)

	var opts []app.Option
	if o.configPath != "" {
		path := o.configPath
		opts = append(opts, app.WithReload(func() (config.Config, error) { return config.Load(path) }))
	}
	newApp := app.NewStep(cfg, opts...)
	host := hal.HostConfig{Logger: logger, Width: o.width, Height: o.height}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch o.mode {
	case "window":
		err = hal.RunWindow(newApp, hal.WindowConfig{HostConfig: host})
	case "terminal":
		err = hal.RunTerminal(ctx, newApp, hal.TerminalConfig{HostConfig: host, Hz: cfg.Host.Hz})
	case "headless":
		w, h := o.width, o.height
		if w <= 0 {
			w = 320
		}
		if h <= 0 {
			h = 240
		}
		host.Width, host.Height = w, h
		err = hal.RunHeadless(ctx, newApp, hal.HeadlessConfig{
			HostConfig: host,
			Hz:         cfg.Host.Hz,
			Ticks:      o.ticks,
			Script:     app.FlickScript(w, h),
		})
	default:
		return fmt.Errorf("unknown mode %q (want window, terminal or headless)", o.mode)
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// loadConfig reads the configuration file, if any, and applies command line
// overrides.
func loadConfig(o options) (config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return config.Config{}, err
		}
	}
	if o.hz > 0 {
		cfg.Host.Hz = o.hz
		if err := cfg.Validate(); err != nil {
			return config.Config{}, err
		}
	}
	return cfg, nil
}

// logOutput picks where log lines go. The terminal runner owns stdout, so
// without --log its log is dropped.
func logOutput(o options) (io.Writer, func(), error) {
	if o.logPath != "" {
		f, err := os.OpenFile(o.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log: %w", err)
		}
		return f, func() { _ = f.Close() }, nil
	}
	if o.mode == "terminal" {
		return io.Discard, func() {}, nil
	}
	return os.Stdout, func() {}, nil
}
