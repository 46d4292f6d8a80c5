package hal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ethos/motion/frame"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	HostConfig
	Hz    int
	Ticks uint64
	// Script is fed to the pointer queue as the run goes, so a headless run
	// can exercise the same input path as a window.
	Script []ScriptedPointer
}

// ScriptedPointer is a pointer event due After the first refresh.
type ScriptedPointer struct {
	After time.Duration
	Kind  PointerKind
	X, Y  int
}

// RunHeadless runs the app without any display, on a fixed refresh interval.
// It returns after cfg.Ticks refreshes (zero runs until ctx is done) or when
// the app returns ErrQuit.
func RunHeadless(ctx context.Context, newApp NewApp, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	fixed := frame.NewFixed(nil, d)
	h := newHostHAL(cfg.HostConfig, fixed, nil)
	step, err := newApp(h)
	if err != nil {
		return fmt.Errorf("headless: %w", err)
	}

	var (
		tick   uint64
		start  time.Time
		script = cfg.Script
	)
	err = fixed.Run(ctx, func(now time.Time) error {
		if start.IsZero() {
			start = now
		}
		for len(script) > 0 && now.Sub(start) >= script[0].After {
			s := script[0]
			script = script[1:]
			h.ptr.push(PointerEvent{Kind: s.Kind, At: now, X: s.X, Y: s.Y})
		}
		if step != nil {
			if err := step(now); err != nil {
				return err
			}
		}
		tick++
		if cfg.Ticks > 0 && tick >= cfg.Ticks {
			return ErrQuit
		}
		return nil
	})
	if errors.Is(err, ErrQuit) {
		return nil
	}
	return err
}
