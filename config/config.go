/*
Package config implements loading and validating the scene configuration, a
YAML file describing the demo animation, the drag controller and the host.
*/
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"ethos/motion/bezier"
	"ethos/motion/bits"
	"ethos/motion/drag"
	"ethos/motion/style"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid config")

// Config is the scene configuration.
type Config struct {
	Animation Animation `yaml:"animation"`
	Drag      Drag      `yaml:"drag"`
	Host      Host      `yaml:"host"`
}

// Animation configures the progress bar animation.
type Animation struct {
	Curve    string        `yaml:"curve"`
	Duration time.Duration `yaml:"duration"`
	// Iterations is a positive count, or -1 to repeat forever.
	Iterations int `yaml:"iterations"`
}

// Drag configures the draggable box.
type Drag struct {
	// Axis is "x", "y" or "xy".
	Axis         string        `yaml:"axis"`
	Friction     float64       `yaml:"friction"`
	Rebound      float64       `yaml:"rebound"`
	StopVelocity float64       `yaml:"stop_velocity"`
	FlingCutoff  time.Duration `yaml:"fling_cutoff"`
	Bounds       Bounds        `yaml:"bounds"`
}

// Bounds confines the box to the drag area shrunk by Inset pixels.
type Bounds struct {
	Enabled bool    `yaml:"enabled"`
	Inset   float64 `yaml:"inset"`
}

// Host configures the runner.
type Host struct {
	// Hz is the refresh rate of the fixed-interval runners.
	Hz int `yaml:"hz"`
	// TransformProperty names the style property the box transform is written
	// to. Empty means detect.
	TransformProperty string `yaml:"transform_property"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Animation: Animation{
			Curve:      "easeInOutCubic",
			Duration:   1500 * time.Millisecond,
			Iterations: 1,
		},
		Drag: Drag{
			Axis:         "xy",
			Friction:     drag.DefaultFriction,
			Rebound:      0.4,
			StopVelocity: drag.DefaultStopVelocity,
			FlingCutoff:  drag.DefaultFlingCutoff,
			Bounds:       Bounds{Enabled: true, Inset: 4},
		},
		Host: Host{Hz: 60},
	}
}

// Decode reads a configuration from r on top of the defaults. Unknown fields
// are an error. An empty document yields the defaults.
func Decode(r io.Reader) (Config, error) {
	c := Default()
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Load reads and validates the configuration file at path.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	c, err := Decode(bytes.NewReader(raw))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Marshal encodes c as YAML.
func (c Config) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// Validate checks every field and reports the first problem.
func (c Config) Validate() error {
	if _, ok := bezier.Lookup(c.Animation.Curve); !ok {
		return fmt.Errorf("%w: animation.curve: unknown curve %q (have %s)",
			ErrInvalid, c.Animation.Curve, strings.Join(bezier.Names(), ", "))
	}
	if c.Animation.Duration <= 0 {
		return fmt.Errorf("%w: animation.duration must be positive, got %v", ErrInvalid, c.Animation.Duration)
	}
	if c.Animation.Iterations < 1 && c.Animation.Iterations != -1 {
		return fmt.Errorf("%w: animation.iterations must be positive or -1, got %d", ErrInvalid, c.Animation.Iterations)
	}
	if _, err := ParseAxis(c.Drag.Axis); err != nil {
		return err
	}
	if c.Drag.Friction < 0 || c.Drag.Friction > 1 {
		return fmt.Errorf("%w: drag.friction must be in [0,1], got %v", ErrInvalid, c.Drag.Friction)
	}
	if c.Drag.Rebound < 0 || c.Drag.Rebound > 1 {
		return fmt.Errorf("%w: drag.rebound must be in [0,1], got %v", ErrInvalid, c.Drag.Rebound)
	}
	if c.Drag.StopVelocity < 0 {
		return fmt.Errorf("%w: drag.stop_velocity must not be negative, got %v", ErrInvalid, c.Drag.StopVelocity)
	}
	if c.Drag.FlingCutoff < 0 {
		return fmt.Errorf("%w: drag.fling_cutoff must not be negative, got %v", ErrInvalid, c.Drag.FlingCutoff)
	}
	if c.Drag.Bounds.Inset < 0 {
		return fmt.Errorf("%w: drag.bounds.inset must not be negative, got %v", ErrInvalid, c.Drag.Bounds.Inset)
	}
	if c.Host.Hz <= 0 || c.Host.Hz > 1000 {
		return fmt.Errorf("%w: host.hz must be in [1,1000], got %d", ErrInvalid, c.Host.Hz)
	}
	if p := c.Host.TransformProperty; p != "" && !style.Known(p) {
		return fmt.Errorf("%w: host.transform_property: unknown property %q", ErrInvalid, p)
	}
	return nil
}

// CurveValue returns the configured timing curve, or Linear if the name is unknown.
func (a Animation) CurveValue() bezier.Curve {
	c, ok := bezier.Lookup(a.Curve)
	if !ok {
		return bezier.Linear
	}
	return c
}

// ParseAxis converts "x", "y" or "xy" (in either order, any case) to an axis
// mask. Bit 0 is x and bit 1 is y. Each letter may appear once.
func ParseAxis(s string) (drag.Axis, error) {
	var mask uint
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		var bit uint
		switch r {
		case 'x':
			bit = 0
		case 'y':
			bit = 1
		default:
			return 0, fmt.Errorf("%w: drag.axis: unexpected %q in %q", ErrInvalid, r, s)
		}
		if bits.HasBit(mask, bit) {
			return 0, fmt.Errorf("%w: drag.axis: %q repeats %q", ErrInvalid, s, r)
		}
		mask = bits.SetBit(mask, bit)
	}
	if mask == 0 {
		return 0, fmt.Errorf("%w: drag.axis must name x, y or both", ErrInvalid)
	}
	return drag.Axis(mask), nil
}

// Interval returns the refresh period for Hz.
func (h Host) Interval() time.Duration {
	if h.Hz <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(h.Hz)
}
