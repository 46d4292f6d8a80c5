package hal

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"ethos/motion/frame"
)

const (
	defaultWidth  = 320
	defaultHeight = 240
)

// HostConfig is shared by every runner.
type HostConfig struct {
	// Logger receives log lines. Nil writes to stdout.
	Logger Logger
	// Width and Height size the framebuffer. Zero uses 320x240.
	Width, Height int
}

func (c HostConfig) withDefaults() HostConfig {
	if c.Logger == nil {
		c.Logger = NewLogger(os.Stdout)
	}
	if c.Width <= 0 {
		c.Width = defaultWidth
	}
	if c.Height <= 0 {
		c.Height = defaultHeight
	}
	return c
}

type hostHAL struct {
	logger Logger
	fb     *hostFramebuffer
	kbd    *hostKeyboard
	ptr    *hostPointer
	aud    Audio
	frames frame.Scheduler
}

func newHostHAL(cfg HostConfig, frames frame.Scheduler, aud Audio) *hostHAL {
	cfg = cfg.withDefaults()
	if aud == nil {
		aud = nullAudio{logger: cfg.Logger}
	}
	return &hostHAL{
		logger: cfg.Logger,
		fb:     newHostFramebuffer(cfg.Width, cfg.Height),
		kbd:    newHostKeyboard(),
		ptr:    newHostPointer(),
		aud:    aud,
		frames: frames,
	}
}

func (h *hostHAL) Logger() Logger          { return h.logger }
func (h *hostHAL) Display() Display        { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Input() Input            { return hostInput{kbd: h.kbd, ptr: h.ptr} }
func (h *hostHAL) Audio() Audio            { return h.aud }
func (h *hostHAL) Frames() frame.Scheduler { return h.frames }

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostInput struct {
	kbd *hostKeyboard
	ptr *hostPointer
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }
func (in hostInput) Pointer() Pointer   { return in.ptr }

// NewLogger returns a Logger writing lines to w. It is safe for concurrent use.
func NewLogger(w io.Writer) Logger {
	return &hostLogger{w: w}
}

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

// LogWriter adapts a Logger to an io.Writer. Every complete line written is
// forwarded as one log line; a trailing partial line waits for its newline.
func LogWriter(l Logger) io.Writer {
	return &lineWriter{l: l}
}

type lineWriter struct {
	mu  sync.Mutex
	l   Logger
	buf []byte
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.l.WriteLineBytes(w.buf[:i])
		w.buf = w.buf[i+1:]
	}
	if len(w.buf) == 0 {
		w.buf = nil
	}
	return len(p), nil
}

// nullAudio reports tones on the log instead of playing them.
type nullAudio struct {
	logger Logger
}

func (a nullAudio) Tone(freqHz float64, d time.Duration) error {
	if a.logger != nil {
		a.logger.WriteLineString(fmt.Sprintf("audio: tone %.0fHz %v", freqHz, d))
	}
	return nil
}
