package hal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ethos/motion/frame"

	"github.com/gdamore/tcell/v2"
)

// TerminalConfig controls the terminal runner. Width and Height default to
// one pixel per column and two per row of the terminal.
type TerminalConfig struct {
	HostConfig
	Hz int
	// Screen replaces the terminal, mostly for tests with a simulation
	// screen. It must already be initialized. It is finalized on return.
	Screen tcell.Screen
	// Audio overrides the speaker backend.
	Audio Audio
}

// terminalKeys maps tcell special keys to key codes.
var terminalKeys = map[tcell.Key]KeyCode{
	tcell.KeyUp:    KeyUp,
	tcell.KeyDown:  KeyDown,
	tcell.KeyLeft:  KeyLeft,
	tcell.KeyRight: KeyRight,
	tcell.KeyEnter: KeyEnter,
}

// RunTerminal runs the app inside a terminal. The framebuffer is shown with
// half-block cells and mouse drags arrive as pointer events. Esc, q and
// Ctrl-C quit.
func RunTerminal(ctx context.Context, newApp NewApp, cfg TerminalConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid terminal hz: %d", cfg.Hz)
	}

	screen := cfg.Screen
	if screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("terminal: %w", err)
		}
		if err := s.Init(); err != nil {
			return fmt.Errorf("terminal: %w", err)
		}
		screen = s
	}
	defer screen.Fini()
	screen.EnableMouse(tcell.MouseDragEvents)
	screen.HideCursor()

	cols, rows := screen.Size()
	host := cfg.HostConfig
	if host.Width <= 0 {
		host.Width = cols
	}
	if host.Height <= 0 {
		host.Height = rows * 2
	}
	host = host.withDefaults()

	aud := cfg.Audio
	if aud == nil {
		var err error
		aud, err = newSpeakerAudio(host.Logger)
		if err != nil {
			host.Logger.WriteLineString(err.Error())
		}
	}

	fixed := frame.NewFixed(nil, d)
	h := newHostHAL(host, fixed, aud)
	step, err := newApp(h)
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}

	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	go screen.ChannelEvents(events, quit)
	defer close(quit)

	t := &terminal{screen: screen, h: h}
	err = fixed.Run(ctx, func(now time.Time) error {
		done := t.drain(events)
		if step != nil {
			if err := step(now); err != nil {
				return err
			}
		}
		t.present()
		if done {
			return ErrQuit
		}
		return nil
	})
	if errors.Is(err, ErrQuit) {
		return nil
	}
	return err
}

type terminal struct {
	screen  tcell.Screen
	h       *hostHAL
	mouse   pointerTracker
	scratch []byte
}

// drain handles every event already queued and reports whether one asked to
// quit. Events after a quit request are still delivered to the app.
func (t *terminal) drain(events <-chan tcell.Event) (quit bool) {
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return true
			}
			if t.handle(ev) {
				quit = true
			}
		default:
			return quit
		}
	}
}

func (t *terminal) handle(ev tcell.Event) (quit bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyRune:
			switch r := ev.Rune(); r {
			case 'q':
				return true
			case ' ':
				t.h.kbd.emit(KeyEvent{Code: KeySpace, Press: true})
			default:
				t.h.kbd.emit(KeyEvent{Press: true, Rune: r})
			}
		default:
			if code, ok := terminalKeys[ev.Key()]; ok {
				t.h.kbd.emit(KeyEvent{Code: code, Press: true})
			}
		}
	case *tcell.EventMouse:
		cx, cy := ev.Position()
		x, y := t.toPixel(cx, cy)
		if pe, ok := t.mouse.update(ev.When(), x, y, ev.Buttons()&tcell.Button1 != 0); ok {
			t.h.ptr.push(pe)
		}
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return false
}

// toPixel maps a cell to the framebuffer pixel shown in its top half.
func (t *terminal) toPixel(cx, cy int) (x, y int) {
	cols, rows := t.screen.Size()
	if cols <= 0 || rows <= 0 {
		return 0, 0
	}
	fb := t.h.fb
	return cx * fb.width / cols, (2 * cy) * fb.height / (2 * rows)
}

func (t *terminal) present() {
	fb := t.h.fb
	if len(t.scratch) != len(fb.buf) {
		t.scratch = make([]byte, len(fb.buf))
	}
	fb.snapshotRGB565(t.scratch)
	drawHalfBlocks(t.screen, t.scratch, fb.width, fb.height, fb.stride)
	t.screen.Show()
}

// drawHalfBlocks scales an RGB565 image to the screen, two pixels per cell:
// the upper half block takes the top pixel as foreground and the bottom one
// as background.
func drawHalfBlocks(screen tcell.Screen, buf []byte, width, height, stride int) {
	cols, rows := screen.Size()
	if cols <= 0 || rows <= 0 || width <= 0 || height <= 0 {
		return
	}
	for cy := 0; cy < rows; cy++ {
		top := (2 * cy) * height / (2 * rows)
		bottom := (2*cy + 1) * height / (2 * rows)
		for cx := 0; cx < cols; cx++ {
			x := cx * width / cols
			style := tcell.StyleDefault.
				Foreground(cellColor(buf, stride, x, top)).
				Background(cellColor(buf, stride, x, bottom))
			screen.SetContent(cx, cy, '▀', nil, style)
		}
	}
}

func cellColor(buf []byte, stride, x, y int) tcell.Color {
	r, g, b := pixelRGB(buf, stride, x, y)
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
