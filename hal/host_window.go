//go:build cgo

package hal

import (
	"fmt"
	"image"
	"time"

	"ethos/internal/buildinfo"
	"ethos/motion/frame"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// WindowConfig controls the desktop window runner.
type WindowConfig struct {
	HostConfig
	// Scale multiplies the framebuffer size for the initial window size.
	Scale int
}

// RunWindow opens a desktop window that shows the framebuffer and forwards
// mouse, touch and keyboard input. The frame loop is ticked once per Ebiten
// update, so animations follow the display refresh. It blocks until the
// window closes or the app returns ErrQuit.
func RunWindow(newApp NewApp, cfg WindowConfig) error {
	if cfg.Scale <= 0 {
		cfg.Scale = 2
	}
	cfg.HostConfig = cfg.HostConfig.withDefaults()

	loop := frame.NewLoop(nil)
	aud, err := newWindowAudio(cfg.Logger)
	if err != nil {
		cfg.Logger.WriteLineString(err.Error())
	}
	h := newHostHAL(cfg.HostConfig, loop, aud)
	step, err := newApp(h)
	if err != nil {
		return fmt.Errorf("window: %w", err)
	}

	g := &hostGame{h: h, loop: loop, step: step}
	g.touch.touch = true
	ebiten.SetWindowTitle("ethos (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(h.fb.width*cfg.Scale, h.fb.height*cfg.Scale)
	ebiten.SetTPS(60)
	if err := ebiten.RunGame(g); err != nil && err != ebiten.Termination {
		return err
	}
	return nil
}

type hostGame struct {
	h       *hostHAL
	loop    *frame.Loop
	step    Step
	mouse   pointerTracker
	touch   pointerTracker
	touchID ebiten.TouchID
	touches []ebiten.TouchID
	img     *image.RGBA
	fbImg   *ebiten.Image
	scratch []byte
}

func (g *hostGame) Update() error {
	now := time.Now()
	g.pollPointer(now)
	g.pollKeyboard()

	g.loop.Tick(now)
	if g.step != nil {
		if err := g.step(now); err != nil {
			if err == ErrQuit {
				return ebiten.Termination
			}
			return err
		}
	}
	return nil
}

// pollPointer feeds the left mouse button and the first active touch through
// their trackers. Layout maps the window to framebuffer pixels, so the
// positions need no scaling.
func (g *hostGame) pollPointer(now time.Time) {
	x, y := ebiten.CursorPosition()
	if ev, ok := g.mouse.update(now, x, y, ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)); ok {
		g.h.ptr.push(ev)
	}

	g.touches = ebiten.AppendTouchIDs(g.touches[:0])
	pressed := false
	if g.touch.down {
		for _, id := range g.touches {
			if id == g.touchID {
				pressed = true
				break
			}
		}
	} else if len(g.touches) > 0 {
		g.touchID = g.touches[0]
		pressed = true
	}
	if pressed {
		x, y = ebiten.TouchPosition(g.touchID)
	}
	if ev, ok := g.touch.update(now, x, y, pressed); ok {
		g.h.ptr.push(ev)
	}
}

var windowKeys = []struct {
	key  ebiten.Key
	code KeyCode
}{
	{ebiten.KeyArrowUp, KeyUp},
	{ebiten.KeyArrowDown, KeyDown},
	{ebiten.KeyArrowLeft, KeyLeft},
	{ebiten.KeyArrowRight, KeyRight},
	{ebiten.KeyEnter, KeyEnter},
	{ebiten.KeyEscape, KeyEscape},
	{ebiten.KeySpace, KeySpace},
}

func (g *hostGame) pollKeyboard() {
	kbd := g.h.kbd
	for _, r := range ebiten.AppendInputChars(nil) {
		if r == ' ' {
			continue
		}
		kbd.emit(KeyEvent{Press: true, Rune: r})
	}
	for _, k := range windowKeys {
		if inpututil.IsKeyJustPressed(k.key) {
			kbd.emit(KeyEvent{Code: k.code, Press: true})
		}
		if inpututil.IsKeyJustReleased(k.key) {
			kbd.emit(KeyEvent{Code: k.code, Press: false})
		}
	}
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	if g.img == nil || g.img.Bounds().Dx() != fb.width || g.img.Bounds().Dy() != fb.height {
		g.img = image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
		g.scratch = make([]byte, len(fb.buf))
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
	}

	fb.snapshotRGB565(g.scratch)
	rgb565ToRGBA(g.img.Pix, g.scratch)
	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.fb.width, g.h.fb.height
}
