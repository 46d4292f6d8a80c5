//go:build cgo

package hal

import (
	"fmt"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// ebitenAudio plays tones through Ebiten's audio context. Used by the window
// runner, where Ebiten already owns the audio device.
type ebitenAudio struct {
	mu      sync.Mutex
	ctx     *audio.Context
	players []*audio.Player
}

func newWindowAudio(_ Logger) (Audio, error) {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(toneSampleRate)
	}
	return &ebitenAudio{ctx: ctx}, nil
}

func (a *ebitenAudio) Tone(freqHz float64, d time.Duration) error {
	if freqHz <= 0 || d <= 0 {
		return fmt.Errorf("audio: invalid tone %.0fHz %v", freqHz, d)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	// Finished players are released here rather than from a callback.
	live := a.players[:0]
	for _, p := range a.players {
		if p.IsPlaying() {
			live = append(live, p)
			continue
		}
		_ = p.Close()
	}
	a.players = live

	p := a.ctx.NewPlayerFromBytes(tonePCM(a.ctx.SampleRate(), freqHz, d))
	p.Play()
	a.players = append(a.players, p)
	return nil
}
