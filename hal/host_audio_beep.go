//go:build cgo

package hal

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const speakerRate = beep.SampleRate(toneSampleRate)

// beepAudio plays tones on the speaker through a shared mixer. Used by the
// terminal runner, which has no Ebiten context.
type beepAudio struct {
	mixer *beep.Mixer
}

func newSpeakerAudio(logger Logger) (Audio, error) {
	if err := speaker.Init(speakerRate, speakerRate.N(100*time.Millisecond)); err != nil {
		return nullAudio{logger: logger}, fmt.Errorf("audio: %w", err)
	}
	a := &beepAudio{mixer: &beep.Mixer{}}
	speaker.Play(a.mixer)
	return a, nil
}

func (a *beepAudio) Tone(freqHz float64, d time.Duration) error {
	if freqHz <= 0 || d <= 0 {
		return fmt.Errorf("audio: invalid tone %.0fHz %v", freqHz, d)
	}
	n := speakerRate.N(d)
	speaker.Lock()
	a.mixer.Add(beep.Take(n, &toneStreamer{n: n, freq: freqHz}))
	speaker.Unlock()
	return nil
}

// toneStreamer is a beep.Streamer over toneSample.
type toneStreamer struct {
	pos  int
	n    int
	freq float64
}

func (s *toneStreamer) Stream(samples [][2]float64) (int, bool) {
	if s.pos >= s.n {
		return 0, false
	}
	i := 0
	for ; i < len(samples) && s.pos < s.n; i++ {
		v := toneSample(s.pos, s.n, toneSampleRate, s.freq)
		samples[i][0] = v
		samples[i][1] = v
		s.pos++
	}
	return i, true
}

func (s *toneStreamer) Err() error { return nil }
