package hal

import (
	"math"
	"time"
)

const (
	toneSampleRate = 48000
	toneFade       = 5 * time.Millisecond
	toneGain       = 0.25
)

// toneFrames returns the number of sample frames a tone of duration d spans.
func toneFrames(sampleRate int, d time.Duration) int {
	if d <= 0 || sampleRate <= 0 {
		return 0
	}
	return int(int64(sampleRate) * int64(d) / int64(time.Second))
}

// toneSample returns sample i of an n sample sine tone in [-toneGain, toneGain].
// Both ends fade linearly so the tone starts and stops without a click.
func toneSample(i, n, sampleRate int, freqHz float64) float64 {
	if i < 0 || i >= n {
		return 0
	}
	env := 1.0
	fade := toneFrames(sampleRate, toneFade)
	if fade > 0 {
		if i < fade {
			env = float64(i) / float64(fade)
		}
		if rest := n - 1 - i; rest < fade {
			env = math.Min(env, float64(rest)/float64(fade))
		}
	}
	t := float64(i) / float64(sampleRate)
	return toneGain * env * math.Sin(2*math.Pi*freqHz*t)
}

// tonePCM renders a tone as 16-bit little-endian stereo PCM.
func tonePCM(sampleRate int, freqHz float64, d time.Duration) []byte {
	n := toneFrames(sampleRate, d)
	buf := make([]byte, n*4)
	for i := 0; i < n; i++ {
		s := int16(toneSample(i, n, sampleRate, freqHz) * math.MaxInt16)
		j := i * 4
		buf[j+0] = byte(s)
		buf[j+1] = byte(s >> 8)
		buf[j+2] = byte(s)
		buf[j+3] = byte(s >> 8)
	}
	return buf
}
