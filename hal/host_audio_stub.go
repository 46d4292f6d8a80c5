//go:build !cgo

package hal

// Without cgo there is no audio device; tones go to the log.

func newWindowAudio(logger Logger) (Audio, error) {
	return nullAudio{logger: logger}, nil
}

func newSpeakerAudio(logger Logger) (Audio, error) {
	return nullAudio{logger: logger}, nil
}
