package audio

import (
	"log"
	"sync"

	"github.com/ebitengine/oto/v3"
)

// All playback goes through one context at a fixed format; synthesized
// cues are rendered at this rate and TTS responses are converted to it.
const (
	SampleRate = 44100
	Channels   = 1
)

// Global audio context singleton
var (
	globalAudioCtx     *oto.Context
	globalAudioCtxOnce sync.Once
	audioCtxReady      bool
)

// initAudioContext initializes the global audio context once. On failure the
// context stays nil and playback degrades to silence; the scheduler keeps
// running.
func initAudioContext() {
	globalAudioCtxOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   SampleRate,
			ChannelCount: Channels,
			Format:       oto.FormatSignedInt16LE,
		}

		ctx, readyChan, err := oto.NewContext(op)
		if err != nil {
			log.Printf("Failed to initialize audio context: %v", err)
			return
		}

		// Wait for the hardware audio devices to be ready
		<-readyChan

		globalAudioCtx = ctx
		audioCtxReady = true
		log.Println("Audio context initialized successfully")
	})
}

// ContextReady reports whether audio output is available.
func ContextReady() bool {
	initAudioContext()
	return audioCtxReady && globalAudioCtx != nil
}
