package main

import (
	"log"
	"time"

	"github.com/KongSugoi/zencare-companion/pkg/alarm"
	"github.com/KongSugoi/zencare-companion/pkg/audio"
	"github.com/KongSugoi/zencare-companion/pkg/speech"
)

// beepSounder plays synthesized alarm cycles through the shared audio
// context. When no audio device is available PlayPCM returns nil and the
// cue degrades to silence.
type beepSounder struct{}

func (beepSounder) Play(pcm []byte) alarm.Playback {
	return audio.PlayPCM(pcm)
}

// logVibrator stands in for a vibration motor on desktop hardware. The
// pattern is logged so alarm behavior stays observable.
type logVibrator struct{}

func (logVibrator) Vibrate(pattern []time.Duration) {
	log.Printf("Vibration cue: %v", pattern)
}

// ttsSpeaker speaks a summary through the external synthesis service,
// fire-and-forget: failures are logged and the alarm keeps running.
type ttsSpeaker struct {
	client *speech.Client
}

func (t *ttsSpeaker) Speak(text string) {
	if t.client == nil {
		return
	}

	go func() {
		data, err := t.client.Synthesize(text)
		if err != nil {
			log.Printf("TTS synthesis failed: %v", err)
			return
		}
		audio.PlayWAV(data)
	}()
}
