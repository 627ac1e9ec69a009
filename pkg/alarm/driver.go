// Package alarm drives the repeating attention cue (audio, vibration,
// speech) for an active notification until the user acknowledges it.
package alarm

import (
	"fmt"
	"sync"
	"time"

	"github.com/KongSugoi/zencare-companion/pkg/models"
)

// Playback is a cancellable in-flight sound.
type Playback interface {
	Stop()
}

// Sounder plays one rendered alarm cycle. Implementations must not block;
// a Sounder that cannot acquire an audio device plays silence.
type Sounder interface {
	Play(pcm []byte) Playback
}

// Vibrator emits one vibration pattern of alternating on/off segments.
type Vibrator interface {
	Vibrate(pattern []time.Duration)
}

// Speaker speaks a short summary, fire-and-forget. Implementations swallow
// and log their own failures.
type Speaker interface {
	Speak(text string)
}

// RenderCycle produces the PCM for one cycle of a profile's beeps. Wired to
// the audio synthesizer in production; tests substitute a recorder.
type RenderCycle func(beeps []models.Beep) []byte

// Driver runs the alarm state machine: Idle -> Alarming(category) -> Idle,
// with a direct Alarming -> Alarming transition restarting the cue when a
// higher-priority category preempts. Starting the same category twice is a
// no-op so overlapping timers can never pile up.
type Driver struct {
	mu sync.Mutex

	sounder  Sounder
	vibrator Vibrator
	speaker  Speaker
	render   RenderCycle

	current  models.NotificationCategory
	stop     chan struct{}
	playback Playback
}

func NewDriver(sounder Sounder, vibrator Vibrator, speaker Speaker, render RenderCycle) *Driver {
	return &Driver{
		sounder:  sounder,
		vibrator: vibrator,
		speaker:  speaker,
		render:   render,
		current:  models.CategoryNone,
	}
}

// Update transitions the driver to match the arbiter's current state: it
// starts the cue for a newly active category, restarts it on a category
// change, and goes idle when nothing is active. Same-category updates are
// no-ops, so growing an already-alarmed batch does not restart the cue.
func (d *Driver) Update(active models.ActiveNotification) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if active.Category == d.current {
		return
	}

	d.stopLocked()

	if active.Category == models.CategoryNone {
		return
	}

	d.current = active.Category
	d.stop = make(chan struct{})

	profile := models.ProfileFor(active.Category)
	var pcm []byte
	if d.render != nil {
		pcm = d.render(profile.Beeps)
	}

	if d.speaker != nil {
		if text := summaryText(active); text != "" {
			d.speaker.Speak(text)
		}
	}

	// First cycle fires immediately; the loop repeats it until stopped.
	d.playCycleLocked(pcm, profile)
	go d.runLoop(pcm, profile, d.stop)
}

// Stop halts the cue and releases the in-flight playback. Idempotent.
func (d *Driver) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
}

// Category returns the category currently being alarmed.
func (d *Driver) Category() models.NotificationCategory {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.current
}

func (d *Driver) stopLocked() {
	if d.stop != nil {
		close(d.stop)
		d.stop = nil
	}
	if d.playback != nil {
		d.playback.Stop()
		d.playback = nil
	}
	d.current = models.CategoryNone
}

func (d *Driver) runLoop(pcm []byte, profile models.AlarmProfile, stop chan struct{}) {
	ticker := time.NewTicker(profile.RepeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			d.mu.Lock()
			// A stale loop outlived a restart; let the new one own the cue.
			if d.stop != stop {
				d.mu.Unlock()
				return
			}
			d.playCycleLocked(pcm, profile)
			d.mu.Unlock()
		}
	}
}

func (d *Driver) playCycleLocked(pcm []byte, profile models.AlarmProfile) {
	if d.playback != nil {
		d.playback.Stop()
		d.playback = nil
	}
	if d.sounder != nil && len(pcm) > 0 {
		d.playback = d.sounder.Play(pcm)
	}
	if d.vibrator != nil {
		d.vibrator.Vibrate(profile.Vibration)
	}
}

// summaryText builds the spoken summary: the primary item's title plus the
// count of additional items when the batch has more than one.
func summaryText(active models.ActiveNotification) string {
	title := active.PrimaryTitle()
	if title == "" {
		return ""
	}

	if n := active.Count(); n > 1 {
		return fmt.Sprintf("You have %d new reminders. First: %s.", n, title)
	}
	return fmt.Sprintf("You have a new reminder: %s.", title)
}
