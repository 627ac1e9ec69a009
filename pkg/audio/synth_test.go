package audio

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/KongSugoi/zencare-companion/pkg/models"
)

func sampleAt(pcm []byte, i int) int16 {
	return int16(binary.LittleEndian.Uint16(pcm[i*2 : i*2+2]))
}

func TestRenderCycleLength(t *testing.T) {
	beeps := []models.Beep{
		{Offset: 100 * time.Millisecond, Frequency: 800, Duration: 150 * time.Millisecond, Volume: 0.3},
	}

	pcm := RenderCycle(beeps)

	// 100ms offset + 150ms beep + 50ms tail = 300ms of samples
	want := SampleRate * 3 / 10 * 2
	if len(pcm) != want {
		t.Fatalf("expected %d bytes, got %d", want, len(pcm))
	}
}

func TestRenderCycleSilentBeforeFirstBeep(t *testing.T) {
	beeps := []models.Beep{
		{Offset: 100 * time.Millisecond, Frequency: 800, Duration: 150 * time.Millisecond, Volume: 0.3},
	}

	pcm := RenderCycle(beeps)

	// Everything before the beep offset is silence
	lead := int(float64(SampleRate) * 0.1)
	for i := 0; i < lead; i++ {
		if sampleAt(pcm, i) != 0 {
			t.Fatalf("expected silence at sample %d, got %d", i, sampleAt(pcm, i))
		}
	}
}

func TestRenderCycleContainsTone(t *testing.T) {
	beeps := []models.Beep{
		{Offset: 0, Frequency: 1200, Duration: 200 * time.Millisecond, Volume: 0.5},
	}

	pcm := RenderCycle(beeps)

	var peak int16
	for i := 0; i < len(pcm)/2; i++ {
		s := sampleAt(pcm, i)
		if s < 0 {
			s = -s
		}
		if s > peak {
			peak = s
		}
	}

	// Peak should approach the requested volume
	want := int16(0.4 * 32767)
	if peak < want {
		t.Fatalf("tone too quiet: peak %d, want at least %d", peak, want)
	}
}

func TestRenderCycleClipsOverlappingBeeps(t *testing.T) {
	// Two loud overlapping tones must clip, not wrap around
	beeps := []models.Beep{
		{Offset: 0, Frequency: 1000, Duration: 100 * time.Millisecond, Volume: 0.9},
		{Offset: 0, Frequency: 1000, Duration: 100 * time.Millisecond, Volume: 0.9},
	}

	pcm := RenderCycle(beeps)

	for i := 0; i < len(pcm)/2; i++ {
		s := int(sampleAt(pcm, i))
		if s > 32767 || s < -32768 {
			t.Fatalf("sample %d out of int16 range: %d", i, s)
		}
	}
}

func TestRenderCycleEmptyBeeps(t *testing.T) {
	pcm := RenderCycle(nil)
	// 50ms tail only
	if want := SampleRate / 20 * 2; len(pcm) != want {
		t.Fatalf("unexpected length for empty cycle: %d", len(pcm))
	}
}
