package audio

import (
	"math"
	"time"

	"github.com/KongSugoi/zencare-companion/pkg/models"
)

// Envelope attack time. Each beep ramps from silence to its volume over
// this window and decays linearly back to silence by the end of the beep,
// avoiding clicks at tone edges.
const attackTime = 10 * time.Millisecond

// cycleTail of silence after the last beep so the cycle does not end
// abruptly mid-decay.
const cycleTail = 50 * time.Millisecond

// RenderCycle synthesizes one alarm cycle as signed 16-bit little-endian
// mono PCM at SampleRate. Beeps are sine tones with a linear attack and
// decay, summed where they overlap.
func RenderCycle(beeps []models.Beep) []byte {
	var total time.Duration
	for _, b := range beeps {
		if end := b.Offset + b.Duration; end > total {
			total = end
		}
	}
	total += cycleTail

	numSamples := samplesFor(total)
	samples := make([]float64, numSamples)

	for _, b := range beeps {
		start := samplesFor(b.Offset)
		length := samplesFor(b.Duration)
		attack := samplesFor(attackTime)
		if attack > length {
			attack = length
		}

		for i := 0; i < length; i++ {
			idx := start + i
			if idx >= numSamples {
				break
			}

			// Linear ramp up over the attack window, then linear decay to
			// zero at the end of the beep.
			var gain float64
			if i < attack {
				gain = b.Volume * float64(i) / float64(attack)
			} else {
				gain = b.Volume * float64(length-i) / float64(length-attack)
			}

			t := float64(i) / float64(SampleRate)
			samples[idx] += gain * math.Sin(2*math.Pi*b.Frequency*t)
		}
	}

	pcm := make([]byte, numSamples*2)
	for i, s := range samples {
		if s > 1.0 {
			s = 1.0
		} else if s < -1.0 {
			s = -1.0
		}
		v := int16(s * math.MaxInt16)
		pcm[i*2] = byte(v)
		pcm[i*2+1] = byte(v >> 8)
	}

	return pcm
}

// samplesFor converts a duration to a sample count at SampleRate using
// integer arithmetic, so cycle lengths are exact.
func samplesFor(d time.Duration) int {
	return int(d * SampleRate / time.Second)
}
