package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"time"
)

// Player tracks a single in-flight playback with cancellation support
type Player struct {
	stopChan chan struct{}
}

// PlayPCM plays one buffer of signed 16-bit little-endian mono PCM at
// SampleRate and returns a Player for cancellation. Returns nil when the
// audio context is unavailable; callers treat that as a silent cue.
func PlayPCM(pcm []byte) *Player {
	if !ContextReady() {
		return nil
	}

	p := &Player{stopChan: make(chan struct{})}

	// Play the sound in a goroutine so it doesn't block
	go func() {
		player := globalAudioCtx.NewPlayer(bytes.NewReader(pcm))
		player.Play()

		// Wait for the sound to finish playing or stop signal
		for player.IsPlaying() {
			select {
			case <-p.stopChan:
				player.Pause()
				player.Close()
				return
			case <-time.After(10 * time.Millisecond):
				// Continue checking
			}
		}

		if err := player.Close(); err != nil {
			log.Printf("Failed to close audio player: %v", err)
		}
	}()

	return p
}

// Stop cancels the playback. Safe on a nil Player and safe to call once.
func (p *Player) Stop() {
	if p == nil {
		return
	}
	close(p.stopChan)
}

// PlayWAV decodes a WAV file (as returned by the speech synthesis service),
// converts it to the context format and plays it once.
func PlayWAV(data []byte) *Player {
	format, audioData, err := parseWAV(data)
	if err != nil {
		log.Printf("Failed to parse WAV file: %v", err)
		return nil
	}

	pcm, err := convertToContextFormat(format, audioData)
	if err != nil {
		log.Printf("Failed to convert WAV audio: %v", err)
		return nil
	}

	return PlayPCM(pcm)
}

// wavFormat holds WAV file format information
type wavFormat struct {
	SampleRate int
	Channels   int
	BitDepth   int
}

// convertToContextFormat mixes the samples down to mono and resamples to
// SampleRate using nearest-neighbour interpolation. Only 16-bit input is
// supported; the synthesis service is asked for WAV output which is 16-bit.
func convertToContextFormat(format *wavFormat, data []byte) ([]byte, error) {
	if format.BitDepth != 16 {
		return nil, fmt.Errorf("unsupported WAV bit depth: %d", format.BitDepth)
	}
	if format.Channels < 1 {
		return nil, fmt.Errorf("invalid WAV channel count: %d", format.Channels)
	}

	frameSize := 2 * format.Channels
	numFrames := len(data) / frameSize

	mono := make([]int16, numFrames)
	for i := 0; i < numFrames; i++ {
		var sum int
		for c := 0; c < format.Channels; c++ {
			off := i*frameSize + c*2
			sum += int(int16(binary.LittleEndian.Uint16(data[off : off+2])))
		}
		mono[i] = int16(sum / format.Channels)
	}

	if format.SampleRate == SampleRate {
		out := make([]byte, numFrames*2)
		for i, v := range mono {
			binary.LittleEndian.PutUint16(out[i*2:], uint16(v))
		}
		return out, nil
	}

	outFrames := int(float64(numFrames) * float64(SampleRate) / float64(format.SampleRate))
	out := make([]byte, outFrames*2)
	for i := 0; i < outFrames; i++ {
		src := i * format.SampleRate / SampleRate
		if src >= numFrames {
			src = numFrames - 1
		}
		binary.LittleEndian.PutUint16(out[i*2:], uint16(mono[src]))
	}
	return out, nil
}

// parseWAV parses a WAV file and returns the format and audio data
func parseWAV(data []byte) (*wavFormat, []byte, error) {
	reader := bytes.NewReader(data)

	// Read RIFF header
	riff := make([]byte, 4)
	if _, err := reader.Read(riff); err != nil {
		return nil, nil, err
	}
	if string(riff) != "RIFF" {
		return nil, nil, fmt.Errorf("not a RIFF file")
	}

	// Skip file size
	reader.Seek(4, io.SeekCurrent)

	// Read WAVE header
	wave := make([]byte, 4)
	if _, err := reader.Read(wave); err != nil {
		return nil, nil, err
	}

	format := &wavFormat{}
	var dataStart int64
	var dataSize uint32

	// Read chunks
	for {
		chunkID := make([]byte, 4)
		if _, err := reader.Read(chunkID); err != nil {
			if err == io.EOF {
				break
			}
			return nil, nil, err
		}

		var chunkSize uint32
		if err := binary.Read(reader, binary.LittleEndian, &chunkSize); err != nil {
			return nil, nil, err
		}

		chunkIDStr := string(chunkID)

		if chunkIDStr == "fmt " {
			// Read format chunk
			var audioFormat uint16
			binary.Read(reader, binary.LittleEndian, &audioFormat)

			var numChannels uint16
			binary.Read(reader, binary.LittleEndian, &numChannels)
			format.Channels = int(numChannels)

			var sampleRate uint32
			binary.Read(reader, binary.LittleEndian, &sampleRate)
			format.SampleRate = int(sampleRate)

			// Skip byte rate and block align
			reader.Seek(6, io.SeekCurrent)

			var bitsPerSample uint16
			binary.Read(reader, binary.LittleEndian, &bitsPerSample)
			format.BitDepth = int(bitsPerSample)

			// Skip any extra format bytes
			remaining := chunkSize - 16
			if remaining > 0 {
				reader.Seek(int64(remaining), io.SeekCurrent)
			}
		} else if chunkIDStr == "data" {
			// Found data chunk
			dataStart, _ = reader.Seek(0, io.SeekCurrent)
			dataSize = chunkSize
			break
		} else {
			// Skip unknown chunk
			reader.Seek(int64(chunkSize), io.SeekCurrent)
		}
	}

	if dataSize == 0 {
		return nil, nil, fmt.Errorf("WAV file has no data chunk")
	}

	// Read audio data
	audioData := make([]byte, dataSize)
	reader.Seek(dataStart, io.SeekStart)
	reader.Read(audioData)

	return format, audioData, nil
}
