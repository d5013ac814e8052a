package audio

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"
	"math"
)

// WAVContentType is the MIME type written by WriteWAV.
const WAVContentType = "audio/wav"

// WriteWAV encodes the buffer as a 16-bit PCM RIFF/WAVE stream so it can be
// handed to any playback device or browser <audio> element.
func (b *Buffer) WriteWAV(w io.Writer) error {
	if b == nil || b.NumChannels < 1 || len(b.Channels) != b.NumChannels {
		return errors.New("audio: buffer has no channels")
	}
	frames := b.Frames()
	for _, ch := range b.Channels {
		if len(ch) != frames {
			return errors.New("audio: channels have different lengths")
		}
	}

	dataSize := uint32(frames * b.NumChannels * bytesPerSample)
	blockAlign := uint16(b.NumChannels * bytesPerSample)
	byteRate := uint32(b.SampleRate) * uint32(blockAlign)

	bw := bufio.NewWriter(w)
	le := binary.LittleEndian

	header := []interface{}{
		[4]byte{'R', 'I', 'F', 'F'},
		36 + dataSize,
		[4]byte{'W', 'A', 'V', 'E'},
		[4]byte{'f', 'm', 't', ' '},
		uint32(16),
		uint16(1), // PCM
		uint16(b.NumChannels),
		uint32(b.SampleRate),
		byteRate,
		blockAlign,
		uint16(16),
		[4]byte{'d', 'a', 't', 'a'},
		dataSize,
	}
	for _, field := range header {
		if err := binary.Write(bw, le, field); err != nil {
			return err
		}
	}

	var sample [bytesPerSample]byte
	for i := 0; i < frames; i++ {
		for c := 0; c < b.NumChannels; c++ {
			le.PutUint16(sample[:], uint16(toInt16(b.Channels[c][i])))
			if _, err := bw.Write(sample[:]); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// toInt16 is the inverse of the decode scaling; out-of-range input is clamped.
func toInt16(f float32) int16 {
	v := math.Round(float64(f) * 32768.0)
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}
	return int16(v)
}
