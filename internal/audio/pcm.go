package audio

import (
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrDecode reports a payload that is not valid base64.
	ErrDecode = errors.New("audio: malformed base64 payload")
	// ErrFormat reports a payload that cannot be split into whole 16-bit frames.
	ErrFormat = errors.New("audio: misaligned pcm buffer")
)

const bytesPerSample = 2

// Buffer is a decoded, playable audio buffer with one float sequence per channel.
type Buffer struct {
	SampleRate  int         `json:"sampleRate"`
	NumChannels int         `json:"numChannels"`
	Channels    [][]float32 `json:"channels"`
}

// Frames returns the number of samples in each channel.
func (b *Buffer) Frames() int {
	if b == nil || len(b.Channels) == 0 {
		return 0
	}
	return len(b.Channels[0])
}

// Duration returns the playback length of the buffer.
func (b *Buffer) Duration() time.Duration {
	if b == nil || b.SampleRate <= 0 {
		return 0
	}
	return time.Duration(b.Frames()) * time.Second / time.Duration(b.SampleRate)
}

// DecodeBase64PCM16 decodes a base64 string of interleaved little-endian
// signed 16-bit samples into a Buffer.
func DecodeBase64PCM16(payload string, sampleRate, channels int) (*Buffer, error) {
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return DecodePCM16(raw, sampleRate, channels)
}

// DecodePCM16 converts raw interleaved little-endian int16 samples into
// normalized float channels. Sample i of channel c is raw[i*channels+c]/32768.
func DecodePCM16(raw []byte, sampleRate, channels int) (*Buffer, error) {
	if channels < 1 {
		return nil, fmt.Errorf("%w: channel count %d", ErrFormat, channels)
	}
	if sampleRate < 1 {
		return nil, fmt.Errorf("%w: sample rate %d", ErrFormat, sampleRate)
	}
	if len(raw)%bytesPerSample != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a whole number of samples", ErrFormat, len(raw))
	}

	samples := len(raw) / bytesPerSample
	if samples%channels != 0 {
		return nil, fmt.Errorf("%w: %d samples do not divide into %d channels", ErrFormat, samples, channels)
	}
	frames := samples / channels

	buf := &Buffer{
		SampleRate:  sampleRate,
		NumChannels: channels,
		Channels:    make([][]float32, channels),
	}
	for c := range buf.Channels {
		buf.Channels[c] = make([]float32, frames)
	}

	for i := 0; i < frames; i++ {
		for c := 0; c < channels; c++ {
			off := (i*channels + c) * bytesPerSample
			v := int16(binary.LittleEndian.Uint16(raw[off:]))
			buf.Channels[c][i] = float32(v) / 32768.0
		}
	}
	return buf, nil
}
