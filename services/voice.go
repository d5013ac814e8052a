package services

import (
	"context"
	"fmt"
	"log"

	"edumaster/internal/audio"
	"edumaster/models"
)

// VoiceConfig fixes the speech model, voices and PCM layout of the provider
type VoiceConfig struct {
	Model       string
	MaxChars    int
	SampleRate  int
	Channels    int
	MaleVoice   string
	FemaleVoice string
}

// VoiceService reads generated reports aloud
type VoiceService struct {
	synth SpeechSynthesizer
	cfg   VoiceConfig
}

// NewVoiceService creates a voice service
func NewVoiceService(synth SpeechSynthesizer, cfg VoiceConfig) *VoiceService {
	return &VoiceService{synth: synth, cfg: cfg}
}

// VoiceFor maps a gender tag to the provider voice; anything but "Nam" reads
// with the female voice.
func (v *VoiceService) VoiceFor(gender string) string {
	if gender == models.GenderMale {
		return v.cfg.MaleVoice
	}
	return v.cfg.FemaleVoice
}

// GenerateVoiceReport synthesizes the first MaxChars characters of text.
// A nil buffer with a nil error means no audio is available: the provider
// failed or returned no payload. Payloads that cannot be decoded are
// returned as errors wrapping audio.ErrDecode or audio.ErrFormat.
func (v *VoiceService) GenerateVoiceReport(ctx context.Context, text, gender string) (*audio.Buffer, error) {
	if v == nil || v.synth == nil {
		log.Printf("TTS error: speech synthesizer not configured")
		return nil, nil
	}
	data, err := v.synth.SynthesizeSpeech(ctx, SpeechRequest{
		Model: v.cfg.Model,
		Text:  TruncateRunes(text, v.cfg.MaxChars),
		Voice: v.VoiceFor(gender),
	})
	if err != nil {
		log.Printf("TTS error: %v", err)
		return nil, nil
	}
	if len(data) == 0 {
		return nil, nil
	}

	buf, err := audio.DecodePCM16(data, v.cfg.SampleRate, v.cfg.Channels)
	if err != nil {
		return nil, fmt.Errorf("failed to decode speech payload: %w", err)
	}
	return buf, nil
}

// TruncateRunes cuts s to at most n characters; n <= 0 leaves s unchanged.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
