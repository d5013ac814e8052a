package services

import (
	"context"
	"errors"

	"google.golang.org/genai"
)

// TextRequest is one call to the generative text endpoint
type TextRequest struct {
	Model             string
	Prompt            string
	SystemInstruction string
	Temperature       float32
}

// SpeechRequest is one call to the speech synthesis endpoint
type SpeechRequest struct {
	Model string
	Text  string
	Voice string
}

// TextGenerator produces free text from a prompt
type TextGenerator interface {
	GenerateText(ctx context.Context, req TextRequest) (string, error)
}

// SpeechSynthesizer returns the raw audio payload for a text, or nil when
// the response carried no audio.
type SpeechSynthesizer interface {
	SynthesizeSpeech(ctx context.Context, req SpeechRequest) ([]byte, error)
}

// GeminiClient implements TextGenerator and SpeechSynthesizer over the Gemini API
type GeminiClient struct {
	client *genai.Client
}

// NewGeminiClient creates a Gemini API client. An empty key falls back to
// the SDK's own environment lookup; an empty baseURL uses the public endpoint.
func NewGeminiClient(ctx context.Context, apiKey, baseURL string) (*GeminiClient, error) {
	config := &genai.ClientConfig{Backend: genai.BackendGeminiAPI}
	if apiKey != "" {
		config.APIKey = apiKey
	}
	if baseURL != "" {
		config.HTTPOptions.BaseURL = baseURL
	}
	client, err := genai.NewClient(ctx, config)
	if err != nil {
		return nil, err
	}
	return &GeminiClient{client: client}, nil
}

// GenerateText sends the prompt with a system instruction and returns the
// response text as received.
func (g *GeminiClient) GenerateText(ctx context.Context, req TextRequest) (string, error) {
	if g == nil || g.client == nil {
		return "", errors.New("gemini client not initialized")
	}
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(req.Temperature),
	}
	if req.SystemInstruction != "" {
		config.SystemInstruction = genai.NewContentFromText(req.SystemInstruction, genai.RoleUser)
	}
	resp, err := g.client.Models.GenerateContent(ctx, req.Model, genai.Text(req.Prompt), config)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

// SynthesizeSpeech requests audio output with a prebuilt voice and returns
// the inline data of the first part of the first candidate.
func (g *GeminiClient) SynthesizeSpeech(ctx context.Context, req SpeechRequest) ([]byte, error) {
	if g == nil || g.client == nil {
		return nil, errors.New("gemini client not initialized")
	}
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: req.Voice},
			},
		},
	}
	resp, err := g.client.Models.GenerateContent(ctx, req.Model, genai.Text(req.Text), config)
	if err != nil {
		return nil, err
	}
	return firstInlineData(resp), nil
}

func firstInlineData(resp *genai.GenerateContentResponse) []byte {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil
	}
	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 {
		return nil
	}
	part := content.Parts[0]
	if part == nil || part.InlineData == nil || len(part.InlineData.Data) == 0 {
		return nil
	}
	return part.InlineData.Data
}
