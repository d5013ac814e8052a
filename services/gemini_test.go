package services

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// newFakeGemini serves a fixed generateContent response and records the last request body.
func newFakeGemini(t *testing.T, response string) (*GeminiClient, *string) {
	t.Helper()
	var lastBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		lastBody = string(body)
		if !strings.HasSuffix(r.URL.Path, ":generateContent") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, response)
	}))
	t.Cleanup(srv.Close)

	client, err := NewGeminiClient(context.Background(), "test-key", srv.URL+"/")
	if err != nil {
		t.Fatalf("NewGeminiClient: %v", err)
	}
	return client, &lastBody
}

func TestGeminiGenerateTextReturnsTextVerbatim(t *testing.T) {
	client, body := newFakeGemini(t, `{"candidates":[{"content":{"role":"model","parts":[{"text":"  Báo cáo\n"}]}}]}`)

	got, err := client.GenerateText(context.Background(), TextRequest{
		Model:             "gemini-2.5-flash",
		Prompt:            "Viết nhận xét",
		SystemInstruction: "persona",
		Temperature:       0.7,
	})
	if err != nil {
		t.Fatalf("GenerateText: %v", err)
	}
	if got != "  Báo cáo\n" {
		t.Errorf("Expected untouched text, got %q", got)
	}
	if !strings.Contains(*body, "Viết nhận xét") || !strings.Contains(*body, "persona") {
		t.Errorf("Expected prompt and system instruction in request, got %s", *body)
	}
}

func TestReportServiceKeepsWhitespaceOnlyText(t *testing.T) {
	client, _ := newFakeGemini(t, `{"candidates":[{"content":{"role":"model","parts":[{"text":" "}]}}]}`)
	svc := NewReportService(client, "gemini-2.5-flash", 0.7)

	if got := svc.GenerateStudentReport(context.Background(), seededRequest()); got != " " {
		t.Errorf("Expected whitespace text passed through, got %q", got)
	}
}

func TestGeminiSynthesizeSpeechReturnsInlineData(t *testing.T) {
	// base64 of 00 40 00 c0
	client, body := newFakeGemini(t, `{"candidates":[{"content":{"role":"model","parts":[{"inlineData":{"mimeType":"audio/L16;rate=24000","data":"AEAAwA=="}}]}}]}`)

	data, err := client.SynthesizeSpeech(context.Background(), SpeechRequest{
		Model: "gemini-2.5-flash-preview-tts",
		Text:  "Xin chào",
		Voice: "Kore",
	})
	if err != nil {
		t.Fatalf("SynthesizeSpeech: %v", err)
	}
	if !bytes.Equal(data, []byte{0x00, 0x40, 0x00, 0xC0}) {
		t.Errorf("Unexpected audio payload %v", data)
	}
	if !strings.Contains(*body, "Kore") {
		t.Errorf("Expected voice name in request, got %s", *body)
	}
}

func TestGeminiSynthesizeSpeechWithoutAudio(t *testing.T) {
	client, _ := newFakeGemini(t, `{"candidates":[]}`)

	data, err := client.SynthesizeSpeech(context.Background(), SpeechRequest{Model: "m", Text: "x", Voice: "Fenrir"})
	if err != nil || data != nil {
		t.Errorf("Expected (nil, nil) for response without audio, got (%v, %v)", data, err)
	}
}

func TestNilGeminiClient(t *testing.T) {
	var client *GeminiClient
	if _, err := client.GenerateText(context.Background(), TextRequest{}); err == nil {
		t.Errorf("Expected error from uninitialized client")
	}
	if _, err := client.SynthesizeSpeech(context.Background(), SpeechRequest{}); err == nil {
		t.Errorf("Expected error from uninitialized client")
	}
}
