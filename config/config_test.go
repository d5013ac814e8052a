package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "")

	cfg, err := LoadConfig(writeConfig(t, "server:\n  port: 9000\ngemini:\n  apiKey: file-key\n"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Expected port 9000, got %d", cfg.Server.Port)
	}
	if cfg.Gemini.ApiKey != "file-key" {
		t.Errorf("Expected key from file, got %q", cfg.Gemini.ApiKey)
	}
	if cfg.Gemini.TextModel != "gemini-2.5-flash" || cfg.Gemini.SpeechModel != "gemini-2.5-flash-preview-tts" {
		t.Errorf("Unexpected default models: %s / %s", cfg.Gemini.TextModel, cfg.Gemini.SpeechModel)
	}
	if cfg.Gemini.Temperature == nil || *cfg.Gemini.Temperature != 0.7 {
		t.Errorf("Expected temperature 0.7, got %v", cfg.Gemini.Temperature)
	}
	if cfg.Voice.MaxChars != 500 || cfg.Voice.SampleRate != 24000 || cfg.Voice.Channels != 1 {
		t.Errorf("Unexpected voice defaults: %+v", cfg.Voice)
	}
	if cfg.Voice.MaleVoice != "Fenrir" || cfg.Voice.FemaleVoice != "Kore" {
		t.Errorf("Unexpected voice names: %+v", cfg.Voice)
	}
	if !cfg.Seed {
		t.Errorf("Expected seeding enabled by default")
	}
}

func TestLoadConfigEnvKeyOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")

	cfg, err := LoadConfig(writeConfig(t, "gemini:\n  apiKey: file-key\nseed: false\n"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Gemini.ApiKey != "env-key" {
		t.Errorf("Expected env key to win, got %q", cfg.Gemini.ApiKey)
	}
	if cfg.Seed {
		t.Errorf("Expected seeding disabled")
	}
}

func TestLoadConfigKeepsZeroTemperature(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "gemini:\n  temperature: 0\n"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Gemini.Temperature == nil || *cfg.Gemini.Temperature != 0 {
		t.Errorf("Expected explicit temperature 0 to be kept, got %v", cfg.Gemini.Temperature)
	}

	if def := Default(); def.Gemini.Temperature == nil || *def.Gemini.Temperature != 0.7 {
		t.Errorf("Expected default temperature 0.7, got %v", def.Gemini.Temperature)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Errorf("Expected error for missing file")
	}
	if _, err := LoadConfig(writeConfig(t, "server: [unclosed")); err == nil {
		t.Errorf("Expected error for invalid yaml")
	}
}

func TestLoadEnvSuppliesKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "")
	os.Unsetenv("API_KEY")

	envFile := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(envFile, []byte("API_KEY=dotenv-key\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	LoadEnv(envFile)

	cfg, err := LoadConfig(writeConfig(t, "seed: true\n"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Gemini.ApiKey != "dotenv-key" {
		t.Errorf("Expected key from .env, got %q", cfg.Gemini.ApiKey)
	}

	// missing files are tolerated
	LoadEnv(filepath.Join(t.TempDir(), "absent.env"))
}
