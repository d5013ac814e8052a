package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port           int      `yaml:"port"`
		AllowedOrigins []string `yaml:"allowedOrigins"`
	} `yaml:"server"`

	Gemini struct {
		ApiKey      string   `yaml:"apiKey"`
		TextModel   string   `yaml:"textModel"`
		SpeechModel string   `yaml:"speechModel"`
		BaseURL     string   `yaml:"baseUrl"`
		Temperature *float32 `yaml:"temperature"`
	} `yaml:"gemini"`

	Voice struct {
		MaxChars    int    `yaml:"maxChars"`
		SampleRate  int    `yaml:"sampleRate"`
		Channels    int    `yaml:"channels"`
		MaleVoice   string `yaml:"maleVoice"`
		FemaleVoice string `yaml:"femaleVoice"`
	} `yaml:"voice"`

	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	RateLimit struct {
		MaxRequests   int `yaml:"maxRequests"`
		WindowSeconds int `yaml:"windowSeconds"`
	} `yaml:"rateLimit"`

	Seed bool `yaml:"seed"`
}

// Default returns the configuration used when no file value is set
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	cfg.Seed = true
	return &cfg
}

// LoadEnv loads variables from .env files (default ./.env) without
// overriding ones already set in the environment.
func LoadEnv(files ...string) {
	if err := godotenv.Load(files...); err != nil {
		log.Println("No .env file found, using system environment")
		return
	}
	log.Println(".env file loaded")
}

// LoadConfig reads the configuration file. The Gemini key may also come from
// the GEMINI_API_KEY or API_KEY environment variables, which take precedence.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Config{Seed: true}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.Gemini.ApiKey = key
	} else if key := os.Getenv("API_KEY"); key != "" {
		c.Gemini.ApiKey = key
	}

	if c.Server.Port == 0 {
		c.Server.Port = 1313
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"http://localhost:5173"}
	}
	if c.Gemini.TextModel == "" {
		c.Gemini.TextModel = "gemini-2.5-flash"
	}
	if c.Gemini.SpeechModel == "" {
		c.Gemini.SpeechModel = "gemini-2.5-flash-preview-tts"
	}
	if c.Gemini.Temperature == nil {
		temp := float32(0.7)
		c.Gemini.Temperature = &temp
	}
	if c.Voice.MaxChars == 0 {
		c.Voice.MaxChars = 500
	}
	if c.Voice.SampleRate == 0 {
		c.Voice.SampleRate = 24000
	}
	if c.Voice.Channels == 0 {
		c.Voice.Channels = 1
	}
	if c.Voice.MaleVoice == "" {
		c.Voice.MaleVoice = "Fenrir"
	}
	if c.Voice.FemaleVoice == "" {
		c.Voice.FemaleVoice = "Kore"
	}
	if c.RateLimit.MaxRequests == 0 {
		c.RateLimit.MaxRequests = 5
	}
	if c.RateLimit.WindowSeconds == 0 {
		c.RateLimit.WindowSeconds = 60
	}
}
