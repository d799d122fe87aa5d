package config

import (
	"fmt"
	"os"
	"strings"
)

type Config struct {
	Paths       PathsConfig       `yaml:"paths"`
	Model       ModelConfig       `yaml:"model"`
	Questions   QuestionsConfig   `yaml:"questions"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
}

type PathsConfig struct {
	Inbox    string `yaml:"inbox"`
	Output   string `yaml:"output"`
	Archived string `yaml:"archived"`
}

type ModelConfig struct {
	Name           string  `yaml:"name"`
	Temperature    float32 `yaml:"temperature"`
	MaxTokens      int32   `yaml:"max_tokens"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`
}

type QuestionsConfig struct {
	// File points at a one-question-per-line text file. Empty means the
	// built-in handover question set.
	File string `yaml:"file"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	// MaxConcurrent bounds transcripts analyzed at once in watch mode.
	MaxConcurrent int `yaml:"max_concurrent"`
	// MaxQuestions bounds in-flight model calls per transcript.
	MaxQuestions int `yaml:"max_questions"`
}

func (c *Config) Validate() error {
	if c.Paths.Inbox == "" {
		return fmt.Errorf("paths.inbox is required")
	}
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}

	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Model.Name == "" {
		c.Model.Name = "gemini-2.5-pro"
	}
	if c.Model.MaxTokens == 0 {
		c.Model.MaxTokens = 2000
	}
	if c.Model.TimeoutSeconds == 0 {
		c.Model.TimeoutSeconds = 120
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}
	if c.Performance.MaxQuestions == 0 {
		c.Performance.MaxQuestions = 4
	}

	return nil
}

// APIKeys reads the Gemini credential(s) from the environment. Multiple
// keys may be supplied comma-separated; the client rotates through them
// when one is rate limited.
func APIKeys() ([]string, error) {
	raw := os.Getenv("GEMINI_API_KEY")
	if raw == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}

	var keys []string
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("GEMINI_API_KEY is empty")
	}

	return keys, nil
}
