package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

var (
	ErrNoAPIKeys     = errors.New("no API keys configured")
	ErrEmptyResponse = errors.New("empty response from model")
)

// Generate sends the prompt to Gemini and returns the answer text.
// Rotates API keys on 429 / quota errors; every call runs under the
// configured timeout so a stuck request cannot hang the run.
func (g *implGenerator) Generate(ctx context.Context, system, prompt string) (string, error) {
	if len(g.apiKeys) == 0 {
		return "", ErrNoAPIKeys
	}

	attempts := len(g.apiKeys)
	var lastErr error

	for range attempts {
		key, idx := g.nextKey()

		answer, err := g.generateWithKey(ctx, key, system, prompt)
		if err != nil {
			if isQuotaErr(err) {
				g.logger.Warn(ctx, "Key %d rate limited, rotating...", idx+1)
				g.rotateKey()
				lastErr = err
				continue
			}
			return "", err
		}
		return answer, nil
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (g *implGenerator) generateWithKey(ctx context.Context, key, system, prompt string) (string, error) {
	if g.cfg.TimeoutSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(g.cfg.TimeoutSeconds)*time.Second)
		defer cancel()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("create client: %w", err)
	}

	genCfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(g.cfg.Temperature),
		MaxOutputTokens: g.cfg.MaxTokens,
	}
	if system != "" {
		genCfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		}
	}

	result, err := client.Models.GenerateContent(ctx, g.cfg.Name, genai.Text(prompt), genCfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}

	var text strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			text.WriteString(part.Text)
		}
	}
	if text.Len() == 0 {
		return "", ErrEmptyResponse
	}

	return strings.TrimSpace(text.String()), nil
}

// nextKey snapshots the rotation state under the lock.
func (g *implGenerator) nextKey() (string, int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.apiKeys[g.currentKey], g.currentKey
}

func (g *implGenerator) rotateKey() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
}

func isQuotaErr(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "RESOURCE_EXHAUSTED")
}
