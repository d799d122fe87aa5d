package llm

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/kdipaolo/handover-flow/internal/config"
	"github.com/kdipaolo/handover-flow/internal/logger"
)

func TestGenerateNoKeys(t *testing.T) {
	g := New(nil, config.ModelConfig{Name: "gemini-2.5-pro"}, logger.New("error"))

	_, err := g.Generate(context.Background(), "system", "prompt")
	if !errors.Is(err, ErrNoAPIKeys) {
		t.Errorf("Generate() error = %v, want ErrNoAPIKeys", err)
	}
}

func TestRotateKey(t *testing.T) {
	g := New([]string{"a", "b", "c"}, config.ModelConfig{}, logger.New("error")).(*implGenerator)

	order := []int{0, 1, 2, 0, 1}
	for i, want := range order {
		if g.currentKey != want {
			t.Fatalf("rotation %d: currentKey = %d, want %d", i, g.currentKey, want)
		}
		g.rotateKey()
	}
}

// A quota error tends to hit every in-flight question at once, so rotation
// happens from many goroutines together. No rotation may be lost and the
// index must stay in range.
func TestRotateKeyConcurrent(t *testing.T) {
	keys := []string{"a", "b", "c"}
	g := New(keys, config.ModelConfig{}, logger.New("error")).(*implGenerator)

	const goroutines = 8
	const rotations = 100

	var wg sync.WaitGroup
	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range rotations {
				g.rotateKey()
				key, idx := g.nextKey()
				if idx < 0 || idx >= len(keys) || key != keys[idx] {
					t.Errorf("nextKey() = (%q, %d), out of range", key, idx)
					return
				}
			}
		}()
	}
	wg.Wait()

	want := goroutines * rotations % len(keys)
	if _, idx := g.nextKey(); idx != want {
		t.Errorf("currentKey = %d after %d rotations, want %d", idx, goroutines*rotations, want)
	}
}

func TestIsQuotaErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"http 429", errors.New("googleapi: Error 429: rate limited"), true},
		{"quota message", errors.New("quota exceeded for this project"), true},
		{"resource exhausted", errors.New("rpc error: code = ResourceExhausted desc = RESOURCE_EXHAUSTED"), true},
		{"auth failure", errors.New("API key not valid"), false},
		{"network failure", errors.New("dial tcp: connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isQuotaErr(tt.err); got != tt.want {
				t.Errorf("isQuotaErr() = %v, want %v", got, tt.want)
			}
		})
	}
}
