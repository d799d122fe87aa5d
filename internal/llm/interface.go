package llm

import "context"

// Generator answers a single prompt against a remote text-generation model.
type Generator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}
