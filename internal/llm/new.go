package llm

import (
	"sync"

	"github.com/kdipaolo/handover-flow/internal/config"
	"github.com/kdipaolo/handover-flow/internal/logger"
)

type implGenerator struct {
	apiKeys []string
	logger  logger.Logger
	cfg     config.ModelConfig

	// mu guards currentKey; Generate runs from many question goroutines
	// at once and a quota error tends to hit all of them together.
	mu         sync.Mutex
	currentKey int
}

// New creates a Generator that rotates through the supplied Gemini API keys.
func New(apiKeys []string, cfg config.ModelConfig, log logger.Logger) Generator {
	return &implGenerator{
		apiKeys: apiKeys,
		logger:  log,
		cfg:     cfg,
	}
}
