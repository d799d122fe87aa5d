package analyzer

import (
	"github.com/kdipaolo/handover-flow/internal/config"
	"github.com/kdipaolo/handover-flow/internal/llm"
	"github.com/kdipaolo/handover-flow/internal/logger"
)

type implAnalyzer struct {
	cfg       *config.Config
	generator llm.Generator
	logger    logger.Logger
}

// New creates an Analyzer instance
func New(cfg *config.Config, gen llm.Generator, log logger.Logger) Analyzer {
	return &implAnalyzer{
		cfg:       cfg,
		generator: gen,
		logger:    log,
	}
}
