package analyzer

import "context"

// Analyzer runs the full question set against one transcript and writes
// the analysis report.
type Analyzer interface {
	Analyze(ctx context.Context, transcriptPath string) error
}
