package analyzer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/kdipaolo/handover-flow/internal/questions"
	"github.com/kdipaolo/handover-flow/internal/report"
	"github.com/kdipaolo/handover-flow/internal/transcript"
)

// Analyze orchestrates one full run: load the transcript, ask every
// question, write the report, then archive the input.
//
// Question failures do not abort the run. The failed section carries the
// error text in the report and Analyze returns a joined error afterwards,
// so a partially answered report still lands on disk while the exit code
// reflects the failures. A transcript that cannot be loaded is fatal
// before any model call is made.
func (a *implAnalyzer) Analyze(ctx context.Context, transcriptPath string) error {
	startTime := time.Now()

	a.logger.Info(ctx, "========================================")
	a.logger.Info(ctx, "Starting handover analysis: %s", transcriptPath)
	a.logger.Info(ctx, "========================================")

	tr, err := transcript.Load(transcriptPath)
	if err != nil {
		return fmt.Errorf("load transcript: %w", err)
	}
	a.logger.Info(ctx, "Loaded transcript: %d characters, %d speakers detected", len(tr.Text), len(tr.Speakers))

	qs, err := questions.Resolve(a.cfg.Questions.File)
	if err != nil {
		return fmt.Errorf("load questions: %w", err)
	}
	a.logger.Info(ctx, "Processing %d questions with model %s", len(qs), a.cfg.Model.Name)

	sections := a.runQuestions(ctx, tr, qs)

	if err := os.MkdirAll(a.cfg.Paths.Output, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	outputPath := report.OutputPath(a.cfg.Paths.Output, tr.Project())
	meta := report.Meta{
		Project:  tr.Project(),
		Model:    a.cfg.Model.Name,
		Date:     time.Now(),
		Format:   tr.Format,
		Speakers: tr.Speakers,
	}
	if err := report.Write(meta, sections, outputPath); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	var failed []error
	for i, s := range sections {
		if s.Err != nil {
			failed = append(failed, fmt.Errorf("question %d (%s): %w", i+1, s.Question, s.Err))
		}
	}

	// Keep a failed transcript in place so the run can be retried after
	// the report has been reviewed.
	if len(failed) == 0 {
		if err := a.archive(ctx, transcriptPath); err != nil {
			a.logger.Warn(ctx, "Failed to archive transcript: %v", err)
		}
	}

	duration := time.Since(startTime)
	a.logger.Info(ctx, "========================================")
	a.logger.Info(ctx, "Analysis complete: %d/%d questions answered", len(sections)-len(failed), len(sections))
	a.logger.Info(ctx, "Report: %s", outputPath)
	a.logger.Info(ctx, "Processing time: %s", duration)
	a.logger.Info(ctx, "========================================")

	if len(failed) > 0 {
		return fmt.Errorf("%d of %d questions failed: %w", len(failed), len(sections), errors.Join(failed...))
	}

	return nil
}

// runQuestions asks every question with at most performance.max_questions
// model calls in flight. Answers land in an index-addressed slice so the
// report always keeps question order regardless of completion order.
func (a *implAnalyzer) runQuestions(ctx context.Context, tr *transcript.Transcript, qs []string) []report.Section {
	maxInFlight := a.cfg.Performance.MaxQuestions
	if maxInFlight <= 0 {
		maxInFlight = 1
	}

	sections := make([]report.Section, len(qs))
	sem := newSemaphore(maxInFlight)
	var wg sync.WaitGroup

	for i, q := range qs {
		sections[i].Question = q

		if err := sem.acquire(ctx); err != nil {
			sections[i].Err = err
			continue
		}

		wg.Add(1)
		go func(i int, q string) {
			defer wg.Done()
			defer sem.release()

			a.logger.Info(ctx, "[%d/%d] Asking: %s", i+1, len(qs), q)

			answer, err := a.generator.Generate(ctx, systemPrompt, buildPrompt(tr.Text, q))
			if err != nil {
				a.logger.Error(ctx, "Question %d failed: %v", i+1, err)
				sections[i].Err = err
				return
			}
			sections[i].Answer = answer
		}(i, q)
	}

	wg.Wait()
	return sections
}

// archive moves a fully processed transcript out of the inbox so watch
// mode won't pick it up again.
func (a *implAnalyzer) archive(ctx context.Context, transcriptPath string) error {
	if err := os.MkdirAll(a.cfg.Paths.Archived, 0755); err != nil {
		return fmt.Errorf("create archived dir: %w", err)
	}

	destPath := filepath.Join(a.cfg.Paths.Archived, filepath.Base(transcriptPath))
	a.logger.Info(ctx, "Archiving transcript: %s -> %s", transcriptPath, destPath)

	if err := os.Rename(transcriptPath, destPath); err != nil {
		return fmt.Errorf("move to archived: %w", err)
	}

	return nil
}
