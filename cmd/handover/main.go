package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kdipaolo/handover-flow/internal/analyzer"
	"github.com/kdipaolo/handover-flow/internal/config"
	"github.com/kdipaolo/handover-flow/internal/llm"
	"github.com/kdipaolo/handover-flow/internal/logger"
	"github.com/kdipaolo/handover-flow/internal/watcher"
)

var (
	configPath    string
	outputDir     string
	questionsFile string
)

var rootCmd = &cobra.Command{
	Use:   "handover",
	Short: "Analyze construction handover transcripts with a remote model",
	Long: `handover runs a fixed set of handoff questions against a construction
handover transcript (.txt or .docx) using a Gemini model and assembles the
answers into a formatted Word report.`,
	SilenceUsage: true,
}

var runCmd = &cobra.Command{
	Use:   "run <transcript>",
	Short: "Analyze one transcript and write its report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, gen, log, err := setup()
		if err != nil {
			return err
		}

		a := analyzer.New(cfg, gen, log)
		return a.Analyze(ctx, args[0])
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the inbox directory and analyze transcripts as they arrive",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		cfg, gen, log, err := setup()
		if err != nil {
			return err
		}

		if err := ensureDirectories(cfg); err != nil {
			return fmt.Errorf("create directories: %w", err)
		}

		a := analyzer.New(cfg, gen, log)

		w, err := watcher.New(cfg.Paths.Inbox, a.Analyze, log, cfg.Performance.MaxConcurrent)
		if err != nil {
			return fmt.Errorf("create watcher: %w", err)
		}
		defer w.Stop()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

		errChan := make(chan error, 1)
		go func() {
			errChan <- w.Start(ctx)
		}()

		log.Info(ctx, "========================================")
		log.Info(ctx, "Handover analyzer is ready!")
		log.Info(ctx, "Monitoring: %s", cfg.Paths.Inbox)
		log.Info(ctx, "Reports: %s", cfg.Paths.Output)
		log.Info(ctx, "Model: %s", cfg.Model.Name)
		log.Info(ctx, "Press Ctrl+C to stop")
		log.Info(ctx, "========================================")

		var startErr error
		select {
		case <-sigChan:
			log.Info(ctx, "Shutdown signal received")
			log.Info(ctx, "Shutting down gracefully...")
			cancel()
			// Start drains in-flight analyses before returning.
			startErr = <-errChan
		case startErr = <-errChan:
		}

		if startErr != nil && !errors.Is(startErr, context.Canceled) {
			log.Error(ctx, "Watcher error: %v", startErr)
			return startErr
		}

		log.Info(ctx, "Handover analyzer stopped")
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to the config file")
	runCmd.Flags().StringVar(&outputDir, "output", "", "override the report output directory")
	runCmd.Flags().StringVar(&questionsFile, "questions", "", "override the questions file (one question per line)")

	rootCmd.AddCommand(runCmd, watchCmd)
}

// setup loads config, applies flag overrides and builds the shared
// dependencies.
func setup() (*config.Config, llm.Generator, logger.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	if outputDir != "" {
		cfg.Paths.Output = outputDir
	}
	if questionsFile != "" {
		cfg.Questions.File = questionsFile
	}

	log := logger.New(cfg.Logging.Level)

	keys, err := config.APIKeys()
	if err != nil {
		return nil, nil, nil, err
	}

	gen := llm.New(keys, cfg.Model, log)

	return cfg, gen, log, nil
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Inbox,
		cfg.Paths.Output,
		cfg.Paths.Archived,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
