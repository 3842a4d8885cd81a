// Command coursecheck validates course content: the JSON metadata of every
// course and the quiz section of every lesson.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dgallion1/coursecheck/internal/config"
	"github.com/dgallion1/coursecheck/internal/lint"
	"github.com/dgallion1/coursecheck/internal/quiz"
	"github.com/spf13/cobra"
)

// errViolations signals a completed check that found problems.
var errViolations = errors.New("content has violations")

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errViolations) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		verbose    bool
	)
	rootCmd := &cobra.Command{
		Use:           "coursecheck",
		Short:         "Validate course metadata and lesson quizzes",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", os.Getenv("CONFIG_FILE"), "YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log progress to stderr")

	env := func() (config.Config, *slog.Logger, error) {
		cfg, err := config.LoadFile(configPath)
		if err != nil {
			return cfg, nil, err
		}
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		return cfg, log, nil
	}

	rootCmd.AddCommand(newLintCmd(env), newLessonCmd(env))
	return rootCmd
}

type envFunc func() (config.Config, *slog.Logger, error)

func newLintCmd(env envFunc) *cobra.Command {
	var (
		content string
		globs   []string
		strict  bool
		asJSON  bool
		workers int
	)
	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Check course metadata and every lesson below the content root",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := env()
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("content") {
				cfg.ContentPath = content
			}
			if flags.Changed("glob") {
				cfg.LessonGlobs = globs
			}
			if flags.Changed("strict-headings") {
				cfg.StrictHeadings = strict
			}
			if flags.Changed("workers") {
				cfg.MaxConcurrentFiles = workers
			}
			if err := cfg.ValidateCLI(); err != nil {
				return err
			}

			rep, err := lint.Run(cmd.Context(), lint.Options{
				Root:               cfg.ContentPath,
				LessonGlobs:        cfg.LessonGlobs,
				MaxConcurrentFiles: cfg.MaxConcurrentFiles,
				Quiz:               quiz.Options{StrictHeadings: cfg.StrictHeadings},
			}, log)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(rep); err != nil {
					return err
				}
			} else {
				renderReport(out, rep)
			}
			if !rep.OK() {
				return errViolations
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&content, "content", "", "content root (default $CONTENT_PATH or ./content)")
	cmd.Flags().StringArrayVar(&globs, "glob", nil, "lesson glob relative to the content root (repeatable)")
	cmd.Flags().BoolVar(&strict, "strict-headings", false, "treat headings nested in other blocks as violations")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full report as JSON")
	cmd.Flags().IntVar(&workers, "workers", 0, "lesson files checked concurrently")
	return cmd
}

func newLessonCmd(env envFunc) *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "lesson FILE...",
		Short: "Check the quiz section of individual lesson files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := env()
			if err != nil {
				return err
			}
			opts := quiz.Options{StrictHeadings: cfg.StrictHeadings || strict}

			results := make([]lint.FileResult, 0, len(args))
			failed := false
			for _, path := range args {
				res := lint.LintFile(path, opts, log)
				failed = failed || !res.OK()
				results = append(results, res)
			}
			renderFiles(cmd.OutOrStdout(), results)
			if failed {
				return errViolations
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict-headings", false, "treat headings nested in other blocks as violations")
	return cmd
}
