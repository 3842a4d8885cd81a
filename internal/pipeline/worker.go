package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/coursecheck/internal/lint"
	"github.com/dgallion1/coursecheck/internal/quiz"
	"github.com/dgallion1/coursecheck/internal/reportsink"
)

// Worker processes a single lint run.
type Worker struct {
	sink  *reportsink.Client
	stats *RunStats
	log   *slog.Logger

	lessonGlobs        []string
	maxConcurrentFiles int
}

func NewWorker(sink *reportsink.Client, stats *RunStats, log *slog.Logger, lessonGlobs []string, maxFiles int) *Worker {
	return &Worker{
		sink:               sink,
		stats:              stats,
		log:                log,
		lessonGlobs:        lessonGlobs,
		maxConcurrentFiles: maxFiles,
	}
}

// Process lints the job's content root and publishes the report when a sink
// is configured.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("run_id", job.ID, "root", job.Root)

	// Phase 1: Lint
	job.SetStatus(StatusLinting, "linting")
	start := time.Now()
	rep, err := lint.Run(ctx, lint.Options{
		Root:               job.Root,
		LessonGlobs:        w.lessonGlobs,
		MaxConcurrentFiles: w.maxConcurrentFiles,
		Quiz:               quiz.Options{StrictHeadings: job.StrictHeadings},
		OnDiscover:         job.SetFilesTotal,
		OnFile: func(r lint.FileResult) {
			job.RecordFile(!r.OK())
		},
	}, log)
	if w.stats != nil {
		if err != nil {
			w.stats.Record(time.Since(start), 0, true)
		} else {
			w.stats.Record(time.Since(start), rep.FilesTotal, !rep.OK())
		}
	}
	if err != nil {
		log.Error("lint run failed", "error", err)
		job.AddError(fmt.Sprintf("lint: %s", err))
		job.SetStatus(StatusFailed, "linting")
		return
	}
	job.SetReport(rep)
	log.Info("lint run complete",
		"ok", rep.OK(),
		"files", rep.FilesTotal,
		"files_bad", rep.FilesBad,
		"structure_violations", len(rep.Structure),
		"duration_ms", rep.Duration.Milliseconds(),
	)

	if w.sink == nil {
		job.SetStatus(StatusCompleted, "done")
		return
	}

	// Phase 2: Publish
	job.SetStatus(StatusPublishing, "publishing")
	if err := w.publish(ctx, job, rep, log); err != nil {
		log.Error("publish failed", "error", err)
		job.AddError(fmt.Sprintf("publish: %s", err))
		job.SetStatus(StatusPartial, "done")
		return
	}
	job.SetStatus(StatusCompleted, "done")
}

// publish writes the run summary and report to the sink, retrying transient
// failures.
func (w *Worker) publish(ctx context.Context, job *Job, rep *lint.Report, log *slog.Logger) error {
	key := fmt.Sprintf("coursecheck/runs/%s", job.ID)
	entry := reportsink.Entry{
		Value: map[string]any{
			"root":       job.Root,
			"ok":         rep.OK(),
			"files":      rep.FilesTotal,
			"files_bad":  rep.FilesBad,
			"failures":   rep.Failures(),
			"created_at": job.CreatedAt.Format(time.RFC3339),
		},
		Source: "coursecheck:" + job.ID,
	}

	return withRetry(ctx, func(ctx context.Context) error {
		return w.sink.Put(ctx, key, entry)
	}, func(attempt int, err error) {
		log.Warn("retryable publish error", "attempt", attempt, "error", err)
	})
}
