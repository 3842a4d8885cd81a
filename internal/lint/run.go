package lint

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/coursecheck/internal/course"
	"github.com/dgallion1/coursecheck/internal/quiz"
	"golang.org/x/sync/errgroup"
)

// Options configures a content run.
type Options struct {
	Root               string
	LessonGlobs        []string
	MaxConcurrentFiles int
	Quiz               quiz.Options
	// SkipStructure runs only the lesson checks.
	SkipStructure bool

	// OnDiscover and OnFile, when set, observe progress. OnFile is called
	// concurrently from the lint goroutines.
	OnDiscover func(files int)
	OnFile     func(FileResult)
}

// Run checks the course metadata and every lesson below opts.Root. Content
// defects are collected into the report; the error is reserved for failures
// that prevent checking, such as an unreadable root or a cancelled context.
func Run(ctx context.Context, opts Options, log *slog.Logger) (*Report, error) {
	start := time.Now()
	rep := &Report{Root: opts.Root, StartedAt: start}

	if !opts.SkipStructure {
		if err := checkStructure(opts.Root, rep, log); err != nil {
			return nil, err
		}
	}

	files, err := Discover(opts.Root, opts.LessonGlobs)
	if err != nil {
		return nil, fmt.Errorf("discovering lessons: %w", err)
	}
	log.Info("linting lessons", "root", opts.Root, "files", len(files))
	if opts.OnDiscover != nil {
		opts.OnDiscover(len(files))
	}

	limit := opts.MaxConcurrentFiles
	if limit <= 0 {
		limit = 1
	}
	results := make([]FileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, path := range files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = LintFile(path, opts.Quiz, log)
			if !results[i].OK() {
				log.Info("lesson failed", "file", path, "error", results[i].Error.Message)
			}
			if opts.OnFile != nil {
				opts.OnFile(results[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rep.Files = results
	rep.FilesTotal = len(results)
	for _, r := range results {
		if !r.OK() {
			rep.FilesBad++
		}
		rep.Warnings += len(r.Warnings)
	}
	rep.Duration = time.Since(start)
	return rep, nil
}

func checkStructure(root string, rep *Report, log *slog.Logger) error {
	schemas, err := course.LoadSchemas()
	if err != nil {
		return err
	}
	jsonViolations, err := course.CheckJSON(root, schemas)
	if err != nil {
		return err
	}
	rep.Structure = append(rep.Structure, jsonViolations...)

	s, err := course.Load(root)
	if err != nil {
		log.Warn("course structure not loaded", "root", root, "error", err)
		rep.LoadError = err.Error()
		return nil
	}
	rep.Structure = append(rep.Structure, course.CheckStructure(s)...)
	log.Info("course structure checked", "courses", len(s.Courses), "violations", len(rep.Structure))
	return nil
}
